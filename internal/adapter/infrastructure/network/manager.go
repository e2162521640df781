// Package network provides the netlink-backed interface snapshot adapter.
package network

import (
	"fmt"
	"net/netip"

	"github.com/vishvananda/netlink"

	"hostgen/internal/pkg/ipaddr"
	"hostgen/internal/pkg/netselect"
	"hostgen/internal/port"
)

// SnapshotAdapter implements the InterfaceSource port using the
// vishvananda/netlink library.
type SnapshotAdapter struct{}

// Ensure SnapshotAdapter implements the InterfaceSource port
var _ port.InterfaceSource = (*SnapshotAdapter)(nil)

// NewSnapshotAdapter creates a new snapshot adapter.
func NewSnapshotAdapter() *SnapshotAdapter {
	return &SnapshotAdapter{}
}

// Networks enumerates every link and returns one Network per address
// assigned on it, both families.
func (s *SnapshotAdapter) Networks() ([]netselect.Network, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}

	var networks []netselect.Network
	for _, link := range links {
		attrs := link.Attrs()
		iface := &netselect.Interface{Name: attrs.Name, Index: attrs.Index}
		if m, err := ipaddr.FromHardwareAddr(attrs.HardwareAddr); err == nil {
			iface.HardwareAddr = &m
		}

		addrs, err := netlink.AddrList(link, netlink.FAMILY_ALL)
		if err != nil {
			return nil, fmt.Errorf("failed to list addresses on %s: %w", attrs.Name, err)
		}
		for _, addr := range addrs {
			if addr.IPNet == nil {
				continue
			}
			ip, ok := netip.AddrFromSlice(addr.IPNet.IP)
			if !ok {
				continue
			}
			ip = ip.Unmap()
			ones, _ := addr.IPNet.Mask.Size()
			networks = append(networks, netselect.Network{
				Iface:  iface,
				Addr:   ip,
				Prefix: netip.PrefixFrom(ip, ones).Masked(),
			})
		}
	}
	return networks, nil
}
