// Package netselect models a point-in-time snapshot of the machine's
// interface/subnet assignments and the selector algebra that narrows a
// snapshot down to a set of target networks.
package netselect

import (
	"fmt"
	"net/netip"

	"hostgen/internal/pkg/ipaddr"
)

// Interface describes one local network interface in a snapshot.
// Snapshots are captured once per run and never mutated.
type Interface struct {
	Name         string
	Index        int
	HardwareAddr *ipaddr.MAC
}

// Network pairs an interface with one of its assigned subnets. Addr is
// the address assigned on the interface, Prefix the enclosing network.
// Iface is nil only for the two sentinel networks.
type Network struct {
	Iface  *Interface
	Addr   netip.Addr
	Prefix netip.Prefix
}

// AnyV4 is the sentinel network standing for the whole v4 address
// space, matched when a selector asks for no interface constraint.
func AnyV4() Network {
	return Network{
		Addr:   netip.IPv4Unspecified(),
		Prefix: netip.PrefixFrom(netip.IPv4Unspecified(), 0),
	}
}

// AnyV6 is the v6 counterpart of AnyV4.
func AnyV6() Network {
	return Network{
		Addr:   netip.IPv6Unspecified(),
		Prefix: netip.PrefixFrom(netip.IPv6Unspecified(), 0),
	}
}

// Universe returns the filter universe for a snapshot: every captured
// interface network followed by the two sentinels.
func Universe(networks []Network) []Network {
	u := make([]Network, 0, len(networks)+2)
	u = append(u, networks...)
	return append(u, AnyV4(), AnyV6())
}

// Is4 reports the address family of the network.
func (n Network) Is4() bool {
	return n.Addr.Is4()
}

// IsSentinel reports whether n is one of the interface-less sentinels.
func (n Network) IsSentinel() bool {
	return n.Iface == nil
}

func (n Network) String() string {
	if n.IsSentinel() {
		return fmt.Sprintf("<any> %s", n.Prefix)
	}
	return fmt.Sprintf("%s (%d) %s/%d", n.Iface.Name, n.Iface.Index, n.Addr, n.Prefix.Bits())
}

// networkKey is the comparable identity used for set difference in
// negated selectors.
type networkKey struct {
	name   string
	index  int
	addr   netip.Addr
	prefix netip.Prefix
}

func (n Network) key() networkKey {
	k := networkKey{addr: n.Addr, prefix: n.Prefix}
	if n.Iface != nil {
		k.name = n.Iface.Name
		k.index = n.Iface.Index
	}
	return k
}
