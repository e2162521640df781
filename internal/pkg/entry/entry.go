// Package entry defines the resolved output record, its three text
// renderings, and the precedence merge that combines entry sources.
package entry

import (
	"fmt"
	"net/netip"
	"strings"

	"hostgen/internal/pkg/ipaddr"
)

// Entry is one resolved host record. The MAC is optional; an entry
// without one is still valid for DNS-only output. Entries are never
// mutated once produced.
type Entry struct {
	Name string
	MAC  *ipaddr.MAC
	IP   netip.Addr
}

// New builds an entry. The MAC is copied so callers can reuse their
// pointer.
func New(name string, mac *ipaddr.MAC, ip netip.Addr) Entry {
	e := Entry{Name: name, IP: ip}
	if mac != nil {
		m := *mac
		e.MAC = &m
	}
	return e
}

// Dnsmasq renders the entry as a dnsmasq host reservation line:
// [<mac>,]<ip>,<name> with v6 literals bracketed.
func (e Entry) Dnsmasq() string {
	parts := make([]string, 0, 3)
	if e.MAC != nil {
		parts = append(parts, e.MAC.String())
	}
	if e.IP.Is4() {
		parts = append(parts, e.IP.String())
	} else {
		parts = append(parts, "["+e.IP.String()+"]")
	}
	parts = append(parts, e.Name)
	return strings.Join(parts, ",")
}

// Zone renders a zone-file record. Columns are tab separated so a
// tabwriter can align them.
func (e Entry) Zone() string {
	rtype := "A"
	if !e.IP.Is4() {
		rtype = "AAAA"
	}
	return e.Name + "\t" + rtype + "\t" + e.IP.String()
}

// Env renders an environment-variable definition: the host name
// uppercased with dots and dashes flattened to underscores, suffixed
// with the address family.
func (e Entry) Env() string {
	family := "V4"
	if !e.IP.Is4() {
		family = "V6"
	}
	name := strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(e.Name))
	return fmt.Sprintf("%s_%s=%s", name, family, e.IP)
}
