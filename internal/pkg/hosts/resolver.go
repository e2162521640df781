package hosts

import (
	"net/netip"

	"hostgen/internal/pkg/entry"
	"hostgen/internal/pkg/ipaddr"
	"hostgen/internal/pkg/netselect"
	"hostgen/internal/pkg/tags"
)

// Resolver derives addresses for hosts against target networks. The
// universe is the full snapshot; "iface" options carrying their own
// selector are evaluated against it.
type Resolver struct {
	universe []netselect.Network
	query    tags.Tags
}

// NewResolver builds a resolver for one snapshot. The query tags gate
// option visibility; an empty query leaves every option visible.
func NewResolver(universe []netselect.Network, query tags.Tags) *Resolver {
	if query == nil {
		query = tags.New()
	}
	return &Resolver{universe: universe, query: query}
}

// Resolve derives the entry for h on target, or false when no IP rule
// applies (an expected outcome for non-matching host/target pairs).
// The MAC search is independent of which IP rule fired and may fail
// without invalidating the entry.
func (r *Resolver) Resolve(h Host, target netselect.Network) (entry.Entry, bool) {
	ip, ok := r.resolveIP(h.opts, target)
	if !ok {
		return entry.Entry{}, false
	}
	var mac *ipaddr.MAC
	if m, ok := r.resolveMAC(h.opts, target); ok {
		mac = &m
	}
	return entry.New(h.Name, mac, ip), true
}

// resolveIP is a rule-major priority search: each rule is tried across
// the entire option list before the next rule is considered. A labeled
// group matching the target replaces the option list and restarts the
// search.
func (r *Resolver) resolveIP(o *opts, target netselect.Network) (netip.Addr, bool) {
	if o == nil || !o.scope.Matches(r.query) {
		return netip.Addr{}, false
	}

	family := labelV6
	if target.Is4() {
		family = labelV4
	}
	if g := o.label(family); g != nil {
		return r.resolveIP(g, target)
	}
	if g := o.label(labelIP); g != nil {
		return r.resolveIP(g, target)
	}

	// literal addresses already inside the target subnet
	for _, v := range o.vals {
		if ip, ok := v.(ipOpt); ok && target.Prefix.Contains(ip.addr) {
			return ip.addr, true
		}
	}

	// same-family literals, projected
	for _, v := range o.vals {
		if ip, ok := v.(ipOpt); ok && ip.addr.Is4() == target.Is4() {
			if a, ok := ipaddr.Project(ip.addr, target.Prefix); ok {
				return a, true
			}
		}
	}

	// interface addresses already inside the target subnet
	for _, v := range o.vals {
		if f, ok := v.(ifaceOpt); ok {
			for _, a := range r.ifaceAddrs(f, target) {
				if target.Prefix.Contains(a) {
					return a, true
				}
			}
		}
	}

	// interface addresses of the same family, projected
	for _, v := range o.vals {
		if f, ok := v.(ifaceOpt); ok {
			for _, a := range r.ifaceAddrs(f, target) {
				if a.Is4() == target.Is4() {
					if p, ok := ipaddr.Project(a, target.Prefix); ok {
						return p, true
					}
				}
			}
		}
	}

	// interface addresses, cross-family projected
	for _, v := range o.vals {
		if f, ok := v.(ifaceOpt); ok {
			for _, a := range r.ifaceAddrs(f, target) {
				if p, ok := ipaddr.Project(a, target.Prefix); ok {
					return p, true
				}
			}
		}
	}

	// integer identifiers, via a synthesized MAC
	for _, v := range o.vals {
		if n, ok := v.(intOpt); ok {
			return ipaddr.ProjectMAC(ipaddr.FromUint64(n.n), target.Prefix), true
		}
	}

	// literal MACs, projected
	for _, v := range o.vals {
		if m, ok := v.(macOpt); ok {
			return ipaddr.ProjectMAC(m.mac, target.Prefix), true
		}
	}

	return netip.Addr{}, false
}

// resolveMAC mirrors resolveIP for the hardware address: mac-labeled
// group first, then literal MACs, interface hardware addresses,
// integers, and finally addresses that embed a MAC.
func (r *Resolver) resolveMAC(o *opts, target netselect.Network) (ipaddr.MAC, bool) {
	if o == nil || !o.scope.Matches(r.query) {
		return ipaddr.MAC{}, false
	}

	if g := o.label(labelMAC); g != nil {
		return r.resolveMAC(g, target)
	}

	for _, v := range o.vals {
		if m, ok := v.(macOpt); ok {
			return m.mac, true
		}
	}

	for _, v := range o.vals {
		if f, ok := v.(ifaceOpt); ok {
			if m, ok := r.ifaceMAC(f, target); ok {
				return m, true
			}
		}
	}

	for _, v := range o.vals {
		if n, ok := v.(intOpt); ok {
			return ipaddr.FromUint64(n.n), true
		}
	}

	// v6 literals carrying an EUI-64 identifier
	for _, v := range o.vals {
		if ip, ok := v.(ipOpt); ok && !ip.addr.Is4() {
			if m, ok := ipaddr.FromIP(ip.addr); ok {
				return m, true
			}
		}
	}

	// v4 literals via the vendor-prefix scheme
	for _, v := range o.vals {
		if ip, ok := v.(ipOpt); ok && ip.addr.Is4() {
			return ipaddr.FromIPv4(ip.addr), true
		}
	}

	return ipaddr.MAC{}, false
}

// ifaceAddrs lists the candidate addresses an iface option stands for:
// the target's own address when unparameterized, otherwise the
// addresses of the networks its selector picks out of the snapshot.
func (r *Resolver) ifaceAddrs(f ifaceOpt, target netselect.Network) []netip.Addr {
	if f.sel == nil {
		if !target.Addr.IsValid() {
			return nil
		}
		return []netip.Addr{target.Addr}
	}
	nets := netselect.Filter(r.universe, f.sel)
	addrs := make([]netip.Addr, 0, len(nets))
	for _, n := range nets {
		if n.Addr.IsValid() {
			addrs = append(addrs, n.Addr)
		}
	}
	return addrs
}

func (r *Resolver) ifaceMAC(f ifaceOpt, target netselect.Network) (ipaddr.MAC, bool) {
	if f.sel == nil {
		if target.Iface != nil && target.Iface.HardwareAddr != nil {
			return *target.Iface.HardwareAddr, true
		}
		return ipaddr.MAC{}, false
	}
	for _, n := range netselect.Filter(r.universe, f.sel) {
		if n.Iface != nil && n.Iface.HardwareAddr != nil {
			return *n.Iface.HardwareAddr, true
		}
	}
	return ipaddr.MAC{}, false
}
