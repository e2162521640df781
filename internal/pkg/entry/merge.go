package entry

import (
	"net/netip"

	"hostgen/internal/pkg/ipaddr"
)

// identities indexes the names, MACs and IPs of already yielded
// entries. A candidate collides when any one of the three matches.
type identities struct {
	names map[string]struct{}
	macs  map[ipaddr.MAC]struct{}
	ips   map[netip.Addr]struct{}
}

func newIdentities() *identities {
	return &identities{
		names: make(map[string]struct{}),
		macs:  make(map[ipaddr.MAC]struct{}),
		ips:   make(map[netip.Addr]struct{}),
	}
}

func (s *identities) add(e Entry) {
	s.names[e.Name] = struct{}{}
	if e.MAC != nil {
		s.macs[*e.MAC] = struct{}{}
	}
	s.ips[e.IP] = struct{}{}
}

func (s *identities) collides(e Entry) bool {
	if _, ok := s.names[e.Name]; ok {
		return true
	}
	if e.MAC != nil {
		if _, ok := s.macs[*e.MAC]; ok {
			return true
		}
	}
	_, ok := s.ips[e.IP]
	return ok
}

func (s *identities) absorb(o *identities) {
	for name := range o.names {
		s.names[name] = struct{}{}
	}
	for mac := range o.macs {
		s.macs[mac] = struct{}{}
	}
	for ip := range o.ips {
		s.ips[ip] = struct{}{}
	}
}

// Chain yields every entry of first, then every entry of second whose
// name, MAC and IP are all unseen in first. Earlier sources win ties.
func Chain(first, second []Entry) []Entry {
	seen := newIdentities()
	out := make([]Entry, 0, len(first)+len(second))
	for _, e := range first {
		seen.add(e)
		out = append(out, e)
	}
	for _, e := range second {
		if !seen.collides(e) {
			out = append(out, e)
		}
	}
	return out
}

// Flatten merges source groups in priority order. Entries within one
// group never suppress each other, since a group is one logically
// atomic source; once a group is exhausted its identities join the
// cumulative set that filters every later group.
func Flatten(groups [][]Entry) []Entry {
	previous := newIdentities()
	var out []Entry
	for _, group := range groups {
		current := newIdentities()
		for _, e := range group {
			if previous.collides(e) {
				continue
			}
			current.add(e)
			out = append(out, e)
		}
		previous.absorb(current)
	}
	return out
}
