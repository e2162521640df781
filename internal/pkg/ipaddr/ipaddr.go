// Package ipaddr provides the address arithmetic used to place host
// identifiers inside subnets: MAC synthesis from integers and IP
// addresses, EUI-64 embedding, and projection of a value into a
// network prefix.
package ipaddr

import (
	"fmt"
	"net"
	"net/netip"
)

// MAC is a 48-bit hardware address stored as a comparable value type,
// so it can be used directly as a map key.
type MAC [6]byte

// ParseMAC parses a textual hardware address. Only 48-bit addresses
// are accepted.
func ParseMAC(s string) (MAC, error) {
	hw, err := net.ParseMAC(s)
	if err != nil {
		return MAC{}, err
	}
	return FromHardwareAddr(hw)
}

// FromHardwareAddr converts a net.HardwareAddr, rejecting anything
// that is not exactly 48 bits (infiniband and EUI-64 addresses).
func FromHardwareAddr(hw net.HardwareAddr) (MAC, error) {
	if len(hw) != 6 {
		return MAC{}, fmt.Errorf("hardware address %s is not 48 bits", hw)
	}
	var m MAC
	copy(m[:], hw)
	return m, nil
}

func (m MAC) String() string {
	return net.HardwareAddr(m[:]).String()
}

// FromUint64 synthesizes a MAC from the low 48 bits of n, big-endian.
// The locally-administered bit is forced on, so a synthesized address
// can never collide with a vendor-assigned one.
func FromUint64(n uint64) MAC {
	var m MAC
	for i := 5; i >= 0; i-- {
		m[i] = byte(n)
		n >>= 8
	}
	m[0] |= 0x02
	return m
}

// FromIPv4 synthesizes a MAC for a v4 address: a locally-administered
// 02:00 prefix followed by the four address octets.
func FromIPv4(ip netip.Addr) MAC {
	o := ip.As4()
	return MAC{0x02, 0x00, o[0], o[1], o[2], o[3]}
}

// FromIP recovers a MAC from an address. A v6 address must carry an
// EUI-64 interface identifier (0xff 0xfe in bytes 11 and 12); failing
// that, it is reduced to its embedded v4 form if it has one. A v4
// address uses the FromIPv4 scheme.
func FromIP(ip netip.Addr) (MAC, bool) {
	ip = ip.Unmap()
	if ip.Is4() {
		return FromIPv4(ip), true
	}
	o := ip.As16()
	if o[11] == 0xff && o[12] == 0xfe {
		return MAC{o[8] ^ 0x02, o[9], o[10], o[13], o[14], o[15]}, true
	}
	if v4, ok := Embedded4(ip); ok {
		return FromIPv4(v4), true
	}
	return MAC{}, false
}

// EUI64 returns the v6 interface-identifier embedding of m. The high
// 64 bits are left zero; projection merges in a network prefix.
func (m MAC) EUI64() netip.Addr {
	var b [16]byte
	b[8] = m[0] ^ 0x02
	b[9], b[10] = m[1], m[2]
	b[11], b[12] = 0xff, 0xfe
	b[13], b[14], b[15] = m[3], m[4], m[5]
	return netip.AddrFrom16(b)
}

// IPv4 returns the v4 address carried in the low four octets of m, the
// inverse of FromIPv4.
func (m MAC) IPv4() netip.Addr {
	return netip.AddrFrom4([4]byte{m[2], m[3], m[4], m[5]})
}

// Embedded4 extracts the v4 address from an IPv4-compatible (::a.b.c.d)
// or IPv4-mapped (::ffff:a.b.c.d) v6 address.
func Embedded4(ip netip.Addr) (netip.Addr, bool) {
	if ip.Is4() {
		return ip, true
	}
	if ip.Is4In6() {
		return ip.Unmap(), true
	}
	b := ip.As16()
	for _, x := range b[:12] {
		if x != 0 {
			return netip.Addr{}, false
		}
	}
	return netip.AddrFrom4([4]byte{b[12], b[13], b[14], b[15]}), true
}

// Compat6 returns the IPv4-compatible v6 representation of a v4
// address (its four octets in the low 32 bits).
func Compat6(ip netip.Addr) netip.Addr {
	o := ip.As4()
	var b [16]byte
	copy(b[12:], o[:])
	return netip.AddrFrom16(b)
}

// Project places addr inside prefix: the prefix's masked network bits
// combined with addr's own host bits. Cross-family values go through
// the IPv4-compatible v6 representation; a v6 value projects into a v4
// prefix only when it embeds a v4 address.
func Project(addr netip.Addr, prefix netip.Prefix) (netip.Addr, bool) {
	addr = addr.Unmap()
	switch {
	case addr.Is4() && prefix.Addr().Is4():
		return project4(addr, prefix), true
	case !addr.Is4() && !prefix.Addr().Is4():
		return project16(addr, prefix), true
	case addr.Is4():
		return project16(Compat6(addr), prefix), true
	default:
		v4, ok := Embedded4(addr)
		if !ok {
			return netip.Addr{}, false
		}
		return project4(v4, prefix), true
	}
}

// ProjectMAC places a MAC inside prefix by first converting it to the
// prefix's family: EUI-64 for v6, the vendor-prefix scheme for v4.
func ProjectMAC(m MAC, prefix netip.Prefix) netip.Addr {
	var addr netip.Addr
	if prefix.Addr().Is4() {
		addr = m.IPv4()
	} else {
		addr = m.EUI64()
	}
	projected, _ := Project(addr, prefix)
	return projected
}

func project4(addr netip.Addr, prefix netip.Prefix) netip.Addr {
	a := addr.As4()
	n := prefix.Masked().Addr().As4()
	maskBytes(a[:], n[:], prefix.Bits())
	return netip.AddrFrom4(a)
}

func project16(addr netip.Addr, prefix netip.Prefix) netip.Addr {
	a := addr.As16()
	n := prefix.Masked().Addr().As16()
	maskBytes(a[:], n[:], prefix.Bits())
	return netip.AddrFrom16(a)
}

// maskBytes overwrites a with (n & mask) | (a &^ mask), where mask is
// the leading `bits` bits of the address width.
func maskBytes(a, n []byte, bits int) {
	for i := range a {
		var mask byte
		switch {
		case bits >= 8:
			mask = 0xff
			bits -= 8
		case bits > 0:
			mask = 0xff << (8 - bits)
			bits = 0
		}
		a[i] = n[i]&mask | a[i]&^mask
	}
}
