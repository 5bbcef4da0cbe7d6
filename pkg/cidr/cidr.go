// Package cidr computes usable IPv4 address windows from CIDR notation.
//
// Addresses are handled as big-endian uint32 values so that ordering and
// window arithmetic stay numeric; dotted-quad strings are a presentation
// concern only.
package cidr

import (
	"errors"
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidCIDR is returned for any input that is not four dot-separated
// octets followed by a prefix length between 0 and 32.
var ErrInvalidCIDR = errors.New("invalid CIDR")

var cidrRegex = regexp.MustCompile(`^(\d{1,3})\.(\d{1,3})\.(\d{1,3})\.(\d{1,3})/(\d{1,2})$`)

// Range describes a parsed IPv4 network block.
type Range struct {
	Network   uint32
	Broadcast uint32
	Mask      uint32
	Prefix    int
}

// Parse validates and parses an IPv4 CIDR string into a Range.
// The base address does not need to be network-aligned; host bits are
// masked off. Any malformed input fails with ErrInvalidCIDR.
func Parse(s string) (Range, error) {
	m := cidrRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidCIDR, s)
	}

	var base uint32
	for i := 1; i <= 4; i++ {
		octet, err := strconv.Atoi(m[i])
		if err != nil || octet > 255 {
			return Range{}, fmt.Errorf("%w: %q", ErrInvalidCIDR, s)
		}
		base = base<<8 | uint32(octet)
	}

	prefix, err := strconv.Atoi(m[5])
	if err != nil || prefix > 32 {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidCIDR, s)
	}

	var mask uint32
	if prefix > 0 {
		mask = ^uint32(0) << (32 - prefix)
	}

	network := base & mask
	return Range{
		Network:   network,
		Broadcast: network | ^mask,
		Mask:      mask,
		Prefix:    prefix,
	}, nil
}

// Window returns the effective [start, end] scan window. Network and
// broadcast addresses are excluded only when requested and only for
// prefixes shorter than /31: a /31 point-to-point pair and a /32 single
// host have no interior addresses to exclude (RFC 3021 convention).
func (r Range) Window(excludeNetworkBroadcast bool) (start, end uint32) {
	if excludeNetworkBroadcast && r.Prefix < 31 {
		return r.Network + 1, r.Broadcast - 1
	}
	return r.Network, r.Broadcast
}

// Count returns the number of addresses in the effective window.
// Computed in 64 bits so a 0.0.0.0/0 window does not overflow.
func (r Range) Count(excludeNetworkBroadcast bool) uint64 {
	start, end := r.Window(excludeNetworkBroadcast)
	return uint64(end) - uint64(start) + 1
}

// Hosts expands the effective window into an ordered address slice.
func (r Range) Hosts(excludeNetworkBroadcast bool) []uint32 {
	start, end := r.Window(excludeNetworkBroadcast)
	return Addresses(start, end)
}

// String returns the canonical network/prefix form.
func (r Range) String() string {
	return fmt.Sprintf("%s/%d", ToString(r.Network), r.Prefix)
}

// Addresses returns every address in [start, end] ascending. The loop
// counter is 64-bit so a window ending at 255.255.255.255 terminates.
func Addresses(start, end uint32) []uint32 {
	if start > end {
		return nil
	}
	out := make([]uint32, 0, uint64(end)-uint64(start)+1)
	for a := uint64(start); a <= uint64(end); a++ {
		out = append(out, uint32(a))
	}
	return out
}

// ToIP converts a numeric address to net.IP.
func ToIP(addr uint32) net.IP {
	return net.IPv4(byte(addr>>24), byte(addr>>16), byte(addr>>8), byte(addr))
}

// FromIP converts an IPv4 net.IP to its numeric value. Returns false for
// nil or non-IPv4 addresses.
func FromIP(ip net.IP) (uint32, bool) {
	ip4 := ip.To4()
	if ip4 == nil {
		return 0, false
	}
	return uint32(ip4[0])<<24 | uint32(ip4[1])<<16 | uint32(ip4[2])<<8 | uint32(ip4[3]), true
}

// ToString renders a numeric address as dotted-quad text.
func ToString(addr uint32) string {
	return ToIP(addr).String()
}
