// Package probe performs single reachability checks against IPv4 hosts.
//
// A Prober issues exactly one check per invocation and never returns an
// error: permission problems, unreachable hosts, malformed replies and
// timeouts are all reported as Reachable=false. Retry policy, if any,
// belongs to the caller.
package probe

import (
	"context"
	"time"
)

// Result is the immutable outcome of one reachability check.
type Result struct {
	Addr      uint32
	Reachable bool
	RTT       time.Duration // meaningful only when Reachable
}

// Prober checks whether a single address responds.
type Prober interface {
	Probe(ctx context.Context, addr uint32) Result
}

// Static is a deterministic prober for tests and dry runs: addresses
// present in Up respond with the configured RTT, everything else is down.
type Static struct {
	Up map[uint32]time.Duration
}

var _ Prober = &Static{}

// Probe implements Prober.
func (s *Static) Probe(_ context.Context, addr uint32) Result {
	if rtt, ok := s.Up[addr]; ok {
		return Result{Addr: addr, Reachable: true, RTT: rtt}
	}
	return Result{Addr: addr}
}
