// Package scan coordinates reachability probes across an address window
// and aggregates the outcomes into a deterministic report.
package scan

import (
	"context"
	"sort"
	"time"

	"github.com/rs/xid"

	"github.com/projectdiscovery/pingx/pkg/cidr"
	"github.com/projectdiscovery/pingx/pkg/probe"
)

const (
	// DefaultTimeout is the per-probe timeout.
	DefaultTimeout = time.Second
	// DefaultConcurrency caps simultaneously in-flight probes.
	DefaultConcurrency = 100
)

// Options tunes a Scanner.
type Options struct {
	Timeout                 time.Duration
	Concurrency             int
	Sequential              bool
	ExcludeNetworkBroadcast bool
}

// DefaultOptions returns the standard sweep configuration.
func DefaultOptions() Options {
	return Options{
		Timeout:                 DefaultTimeout,
		Concurrency:             DefaultConcurrency,
		ExcludeNetworkBroadcast: true,
	}
}

// Report is the outcome of one sweep. Hosts contains only reachable
// results, sorted ascending by numeric address, free of duplicates.
// An empty Hosts slice is a successful scan that found nothing.
type Report struct {
	ID      string
	Network string
	Total   uint64
	Hosts   []probe.Result
}

// Scanner runs sweeps with a fixed prober and strategy.
type Scanner struct {
	opts     Options
	prober   probe.Prober
	strategy Strategy
}

// New creates a Scanner. A nil prober defaults to the raw-socket ICMP
// implementation with the configured timeout.
func New(opts Options, prober probe.Prober) *Scanner {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if prober == nil {
		prober = probe.NewICMP(opts.Timeout)
	}
	return &Scanner{
		opts:     opts,
		prober:   prober,
		strategy: NewStrategy(opts),
	}
}

// Run sweeps the effective window of the given CIDR. The only possible
// error is cidr.ErrInvalidCIDR, returned before any probe is dispatched.
func (s *Scanner) Run(ctx context.Context, network string) (*Report, error) {
	rng, err := cidr.Parse(network)
	if err != nil {
		return nil, err
	}
	report := s.ScanAddresses(ctx, rng.Hosts(s.opts.ExcludeNetworkBroadcast))
	report.Network = rng.String()
	return report, nil
}

// ScanAddresses sweeps an explicit target list. Each address is probed
// exactly once; duplicates in the input collapse during aggregation.
func (s *Scanner) ScanAddresses(ctx context.Context, targets []uint32) *Report {
	results := s.strategy.Run(ctx, targets, s.prober)
	report := Aggregate(results)
	report.ID = xid.New().String()
	report.Total = uint64(len(targets))
	return report
}

// Aggregate merges raw probe results into a report: unreachable entries
// are dropped, duplicate addresses collapse to the lowest RTT, and the
// remainder is sorted by numeric address value. The dotted-quad text form
// is never consulted, so 10.0.0.9 sorts before 10.0.0.10. Aggregating an
// already aggregated result set is a no-op.
func Aggregate(results []probe.Result) *Report {
	best := make(map[uint32]probe.Result, len(results))
	for _, r := range results {
		if !r.Reachable {
			continue
		}
		if prev, ok := best[r.Addr]; !ok || r.RTT < prev.RTT {
			best[r.Addr] = r
		}
	}

	hosts := make([]probe.Result, 0, len(best))
	for _, r := range best {
		hosts = append(hosts, r)
	}
	sort.Slice(hosts, func(i, j int) bool {
		return hosts[i].Addr < hosts[j].Addr
	})
	return &Report{Hosts: hosts}
}
