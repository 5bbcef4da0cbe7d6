package scan

import (
	"context"

	mapsutil "github.com/projectdiscovery/utils/maps"
	syncutil "github.com/projectdiscovery/utils/sync"

	"github.com/projectdiscovery/pingx/pkg/probe"
)

// Strategy dispatches one probe per target and collects every result,
// reachable or not. Implementations differ only in scheduling; given the
// same prober they must produce the same result set.
type Strategy interface {
	Run(ctx context.Context, targets []uint32, prober probe.Prober) []probe.Result
}

// NewStrategy selects the execution strategy from options. Sequential mode
// doubles as a scheduling-free oracle for the parallel one.
func NewStrategy(opts Options) Strategy {
	if opts.Sequential || opts.Concurrency <= 1 {
		return &sequentialStrategy{}
	}
	return &parallelStrategy{size: opts.Concurrency}
}

// parallelStrategy fans probes out under an adaptive waitgroup sized to
// the concurrency ceiling. Add blocks while the pool is full, so at most
// size probes are in flight at once.
type parallelStrategy struct {
	size int
}

func (s *parallelStrategy) Run(ctx context.Context, targets []uint32, prober probe.Prober) []probe.Result {
	// Keyed by address: concurrent writes cannot be lost or torn, and
	// duplicate targets collapse to a single entry.
	results := mapsutil.NewSyncLockMap[uint32, probe.Result]()

	awg, err := syncutil.New(syncutil.WithSize(s.size))
	if err != nil {
		return (&sequentialStrategy{}).Run(ctx, targets, prober)
	}

dispatch:
	for _, addr := range targets {
		// Cancellation stops dispatch; in-flight probes run out their
		// own timeouts and their results are kept.
		select {
		case <-ctx.Done():
			break dispatch
		default:
		}

		awg.Add()
		go func(a uint32) {
			defer awg.Done()
			_ = results.Set(a, prober.Probe(ctx, a))
		}(addr)
	}
	awg.Wait()

	collected := make([]probe.Result, 0, len(targets))
	_ = results.Iterate(func(_ uint32, r probe.Result) error {
		collected = append(collected, r)
		return nil
	})
	return collected
}

// sequentialStrategy probes one target at a time.
type sequentialStrategy struct{}

func (s *sequentialStrategy) Run(ctx context.Context, targets []uint32, prober probe.Prober) []probe.Result {
	collected := make([]probe.Result, 0, len(targets))
	for _, addr := range targets {
		select {
		case <-ctx.Done():
			return collected
		default:
		}
		collected = append(collected, prober.Probe(ctx, addr))
	}
	return collected
}
