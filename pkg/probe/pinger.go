package probe

import (
	"context"
	"time"

	probing "github.com/prometheus-community/pro-bing"

	"github.com/projectdiscovery/pingx/pkg/cidr"
)

// Ping probes hosts through pro-bing. With Privileged=false it uses UDP
// datagram sockets and works without CAP_NET_RAW.
type Ping struct {
	Timeout    time.Duration
	Privileged bool
}

var _ Prober = &Ping{}

// NewPing creates a pro-bing prober with the given per-probe timeout.
func NewPing(timeout time.Duration, privileged bool) *Ping {
	if timeout <= 0 {
		timeout = time.Second
	}
	return &Ping{Timeout: timeout, Privileged: privileged}
}

// Probe implements Prober.
func (p *Ping) Probe(ctx context.Context, addr uint32) Result {
	down := Result{Addr: addr}

	pinger, err := probing.NewPinger(cidr.ToString(addr))
	if err != nil {
		return down
	}
	pinger.SetPrivileged(p.Privileged)
	pinger.Count = 1
	pinger.Timeout = p.Timeout

	if err := pinger.RunWithContext(ctx); err != nil {
		return down
	}
	stats := pinger.Statistics()
	if stats.PacketsRecv == 0 {
		return down
	}
	return Result{Addr: addr, Reachable: true, RTT: stats.AvgRtt}
}
