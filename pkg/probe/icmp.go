package probe

import (
	"context"
	"net"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"

	"github.com/projectdiscovery/pingx/pkg/cidr"
)

const maxReplySize = 1500

var echoSeq atomic.Uint32

// ICMP probes hosts with a raw-socket ICMP echo request. Requires
// CAP_NET_RAW or root; use Ping in unprivileged environments.
type ICMP struct {
	Timeout time.Duration
}

var _ Prober = &ICMP{}

// NewICMP creates a raw-socket prober with the given per-probe timeout.
func NewICMP(timeout time.Duration) *ICMP {
	if timeout <= 0 {
		timeout = time.Second
	}
	return &ICMP{Timeout: timeout}
}

// Probe implements Prober. One echo request, one deadline, no retries.
func (p *ICMP) Probe(ctx context.Context, addr uint32) Result {
	down := Result{Addr: addr}

	conn, err := icmp.ListenPacket("ip4:icmp", "0.0.0.0")
	if err != nil {
		return down
	}
	defer func() {
		_ = conn.Close()
	}()

	id := os.Getpid() & 0xffff
	seq := int(echoSeq.Add(1) & 0xffff)
	msg := icmp.Message{
		Type: ipv4.ICMPTypeEcho,
		Code: 0,
		Body: &icmp.Echo{
			ID:   id,
			Seq:  seq,
			Data: []byte("HELLO-R-U-THERE"),
		},
	}
	payload, err := msg.Marshal(nil)
	if err != nil {
		return down
	}

	ip := cidr.ToIP(addr)
	start := time.Now()
	if _, err := conn.WriteTo(payload, &net.IPAddr{IP: ip}); err != nil {
		return down
	}

	deadline := start.Add(p.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetReadDeadline(deadline); err != nil {
		return down
	}

	// A raw ICMP socket sees every reply addressed to the process, so
	// keep reading until our id/seq/peer match or the deadline hits.
	buf := make([]byte, maxReplySize)
	for {
		n, peer, err := conn.ReadFrom(buf)
		if err != nil {
			return down
		}
		reply, err := icmp.ParseMessage(ipv4.ICMPTypeEchoReply.Protocol(), buf[:n])
		if err != nil || reply.Type != ipv4.ICMPTypeEchoReply {
			continue
		}
		echo, ok := reply.Body.(*icmp.Echo)
		if !ok || echo.ID != id || echo.Seq != seq {
			continue
		}
		if peerAddr, ok := peer.(*net.IPAddr); !ok || !peerAddr.IP.Equal(ip) {
			continue
		}
		return Result{Addr: addr, Reachable: true, RTT: time.Since(start)}
	}
}
