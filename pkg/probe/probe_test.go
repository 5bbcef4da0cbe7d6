package probe

import (
	"context"
	"testing"
	"time"
)

func TestStaticProber(t *testing.T) {
	prober := &Static{Up: map[uint32]time.Duration{
		0x0a000001: 5 * time.Millisecond,
		0x0a000003: 12 * time.Millisecond,
	}}

	tests := []struct {
		name          string
		addr          uint32
		wantReachable bool
		wantRTT       time.Duration
	}{
		{name: "first up host", addr: 0x0a000001, wantReachable: true, wantRTT: 5 * time.Millisecond},
		{name: "second up host", addr: 0x0a000003, wantReachable: true, wantRTT: 12 * time.Millisecond},
		{name: "down host", addr: 0x0a000002, wantReachable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := prober.Probe(context.Background(), tt.addr)
			if got.Addr != tt.addr {
				t.Errorf("addr = %#x, want %#x", got.Addr, tt.addr)
			}
			if got.Reachable != tt.wantReachable {
				t.Errorf("reachable = %v, want %v", got.Reachable, tt.wantReachable)
			}
			if got.RTT != tt.wantRTT {
				t.Errorf("rtt = %v, want %v", got.RTT, tt.wantRTT)
			}
		})
	}
}

func TestStaticProberDeterministic(t *testing.T) {
	prober := &Static{Up: map[uint32]time.Duration{42: time.Millisecond}}
	first := prober.Probe(context.Background(), 42)
	for i := 0; i < 10; i++ {
		if got := prober.Probe(context.Background(), 42); got != first {
			t.Fatalf("probe %d = %+v, want %+v", i, got, first)
		}
	}
}

func TestTimeoutDefaults(t *testing.T) {
	if p := NewICMP(0); p.Timeout != time.Second {
		t.Errorf("NewICMP(0).Timeout = %v, want 1s", p.Timeout)
	}
	if p := NewPing(-time.Second, false); p.Timeout != time.Second {
		t.Errorf("NewPing(-1s).Timeout = %v, want 1s", p.Timeout)
	}
	if p := NewICMP(250 * time.Millisecond); p.Timeout != 250*time.Millisecond {
		t.Errorf("NewICMP(250ms).Timeout = %v", p.Timeout)
	}
}
