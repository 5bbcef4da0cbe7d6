package runner

import (
	"bytes"
	"encoding/csv"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/projectdiscovery/pingx/pkg/cidr"
	"github.com/projectdiscovery/pingx/pkg/probe"
	"github.com/projectdiscovery/pingx/pkg/scan"
)

func testReport(t *testing.T) *scan.Report {
	t.Helper()
	addr9, ok := cidr.FromIP(net.ParseIP("10.0.0.9"))
	require.True(t, ok)
	addr10, ok := cidr.FromIP(net.ParseIP("10.0.0.10"))
	require.True(t, ok)
	return &scan.Report{
		ID:      "test",
		Network: "10.0.0.0/28",
		Total:   14,
		Hosts: []probe.Result{
			{Addr: addr9, Reachable: true, RTT: 4 * time.Millisecond},
			{Addr: addr10, Reachable: true, RTT: 1500 * time.Microsecond},
		},
	}
}

func TestExportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, exportCSV(path, testReport(t)))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"ip", "rtt_ms"},
		{"10.0.0.9", "4"},
		{"10.0.0.10", "1"},
	}, rows)
}

func TestExportCSVBadPath(t *testing.T) {
	err := exportCSV(filepath.Join(t.TempDir(), "missing", "results.csv"), testReport(t))
	require.Error(t, err)
}

func TestWriteTablePreservesReportOrder(t *testing.T) {
	var buf bytes.Buffer
	writeTable(&buf, testReport(t))

	out := buf.String()
	require.Contains(t, out, "10.0.0.9")
	require.Contains(t, out, "10.0.0.10")
	require.Less(t, bytes.Index(buf.Bytes(), []byte("10.0.0.9")), bytes.Index(buf.Bytes(), []byte("10.0.0.10")))
}

func TestFormatRTT(t *testing.T) {
	require.Equal(t, "4.00", formatRTT(4*time.Millisecond))
	require.Equal(t, "1.50", formatRTT(1500*time.Microsecond))
	require.Equal(t, "0.00", formatRTT(0))
}

func TestBuildTargets(t *testing.T) {
	tests := []struct {
		name      string
		options   Options
		wantLen   int
		wantLabel string
		wantErr   bool
		errIs     error
	}{
		{
			name:      "cidr window excludes network and broadcast",
			options:   Options{CIDR: "192.168.1.0/30", Timeout: 1000, Concurrency: 10},
			wantLen:   2,
			wantLabel: "192.168.1.0/30",
		},
		{
			name:      "cidr window including network and broadcast",
			options:   Options{CIDR: "192.168.1.0/30", IncludeNetworkBroadcast: true, Timeout: 1000, Concurrency: 10},
			wantLen:   4,
			wantLabel: "192.168.1.0/30",
		},
		{
			name:      "cidr plus individual hosts",
			options:   Options{CIDR: "10.0.0.4/31", Hosts: []string{"172.16.0.1", "172.16.0.2"}, Timeout: 1000, Concurrency: 10},
			wantLen:   4,
			wantLabel: "10.0.0.4/31",
		},
		{
			name:      "hosts only",
			options:   Options{Hosts: []string{"8.8.8.8"}, Timeout: 1000, Concurrency: 10},
			wantLen:   1,
			wantLabel: "host list",
		},
		{
			name:    "malformed cidr",
			options: Options{CIDR: "10.0.0/24", Timeout: 1000, Concurrency: 10},
			wantErr: true,
			errIs:   cidr.ErrInvalidCIDR,
		},
		{
			name:    "malformed host",
			options: Options{Hosts: []string{"not-an-ip"}, Timeout: 1000, Concurrency: 10},
			wantErr: true,
		},
		{
			name:    "ipv6 host rejected",
			options: Options{Hosts: []string{"2001:db8::1"}, Timeout: 1000, Concurrency: 10},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRunner(&tt.options)
			require.NoError(t, err)

			targets, label, err := r.buildTargets()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
				return
			}
			require.NoError(t, err)
			require.Len(t, targets, tt.wantLen)
			require.Equal(t, tt.wantLabel, label)
		})
	}
}
