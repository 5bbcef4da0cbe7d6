package runner

import (
	"context"
	"io"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/projectdiscovery/gologger"
	errorutil "github.com/projectdiscovery/utils/errors"

	"github.com/projectdiscovery/pingx/pkg/cidr"
	"github.com/projectdiscovery/pingx/pkg/probe"
	"github.com/projectdiscovery/pingx/pkg/scan"
)

// Runner contains the internal logic of the program
type Runner struct {
	options *Options
	scanner *scan.Scanner
}

// NewRunner instance
func NewRunner(options *Options) (*Runner, error) {
	scanOpts := scan.Options{
		Timeout:                 time.Duration(options.Timeout) * time.Millisecond,
		Concurrency:             options.Concurrency,
		Sequential:              options.Sequential,
		ExcludeNetworkBroadcast: !options.IncludeNetworkBroadcast,
	}

	var prober probe.Prober
	if options.Unprivileged {
		prober = probe.NewPing(scanOpts.Timeout, false)
	} else {
		prober = probe.NewICMP(scanOpts.Timeout)
	}

	return &Runner{
		options: options,
		scanner: scan.New(scanOpts, prober),
	}, nil
}

// Run the instance
func (r *Runner) Run(ctx context.Context) error {
	targets, label, err := r.buildTargets()
	if err != nil {
		// nothing has been probed at this point
		return err
	}

	gologger.Info().Msgf("Probing %d addresses in %s (timeout %dms, concurrency %d)",
		len(targets), label, r.options.Timeout, r.options.Concurrency)

	report := r.scanner.ScanAddresses(ctx, targets)
	report.Network = label
	gologger.Verbose().Msgf("Scan %s collected %d reachable hosts", report.ID, len(report.Hosts))

	if len(report.Hosts) == 0 {
		gologger.Info().Msgf("No hosts responded out of %d probed [scan=%s]", report.Total, report.ID)
	} else {
		writeTable(os.Stdout, report)
		gologger.Info().Msgf("Found %s hosts up out of %s probed [scan=%s]",
			au.Bold(len(report.Hosts)), au.Bold(report.Total), report.ID)
	}

	// Export failure never invalidates the already-computed report.
	if r.options.CSVFile != "" {
		if err := exportCSV(r.options.CSVFile, report); err != nil {
			gologger.Warning().Msgf("Could not export results to %s: %s", r.options.CSVFile, err)
		} else {
			gologger.Verbose().Msgf("Results exported to %s", r.options.CSVFile)
		}
	}

	return nil
}

// buildTargets assembles the scan target set from the cidr window and any
// individual hosts. Invalid input fails here, before any probe goes out.
func (r *Runner) buildTargets() ([]uint32, string, error) {
	var targets []uint32
	label := "host list"

	if r.options.CIDR != "" {
		rng, err := cidr.Parse(r.options.CIDR)
		if err != nil {
			return nil, "", err
		}
		targets = rng.Hosts(!r.options.IncludeNetworkBroadcast)
		label = rng.String()
	}

	for _, host := range r.options.Hosts {
		addr, ok := cidr.FromIP(net.ParseIP(host))
		if !ok {
			return nil, "", errorutil.New("invalid host: %s (must be an IPv4 address)", host)
		}
		targets = append(targets, addr)
	}

	return targets, label, nil
}

// writeTable renders the report on the console. Rows come pre-sorted from
// the aggregator and are printed as-is.
func writeTable(w io.Writer, report *scan.Report) {
	table := tablewriter.NewWriter(w)
	table.Header("IP", "RTT (ms)")
	for _, host := range report.Hosts {
		_ = table.Append([]string{cidr.ToString(host.Addr), formatRTT(host.RTT)})
	}
	_ = table.Render()
}

func formatRTT(rtt time.Duration) string {
	return strconv.FormatFloat(float64(rtt.Microseconds())/1000.0, 'f', 2, 64)
}
