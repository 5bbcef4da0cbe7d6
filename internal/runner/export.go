package runner

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/projectdiscovery/pingx/pkg/cidr"
	"github.com/projectdiscovery/pingx/pkg/scan"
)

// exportCSV writes the report to path, one row per reachable host, in the
// exact order of the report. No resorting or refiltering happens here.
func exportCSV(path string, report *scan.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"ip", "rtt_ms"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, host := range report.Hosts {
		row := []string{
			cidr.ToString(host.Addr),
			strconv.FormatInt(host.RTT.Milliseconds(), 10),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
