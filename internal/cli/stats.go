package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/vietddude/triage/domain"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Aggregate severities and codes across the log files",
	Run:   runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

// lineStats is an offline aggregation parsed straight from the files,
// independent of a running coordinator.
type lineStats struct {
	total      int
	bySeverity map[string]int
	byCode     map[string]int
	files      int
	bytes      uint64
}

func runStats(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	files, err := filepath.Glob(filepath.Join(cfg.Log.Dir, "errors-*.log"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to list log files:", err)
		os.Exit(1)
	}
	sort.Strings(files)

	agg := lineStats{
		bySeverity: make(map[string]int),
		byCode:     make(map[string]int),
	}

	for _, path := range files {
		data, rerr := os.ReadFile(path)
		if rerr != nil {
			continue
		}
		agg.files++
		agg.bytes += uint64(len(data))
		for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
			if line == "" {
				continue
			}
			agg.total++
			sev, code := parseLine(line)
			if sev != "" {
				agg.bySeverity[sev]++
			}
			if code != "" {
				agg.byCode[code]++
			}
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "files\t%d\n", agg.files)
	fmt.Fprintf(w, "size\t%s\n", humanize.IBytes(agg.bytes))
	fmt.Fprintf(w, "lines\t%d\n", agg.total)

	for _, sev := range []domain.Severity{
		domain.SeverityCritical, domain.SeverityHigh, domain.SeverityMedium, domain.SeverityLow,
	} {
		if n := agg.bySeverity[sev.Upper()]; n > 0 {
			fmt.Fprintf(w, "%s\t%d\n", sev.String(), n)
		}
	}

	if code, n := mostFrequent(agg.byCode); code != "" {
		fmt.Fprintf(w, "most frequent\t%s (%d)\n", code, n)
	}
	_ = w.Flush()
}

// parseLine extracts severity and code from a log line of the form
// [timestamp] [SEVERITY] CODE | category | message
func parseLine(line string) (severity, code string) {
	rest := line
	for i := 0; i < 2; i++ {
		open := strings.Index(rest, "[")
		end := strings.Index(rest, "]")
		if open != 0 || end < 0 {
			return "", ""
		}
		if i == 1 {
			severity = rest[1:end]
		}
		rest = strings.TrimLeft(rest[end+1:], " ")
	}
	if idx := strings.Index(rest, " | "); idx > 0 {
		code = rest[:idx]
	}
	return severity, code
}

func mostFrequent(counts map[string]int) (string, int) {
	best, n := "", 0
	for code, c := range counts {
		if c > n || (c == n && code < best) {
			best, n = code, c
		}
	}
	return best, n
}
