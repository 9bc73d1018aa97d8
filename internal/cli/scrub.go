package cli

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/vietddude/triage/sanitize"
)

var scrubCmd = &cobra.Command{
	Use:   "scrub",
	Short: "Redact PII from stdin to stdout",
	Long: `Runs the log sanitizer over stdin: paths, emails, user identifiers,
and long numbers are replaced with placeholders. Useful before sharing
logs that did not pass through the store.`,
	Run: runScrub,
}

func init() {
	rootCmd.AddCommand(scrubCmd)
}

func runScrub(cmd *cobra.Command, args []string) {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		fmt.Println(sanitize.Sanitize(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		slog.Error("Failed to read stdin", "error", err)
		os.Exit(1)
	}
}
