package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/vietddude/triage/logstore"
)

var tailLines int

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Print the most recent log lines",
	Run:   runTail,
}

func init() {
	tailCmd.Flags().IntVarP(&tailLines, "lines", "n", 50, "number of lines to print")
	rootCmd.AddCommand(tailCmd)
}

// openStore opens the log store for the resolved directory.
func openStore() *logstore.Store {
	cfg := loadConfig()
	store, err := logstore.New(cfg.Log)
	if err != nil {
		slog.Error("Failed to open log store", "dir", cfg.Log.Dir, "error", err)
		os.Exit(1)
	}
	return store
}

func closeStore(store *logstore.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = store.Close(ctx)
}

func runTail(cmd *cobra.Command, args []string) {
	store := openStore()
	defer closeStore(store)

	lines := store.Recent(tailLines)
	// Recent is newest-first; print chronologically like tail does.
	for i := len(lines) - 1; i >= 0; i-- {
		fmt.Println(lines[i])
	}
}
