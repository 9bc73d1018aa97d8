package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all log files",
	Run:   runClear,
}

func init() {
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "confirm deletion")
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) {
	if !clearYes {
		fmt.Fprintln(os.Stderr, "refusing to delete logs without --yes")
		os.Exit(1)
	}

	store := openStore()
	defer closeStore(store)

	if err := store.Clear(); err != nil {
		slog.Error("Clear failed", "error", err)
		os.Exit(1)
	}
	fmt.Println("logs cleared")
}
