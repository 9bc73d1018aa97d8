package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Concatenate all log files into one artifact",
	Run:   runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) {
	store := openStore()
	defer closeStore(store)

	w := os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			slog.Error("Failed to create output file", "path", exportOut, "error", err)
			os.Exit(1)
		}
		defer func() {
			_ = f.Close()
		}()
		w = f
	}

	if err := store.Export(w); err != nil {
		slog.Error("Export failed", "error", err)
		os.Exit(1)
	}
}
