package main

import (
	"fmt"
	"os"

	"mock-interview-backend/internal/domain"

	"github.com/spf13/cobra"
)

const exportLong = `Download a session transcript as xlsx or csv.

practice keeps answers on this machine unless it runs with --sync, so sessions
practised without it export with empty answer columns.`

var exportCmd = &cobra.Command{
	Use:   "export <session-id>",
	Short: "Download a session transcript as xlsx or csv",
	Long:  exportLong,
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var (
	exportFormat string
	exportOut    string
)

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", string(domain.ExportXLSX), "Export format (xlsx, csv)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default: name suggested by the API)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	data, name, err := newClient().ExportTranscript(cmd.Context(), args[0], domain.ExportFormat(exportFormat))
	if err != nil {
		return fmt.Errorf("failed to export session: %w", err)
	}

	path := exportOut
	if path == "" {
		path = name
	}
	if path == "" {
		path = "interview_" + args[0] + "." + exportFormat
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", path, len(data))
	return nil
}
