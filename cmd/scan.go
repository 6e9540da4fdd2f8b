package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/prahari/api/schemas"
)

func newScanCmd(a *app) *cobra.Command {
	var format string

	scanCmd := &cobra.Command{
		Use:   "scan <topic>",
		Short: "Run a live monitor scan that synthesizes suspect profiles for a topic",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			topic := strings.TrimSpace(strings.Join(args, " "))
			if topic == "" {
				return fmt.Errorf("topic must not be empty")
			}

			svc, closeLLM, err := a.analysisService(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer closeLLM()

			report := svc.RunScan(cmd.Context(), topic)
			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			return writeScanReport(cmd.OutOrStdout(), report)
		},
	}
	scanCmd.Flags().StringVarP(&format, "output", "o", formatText, "output format (text|json)")
	return scanCmd
}

func writeScanReport(w io.Writer, report schemas.ScanReport) error {
	var b strings.Builder
	for _, line := range report.Log {
		fmt.Fprintf(&b, "> %s\n", line)
	}
	for i, p := range report.Profiles {
		fmt.Fprintf(&b, "\n[%d] %s (%s)\n    bio:   %s\n    posts: %s\n", i+1, p.Username, p.Platform, p.Bio, p.RecentPosts)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
