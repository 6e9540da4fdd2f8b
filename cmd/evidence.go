package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/prahari/api/schemas"
	"github.com/xkilldash9x/prahari/internal/evidence"
)

func newEvidenceCmd(a *app) *cobra.Command {
	var (
		criteria evidence.Criteria
		format   string
	)

	evidenceCmd := &cobra.Command{
		Use:   "evidence",
		Short: "List the enforcement evidence ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			records := evidence.NewMockLedger().Filter(criteria)
			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), records)
			}
			return writeEvidenceTable(cmd.OutOrStdout(), records)
		},
	}

	evidenceCmd.Flags().StringVar(&criteria.Platform, "platform", evidence.All, "filter by platform")
	evidenceCmd.Flags().StringVar(&criteria.Status, "status", evidence.All, "filter by status (Pending|Verified|Escalated)")
	evidenceCmd.Flags().StringVar(&criteria.Agency, "agency", evidence.All, "filter by agency")
	evidenceCmd.Flags().StringVarP(&format, "output", "o", formatText, "output format (text|json)")
	return evidenceCmd
}

func writeEvidenceTable(w io.Writer, records []schemas.EvidenceRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No evidence records found matching the selected filters.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIMESTAMP\tTARGET\tPLATFORM\tACTION\tAGENCY\tSTATUS")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Timestamp, r.TargetUser, r.Platform, r.ActionTaken, r.Agency, r.Status)
	}
	return tw.Flush()
}
