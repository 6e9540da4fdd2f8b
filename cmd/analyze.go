package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/prahari/api/schemas"
	"github.com/xkilldash9x/prahari/internal/analysis"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var (
		username, bio, posts, format string
		demo                         bool
	)

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Ask the model for a trust verdict on a single profile",
		Example: `  prahari analyze --username @helpdesk --bio "Official support" --posts "Verify your KYC now"
  prahari analyze --demo --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			if demo {
				p := analysis.DemoProfile()
				username, bio, posts = p.Username, p.Bio, p.RecentPosts
			}
			if strings.TrimSpace(username) == "" || strings.TrimSpace(bio) == "" {
				return errors.New("--username and --bio are required (or use --demo)")
			}

			svc, closeLLM, err := a.analysisService(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer closeLLM()

			result := svc.AnalyzeProfile(cmd.Context(), username, bio, posts)
			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			return writeVerdict(cmd.OutOrStdout(), username, result)
		},
	}

	analyzeCmd.Flags().StringVar(&username, "username", "", "profile handle")
	analyzeCmd.Flags().StringVar(&bio, "bio", "", "profile bio")
	analyzeCmd.Flags().StringVar(&posts, "posts", "", "recent posts")
	analyzeCmd.Flags().BoolVar(&demo, "demo", false, "analyze the canned phishing profile")
	analyzeCmd.Flags().StringVarP(&format, "output", "o", formatText, "output format (text|json)")
	return analyzeCmd
}

func writeVerdict(w io.Writer, username string, r schemas.ScanResult) error {
	band := analysis.BandForScore(r.TrustScore)
	var b strings.Builder
	fmt.Fprintf(&b, "Profile:          %s\n", username)
	fmt.Fprintf(&b, "Trust score:      %d/100 (%s trust)\n", r.TrustScore, band.Band)
	fmt.Fprintf(&b, "Threat level:     %s\n", r.ThreatLevel)
	fmt.Fprintf(&b, "Suspicious:       %t\n", r.IsSuspicious)
	fmt.Fprintf(&b, "Suggested action: %s\n", r.SuggestedAction)
	if len(r.Flags) > 0 {
		fmt.Fprintf(&b, "Flags:            %s\n", strings.Join(r.Flags, ", "))
	}
	fmt.Fprintf(&b, "\n%s\n", markHighlights(analysis.Highlight(r.Analysis, r.Flags)))
	_, err := io.WriteString(w, b.String())
	return err
}

// markHighlights renders highlighted segments in brackets for the terminal.
func markHighlights(segments []analysis.Segment) string {
	var b strings.Builder
	for _, s := range segments {
		if s.Highlighted {
			b.WriteString("[" + s.Text + "]")
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}
