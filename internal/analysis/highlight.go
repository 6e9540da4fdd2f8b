package analysis

import (
	"regexp"
	"strings"
)

// riskTerms are highlighted in every analysis on top of the model's flags.
var riskTerms = []string{
	"fake", "bot", "impersonation", "malicious", "suspicious", "high risk",
	"critical", "misinformation", "propaganda", "scam", "fraud", "automated",
	"unverified", "takedown", "threat", "urgent", "verify", "kyc", "link", "click",
}

// Segment is a run of analysis text, marked when it matched a risk term.
type Segment struct {
	Text        string `json:"text"`
	Highlighted bool   `json:"highlighted"`
}

// Highlight splits text into ordered segments, marking case-insensitive
// occurrences of the flags and the built-in risk terms. Flags win over
// built-in terms when both match at the same position. Empty text yields nil.
func Highlight(text string, flags []string) []Segment {
	if text == "" {
		return nil
	}

	pattern := riskPattern(flags)
	if pattern == nil {
		return []Segment{{Text: text}}
	}

	var segments []Segment
	last := 0
	for _, loc := range pattern.FindAllStringIndex(text, -1) {
		if loc[0] == loc[1] {
			continue
		}
		if loc[0] > last {
			segments = append(segments, Segment{Text: text[last:loc[0]]})
		}
		segments = append(segments, Segment{Text: text[loc[0]:loc[1]], Highlighted: true})
		last = loc[1]
	}
	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:]})
	}
	return segments
}

func riskPattern(flags []string) *regexp.Regexp {
	terms := make([]string, 0, len(flags)+len(riskTerms))
	for _, term := range append(append([]string{}, flags...), riskTerms...) {
		if strings.TrimSpace(term) == "" {
			continue
		}
		terms = append(terms, regexp.QuoteMeta(term))
	}
	if len(terms) == 0 {
		return nil
	}
	return regexp.MustCompile("(?i)(" + strings.Join(terms, "|") + ")")
}

// TrustBand is the gauge classification of a trust score.
type TrustBand struct {
	Band  string `json:"band"`
	Color string `json:"color"`
}

// BandForScore classifies a score: 80 and above is high trust, 50 and above
// medium, anything lower is low trust (high risk).
func BandForScore(score int) TrustBand {
	switch {
	case score >= 80:
		return TrustBand{Band: "high", Color: "#22c55e"}
	case score >= 50:
		return TrustBand{Band: "medium", Color: "#eab308"}
	default:
		return TrustBand{Band: "low", Color: "#ef4444"}
	}
}
