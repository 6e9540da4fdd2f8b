package analysis

import (
	"math"
	"strings"

	"github.com/xkilldash9x/prahari/api/schemas"
)

// NormalizeThreatLevel coerces free text from the model into the closed
// threat scale. Matching is a case-insensitive substring test, checked from
// most to least severe; anything unrecognized is Low.
func NormalizeThreatLevel(raw string) schemas.ThreatLevel {
	s := strings.ToLower(raw)
	switch {
	case strings.Contains(s, "crit"):
		return schemas.ThreatCritical
	case strings.Contains(s, "high"):
		return schemas.ThreatHigh
	case strings.Contains(s, "med"):
		return schemas.ThreatMedium
	default:
		return schemas.ThreatLow
	}
}

// NormalizePlatform returns p if it is a supported platform, Twitter otherwise.
// The comparison is exact, matching the declared enum.
func NormalizePlatform(p string) schemas.Platform {
	if platform := schemas.Platform(p); platform.IsValid() {
		return platform
	}
	return schemas.PlatformTwitter
}

// clampTrustScore rounds a model score and pins it to 0..100.
func clampTrustScore(score float64) int {
	if math.IsNaN(score) {
		return 0
	}
	rounded := int(math.Round(score))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}
