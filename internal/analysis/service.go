// Package analysis adapts the generative model into profile verdicts and
// topic scans. All judgment is delegated to the provider; this package only
// shapes prompts, normalizes answers and substitutes fixed fallbacks when the
// provider fails.
package analysis

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xkilldash9x/prahari/api/schemas"
	"github.com/xkilldash9x/prahari/internal/config"
	"github.com/xkilldash9x/prahari/internal/llmutil"
	"github.com/xkilldash9x/prahari/internal/observability"
)

// FallbackResult is returned for every analysis the provider could not
// complete. Each call returns a fresh value.
func FallbackResult() schemas.ScanResult {
	return schemas.ScanResult{
		TrustScore:      50,
		IsSuspicious:    true,
		Flags:           []string{"Analysis Failed", "Check Connectivity"},
		Analysis:        "Unable to process request at this time. Manual review recommended.",
		ThreatLevel:     schemas.ThreatMedium,
		SuggestedAction: "Manual Review",
	}
}

// rawScanResult mirrors the provider's JSON before normalization.
type rawScanResult struct {
	TrustScore      float64  `json:"trustScore"`
	IsSuspicious    bool     `json:"isSuspicious"`
	Flags           []string `json:"flags"`
	Analysis        string   `json:"analysis"`
	ThreatLevel     string   `json:"threatLevel"`
	SuggestedAction string   `json:"suggestedAction"`
}

type rawSuspectProfile struct {
	Username    string `json:"username"`
	Platform    string `json:"platform"`
	Bio         string `json:"bio"`
	RecentPosts string `json:"recentPosts"`
}

// Options tunes the provider requests.
type Options struct {
	AnalyzeTemperature float64
	ScanTemperature    float64
	ScanProfileCount   int
}

// OptionsFromConfig extracts the analysis options from the LLM config.
func OptionsFromConfig(cfg config.LLMConfig) Options {
	return Options{
		AnalyzeTemperature: cfg.AnalyzeTemperature,
		ScanTemperature:    cfg.ScanTemperature,
		ScanProfileCount:   cfg.ScanProfileCount,
	}
}

// Service is the AI proxy behind the threat detection panel.
type Service struct {
	llm     schemas.LLMClient
	opts    Options
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewService wires a Service. metrics may be nil.
func NewService(llm schemas.LLMClient, opts Options, logger *zap.Logger, metrics *observability.Metrics) *Service {
	if opts.ScanProfileCount <= 0 {
		opts.ScanProfileCount = 3
	}
	return &Service{
		llm:     llm,
		opts:    opts,
		logger:  logger.Named("analysis"),
		metrics: metrics,
	}
}

// AnalyzeProfile asks the provider for a verdict on a single profile. It never
// fails: any provider or decoding error yields FallbackResult.
func (s *Service) AnalyzeProfile(ctx context.Context, username, bio, recentPosts string) schemas.ScanResult {
	result, err := s.analyze(ctx, username, bio, recentPosts)
	if err != nil {
		s.logger.Error("Gemini analysis failed", zap.String("username", username), zap.Error(err))
		fallback := FallbackResult()
		s.metrics.RecordAnalysis(observability.OutcomeFallback, string(fallback.ThreatLevel))
		return fallback
	}

	s.logger.Debug("Profile analyzed",
		zap.String("username", username),
		zap.Int("trust_score", result.TrustScore),
		zap.String("threat_level", string(result.ThreatLevel)),
	)
	s.metrics.RecordAnalysis(observability.OutcomeOK, string(result.ThreatLevel))
	return result
}

func (s *Service) analyze(ctx context.Context, username, bio, recentPosts string) (schemas.ScanResult, error) {
	text, err := s.llm.Generate(ctx, schemas.GenerationRequest{
		SystemPrompt: analystPersona,
		UserPrompt:   buildAnalyzePrompt(username, bio, recentPosts),
		Schema:       scanResultSchema,
		Options: schemas.GenerationOptions{
			Temperature:     s.opts.AnalyzeTemperature,
			ForceJSONFormat: true,
		},
	})
	if err != nil {
		return schemas.ScanResult{}, err
	}

	raw, err := llmutil.ParseJSONResponse[rawScanResult](text)
	if err != nil {
		return schemas.ScanResult{}, err
	}

	flags := raw.Flags
	if flags == nil {
		flags = []string{}
	}
	return schemas.ScanResult{
		TrustScore:      clampTrustScore(raw.TrustScore),
		IsSuspicious:    raw.IsSuspicious,
		Flags:           flags,
		Analysis:        raw.Analysis,
		ThreatLevel:     NormalizeThreatLevel(raw.ThreatLevel),
		SuggestedAction: raw.SuggestedAction,
	}, nil
}

// ScanTopic asks the provider to synthesize suspect profiles for a topic.
// Failures yield an empty, non-nil list.
func (s *Service) ScanTopic(ctx context.Context, topic string) []schemas.SuspectProfile {
	profiles, err := s.scan(ctx, topic)
	if err != nil {
		s.logger.Error("Network scan simulation failed", zap.String("topic", topic), zap.Error(err))
		s.metrics.RecordScan(observability.OutcomeFallback, 0)
		return []schemas.SuspectProfile{}
	}
	s.metrics.RecordScan(observability.OutcomeOK, len(profiles))
	return profiles
}

func (s *Service) scan(ctx context.Context, topic string) ([]schemas.SuspectProfile, error) {
	text, err := s.llm.Generate(ctx, schemas.GenerationRequest{
		UserPrompt: buildScanPrompt(topic, s.opts.ScanProfileCount),
		Schema:     suspectProfilesSchema,
		Options: schemas.GenerationOptions{
			Temperature:     s.opts.ScanTemperature,
			ForceJSONFormat: true,
		},
	})
	if err != nil {
		return nil, err
	}

	raw, err := llmutil.ParseJSONResponse[[]rawSuspectProfile](text)
	if err != nil {
		return nil, err
	}

	profiles := make([]schemas.SuspectProfile, 0, len(*raw))
	for _, p := range *raw {
		profiles = append(profiles, schemas.SuspectProfile{
			Username:    p.Username,
			Platform:    NormalizePlatform(p.Platform),
			Bio:         p.Bio,
			RecentPosts: p.RecentPosts,
		})
	}
	return profiles, nil
}

// RunScan performs a topic scan and records the monitor log that the live
// panel replays while it waits.
func (s *Service) RunScan(ctx context.Context, topic string) schemas.ScanReport {
	report := schemas.ScanReport{
		ID:    uuid.New().String(),
		Topic: topic,
		Log: []string{
			"Initializing PrahariAI Network Node...",
			"Connecting to secure gateway...",
			fmt.Sprintf("Monitoring traffic for keywords: %q", topic),
			"Intercepting packets from Twitter/X API...",
			"Analyzing metadata signatures...",
		},
	}
	report.Profiles = s.ScanTopic(ctx, topic)
	report.Log = append(report.Log, fmt.Sprintf("THREATS DETECTED: %d suspicious entities identified.", len(report.Profiles)))
	return report
}

// DemoProfile is the canned phishing profile offered by the manual form.
func DemoProfile() schemas.SuspectProfile {
	return schemas.SuspectProfile{
		Username:    "@support_help_desk_official",
		Platform:    schemas.PlatformTwitter,
		Bio:         "Official Support Desk. DM for immediate assistance. We resolve all issues instantly.",
		RecentPosts: "URGENT: Your account is flagged. Click here bit.ly/verify-now to avoid suspension immediately.",
	}
}
