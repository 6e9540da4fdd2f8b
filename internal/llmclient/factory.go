package llmclient

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/xkilldash9x/prahari/api/schemas"
	"github.com/xkilldash9x/prahari/internal/config"
)

var (
	// ErrMissingAPIKey is returned by calls made without a configured key.
	ErrMissingAPIKey = errors.New("LLM API key is not configured")
	// ErrEmptyResponse is returned when the model answered with no text.
	ErrEmptyResponse = errors.New("empty response from AI")
)

// NewClient creates the LLM client for the configured provider. A missing API
// key does not fail startup: the returned client rejects every call, so the
// analysis layer serves its fallback instead.
func NewClient(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (schemas.LLMClient, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		if cfg.APIKey == "" {
			logger.Warn("LLM API key is not set. AI features will not function.",
				zap.String("hint", "set PRAHARI_LLM_API_KEY or API_KEY"))
			return unavailableClient{}, nil
		}
		return NewGeminiClient(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown or unsupported LLM provider configured: '%s'. Supported: [%s]", cfg.Provider, config.ProviderGemini)
	}
}

// unavailableClient stands in when no credentials exist.
type unavailableClient struct{}

func (unavailableClient) Generate(context.Context, schemas.GenerationRequest) (string, error) {
	return "", ErrMissingAPIKey
}

func (unavailableClient) Close() error { return nil }
