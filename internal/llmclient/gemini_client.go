// internal/llmclient/gemini_client.go
package llmclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/xkilldash9x/prahari/api/schemas"
	"github.com/xkilldash9x/prahari/internal/config"
)

// GeminiClient implements schemas.LLMClient on top of the Gemini SDK.
type GeminiClient struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewGeminiClient initializes the SDK client. An Endpoint in the config
// overrides the API base URL.
func NewGeminiClient(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.APITimeout},
	}
	if cfg.Endpoint != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.Endpoint}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  cfg.Model,
		logger: logger.Named("llm_client.gemini"),
	}, nil
}

// Generate sends a single generateContent request. There is no retry: the
// caller decides what a failure means.
func (c *GeminiClient) Generate(ctx context.Context, req schemas.GenerationRequest) (string, error) {
	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.UserPrompt), buildGenerateConfig(req))
	if err != nil {
		return "", fmt.Errorf("gemini generateContent failed: %w", err)
	}

	if len(resp.Candidates) > 0 {
		if reason := resp.Candidates[0].FinishReason; reason == genai.FinishReasonSafety || reason == genai.FinishReasonBlocklist {
			return "", fmt.Errorf("gemini API blocked the request (Reason: %s)", reason)
		}
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}

	fields := []zap.Field{zap.String("model", c.model), zap.Duration("duration", time.Since(start))}
	if usage := resp.UsageMetadata; usage != nil {
		fields = append(fields,
			zap.Int32("prompt_tokens", usage.PromptTokenCount),
			zap.Int32("completion_tokens", usage.CandidatesTokenCount),
			zap.Int32("total_tokens", usage.TotalTokenCount),
		)
	}
	c.logger.Info("LLM generation complete (Gemini)", fields...)
	return text, nil
}

// Close is a no-op; the SDK client holds no resources beyond its HTTP client.
func (c *GeminiClient) Close() error { return nil }

func buildGenerateConfig(req schemas.GenerationRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Options.Temperature)),
	}
	if req.SystemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}
	if req.Options.ForceJSONFormat || req.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
	}
	if req.Schema != nil {
		cfg.ResponseSchema = toGenaiSchema(req.Schema)
	}
	return cfg
}

// toGenaiSchema converts the provider-neutral schema recursively.
func toGenaiSchema(s *schemas.ResponseSchema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        genai.Type(s.Type),
		Description: s.Description,
		Enum:        s.Enum,
		Items:       toGenaiSchema(s.Items),
		Required:    s.Required,
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenaiSchema(prop)
		}
	}
	return out
}
