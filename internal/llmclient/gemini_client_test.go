package llmclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xkilldash9x/prahari/api/schemas"
	"github.com/xkilldash9x/prahari/internal/config"
)

// -- Test Setup Helpers --

// getValidLLMConfig returns a usable config pointing nowhere in particular.
func getValidLLMConfig() config.LLMConfig {
	return config.LLMConfig{
		Provider:           config.ProviderGemini,
		APIKey:             "test-api-key",
		Model:              "test-model",
		APITimeout:         5 * time.Second,
		AnalyzeTemperature: 0.3,
		ScanTemperature:    0.7,
		ScanProfileCount:   3,
	}
}

// setupGeminiClient points a GeminiClient at a mock Gemini API.
func setupGeminiClient(t *testing.T, handler http.HandlerFunc) (*GeminiClient, *observer.ObservedLogs) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	core, logs := observer.New(zap.InfoLevel)
	cfg := getValidLLMConfig()
	cfg.Endpoint = server.URL

	client, err := NewGeminiClient(context.Background(), cfg, zap.New(core))
	require.NoError(t, err)
	return client, logs
}

// writeCandidate answers with a single text candidate, as generateContent does.
func writeCandidate(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"candidates": []map[string]any{{
			"content":      map[string]any{"role": "model", "parts": []map[string]any{{"text": text}}},
			"finishReason": "STOP",
		}},
		"usageMetadata": map[string]any{"promptTokenCount": 10, "candidatesTokenCount": 5, "totalTokenCount": 15},
	})
}

func testSchema() *schemas.ResponseSchema {
	return &schemas.ResponseSchema{
		Type: schemas.TypeObject,
		Properties: map[string]*schemas.ResponseSchema{
			"trustScore": {Type: schemas.TypeNumber, Description: "0-100"},
			"flags":      {Type: schemas.TypeArray, Items: &schemas.ResponseSchema{Type: schemas.TypeString}},
		},
		Required: []string{"trustScore", "flags"},
	}
}

// -- Test Cases: Initialization --

func TestNewGeminiClient_MissingAPIKey(t *testing.T) {
	cfg := getValidLLMConfig()
	cfg.APIKey = ""

	client, err := NewGeminiClient(context.Background(), cfg, zap.NewNop())
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Nil(t, client)
}

// -- Test Cases: Generate --

func TestGenerate_Success(t *testing.T) {
	var body []byte
	var path, apiKey string
	client, logs := setupGeminiClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		apiKey = r.Header.Get("x-goog-api-key")
		body, _ = io.ReadAll(r.Body)
		writeCandidate(w, `{"trustScore": 12, "flags": ["Scam Pattern Match"]}`)
	})

	out, err := client.Generate(context.Background(), schemas.GenerationRequest{
		UserPrompt: "Analyze this profile.",
		Schema:     testSchema(),
		Options:    schemas.GenerationOptions{Temperature: 0.3},
	})

	require.NoError(t, err)
	assert.JSONEq(t, `{"trustScore": 12, "flags": ["Scam Pattern Match"]}`, out)
	assert.True(t, strings.HasSuffix(path, "models/test-model:generateContent"), "unexpected path %s", path)
	assert.Equal(t, "test-api-key", apiKey)

	// The request must carry the JSON mime type and the declared schema.
	sent := string(body)
	assert.Contains(t, sent, "Analyze this profile.")
	assert.Contains(t, sent, "application/json")
	assert.Contains(t, sent, "trustScore")
	assert.Contains(t, sent, "OBJECT")

	require.Equal(t, 1, logs.FilterMessage("LLM generation complete (Gemini)").Len())
}

func TestGenerate_APIError(t *testing.T) {
	client, _ := setupGeminiClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"code": 400, "message": "bad key", "status": "INVALID_ARGUMENT"}}`))
	})

	_, err := client.Generate(context.Background(), schemas.GenerationRequest{UserPrompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini generateContent failed")
}

func TestGenerate_EmptyResponse(t *testing.T) {
	client, _ := setupGeminiClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": []}`))
	})

	_, err := client.Generate(context.Background(), schemas.GenerationRequest{UserPrompt: "x"})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGenerate_SafetyBlock(t *testing.T) {
	client, _ := setupGeminiClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": [{"finishReason": "SAFETY"}]}`))
	})

	_, err := client.Generate(context.Background(), schemas.GenerationRequest{UserPrompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked the request")
}

// -- Test Cases: Config mapping --

func TestBuildGenerateConfig(t *testing.T) {
	t.Run("schema implies JSON output", func(t *testing.T) {
		cfg := buildGenerateConfig(schemas.GenerationRequest{
			SystemPrompt: "You are an analyst.",
			Schema:       testSchema(),
			Options:      schemas.GenerationOptions{Temperature: 0.7},
		})
		assert.Equal(t, "application/json", cfg.ResponseMIMEType)
		require.NotNil(t, cfg.Temperature)
		assert.InDelta(t, 0.7, *cfg.Temperature, 1e-6)
		require.NotNil(t, cfg.SystemInstruction)
		require.NotNil(t, cfg.ResponseSchema)
		assert.Equal(t, []string{"trustScore", "flags"}, cfg.ResponseSchema.Required)
		require.Contains(t, cfg.ResponseSchema.Properties, "flags")
		assert.Equal(t, "STRING", string(cfg.ResponseSchema.Properties["flags"].Items.Type))
	})

	t.Run("plain text request", func(t *testing.T) {
		cfg := buildGenerateConfig(schemas.GenerationRequest{UserPrompt: "hi"})
		assert.Empty(t, cfg.ResponseMIMEType)
		assert.Nil(t, cfg.ResponseSchema)
		assert.Nil(t, cfg.SystemInstruction)
	})

	t.Run("forced JSON without schema", func(t *testing.T) {
		cfg := buildGenerateConfig(schemas.GenerationRequest{Options: schemas.GenerationOptions{ForceJSONFormat: true}})
		assert.Equal(t, "application/json", cfg.ResponseMIMEType)
		assert.Nil(t, cfg.ResponseSchema)
	})
}

func TestToGenaiSchema_Enum(t *testing.T) {
	out := toGenaiSchema(&schemas.ResponseSchema{
		Type: schemas.TypeString,
		Enum: []string{"Twitter", "Telegram"},
	})
	assert.Equal(t, []string{"Twitter", "Telegram"}, out.Enum)
	assert.Nil(t, out.Items)
	assert.Nil(t, toGenaiSchema(nil))
}
