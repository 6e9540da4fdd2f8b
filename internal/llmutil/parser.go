// internal/llmutil/parser.go
package llmutil

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrEmptyResponse is returned when the model produced no text at all.
var ErrEmptyResponse = errors.New("empty response from model")

// fencedJSONRegex captures the body of a ```json ... ``` (or bare ```) block.
// \x60 is a backtick; raw strings cannot contain one.
var fencedJSONRegex = regexp.MustCompile("(?s)\x60\x60\x60(?:json|JSON)?\\s*(.*?)\\s*\x60\x60\x60")

// ParseJSONResponse decodes a model response into T. Schema-constrained
// responses are usually bare JSON, but markdown fences and leading chatter
// are tolerated.
func ParseJSONResponse[T any](response string) (*T, error) {
	payload, err := ExtractJSON(response)
	if err != nil {
		return nil, err
	}

	var result T
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal LLM JSON response: %w. Extracted JSON (truncated): %s", err, truncate(payload, 500))
	}
	return &result, nil
}

// ExtractJSON isolates the JSON document inside a model response.
func ExtractJSON(response string) (string, error) {
	response = strings.TrimSpace(response)
	if response == "" {
		return "", ErrEmptyResponse
	}

	if strings.HasPrefix(response, "```") {
		if m := fencedJSONRegex.FindStringSubmatch(response); len(m) > 1 {
			response = strings.TrimSpace(m[1])
		}
	}
	if strings.HasPrefix(response, "{") || strings.HasPrefix(response, "[") {
		return response, nil
	}

	// Conversational text around the payload: take the widest bracketed span,
	// preferring whichever structure opens first.
	objStart, arrStart := strings.Index(response, "{"), strings.Index(response, "[")
	open, closer := "{", "}"
	if arrStart != -1 && (objStart == -1 || arrStart < objStart) {
		open, closer = "[", "]"
	}
	start, end := strings.Index(response, open), strings.LastIndex(response, closer)
	if start == -1 || end <= start {
		return "", fmt.Errorf("no JSON document found in response: %s", truncate(response, 200))
	}
	return response[start : end+1], nil
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
