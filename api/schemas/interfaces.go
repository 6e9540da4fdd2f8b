package schemas

import "context"

// -- LLM Schemas & Interface --

// SchemaType names the JSON type of a response schema node.
type SchemaType string

const (
	TypeObject  SchemaType = "OBJECT"
	TypeArray   SchemaType = "ARRAY"
	TypeString  SchemaType = "STRING"
	TypeNumber  SchemaType = "NUMBER"
	TypeInteger SchemaType = "INTEGER"
	TypeBoolean SchemaType = "BOOLEAN"
)

// ResponseSchema constrains the JSON a model is allowed to return. It is a
// provider-neutral subset of the OpenAPI schema object.
type ResponseSchema struct {
	Type        SchemaType                 `json:"type"`
	Description string                     `json:"description,omitempty"`
	Enum        []string                   `json:"enum,omitempty"`
	Items       *ResponseSchema            `json:"items,omitempty"`
	Properties  map[string]*ResponseSchema `json:"properties,omitempty"`
	Required    []string                   `json:"required,omitempty"`
}

// GenerationOptions controls sampling and the output format.
type GenerationOptions struct {
	Temperature     float64 `json:"temperature"`
	ForceJSONFormat bool    `json:"force_json_format"` // Forces application/json output.
}

// GenerationRequest is a complete request to the LLM.
type GenerationRequest struct {
	SystemPrompt string            `json:"system_prompt,omitempty"`
	UserPrompt   string            `json:"user_prompt"`
	Schema       *ResponseSchema   `json:"schema,omitempty"` // Optional; implies JSON output.
	Options      GenerationOptions `json:"options"`
}

// LLMClient abstracts the generative model provider.
type LLMClient interface {
	// Generate produces a text completion for the request.
	Generate(ctx context.Context, req GenerationRequest) (string, error)
	// Close releases any resources held by the client.
	Close() error
}
