package llm

import (
	"encoding/json"
	"fmt"
)

// Kind tells how the completion payload was interpreted.
type Kind string

const (
	// KindStructured means the payload decoded into a JSON object.
	KindStructured Kind = "structured"
	// KindRawText means the payload was not JSON and is carried as text.
	KindRawText Kind = "raw_text"
)

// Source tells who produced the payload.
type Source string

const (
	SourceLLM  Source = "llm"
	SourceMock Source = "mock"
)

// FallbackReason names why the mock answered instead of the model.
type FallbackReason string

const (
	FallbackNone           FallbackReason = ""
	FallbackNoAPIKey       FallbackReason = "no_api_key"
	FallbackTransportError FallbackReason = "transport_error"
	FallbackBadStatus      FallbackReason = "bad_status"
	FallbackBadResponse    FallbackReason = "bad_response"
)

// Result is the outcome of a completion. Fields is set for KindStructured,
// Text for KindRawText.
type Result struct {
	Kind           Kind
	Source         Source
	FallbackReason FallbackReason
	Fields         map[string]any
	Text           string
}

// Structured reports whether the payload is a JSON object.
func (r Result) Structured() bool { return r.Kind == KindStructured }

// Mocked reports whether the payload came from the mock fallback.
func (r Result) Mocked() bool { return r.Source == SourceMock }

// String returns the string field key, or "" if absent or not a string.
func (r Result) String(key string) string {
	if v, ok := r.Fields[key].(string); ok {
		return v
	}
	return ""
}

// Decode re-encodes Fields into v. It fails for raw text results.
func (r Result) Decode(v any) error {
	if r.Kind != KindStructured {
		return fmt.Errorf("llm: decode %s result", r.Kind)
	}
	b, err := json.Marshal(r.Fields)
	if err != nil {
		return fmt.Errorf("llm: encode fields: %w", err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("llm: decode fields: %w", err)
	}
	return nil
}

// Map returns the payload in the flat shape callers of the original wire
// contract expect: the JSON object, or {"text": content, "raw": content}.
func (r Result) Map() map[string]any {
	if r.Kind == KindStructured {
		return r.Fields
	}
	return map[string]any{"text": r.Text, "raw": r.Text}
}

// parseContent interprets a model payload: the whole content as a JSON
// object first, then the span from the first '{' to the last '}'.
func parseContent(content string) Result {
	if fields, ok := decodeObject(content); ok {
		return Result{Kind: KindStructured, Source: SourceLLM, Fields: fields}
	}
	if span, ok := extractJSON(content); ok {
		if fields, ok := decodeObject(span); ok {
			return Result{Kind: KindStructured, Source: SourceLLM, Fields: fields}
		}
	}
	return Result{Kind: KindRawText, Source: SourceLLM, Text: content}
}

func decodeObject(s string) (map[string]any, bool) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(s), &fields); err != nil || fields == nil {
		return nil, false
	}
	return fields, true
}
