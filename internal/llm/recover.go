package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSON indicates the model response contained no parseable JSON object.
var ErrNoJSON = errors.New("no JSON object in model response")

// RecoverJSON extracts the outermost {...} span from a model response and
// strictly parses it. Models occasionally wrap their JSON in prose or code
// fences; the span between the first '{' and the last '}' is taken as the
// payload. Well-formed JSON passes through byte-identical.
func RecoverJSON(raw string) (json.RawMessage, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return nil, ErrNoJSON
	}
	candidate := raw[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return nil, ErrNoJSON
	}
	return json.RawMessage(candidate), nil
}
