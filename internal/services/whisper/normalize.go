package whisper

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"scribe/internal/services"
)

// Document is the canonical mapping form of a provider response. Provider
// fields are preserved verbatim.
type Document map[string]any

// Text returns the transcript text, or "" when the provider omitted it.
func (d Document) Text() string {
	if v, ok := d["text"].(string); ok {
		return v
	}
	return ""
}

// strategy is one attempt at decoding a provider payload into a Document.
// Strategies are tried in order; the first success wins.
type strategy struct {
	name   string
	decode func(raw []byte) (Document, error)
}

var strategies = []strategy{
	{"object", decodeObject},
	{"value", decodeValue},
	{"plain", decodePlain},
}

// Normalize converts the raw response payload into a Document by running the
// extraction strategies in sequence. When none succeeds the error carries
// services.ErrResponseFormat along with each strategy's failure.
func Normalize(raw []byte) (Document, error) {
	var failures []string
	for _, s := range strategies {
		doc, err := s.decode(raw)
		if err == nil {
			return doc, nil
		}
		failures = append(failures, fmt.Sprintf("%s: %v", s.name, err))
	}
	return nil, services.Wrap(services.ErrResponseFormat, "whisper", "normalize", strings.Join(failures, "; "), nil)
}

// decodeObject accepts a JSON object and maps it verbatim.
func decodeObject(raw []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("payload is not an object")
	}
	return doc, nil
}

// decodeValue accepts any other JSON value and coerces a quoted string into
// the text field. Providers return a bare string when asked for text output.
func decodeValue(raw []byte) (Document, error) {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, err
	}
	if s, ok := value.(string); ok && strings.TrimSpace(s) != "" {
		return Document{"text": s}, nil
	}
	return nil, fmt.Errorf("unsupported payload shape %T", value)
}

// decodePlain accepts a non-empty plain-text body as the transcript itself.
func decodePlain(raw []byte) (Document, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return nil, fmt.Errorf("empty payload")
	}
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("payload is not valid utf-8")
	}
	return Document{"text": text}, nil
}
