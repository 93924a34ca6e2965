package transcriber

import (
	"encoding/json"
	"fmt"

	"scribe/internal/services/whisper"
)

const metaKey = "_meta"

// Meta records the provenance of a transcription run: which models ran, which
// file was read, and how the language decision was reached. Field names are
// part of the external output contract.
type Meta struct {
	Model                  string  `json:"model"`
	DetectModel            string  `json:"detect_model"`
	SourceFile             string  `json:"source_file"`
	LanguageRoutingEnabled bool    `json:"language_routing_enabled"`
	ForcedLanguage         bool    `json:"forced_language"`
	RoutedLanguage         *string `json:"routed_language"`
	ProbeSeconds           *int    `json:"probe_seconds"`
	ProbeUsed              bool    `json:"probe_used"`
	DryRun                 bool    `json:"dry_run,omitempty"`
	ProbeAvailable         *bool   `json:"probe_available,omitempty"`
}

// Result is the provider document merged with run metadata. It serializes as
// the provider's fields verbatim plus a "_meta" object.
type Result struct {
	Document whisper.Document
	Meta     Meta
}

// Text returns the transcription text from the provider document.
func (r *Result) Text() string {
	return r.Document.Text()
}

func (r *Result) MarshalJSON() ([]byte, error) {
	payload := make(map[string]any, len(r.Document)+1)
	for key, value := range r.Document {
		if key == metaKey {
			continue
		}
		payload[key] = value
	}
	payload[metaKey] = r.Meta
	return json.Marshal(payload)
}

func (r *Result) UnmarshalJSON(data []byte) error {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	if raw, ok := payload[metaKey]; ok {
		if err := json.Unmarshal(raw, &r.Meta); err != nil {
			return fmt.Errorf("decode result metadata: %w", err)
		}
		delete(payload, metaKey)
	}
	doc := make(whisper.Document, len(payload))
	for key, raw := range payload {
		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			return fmt.Errorf("decode result field %s: %w", key, err)
		}
		doc[key] = value
	}
	r.Document = doc
	return nil
}
