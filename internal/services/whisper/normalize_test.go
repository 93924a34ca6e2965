package whisper_test

import (
	"errors"
	"testing"

	"scribe/internal/services"
	"scribe/internal/services/whisper"
)

func TestNormalizeObject(t *testing.T) {
	doc, err := whisper.Normalize([]byte(`{"text":"hello","language":"en","duration":1.5}`))
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if doc.Text() != "hello" {
		t.Fatalf("unexpected text: %q", doc.Text())
	}
	if doc["language"] != "en" {
		t.Fatalf("expected provider field preserved, got %#v", doc)
	}
	if doc["duration"] != 1.5 {
		t.Fatalf("expected numeric field preserved, got %#v", doc["duration"])
	}
}

func TestNormalizeQuotedString(t *testing.T) {
	doc, err := whisper.Normalize([]byte(`"just the transcript"`))
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if doc.Text() != "just the transcript" {
		t.Fatalf("unexpected text: %q", doc.Text())
	}
}

func TestNormalizePlainText(t *testing.T) {
	doc, err := whisper.Normalize([]byte("olá, muito obrigado\n"))
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if doc.Text() != "olá, muito obrigado" {
		t.Fatalf("unexpected text: %q", doc.Text())
	}
}

func TestNormalizeEmptyPayloadFails(t *testing.T) {
	for _, raw := range [][]byte{nil, []byte(""), []byte("   \n")} {
		if _, err := whisper.Normalize(raw); !errors.Is(err, services.ErrResponseFormat) {
			t.Fatalf("expected response format error for %q, got %v", raw, err)
		}
	}
}

func TestNormalizeUnsupportedJSONValue(t *testing.T) {
	// A bare number parses as JSON but is not a usable transcript shape, and
	// its textual form is not plain prose either; strategy order still ends
	// at plain text, which accepts it as a last resort.
	doc, err := whisper.Normalize([]byte("42"))
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if doc.Text() != "42" {
		t.Fatalf("unexpected text: %q", doc.Text())
	}
}

func TestDocumentTextMissing(t *testing.T) {
	doc := whisper.Document{"language": "en"}
	if doc.Text() != "" {
		t.Fatalf("expected empty text, got %q", doc.Text())
	}
}
