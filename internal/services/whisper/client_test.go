package whisper_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scribe/internal/services"
	"scribe/internal/services/whisper"
)

func writeAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.mp3")
	if err := os.WriteFile(path, []byte("fake audio content"), 0o644); err != nil {
		t.Fatalf("write audio: %v", err)
	}
	return path
}

func TestTranscribeSuccess(t *testing.T) {
	audio := writeAudio(t)

	var gotAuth string
	var fields map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		fields = map[string]string{}
		for name, values := range r.MultipartForm.Value {
			fields[name] = values[0]
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file part: %v", err)
		}
		defer file.Close()
		if header.Filename != "sample.mp3" {
			t.Fatalf("unexpected upload name: %s", header.Filename)
		}
		if data, _ := io.ReadAll(file); string(data) != "fake audio content" {
			t.Fatalf("unexpected upload body: %q", data)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"olá mundo","language":"pt"}`))
	}))
	t.Cleanup(server.Close)

	client := whisper.NewClient("key", whisper.WithBaseURL(server.URL))
	doc, err := client.Transcribe(context.Background(), whisper.Request{
		Path:        audio,
		Model:       "gpt-4o-mini-transcribe",
		Language:    "pt",
		Temperature: 0,
	})
	if err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}

	if gotAuth != "Bearer key" {
		t.Fatalf("unexpected auth header: %s", gotAuth)
	}
	if fields["model"] != "gpt-4o-mini-transcribe" {
		t.Fatalf("unexpected model field: %s", fields["model"])
	}
	if fields["language"] != "pt" {
		t.Fatalf("unexpected language field: %s", fields["language"])
	}
	if fields["temperature"] != "0" {
		t.Fatalf("unexpected temperature field: %s", fields["temperature"])
	}
	if doc.Text() != "olá mundo" {
		t.Fatalf("unexpected text: %q", doc.Text())
	}
	if doc["language"] != "pt" {
		t.Fatalf("expected provider fields preserved, got %#v", doc)
	}
}

func TestTranscribeOmitsEmptyLanguage(t *testing.T) {
	audio := writeAudio(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if _, ok := r.MultipartForm.Value["language"]; ok {
			t.Fatal("expected language field to be omitted")
		}
		_, _ = w.Write([]byte(`{"text":"hello"}`))
	}))
	t.Cleanup(server.Close)

	client := whisper.NewClient("key", whisper.WithBaseURL(server.URL))
	if _, err := client.Transcribe(context.Background(), whisper.Request{Path: audio, Model: "m"}); err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
}

func TestTranscribeHTTPErrorCarriesProviderMessage(t *testing.T) {
	audio := writeAudio(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided"}}`))
	}))
	t.Cleanup(server.Close)

	client := whisper.NewClient("bad", whisper.WithBaseURL(server.URL))
	_, err := client.Transcribe(context.Background(), whisper.Request{Path: audio, Model: "m"})
	if !errors.Is(err, services.ErrAPI) {
		t.Fatalf("expected api error, got %v", err)
	}
	if msg := err.Error(); !strings.Contains(msg, "Incorrect API key provided") {
		t.Fatalf("expected provider message in %q", msg)
	}
}

func TestTranscribeRequiresInputs(t *testing.T) {
	client := whisper.NewClient("key")
	if _, err := client.Transcribe(context.Background(), whisper.Request{Model: "m"}); !errors.Is(err, services.ErrUsage) {
		t.Fatalf("expected usage error for missing path, got %v", err)
	}
	if _, err := client.Transcribe(context.Background(), whisper.Request{Path: "a.mp3"}); !errors.Is(err, services.ErrUsage) {
		t.Fatalf("expected usage error for missing model, got %v", err)
	}

	noKey := whisper.NewClient("")
	if _, err := noKey.Transcribe(context.Background(), whisper.Request{Path: "a.mp3", Model: "m"}); !errors.Is(err, services.ErrUsage) {
		t.Fatalf("expected usage error for missing key, got %v", err)
	}
}

func TestTranscribeMissingAudioFile(t *testing.T) {
	client := whisper.NewClient("key", whisper.WithBaseURL("http://127.0.0.1:0"))
	_, err := client.Transcribe(context.Background(), whisper.Request{Path: "/does/not/exist.mp3", Model: "m"})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestTranscribeCancelledContext(t *testing.T) {
	audio := writeAudio(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(server.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := whisper.NewClient("key", whisper.WithBaseURL(server.URL))
	if _, err := client.Transcribe(ctx, whisper.Request{Path: audio, Model: "m"}); !errors.Is(err, services.ErrAPI) {
		t.Fatalf("expected api error for cancelled context, got %v", err)
	}
}
