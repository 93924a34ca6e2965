package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// runCommand executes the CLI with the given arguments and returns captured
// stdout plus the execution error.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	var errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeTestConfig(t *testing.T, baseURL string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf(`[transcription]
model = "gpt-4o-transcribe"
detect_model = "gpt-4o-mini-transcribe"
temperature = 0.0
probe_seconds = 25
use_probe = true
language_routing = false

[openai]
api_key = "test-key"
base_url = %q
timeout_seconds = 10

[ffmpeg]
binary = "clearly-not-present-binary"

[logging]
format = "console"
level = "error"

[paths]
log_dir = %q
`, baseURL, filepath.Join(dir, "logs"))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func writeTestAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "talk.mp3")
	if err := os.WriteFile(path, []byte("ID3"), 0o644); err != nil {
		t.Fatalf("write audio: %v", err)
	}
	return path
}
