package transcriber

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"scribe/internal/config"
	"scribe/internal/services"
)

var allowedExtensions = map[string]struct{}{
	".mp3": {},
	".m4a": {},
	".wav": {},
}

// ExtensionAllowed reports whether ext names a supported audio container.
// The comparison is case-insensitive and tolerates a missing leading dot.
func ExtensionAllowed(ext string) bool {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return false
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	_, ok := allowedExtensions[ext]
	return ok
}

// SupportedExtensions returns the accepted audio extensions in display order.
func SupportedExtensions() []string {
	return []string{".mp3", ".m4a", ".wav"}
}

// ValidateAudioFile resolves path to an absolute location and confirms it is
// an existing regular file with a supported extension.
func ValidateAudioFile(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", services.Wrap(services.ErrUsage, "transcriber", "validate", "audio file path required", nil)
	}

	expanded, err := config.ExpandPath(path)
	if err != nil {
		return "", services.Wrap(services.ErrNotFound, "transcriber", "validate", "expand path", err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", services.Wrap(services.ErrNotFound, "transcriber", "validate", "resolve path", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", services.Wrap(services.ErrNotFound, "transcriber", "validate", fmt.Sprintf("file not found: %s", abs), err)
	}
	if info.IsDir() {
		return "", services.Wrap(services.ErrNotFound, "transcriber", "validate", fmt.Sprintf("not a file: %s", abs), nil)
	}

	ext := filepath.Ext(abs)
	if !ExtensionAllowed(ext) {
		return "", services.Wrap(services.ErrUnsupportedType, "transcriber", "validate",
			fmt.Sprintf("unsupported file type %q (expected %s)", ext, strings.Join(SupportedExtensions(), ", ")), nil)
	}
	return abs, nil
}
