package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUsage           = errors.New("usage error")
	ErrConfiguration   = errors.New("configuration error")
	ErrNotFound        = errors.New("file not found")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrToolUnavailable = errors.New("tool unavailable")
	ErrToolFailure     = errors.New("tool failure")
	ErrResponseFormat  = errors.New("response format error")
	ErrAPI             = errors.New("api error")
)

// Process exit codes reported by the CLI.
const (
	ExitSuccess    = 0
	ExitUsageError = 1
	ExitFileError  = 2
	ExitAPIError   = 3
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrAPI
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ExitCode maps a request error to the process exit code the CLI should
// report. Tool errors never reach this mapping; routing absorbs them.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUsage), errors.Is(err, ErrConfiguration):
		return ExitUsageError
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUnsupportedType):
		return ExitFileError
	default:
		return ExitAPIError
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
