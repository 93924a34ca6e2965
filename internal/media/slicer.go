package media

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"scribe/internal/logging"
	"scribe/internal/services"
)

// Probe output parameters expected by the detection models.
const (
	probeChannels   = 1
	probeSampleRate = 16000
	probeFileName   = "probe.wav"
)

// CommandRunner executes an external command. Injected in tests.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// Slicer extracts bounded audio samples using an external binary.
type Slicer struct {
	binary string
	logger *slog.Logger
	runner CommandRunner
}

// NewSlicer creates a Slicer around the given binary name or path.
func NewSlicer(binary string, logger *slog.Logger) *Slicer {
	if strings.TrimSpace(binary) == "" {
		binary = "ffmpeg"
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Slicer{
		binary: binary,
		logger: logger.With(logging.String(logging.FieldComponent, "slicer")),
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Slicer) WithCommandRunner(runner CommandRunner) {
	s.runner = runner
}

// Binary returns the configured slicing binary.
func (s *Slicer) Binary() string {
	return s.binary
}

// Available reports whether the slicing binary resolves on PATH. It performs
// a lookup only; no process is spawned.
func (s *Slicer) Available() bool {
	_, err := exec.LookPath(s.binary)
	return err == nil
}

// Probe is a transient audio slice owned by the routing operation that
// created it. The backing file lives in a dedicated temp directory.
type Probe struct {
	Path string
	dir  string
}

// Cleanup removes the probe file and then its owning directory. Safe to call
// more than once.
func (p *Probe) Cleanup() error {
	if p == nil || p.dir == "" {
		return nil
	}
	if err := os.Remove(p.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove probe file: %w", err)
	}
	if err := os.Remove(p.dir); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove probe directory: %w", err)
	}
	p.dir = ""
	return nil
}

// Slice extracts up to maxSeconds of audio from the start of source into a
// fresh temp directory. A missing binary is reported as ErrToolUnavailable
// before any temp state is created; spawn failures and nonzero exits are
// reported as warnings and returned as ErrToolFailure. Neither panics past
// this boundary.
func (s *Slicer) Slice(ctx context.Context, source string, maxSeconds int) (*Probe, error) {
	if maxSeconds <= 0 {
		return nil, services.Wrap(services.ErrToolFailure, "slicer", "slice", fmt.Sprintf("invalid duration %d", maxSeconds), nil)
	}
	if strings.TrimSpace(source) == "" {
		return nil, services.Wrap(services.ErrToolFailure, "slicer", "slice", "source path required", nil)
	}
	if s.runner == nil {
		if _, err := exec.LookPath(s.binary); err != nil {
			return nil, services.Wrap(services.ErrToolUnavailable, "slicer", "slice", fmt.Sprintf("binary %q not found", s.binary), err)
		}
	}

	dir, err := os.MkdirTemp("", "scribe-probe-")
	if err != nil {
		return nil, services.Wrap(services.ErrToolFailure, "slicer", "slice", "create temp directory", err)
	}
	dest := filepath.Join(dir, probeFileName)

	args := buildSliceArgs(source, maxSeconds, dest)
	if err := s.run(ctx, s.binary, args...); err != nil {
		s.logger.Warn("audio slice failed; falling back to full file", logging.Error(err))
		_ = os.RemoveAll(dir)
		return nil, services.Wrap(services.ErrToolFailure, "slicer", "slice", "", err)
	}

	if info, err := os.Stat(dest); err != nil || info.Size() == 0 {
		s.logger.Warn("slicing tool produced no output; falling back to full file", logging.String("path", dest))
		_ = os.RemoveAll(dir)
		return nil, services.Wrap(services.ErrToolFailure, "slicer", "slice", "no readable output produced", err)
	}

	return &Probe{Path: dest, dir: dir}, nil
}

func (s *Slicer) run(ctx context.Context, name string, args ...string) error {
	if s.runner != nil {
		return s.runner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// buildSliceArgs assembles the explicit argument list for the slicing tool.
// No shell is involved; the source path is terminated positionally.
func buildSliceArgs(source string, maxSeconds int, dest string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-t", strconv.Itoa(maxSeconds),
		"-i", source,
		"-vn",
		"-ac", strconv.Itoa(probeChannels),
		"-ar", strconv.Itoa(probeSampleRate),
		"-c:a", "pcm_s16le",
		dest,
	}
}
