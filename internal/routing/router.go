package routing

import (
	"context"
	"log/slog"

	"scribe/internal/language"
	"scribe/internal/logging"
	"scribe/internal/media"
	"scribe/internal/services/whisper"
)

// Strategy identifies how a routing decision was reached.
type Strategy int

const (
	// StrategyUndetermined means no language hint is passed; the remote API
	// auto-detects on the full call.
	StrategyUndetermined Strategy = iota
	// StrategyForced means the caller supplied the language and detection was
	// never invoked.
	StrategyForced
	// StrategyDetected means the keyword classifier picked the language from
	// a detection transcript.
	StrategyDetected
)

func (s Strategy) String() string {
	switch s {
	case StrategyForced:
		return "forced"
	case StrategyDetected:
		return "detected"
	default:
		return "undetermined"
	}
}

// Decision is the immutable outcome of a routing pass.
type Decision struct {
	Strategy Strategy
	// Language is the ISO 639-1 hint for the full call, empty when
	// undetermined.
	Language string
	// ProbeUsed is true iff the slicing tool ran successfully and its output
	// fed the detection call.
	ProbeUsed bool
}

// Transcriber is the remote API surface the router needs.
type Transcriber interface {
	Transcribe(ctx context.Context, req whisper.Request) (whisper.Document, error)
}

// Slicer is the probe extraction surface the router needs.
type Slicer interface {
	Available() bool
	Slice(ctx context.Context, source string, maxSeconds int) (*media.Probe, error)
}

// Options carries the routing settings for a request.
type Options struct {
	// Enabled turns the detection pre-pass on.
	Enabled bool
	// UseProbe allows slicing a short sample before detection.
	UseProbe bool
	// ProbeSeconds bounds the sample duration.
	ProbeSeconds int
	// DetectModel is the model used for the detection call.
	DetectModel string
}

// Router orchestrates slicing, probe transcription, and keyword
// classification. Stateless between calls; safe for concurrent requests.
type Router struct {
	slicer Slicer
	client Transcriber
	logger *slog.Logger
}

// New constructs a Router.
func New(slicer Slicer, client Transcriber, logger *slog.Logger) *Router {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Router{
		slicer: slicer,
		client: client,
		logger: logger.With(logging.String(logging.FieldComponent, "router")),
	}
}

// Route produces the language decision for source. forced, when non-empty,
// wins outright with no collaborator calls. Route never fails: every
// detection-path error is absorbed into an undetermined decision. Any probe
// artifact created along the way is cleaned up before Route returns,
// including when detection errors or the context is cancelled.
func (r *Router) Route(ctx context.Context, source string, forced string, opts Options) Decision {
	if forced != "" {
		return Decision{Strategy: StrategyForced, Language: forced}
	}
	if !opts.Enabled {
		return Decision{Strategy: StrategyUndetermined}
	}

	logger := logging.WithContext(ctx, r.logger)

	input := source
	probeUsed := false
	if opts.UseProbe {
		if r.slicer.Available() {
			probe, err := r.slicer.Slice(ctx, source, opts.ProbeSeconds)
			if err != nil {
				// Slicer already logged the warning; detect on the full file.
				logger.Debug("probe slice unavailable", logging.Error(err))
			} else {
				defer func() {
					if cleanupErr := probe.Cleanup(); cleanupErr != nil {
						logger.Warn("probe cleanup failed", logging.Error(cleanupErr))
					}
				}()
				input = probe.Path
				probeUsed = true
			}
		} else {
			logger.Debug("slicing tool not found; detecting on full file")
		}
	}

	doc, err := r.client.Transcribe(ctx, whisper.Request{
		Path:        input,
		Model:       opts.DetectModel,
		Temperature: 0,
	})
	if err != nil {
		logger.Warn("language detection failed; remote API will auto-detect", logging.Error(err))
		return Decision{Strategy: StrategyUndetermined, ProbeUsed: probeUsed}
	}

	code, ok := language.Classify(doc.Text())
	if !ok {
		logger.Info("no language keywords matched; remote API will auto-detect")
		return Decision{Strategy: StrategyUndetermined, ProbeUsed: probeUsed}
	}

	logger.Info("language detected",
		logging.String("language", code),
		logging.Bool("probe_used", probeUsed))
	return Decision{Strategy: StrategyDetected, Language: code, ProbeUsed: probeUsed}
}
