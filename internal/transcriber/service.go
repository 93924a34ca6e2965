package transcriber

import (
	"context"
	"log/slog"
	"strings"

	"scribe/internal/logging"
	"scribe/internal/routing"
	"scribe/internal/services"
	"scribe/internal/services/whisper"
)

// Router resolves the language decision for a source file.
type Router interface {
	Route(ctx context.Context, source, forced string, opts routing.Options) routing.Decision
}

// Client performs remote transcription calls.
type Client interface {
	Transcribe(ctx context.Context, req whisper.Request) (whisper.Document, error)
}

// ToolChecker reports availability of the probe slicing binary.
type ToolChecker interface {
	Available() bool
}

// Request carries the effective parameters for one transcription run, after
// config defaults and flag overrides have been merged.
type Request struct {
	AudioPath       string
	Model           string
	DetectModel     string
	Language        string
	Temperature     float64
	ProbeSeconds    int
	UseProbe        bool
	LanguageRouting bool
}

// Service drives the transcription pipeline.
type Service struct {
	router Router
	client Client
	tools  ToolChecker
	logger *slog.Logger
}

// NewService wires a Service from its collaborators.
func NewService(router Router, client Client, tools ToolChecker, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{
		router: router,
		client: client,
		tools:  tools,
		logger: logger.With(logging.String(logging.FieldComponent, "transcriber")),
	}
}

// Run validates the input, routes the language decision, performs the full
// transcription, and assembles the result. Transcription errors propagate
// unchanged so callers keep the full error taxonomy.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	source, err := ValidateAudioFile(req.AudioPath)
	if err != nil {
		return nil, err
	}

	logging.WithContext(ctx, s.logger).Debug("starting transcription",
		logging.String("source", source),
		logging.String("model", req.Model),
		logging.String("detect_model", req.DetectModel),
		logging.Bool("language_routing", req.LanguageRouting),
		logging.Bool("use_probe", req.UseProbe),
		logging.Int("probe_seconds", req.ProbeSeconds),
	)

	decision := s.router.Route(services.WithStage(ctx, "routing"), source, strings.TrimSpace(req.Language), routing.Options{
		Enabled:      req.LanguageRouting,
		UseProbe:     req.UseProbe,
		ProbeSeconds: req.ProbeSeconds,
		DetectModel:  req.DetectModel,
	})

	doc, err := s.client.Transcribe(services.WithStage(ctx, "transcribe"), whisper.Request{
		Path:        source,
		Model:       req.Model,
		Language:    decision.Language,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Document: doc,
		Meta:     buildMeta(req, source, decision),
	}, nil
}

// DryRun validates the input and reports what a run would do without touching
// the remote API or spawning the slicing tool beyond an availability lookup.
func (s *Service) DryRun(_ context.Context, req Request) (*Result, error) {
	source, err := ValidateAudioFile(req.AudioPath)
	if err != nil {
		return nil, err
	}

	available := s.tools != nil && s.tools.Available()
	meta := buildMeta(req, source, routing.Decision{})
	meta.DryRun = true
	meta.ProbeAvailable = &available
	meta.ProbeUsed = false
	meta.ProbeSeconds = nil

	return &Result{
		Document: whisper.Document{"text": "[DRY RUN] transcription skipped"},
		Meta:     meta,
	}, nil
}

func buildMeta(req Request, source string, decision routing.Decision) Meta {
	meta := Meta{
		Model:                  req.Model,
		DetectModel:            req.DetectModel,
		SourceFile:             source,
		LanguageRoutingEnabled: req.LanguageRouting,
		ProbeUsed:              decision.ProbeUsed,
	}
	meta.ForcedLanguage = strings.TrimSpace(req.Language) != ""
	if decision.Strategy == routing.StrategyDetected {
		routed := decision.Language
		meta.RoutedLanguage = &routed
	}
	if decision.ProbeUsed {
		seconds := req.ProbeSeconds
		meta.ProbeSeconds = &seconds
	}
	return meta
}
