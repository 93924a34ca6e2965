package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"scribe/internal/config"
	"scribe/internal/language"
	"scribe/internal/logging"
	"scribe/internal/media"
	"scribe/internal/routing"
	"scribe/internal/services"
	"scribe/internal/services/whisper"
	"scribe/internal/transcriber"
)

type transcribeOptions struct {
	model           string
	detectModel     string
	forcedLanguage  string
	outPath         string
	logDir          string
	probeSeconds    int
	temperature     float64
	noProbe         bool
	languageRouting bool
	debug           bool
	fileLogging     bool
	jsonLogs        bool
	dryRun          bool
}

func newTranscribeCommand(cctx *commandContext) *cobra.Command {
	opts := &transcribeOptions{}

	cmd := &cobra.Command{
		Use:   "transcribe <audio-file>",
		Short: "Transcribe an audio file (.mp3, .m4a, .wav)",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return services.Wrap(services.ErrUsage, "cli", "transcribe", "", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			return runTranscribe(cmd, cfg, opts, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.model, "model", "", "Transcription model (default from config)")
	flags.StringVar(&opts.detectModel, "detect-model", "", "Language detection model (default from config)")
	flags.StringVarP(&opts.forcedLanguage, "language", "l", "", "Force an ISO-639-1 language hint, skipping detection")
	flags.StringVarP(&opts.outPath, "out", "o", "", "Write the JSON result to this file instead of stdout")
	flags.IntVar(&opts.probeSeconds, "probe-seconds", 0, "Seconds of audio to slice for detection (default from config)")
	flags.Float64Var(&opts.temperature, "temperature", 0, "Decoding temperature for the full transcription")
	flags.BoolVar(&opts.noProbe, "no-probe", false, "Detect on the full file instead of a probe slice")
	flags.BoolVar(&opts.languageRouting, "language-routing", false, "Enable the language detection pre-pass")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flags.StringVar(&opts.logDir, "log-dir", "", "Directory for log files (default from config)")
	flags.BoolVar(&opts.fileLogging, "enable-file-logging", false, "Also write logs to a file under the log directory")
	flags.BoolVar(&opts.jsonLogs, "json-logs", false, "Emit logs as JSON")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Validate the input and report the plan without calling the API")

	return cmd
}

func runTranscribe(cmd *cobra.Command, cfg *config.Config, opts *transcribeOptions, audioPath string) error {
	req, err := buildRequest(cmd, cfg, opts, audioPath)
	if err != nil {
		return err
	}

	logger, err := buildLogger(cfg, opts)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "cli", "transcribe", "configure logging", err)
	}

	ctx := services.WithRequestID(cmd.Context(), uuid.NewString())
	logger = logging.WithContext(ctx, logger)

	if !opts.dryRun && strings.TrimSpace(cfg.OpenAI.APIKey) == "" {
		return services.Wrap(services.ErrConfiguration, "cli", "transcribe",
			"no API key configured; set OPENAI_API_KEY or openai.api_key in the config file", nil)
	}

	client := whisper.NewClient(cfg.OpenAI.APIKey,
		whisper.WithBaseURL(cfg.OpenAI.BaseURL),
		whisper.WithTimeout(time.Duration(cfg.OpenAI.TimeoutSeconds)*time.Second),
	)
	slicer := media.NewSlicer(cfg.FFmpeg.Binary, logger)
	router := routing.New(slicer, client, logger)
	service := transcriber.NewService(router, client, slicer, logger)

	var result *transcriber.Result
	if opts.dryRun {
		result, err = service.DryRun(ctx, req)
	} else {
		result, err = service.Run(ctx, req)
	}
	if err != nil {
		return err
	}

	return writeResult(cmd.OutOrStdout(), result, opts.outPath)
}

// buildRequest merges config defaults with any explicitly set flags.
func buildRequest(cmd *cobra.Command, cfg *config.Config, opts *transcribeOptions, audioPath string) (transcriber.Request, error) {
	req := transcriber.Request{
		AudioPath:       audioPath,
		Model:           cfg.Transcription.Model,
		DetectModel:     cfg.Transcription.DetectModel,
		Temperature:     cfg.Transcription.Temperature,
		ProbeSeconds:    cfg.Transcription.ProbeSeconds,
		UseProbe:        cfg.Transcription.UseProbe,
		LanguageRouting: cfg.Transcription.LanguageRouting,
	}

	flags := cmd.Flags()
	if flags.Changed("model") {
		req.Model = strings.TrimSpace(opts.model)
	}
	if flags.Changed("detect-model") {
		req.DetectModel = strings.TrimSpace(opts.detectModel)
	}
	if flags.Changed("temperature") {
		req.Temperature = opts.temperature
	}
	if flags.Changed("probe-seconds") {
		req.ProbeSeconds = opts.probeSeconds
	}
	if flags.Changed("no-probe") {
		req.UseProbe = !opts.noProbe
	}
	if flags.Changed("language-routing") {
		req.LanguageRouting = opts.languageRouting
	}

	if forced := strings.TrimSpace(opts.forcedLanguage); forced != "" {
		normalized := language.Normalize(forced)
		if normalized == "" {
			return transcriber.Request{}, services.Wrap(services.ErrUsage, "cli", "transcribe",
				fmt.Sprintf("unknown language %q (supported: %s)", forced, strings.Join(language.Supported(), ", ")), nil)
		}
		req.Language = normalized
	}

	if req.ProbeSeconds < 1 {
		return transcriber.Request{}, services.Wrap(services.ErrUsage, "cli", "transcribe",
			fmt.Sprintf("probe-seconds must be at least 1, got %d", req.ProbeSeconds), nil)
	}
	return req, nil
}

func buildLogger(cfg *config.Config, opts *transcribeOptions) (*slog.Logger, error) {
	effective := *cfg
	if opts.debug {
		effective.Logging.Level = "debug"
	}
	if opts.jsonLogs {
		effective.Logging.Format = "json"
	}

	var logDir string
	if opts.fileLogging {
		logDir = strings.TrimSpace(opts.logDir)
		if logDir == "" {
			logDir = effective.Paths.LogDir
		}
		expanded, err := config.ExpandPath(logDir)
		if err != nil {
			return nil, err
		}
		logDir = expanded
	}
	return logging.NewFromConfig(&effective, logDir)
}

// writeResult emits the result as indented UTF-8 JSON, to stdout or to the
// --out target. File writes take an advisory lock so concurrent runs pointed
// at the same path cannot interleave.
func writeResult(stdout io.Writer, result *transcriber.Result, outPath string) error {
	outPath = strings.TrimSpace(outPath)
	if outPath == "" {
		return encodeResult(stdout, result)
	}

	expanded, err := config.ExpandPath(outPath)
	if err != nil {
		return services.Wrap(services.ErrUsage, "cli", "write", "resolve output path", err)
	}
	if dir := filepath.Dir(expanded); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return services.Wrap(services.ErrUsage, "cli", "write", "create output directory", err)
		}
	}

	lock := flock.New(expanded + ".lock")
	if err := lock.Lock(); err != nil {
		return services.Wrap(services.ErrUsage, "cli", "write", "lock output file", err)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	file, err := os.Create(expanded)
	if err != nil {
		return services.Wrap(services.ErrUsage, "cli", "write", "create output file", err)
	}
	defer file.Close()
	return encodeResult(file, result)
}

func encodeResult(w io.Writer, result *transcriber.Result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return services.Wrap(services.ErrUsage, "cli", "write", "encode result", err)
	}
	return nil
}
