package config

const (
	defaultModel          = "gpt-4o-transcribe"
	defaultDetectModel    = "gpt-4o-mini-transcribe"
	defaultTemperature    = 0.0
	defaultProbeSeconds   = 25
	defaultUseProbe       = true
	defaultBaseURL        = "https://api.openai.com/v1"
	defaultTimeoutSeconds = 600
	defaultFFmpegBinary   = "ffmpeg"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultLogDir         = "~/.local/share/scribe/logs"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Transcription: Transcription{
			Model:           defaultModel,
			DetectModel:     defaultDetectModel,
			Temperature:     defaultTemperature,
			ProbeSeconds:    defaultProbeSeconds,
			UseProbe:        defaultUseProbe,
			LanguageRouting: false,
		},
		OpenAI: OpenAI{
			BaseURL:        defaultBaseURL,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		FFmpeg: FFmpeg{
			Binary: defaultFFmpegBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Paths: Paths{
			LogDir: defaultLogDir,
		},
	}
}
