package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	internalconfig "github.com/foxseedlab/lecturenote/internal/config"
	"github.com/joho/godotenv"
)

const defaultSummaryPrompt = "The following is a transcript from a university lecture. " +
	"Summarize key points, dates, names, etc. that will help me study when I look back at my notes. " +
	"Focus on content that could be on a test. Use point form when possible, but respond with only plain text. " +
	"Do not bold, or format it other than the jot notes"

type envConfig struct {
	Env                        string            `env:"ENV" envDefault:"production"`
	LogFormat                  string            `env:"LOG_FORMAT" envDefault:"text"`
	GoogleCloudProjectID       string            `env:"GOOGLE_CLOUD_PROJECT_ID,required"`
	GoogleCloudCredentialsFile string            `env:"GOOGLE_CLOUD_CREDENTIALS_FILE" envDefault:"service-key.json"`
	GoogleCloudCredentialsJSON string            `env:"GOOGLE_CLOUD_CREDENTIALS_JSON"`
	GoogleCloudSpeechLocation  string            `env:"GOOGLE_CLOUD_SPEECH_LOCATION" envDefault:"global"`
	GoogleCloudSpeechModel     string            `env:"GOOGLE_CLOUD_SPEECH_MODEL" envDefault:"long"`
	SpeechRotateOnLimit        bool              `env:"SPEECH_ROTATE_ON_LIMIT" envDefault:"true"`
	TranscribeLanguage         string            `env:"TRANSCRIBE_LANGUAGE" envDefault:"en-US"`
	AudioSampleRate            int               `env:"AUDIO_SAMPLE_RATE" envDefault:"16000"`
	AudioFrameMs               int               `env:"AUDIO_FRAME_MS" envDefault:"100"`
	AudioBufferFrames          int               `env:"AUDIO_BUFFER_FRAMES" envDefault:"600"`
	AudioDevice                string            `env:"AUDIO_DEVICE"`
	AudioCaptureCommand        string            `env:"AUDIO_CAPTURE_COMMAND"`
	SinkRetryWindow            time.Duration     `env:"SINK_RETRY_WINDOW" envDefault:"10s"`
	ShutdownDrainTimeout       time.Duration     `env:"SHUTDOWN_DRAIN_TIMEOUT" envDefault:"5s"`
	SummarizeTimeout           time.Duration     `env:"SUMMARIZE_TIMEOUT" envDefault:"2m"`
	OpenAIAPIKey               string            `env:"OPENAI_API_KEY,required"`
	OpenAIModel                string            `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIBaseURL              string            `env:"OPENAI_BASE_URL"`
	SummaryPrompt              string            `env:"SUMMARY_PROMPT"`
	SummaryBoldOffset          int               `env:"SUMMARY_BOLD_OFFSET" envDefault:"1"`
	SummaryBoldLength          int               `env:"SUMMARY_BOLD_LENGTH" envDefault:"11"`
	TranscriptDocs             map[string]string `env:"TRANSCRIPT_DOCS,required" envSeparator:"," envKeyValSeparator:"="`
	SummaryDocs                map[string]string `env:"SUMMARY_DOCS,required" envSeparator:"," envKeyValSeparator:"="`
	DatabaseURL                string            `env:"DATABASE_URL"`
	DiscordToken               string            `env:"DISCORD_TOKEN"`
	DiscordChannelID           string            `env:"DISCORD_CHANNEL_ID"`
	TranscriptWebhookURL       string            `env:"TRANSCRIPT_WEBHOOK_URL"`
}

// Load reads the optional dotenv files, then the process environment, and validates the result.
func Load(dotenvFiles ...string) (*internalconfig.Config, error) {
	if err := loadDotEnv(dotenvFiles...); err != nil {
		return nil, err
	}

	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("%w: environment variables are invalid or missing: %w", internalconfig.ErrConfiguration, err)
	}

	prompt := raw.SummaryPrompt
	if strings.TrimSpace(prompt) == "" {
		prompt = defaultSummaryPrompt
	}

	cfg := &internalconfig.Config{
		Env:                        raw.Env,
		LogFormat:                  raw.LogFormat,
		GoogleCloudProjectID:       raw.GoogleCloudProjectID,
		GoogleCloudCredentialsFile: raw.GoogleCloudCredentialsFile,
		GoogleCloudCredentialsJSON: raw.GoogleCloudCredentialsJSON,
		GoogleCloudSpeechLocation:  strings.TrimSpace(raw.GoogleCloudSpeechLocation),
		GoogleCloudSpeechModel:     strings.TrimSpace(raw.GoogleCloudSpeechModel),
		SpeechRotateOnLimit:        raw.SpeechRotateOnLimit,
		TranscribeLanguage:         raw.TranscribeLanguage,
		AudioSampleRate:            raw.AudioSampleRate,
		AudioFrameMs:               raw.AudioFrameMs,
		AudioBufferFrames:          raw.AudioBufferFrames,
		AudioDevice:                raw.AudioDevice,
		AudioCaptureCommand:        raw.AudioCaptureCommand,
		SinkRetryWindow:            raw.SinkRetryWindow,
		ShutdownDrainTimeout:       raw.ShutdownDrainTimeout,
		SummarizeTimeout:           raw.SummarizeTimeout,
		OpenAIAPIKey:               raw.OpenAIAPIKey,
		OpenAIModel:                raw.OpenAIModel,
		OpenAIBaseURL:              raw.OpenAIBaseURL,
		SummaryPrompt:              prompt,
		SummaryBoldOffset:          raw.SummaryBoldOffset,
		SummaryBoldLength:          raw.SummaryBoldLength,
		TranscriptDocs:             trimDocMap(raw.TranscriptDocs),
		SummaryDocs:                trimDocMap(raw.SummaryDocs),
		DatabaseURL:                raw.DatabaseURL,
		DiscordToken:               raw.DiscordToken,
		DiscordChannelID:           raw.DiscordChannelID,
		TranscriptWebhookURL:       raw.TranscriptWebhookURL,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDotEnv never overrides variables already present in the environment.
func loadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("%w: read %s: %w", internalconfig.ErrConfiguration, f, err)
		}
	}
	return nil
}

func trimDocMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		name := strings.TrimSpace(k)
		if name == "" {
			continue
		}
		out[name] = strings.TrimSpace(v)
	}
	return out
}
