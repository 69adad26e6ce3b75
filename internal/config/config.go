package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var ErrConfiguration = errors.New("configuration error")

// Target is a named destination selected once at start-up.
type Target struct {
	Name            string
	TranscriptDocID string
	SummaryDocID    string
}

type Config struct {
	Env       string
	LogFormat string

	GoogleCloudProjectID       string
	GoogleCloudCredentialsFile string
	GoogleCloudCredentialsJSON string
	GoogleCloudSpeechLocation  string
	GoogleCloudSpeechModel     string
	SpeechRotateOnLimit        bool
	TranscribeLanguage         string

	AudioSampleRate     int
	AudioFrameMs        int
	AudioBufferFrames   int
	AudioDevice         string
	AudioCaptureCommand string

	SinkRetryWindow      time.Duration
	ShutdownDrainTimeout time.Duration
	SummarizeTimeout     time.Duration

	OpenAIAPIKey      string
	OpenAIModel       string
	OpenAIBaseURL     string
	SummaryPrompt     string
	SummaryBoldOffset int
	SummaryBoldLength int

	TranscriptDocs map[string]string
	SummaryDocs    map[string]string

	DatabaseURL          string
	DiscordToken         string
	DiscordChannelID     string
	TranscriptWebhookURL string
}

func (c *Config) Validate() error {
	for _, req := range c.requiredFieldChecks() {
		if req.value == "" {
			return fmt.Errorf("%w: %s is required", ErrConfiguration, req.name)
		}
	}
	if c.GoogleCloudCredentialsFile == "" && c.GoogleCloudCredentialsJSON == "" {
		return fmt.Errorf("%w: GOOGLE_CLOUD_CREDENTIALS_FILE or GOOGLE_CLOUD_CREDENTIALS_JSON is required", ErrConfiguration)
	}
	if c.AudioSampleRate <= 0 {
		return fmt.Errorf("%w: AUDIO_SAMPLE_RATE must be positive, got %d", ErrConfiguration, c.AudioSampleRate)
	}
	if c.AudioFrameMs <= 0 || 1000%c.AudioFrameMs != 0 {
		return fmt.Errorf("%w: AUDIO_FRAME_MS must evenly divide one second, got %d", ErrConfiguration, c.AudioFrameMs)
	}
	if c.AudioBufferFrames <= 0 {
		return fmt.Errorf("%w: AUDIO_BUFFER_FRAMES must be positive, got %d", ErrConfiguration, c.AudioBufferFrames)
	}
	if c.SummaryBoldOffset < 0 || c.SummaryBoldLength < 0 {
		return fmt.Errorf("%w: SUMMARY_BOLD_OFFSET and SUMMARY_BOLD_LENGTH must not be negative", ErrConfiguration)
	}
	if (c.DiscordToken == "") != (c.DiscordChannelID == "") {
		return fmt.Errorf("%w: DISCORD_TOKEN and DISCORD_CHANNEL_ID must be set together", ErrConfiguration)
	}
	return c.validateTargets()
}

func (c *Config) validateTargets() error {
	if len(c.TranscriptDocs) == 0 {
		return fmt.Errorf("%w: TRANSCRIPT_DOCS must name at least one target", ErrConfiguration)
	}
	for name, id := range c.TranscriptDocs {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%w: TRANSCRIPT_DOCS has no document id for %q", ErrConfiguration, name)
		}
		if strings.TrimSpace(c.SummaryDocs[name]) == "" {
			return fmt.Errorf("%w: SUMMARY_DOCS has no document id for %q", ErrConfiguration, name)
		}
	}
	for name := range c.SummaryDocs {
		if _, ok := c.TranscriptDocs[name]; !ok {
			return fmt.Errorf("%w: SUMMARY_DOCS names %q which is missing from TRANSCRIPT_DOCS", ErrConfiguration, name)
		}
	}
	return nil
}

type requiredEnvField struct {
	name  string
	value string
}

func (c *Config) requiredFieldChecks() []requiredEnvField {
	return []requiredEnvField{
		{name: "GOOGLE_CLOUD_PROJECT_ID", value: c.GoogleCloudProjectID},
		{name: "GOOGLE_CLOUD_SPEECH_LOCATION", value: c.GoogleCloudSpeechLocation},
		{name: "TRANSCRIBE_LANGUAGE", value: c.TranscribeLanguage},
		{name: "OPENAI_API_KEY", value: c.OpenAIAPIKey},
		{name: "OPENAI_MODEL", value: c.OpenAIModel},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Targets returns every configured target ordered by name.
func (c *Config) Targets() []Target {
	names := make([]string, 0, len(c.TranscriptDocs))
	for name := range c.TranscriptDocs {
		names = append(names, name)
	}
	sort.Strings(names)
	list := make([]Target, 0, len(names))
	for _, name := range names {
		list = append(list, Target{
			Name:            name,
			TranscriptDocID: c.TranscriptDocs[name],
			SummaryDocID:    c.SummaryDocs[name],
		})
	}
	return list
}

func (c *Config) Target(name string) (Target, error) {
	for _, t := range c.Targets() {
		if t.Name == name {
			return t, nil
		}
	}
	return Target{}, fmt.Errorf("%w: unknown target %q", ErrConfiguration, name)
}

func (c *Config) FrameDuration() time.Duration {
	return time.Duration(c.AudioFrameMs) * time.Millisecond
}
