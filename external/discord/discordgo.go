package discord

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
	discordpkg "github.com/foxseedlab/lecturenote/internal/discord"
)

// maxMessageLength is the Discord limit for one message, counted in characters.
const maxMessageLength = 2000

type Client struct {
	session *discordgo.Session
}

// NewClient returns a REST-only client. No gateway connection is opened.
func NewClient(token string) (discordpkg.Client, error) {
	if strings.TrimSpace(token) == "" {
		return noopClient{}, nil
	}
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	return &Client{session: s}, nil
}

func (c *Client) SendChannelMessage(channelID, content string) error {
	chunks := splitMessage(content, maxMessageLength)
	for i, chunk := range chunks {
		if _, err := c.session.ChannelMessageSend(channelID, chunk); err != nil {
			return fmt.Errorf("send message part %d/%d: %w", i+1, len(chunks), err)
		}
	}
	slog.Debug("discord message sent", "channel_id", channelID, "parts", len(chunks))
	return nil
}

type noopClient struct{}

func (noopClient) SendChannelMessage(string, string) error { return nil }

// splitMessage cuts content into chunks of at most limit runes, preferring line breaks.
func splitMessage(content string, limit int) []string {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}
	var chunks []string
	runes := []rune(content)
	for len(runes) > limit {
		cut := limit
		if nl := lastNewline(runes[:limit]); nl > 0 {
			cut = nl
		}
		if chunk := strings.TrimSpace(string(runes[:cut])); chunk != "" {
			chunks = append(chunks, chunk)
		}
		runes = []rune(strings.TrimLeft(string(runes[cut:]), "\n"))
	}
	if rest := strings.TrimSpace(string(runes)); rest != "" {
		chunks = append(chunks, rest)
	}
	return chunks
}

func lastNewline(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == '\n' {
			return i
		}
	}
	return -1
}
