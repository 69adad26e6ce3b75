package session

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/foxseedlab/lecturenote/internal/discord"
)

const (
	mirrorQueueSize    = 256
	mirrorFlushTimeout = 10 * time.Second
)

// discordMirror posts from its own goroutine, so a slow or rate-limited channel never
// holds up result ingestion. A full queue drops the message. A nil mirror is a no-op.
type discordMirror struct {
	client    discord.Client
	channelID string
	queue     chan string
	done      chan struct{}
	dropped   atomic.Int64
}

func startDiscordMirror(client discord.Client, channelID string) *discordMirror {
	m := &discordMirror{
		client:    client,
		channelID: channelID,
		queue:     make(chan string, mirrorQueueSize),
		done:      make(chan struct{}),
	}
	go m.run()
	return m
}

func (m *discordMirror) run() {
	defer close(m.done)
	for content := range m.queue {
		if err := m.client.SendChannelMessage(m.channelID, content); err != nil {
			slog.Error("failed to post to discord", "error", err, "channel_id", m.channelID)
		}
	}
}

func (m *discordMirror) post(content string) {
	if m == nil {
		return
	}
	select {
	case m.queue <- content:
	default:
		slog.Warn("discord mirror queue full; message dropped", "channel_id", m.channelID, "dropped", m.dropped.Add(1))
	}
}

// close stops accepting messages and waits up to timeout for queued ones to be sent.
func (m *discordMirror) close(timeout time.Duration) {
	if m == nil {
		return
	}
	close(m.queue)
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-m.done:
	case <-timer.C:
		slog.Warn("discord mirror did not flush in time", "channel_id", m.channelID, "pending", len(m.queue))
	}
}
