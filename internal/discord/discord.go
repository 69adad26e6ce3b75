package discord

// Client posts plain messages to a text channel. Long content may be split across several messages.
type Client interface {
	SendChannelMessage(channelID, content string) error
}
