package session

import (
	"fmt"
	"strings"
	"time"
)

const (
	messageStartFormat   = ":microphone2: **%s** (%s) transcription started."
	messageSegmentFormat = "`%s` %s"
	messageSummaryFormat = ":page_facing_up: **Summary of %s**\n%s"

	terminalSummaryHeader = "\n=== Summary ===\n"
)

func startMessage(title, target string) string {
	return fmt.Sprintf(messageStartFormat, title, target)
}

func segmentMessage(elapsed time.Duration, text string) string {
	return fmt.Sprintf(messageSegmentFormat, formatElapsedHMS(elapsed), strings.TrimSpace(text))
}

func summaryMessage(title, summary string) string {
	return fmt.Sprintf(messageSummaryFormat, title, summary)
}
