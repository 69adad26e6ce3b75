package document

import (
	"context"
	"errors"
)

var ErrSink = errors.New("document sink error")

// BoldRange styles [start+Offset, start+Offset+Length) of an inserted span.
// A zero Length disables styling.
type BoldRange struct {
	Offset int
	Length int
}

// Sink appends at the current end of a document, re-reading the end offset before every call.
type Sink interface {
	// AppendText inserts text followed by a blank line.
	AppendText(ctx context.Context, documentID, text string) error
	// AppendTitle inserts title followed by a blank line and bolds exactly the title.
	AppendTitle(ctx context.Context, documentID, title string) error
	// AppendSummary inserts summary verbatim with the configured bold window.
	AppendSummary(ctx context.Context, documentID, summary string) error
}
