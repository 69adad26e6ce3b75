package docs

import (
	"unicode/utf16"

	"github.com/foxseedlab/lecturenote/internal/document"
	gdocs "google.golang.org/api/docs/v1"
)

const paragraphBreak = "\n\n"

// Docs indexes count UTF-16 code units.
func indexLen(s string) int64 {
	return int64(len(utf16.Encode([]rune(s))))
}

func insertText(at int64, text string) *gdocs.Request {
	return &gdocs.Request{
		InsertText: &gdocs.InsertTextRequest{
			Location: &gdocs.Location{Index: at},
			Text:     text,
		},
	}
}

func boldRange(start, end int64) *gdocs.Request {
	return &gdocs.Request{
		UpdateTextStyle: &gdocs.UpdateTextStyleRequest{
			Range:     &gdocs.Range{StartIndex: start, EndIndex: end},
			TextStyle: &gdocs.TextStyle{Bold: true},
			Fields:    "bold",
		},
	}
}

func textRequests(at int64, text string) []*gdocs.Request {
	return []*gdocs.Request{insertText(at, text+paragraphBreak)}
}

func titleRequests(at int64, title string) []*gdocs.Request {
	reqs := []*gdocs.Request{insertText(at, title+paragraphBreak)}
	if n := indexLen(title); n > 0 {
		reqs = append(reqs, boldRange(at, at+n))
	}
	return reqs
}

// summaryRequests clamps the bold window to the inserted text so the batch stays valid.
func summaryRequests(at int64, summary string, window document.BoldRange) []*gdocs.Request {
	reqs := []*gdocs.Request{insertText(at, summary)}
	if window.Length <= 0 {
		return reqs
	}
	start := int64(window.Offset)
	end := start + int64(window.Length)
	if n := indexLen(summary); end > n {
		end = n
	}
	if start < end {
		reqs = append(reqs, boldRange(at+start, at+end))
	}
	return reqs
}
