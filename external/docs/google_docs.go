package docs

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/auth"
	"github.com/foxseedlab/lecturenote/internal/document"
	gdocs "google.golang.org/api/docs/v1"
	"google.golang.org/api/option"
)

// firstBodyIndex is where an empty document accepts text.
const firstBodyIndex = 1

type GoogleDocsSink struct {
	svc         *gdocs.Service
	summaryBold document.BoldRange
}

func NewService(ctx context.Context, creds *auth.Credentials, opts ...option.ClientOption) (*gdocs.Service, error) {
	opts = append([]option.ClientOption{option.WithAuthCredentials(creds)}, opts...)
	return gdocs.NewService(ctx, opts...)
}

func NewGoogleDocsSink(svc *gdocs.Service, summaryBold document.BoldRange) document.Sink {
	return &GoogleDocsSink{svc: svc, summaryBold: summaryBold}
}

func (s *GoogleDocsSink) AppendText(ctx context.Context, documentID, text string) error {
	return s.appendAtEnd(ctx, documentID, func(at int64) []*gdocs.Request {
		return textRequests(at, text)
	})
}

func (s *GoogleDocsSink) AppendTitle(ctx context.Context, documentID, title string) error {
	if err := s.appendAtEnd(ctx, documentID, func(at int64) []*gdocs.Request {
		return titleRequests(at, title)
	}); err != nil {
		return err
	}
	slog.Info("title appended to document", "document_id", documentID, "title", title)
	return nil
}

func (s *GoogleDocsSink) AppendSummary(ctx context.Context, documentID, summary string) error {
	if err := s.appendAtEnd(ctx, documentID, func(at int64) []*gdocs.Request {
		return summaryRequests(at, summary, s.summaryBold)
	}); err != nil {
		return err
	}
	slog.Info("summary appended to document", "document_id", documentID)
	return nil
}

func (s *GoogleDocsSink) appendAtEnd(ctx context.Context, documentID string, build func(at int64) []*gdocs.Request) error {
	at, err := s.endIndex(ctx, documentID)
	if err != nil {
		return fmt.Errorf("read document end: %w", err)
	}
	_, err = s.svc.Documents.BatchUpdate(documentID, &gdocs.BatchUpdateDocumentRequest{
		Requests: build(at),
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("batch update document: %w", err)
	}
	return nil
}

// endIndex is the insertion point just before the document's trailing newline.
func (s *GoogleDocsSink) endIndex(ctx context.Context, documentID string) (int64, error) {
	doc, err := s.svc.Documents.Get(documentID).Fields("body/content/endIndex").Context(ctx).Do()
	if err != nil {
		return 0, err
	}
	if doc.Body == nil || len(doc.Body.Content) == 0 {
		return firstBodyIndex, nil
	}
	end := doc.Body.Content[len(doc.Body.Content)-1].EndIndex - 1
	if end < firstBodyIndex {
		return firstBodyIndex, nil
	}
	return end, nil
}
