package session

import (
	"context"
	"io"
	"log/slog"

	"github.com/go-rod/rod/lib/proto"
	"github.com/use-agent/pageaudit/models"
)

// PDF prints the given HTML document to PDF using a scratch page, leaving
// the run's main page untouched. The scratch page is closed before
// returning.
func (s *Session) PDF(ctx context.Context, html string) ([]byte, error) {
	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, models.NewAuditError(models.ErrCodeRender, "failed to open print page", err)
	}
	defer func() {
		if closeErr := page.Close(); closeErr != nil {
			slog.Warn("closing print page", "error", closeErr)
		}
	}()

	p := page.Context(ctx)
	if err := p.SetDocumentContent(html); err != nil {
		return nil, models.NewAuditError(models.ErrCodeRender, "failed to set print content", err)
	}

	reader, err := p.PDF(&proto.PagePrintToPDF{PrintBackground: true})
	if err != nil {
		return nil, models.NewAuditError(models.ErrCodeRender, "PDF printing failed", err)
	}

	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, models.NewAuditError(models.ErrCodeRender, "reading PDF stream failed", err)
	}
	return pdf, nil
}
