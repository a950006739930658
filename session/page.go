package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/use-agent/pageaudit/models"
	"github.com/ysmood/gson"
)

// domStableWindow is how long the DOM must stay (mostly) unchanged before a
// navigation or reload is considered settled.
const domStableWindow = 300 * time.Millisecond

// captureSettle is the grace period after a reload settles during which
// late resource responses are still collected.
const captureSettle = 500 * time.Millisecond

// DocumentResponse is the main-document response of one navigation.
// Headers keys are lower-cased. Redirect is the first redirect hop observed
// during the navigation, nil when the document was served directly.
type DocumentResponse struct {
	Status   int
	Headers  map[string]string
	Redirect *RedirectHop
}

// RedirectHop is one observed redirect response.
type RedirectHop struct {
	Status   int
	Location string
}

// DocumentResponse navigates the run's page to url and returns the main
// document's response. The response listener is registered before the
// navigation is triggered, as one unit, so the document response cannot be
// missed. The whole operation is bounded by the session's navigation
// timeout.
func (s *Session) DocumentResponse(ctx context.Context, url string) (*DocumentResponse, error) {
	navCtx, cancel := context.WithTimeout(ctx, s.navTimeout)
	defer cancel()
	p := s.page.Context(navCtx)

	var doc *DocumentResponse
	var hop *RedirectHop

	wait := p.EachEvent(
		func(e *proto.NetworkRequestWillBeSent) bool {
			if e.Type == proto.NetworkResourceTypeDocument && e.RedirectResponse != nil && hop == nil {
				hop = &RedirectHop{
					Status:   e.RedirectResponse.Status,
					Location: headerValue(e.RedirectResponse.Headers, "location"),
				}
			}
			return false
		},
		func(e *proto.NetworkResponseReceived) bool {
			if e.Type != proto.NetworkResourceTypeDocument {
				return false
			}
			doc = &DocumentResponse{
				Status:  e.Response.Status,
				Headers: flattenHeaders(e.Response.Headers),
			}
			return true
		},
	)

	if err := p.Navigate(url); err != nil {
		return nil, navError(err, "navigation to target URL failed")
	}
	wait()

	if doc == nil {
		if err := navCtx.Err(); err != nil {
			return nil, navError(err, "no document response before deadline")
		}
		return nil, models.NewAuditError(
			models.ErrCodeNavigation,
			"navigation produced no document response",
			nil,
		)
	}
	doc.Redirect = hop
	return doc, nil
}

// Navigate drives the page to url and waits for the DOM to settle, leaving
// the document loaded for subsequent page reads. DocumentResponse does not
// do this: it returns on the document's response headers, before the body
// is parsed or scripts run.
func (s *Session) Navigate(ctx context.Context, url string) error {
	navCtx, cancel := context.WithTimeout(ctx, s.navTimeout)
	defer cancel()
	p := s.page.Context(navCtx)

	if err := p.Navigate(url); err != nil {
		return navError(err, "navigation to target URL failed")
	}
	if err := p.WaitDOMStable(domStableWindow, 0.1); err != nil {
		return navError(err, "page did not settle")
	}
	return nil
}

// CapturedResponse is one network response observed during a CaptureReload.
type CapturedResponse struct {
	URL      string
	MIMEType string
	Size     int64
	Type     string
}

// CaptureReload registers network listeners, reloads the run's page, and
// returns every response captured until the reload settled. Registering the
// listener and triggering the reload are one unit here on purpose: calling
// them separately in the wrong order silently yields an empty capture.
//
// Sizes are finalised from loading-finished events, which carry the real
// encoded length; the response event's length is often still zero.
//
// On timeout the partial capture accumulated so far is returned together
// with the error, so the caller can keep what was seen.
func (s *Session) CaptureReload(ctx context.Context) ([]CapturedResponse, error) {
	capCtx, cancel := context.WithTimeout(ctx, s.navTimeout)
	defer cancel()
	p := s.page.Context(capCtx)

	var mu sync.Mutex
	var order []proto.NetworkRequestID
	byID := make(map[proto.NetworkRequestID]*CapturedResponse)

	wait := p.EachEvent(
		func(e *proto.NetworkResponseReceived) {
			mu.Lock()
			defer mu.Unlock()
			if _, seen := byID[e.RequestID]; seen {
				return
			}
			byID[e.RequestID] = &CapturedResponse{
				URL:      e.Response.URL,
				MIMEType: e.Response.MIMEType,
				Size:     int64(e.Response.EncodedDataLength),
				Type:     string(e.Type),
			}
			order = append(order, e.RequestID)
		},
		func(e *proto.NetworkLoadingFinished) {
			mu.Lock()
			defer mu.Unlock()
			if r, ok := byID[e.RequestID]; ok && e.EncodedDataLength > 0 {
				r.Size = int64(e.EncodedDataLength)
			}
		},
	)
	go wait()

	reloadErr := p.Reload()
	if reloadErr == nil {
		reloadErr = p.WaitDOMStable(domStableWindow, 0.1)
	}
	if reloadErr == nil {
		// Let straggling responses land before tearing the listener down.
		select {
		case <-time.After(captureSettle):
		case <-capCtx.Done():
			reloadErr = capCtx.Err()
		}
	}
	cancel() // stops the event listener

	mu.Lock()
	captured := make([]CapturedResponse, 0, len(order))
	for _, id := range order {
		captured = append(captured, *byID[id])
	}
	mu.Unlock()

	if reloadErr != nil {
		return captured, navError(reloadErr, "page reload did not settle")
	}
	return captured, nil
}

// HTML returns the page's current rendered HTML.
func (s *Session) HTML(ctx context.Context) (string, error) {
	return s.page.Context(ctx).HTML()
}

// FontFaces reads the page's loaded font-face set via document.fonts.
func (s *Session) FontFaces(ctx context.Context) ([]models.FontFace, error) {
	res, err := s.page.Context(ctx).Eval(
		`() => [...document.fonts].map(f => ({family: f.family, status: f.status}))`,
	)
	if err != nil {
		return nil, models.NewAuditError(models.ErrCodeProbe, "reading document.fonts failed", err)
	}
	return decodeFontFaces(res.Value), nil
}

// decodeFontFaces converts the document.fonts eval result into FontFace
// values.
func decodeFontFaces(v gson.JSON) []models.FontFace {
	faces := []models.FontFace{}
	for _, item := range v.Arr() {
		faces = append(faces, models.FontFace{
			Family: item.Get("family").Str(),
			Status: item.Get("status").Str(),
		})
	}
	return faces
}

// Cookies returns the session's cookie jar.
func (s *Session) Cookies(ctx context.Context) ([]*proto.NetworkCookie, error) {
	return s.page.Context(ctx).Cookies(nil)
}

// flattenHeaders converts proto headers into a plain map with lower-cased
// keys, which is what the header probes compare against.
func flattenHeaders(headers proto.NetworkHeaders) map[string]string {
	flat := make(map[string]string, len(headers))
	for k, v := range headers {
		flat[strings.ToLower(k)] = v.Str()
	}
	return flat
}

func headerValue(headers proto.NetworkHeaders, name string) string {
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v.Str()
		}
	}
	return ""
}

// navError wraps raw navigation errors, keeping timeouts distinguishable.
func navError(err error, msg string) *models.AuditError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return models.NewAuditError(models.ErrCodeTimeout, msg, err)
	}
	return models.NewAuditError(models.ErrCodeNavigation, msg, err)
}
