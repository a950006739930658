package probes

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	tls2 "github.com/refraction-networking/utls"
	"golang.org/x/time/rate"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// maxFetchBytes caps how much of a response body is counted when sizing.
const maxFetchBytes = 20 * 1024 * 1024

// FetchClient checks outbound URLs (link targets, image sources) with a
// Chrome TLS fingerprint so strict origins answer the way they answer a
// real browser. All fetches are rate limited; none of them touch the
// browser session.
type FetchClient struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewFetchClient creates a FetchClient with the given sustained rate and
// per-request timeout.
func NewFetchClient(rps float64, burst int, timeout time.Duration) *FetchClient {
	transport := &http.Transport{
		DialTLSContext: dialTLSChrome,
	}
	return &FetchClient{
		client:  &http.Client{Transport: transport, Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Status fetches url and returns its HTTP status code. A transport error
// returns status 0 and the error.
func (f *FetchClient) Status(ctx context.Context, url string) (int, error) {
	resp, err := f.get(ctx, url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxFetchBytes))
	return resp.StatusCode, nil
}

// Size fetches url and returns the body size in bytes, counted from the
// wire rather than trusted from Content-Length.
func (f *FetchClient) Size(ctx context.Context, url string) (int64, error) {
	resp, err := f.get(ctx, url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return 0, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	n, err := io.Copy(io.Discard, io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return 0, fmt.Errorf("reading body: %w", err)
	}
	return n, nil
}

func (f *FetchClient) get(ctx context.Context, url string) (*http.Response, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", chromeUA)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	return f.client.Do(req)
}

// dialTLSChrome establishes a TLS connection using a Chrome fingerprint via utls.
func dialTLSChrome(ctx context.Context, network, addr string) (net.Conn, error) {
	dialer := &net.Dialer{}
	rawConn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	host, _, _ := net.SplitHostPort(addr)
	tlsConn := tls2.UClient(rawConn, &tls2.Config{
		ServerName: host,
	}, tls2.HelloChrome_Auto)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		rawConn.Close()
		return nil, err
	}
	return tlsConn, nil
}
