package drawable

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/facebookgo/httpcontrol"
	"github.com/golang/groupcache/singleflight"
)

// Loader fetches the encoded bytes of a drawable.
type Loader interface {
	Load(ctx context.Context, d Descriptor) ([]byte, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, d Descriptor) ([]byte, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, d Descriptor) ([]byte, error) {
	return f(ctx, d)
}

// Default network client settings.
const (
	DefaultRequestTimeout = time.Minute
	DefaultMaxTries       = 3
)

// NewHTTPClient returns a client whose transport times out requests after
// timeout and retries failed GETs up to maxTries times. Zero values select
// the defaults. stats, when non-nil, receives per-request statistics.
func NewHTTPClient(timeout time.Duration, maxTries uint, stats func(*httpcontrol.Stats)) *http.Client {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	if maxTries == 0 {
		maxTries = DefaultMaxTries
	}
	return &http.Client{
		Transport: &httpcontrol.Transport{
			Proxy:          http.ProxyFromEnvironment,
			RequestTimeout: timeout,
			MaxTries:       maxTries,
			Stats:          stats,
		},
	}
}

// NetworkLoader downloads drawables over HTTP. Concurrent loads of the same
// URL share one request.
type NetworkLoader struct {
	client *http.Client
	group  singleflight.Group

	// MaxBytes bounds the body size; zero means unbounded.
	MaxBytes int64
}

// NewNetworkLoader returns a loader using client, or a client from
// NewHTTPClient with default settings when client is nil.
func NewNetworkLoader(client *http.Client) *NetworkLoader {
	if client == nil {
		client = NewHTTPClient(0, 0, nil)
	}
	return &NetworkLoader{client: client}
}

// Load performs a GET of d.URL. Any non-2xx status is an error.
func (l *NetworkLoader) Load(ctx context.Context, d Descriptor) ([]byte, error) {
	if d.URL == "" {
		return nil, fmt.Errorf("drawable: %s: empty url", d.Type)
	}
	v, err := l.group.Do(d.URL, func() (interface{}, error) {
		return l.fetch(ctx, d.URL)
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (l *NetworkLoader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("drawable: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("drawable: fetch %s: %w", url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("drawable: fetch %s: %s", url, resp.Status)
	}
	var body io.Reader = resp.Body
	if l.MaxBytes > 0 {
		body = io.LimitReader(resp.Body, l.MaxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("drawable: read %s: %w", url, err)
	}
	if l.MaxBytes > 0 && int64(len(data)) > l.MaxBytes {
		return nil, fmt.Errorf("drawable: fetch %s: body exceeds %d bytes", url, l.MaxBytes)
	}
	return data, nil
}

// MemoryLoader decodes the inline base64 payload of a descriptor. A data
// URL prefix ("data:image/png;base64,") is accepted and skipped.
type MemoryLoader struct{}

// Load decodes d.Data.
func (MemoryLoader) Load(_ context.Context, d Descriptor) ([]byte, error) {
	payload := d.Data
	if strings.HasPrefix(payload, "data:") {
		if i := strings.Index(payload, ","); i >= 0 {
			payload = payload[i+1:]
		}
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, fmt.Errorf("drawable: %s: %w", d.Type, err)
	}
	return data, nil
}
