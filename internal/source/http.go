package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxBody bounds how much of a result file is read.
const maxBody = 1 << 20

type HTTPConfig struct {
	// Total timeout for the entire request (includes redirects, reading body, etc).
	// A context deadline can still override this.
	Timeout time.Duration

	// Transport / dial timeouts.
	DialTimeout     time.Duration
	KeepAlive       time.Duration
	TLSHandshake    time.Duration
	ResponseHeader  time.Duration
	IdleConnTimeout time.Duration

	MaxIdleConns        int
	MaxIdleConnsPerHost int

	UserAgent string
}

func DefaultHTTPConfig() HTTPConfig {
	return HTTPConfig{
		Timeout:             30 * time.Second,
		DialTimeout:         5 * time.Second,
		KeepAlive:           30 * time.Second,
		TLSHandshake:        5 * time.Second,
		ResponseHeader:      10 * time.Second,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConns:        16,
		MaxIdleConnsPerHost: 8,
		UserAgent:           "roundboard",
	}
}

// NewHTTPClient builds a client with explicit transport timeouts.
func NewHTTPClient(cfg HTTPConfig) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: cfg.KeepAlive,
	}

	tr := &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: dialer.DialContext,

		ForceAttemptHTTP2: true,

		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,

		TLSHandshakeTimeout:   cfg.TLSHandshake,
		ResponseHeaderTimeout: cfg.ResponseHeader,
	}

	return &http.Client{
		Transport: tr,
		Timeout:   cfg.Timeout,
	}
}

// HTTP fetches files from a web server or object store bucket.
type HTTP struct {
	base      *url.URL
	prefix    string
	client    *http.Client
	userAgent string
}

// NewHTTP creates a source rooted at baseURL. prefix is a folder such as
// "results/".
func NewHTTP(baseURL, prefix string, cfg HTTPConfig) (*HTTP, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid source url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid source url scheme: %s", u.Scheme)
	}

	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	return &HTTP{
		base:      u,
		prefix:    prefix,
		client:    NewHTTPClient(cfg),
		userAgent: cfg.UserAgent,
	}, nil
}

// URL returns the address a file name resolves to.
func (h *HTTP) URL(name string) string {
	return h.base.ResolveReference(&url.URL{Path: h.prefix + name}).String()
}

func (h *HTTP) Fetch(ctx context.Context, name string) (Resource, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL(name), nil)
	if err != nil {
		return Resource{}, &TransportError{Name: name, Err: err}
	}

	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}

	// Published files change during the day; never accept a cached copy.
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := h.client.Do(req)
	if err != nil {
		return Resource{}, &TransportError{Name: name, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusGone:
		return Resource{}, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return Resource{}, &TransportError{Name: name, Err: errors.New(resp.Status)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return Resource{}, &TransportError{Name: name, Err: err}
	}

	res := Resource{Body: string(body)}

	if lm := resp.Header.Get("Last-Modified"); lm != "" {
		if t, err := http.ParseTime(lm); err == nil {
			res.ModTime = t
		}
	}

	return res, nil
}
