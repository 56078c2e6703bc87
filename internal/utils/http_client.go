package utils

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"
)

// HTTPClientOption configures the client returned by NewHTTPClient.
type HTTPClientOption func(*httpClientConfig)

type httpClientConfig struct {
	timeout             time.Duration
	dialTimeout         time.Duration
	tlsHandshakeTimeout time.Duration
	maxIdleConns        int
	idleConnTimeout     time.Duration
}

// WithTimeout bounds the whole request including reading the body.
func WithTimeout(d time.Duration) HTTPClientOption {
	return func(c *httpClientConfig) { c.timeout = d }
}

// WithDialTimeout bounds connection establishment.
func WithDialTimeout(d time.Duration) HTTPClientOption {
	return func(c *httpClientConfig) { c.dialTimeout = d }
}

// WithMaxIdleConns sets the idle connection pool size.
func WithMaxIdleConns(n int) HTTPClientOption {
	return func(c *httpClientConfig) { c.maxIdleConns = n }
}

// NewHTTPClient builds a client for calls to external collaborators. Every call is time-bounded.
func NewHTTPClient(opts ...HTTPClientOption) *http.Client {
	cfg := &httpClientConfig{
		timeout:             10 * time.Second,
		dialTimeout:         3 * time.Second,
		tlsHandshakeTimeout: 3 * time.Second,
		maxIdleConns:        20,
		idleConnTimeout:     90 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: cfg.dialTimeout, KeepAlive: 30 * time.Second}).DialContext,
		TLSHandshakeTimeout: cfg.tlsHandshakeTimeout,
		MaxIdleConns:        cfg.maxIdleConns,
		IdleConnTimeout:     cfg.idleConnTimeout,
	}

	return &http.Client{Timeout: cfg.timeout, Transport: transport}
}

// RedactURL replaces a *url.Error with its operation and cause, dropping the request URL.
// Collaborator endpoints carry credentials in their path.
func RedactURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s request: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
