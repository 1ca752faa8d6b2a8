package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// TokenSource yields the bearer token for outgoing requests, if any.
// *session.Store satisfies it.
type TokenSource interface {
	Token() (string, bool)
}

// Client talks to the mood-tracking HTTP API.
type Client struct {
	baseURL      *url.URL
	http         *http.Client
	userAgent    string
	interceptors []RequestInterceptor
	logger       *zap.Logger
}

// Options configure a Client. The zero value yields a client without the
// bearer interceptor.
type Options struct {
	HTTPClient *http.Client
	// Tokens installs the bearer interceptor when non-nil.
	Tokens       TokenSource
	Logger       *zap.Logger
	UserAgent    string
	RequestIDs   bool
	Interceptors []RequestInterceptor
}

const (
	defaultBaseURL   = "http://localhost:8000"
	defaultUserAgent = "moodlog/0.1"

	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

// NewClient builds a Client rooted at baseURL.
func NewClient(baseURL string, opts Options) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	var chain []RequestInterceptor
	if opts.RequestIDs {
		chain = append(chain, RequestIDInterceptor())
	}
	chain = append(chain, opts.Interceptors...)
	if opts.Tokens != nil {
		chain = append(chain, BearerInterceptor(opts.Tokens))
	}

	return &Client{
		baseURL:      base,
		http:         httpClient,
		userAgent:    userAgent,
		interceptors: chain,
		logger:       logger.Named("api"),
	}, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// call describes a single request.
type call struct {
	method      string
	path        string
	query       string
	body        io.Reader
	contentType string
	header      http.Header
}

func (c *Client) sendJSON(ctx context.Context, method, path string, payload any) (*Response, error) {
	body, err := encodeJSON(payload)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, call{method: method, path: path, body: body, contentType: contentTypeJSON})
}

func encodeJSON(payload any) (io.Reader, error) {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return buf, nil
}

// idPath builds prefix + escaped id + suffix.
func idPath(prefix, id, suffix string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("id required")
	}
	return prefix + url.PathEscape(id) + suffix, nil
}

func (c *Client) do(ctx context.Context, in call) (*Response, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	reqURL, err := c.resolve(in.path, in.query)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, in.method, reqURL.String(), in.body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set("User-Agent", c.userAgent)
	if in.body != nil {
		contentType := in.contentType
		if contentType == "" {
			contentType = contentTypeJSON
		}
		req.Header.Set("Content-Type", contentType)
	}
	for key, values := range in.header {
		req.Header[http.CanonicalHeaderKey(key)] = append([]string(nil), values...)
	}
	for _, intercept := range c.interceptors {
		if err := intercept(req); err != nil {
			return nil, fmt.Errorf("intercept request: %w", err)
		}
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("method", in.method),
			zap.String("path", in.path),
			zap.String("request_id", req.Header.Get(requestIDHeader)),
			zap.Error(err))
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	c.logger.Debug("request finished",
		zap.String("method", in.method),
		zap.String("path", in.path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", req.Header.Get(requestIDHeader)),
		zap.Duration("elapsed", time.Since(started)))

	out := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
		Request:    req,
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, &StatusError{Method: in.method, Path: in.path, StatusCode: resp.StatusCode, Response: out}
	}
	return out, nil
}

// resolve appends path to the base URL, keeping any base path prefix.
func (c *Client) resolve(path, rawQuery string) (*url.URL, error) {
	rel, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parse path %q: %w", path, err)
	}
	u := *c.baseURL
	prefix := strings.TrimSuffix(c.baseURL.Path, "/")
	u.Path = prefix + rel.Path
	if rel.RawPath != "" {
		u.RawPath = strings.TrimSuffix(c.baseURL.EscapedPath(), "/") + rel.RawPath
	} else {
		u.RawPath = ""
	}
	u.RawQuery = rawQuery
	return &u, nil
}

// encodePairs form-encodes key/value pairs in the given order.
func encodePairs(kv ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(kv); i += 2 {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(kv[i]))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv[i+1]))
	}
	return b.String()
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
