package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// CredentialSource is the read side of the credential store. The pipeline
// only ever reads the latest value; it never writes or validates.
type CredentialSource interface {
	Get() string
}

// Client is the single request pipeline every remote call goes through. It
// attaches the credential (when present) and maps response statuses onto the
// error taxonomy; it never retries and never refreshes.
type Client struct {
	base *url.URL
	http *http.Client
}

// New builds a client for the given base URL. An empty base URL is a
// configuration error: the program cannot do anything without one.
func New(baseURL string, creds CredentialSource) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("missing base URL (set --base-url or SHOESTERAJ_BASE_URL)")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host required", baseURL)
	}
	u.Path = strings.TrimRight(u.Path, "/")

	return &Client{
		base: u,
		http: &http.Client{
			Timeout:   30 * time.Second,
			Transport: &tokenTransport{creds: creds, next: http.DefaultTransport},
		},
	}, nil
}

// tokenTransport sets the Authorization header on every outgoing request
// when a credential exists. The request is cloned first: http.RoundTripper
// implementations must not mutate the caller's request.
type tokenTransport struct {
	creds CredentialSource
	next  http.RoundTripper
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	tok := ""
	if t.creds != nil {
		tok = t.creds.Get()
	}
	if tok == "" || req.Header.Get("Authorization") != "" {
		return t.next.RoundTrip(req)
	}
	out := req.Clone(req.Context())
	out.Header.Set("Authorization", "Token "+tok)
	return t.next.RoundTrip(out)
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = u.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do issues one request. body (when non-nil) is JSON-encoded; out (when
// non-nil) receives the decoded 2xx response body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	endpoint := c.endpoint(path, query)
	var req *http.Request
	var err error
	if rd != nil {
		req, err = http.NewRequestWithContext(ctx, method, endpoint, rd)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, endpoint, nil)
	}
	if err != nil {
		return err
	}
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{URL: endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
