package webreg

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Request issues portal operations bound to one term. The zero field
// values are filled from the owning Client when the request is built
// via ForTerm; the With methods override them for this handle only,
// which is how a single client can serve many sessions at once.
type Request struct {
	client            *Client
	term              string
	cookies           string
	userAgent         string
	timeout           time.Duration
	closeAfterRequest bool
}

// Term returns the term this request is bound to.
func (r *Request) Term() string {
	return r.term
}

// WithCookies overrides the session cookies for this handle only.
func (r *Request) WithCookies(cookies string) *Request {
	c := *r
	c.cookies = cookies
	return &c
}

// WithTimeout overrides the per-call timeout for this handle only.
func (r *Request) WithTimeout(timeout time.Duration) *Request {
	c := *r
	c.timeout = timeout
	return &c
}

// WithUserAgent overrides the user agent for this handle only.
func (r *Request) WithUserAgent(userAgent string) *Request {
	c := *r
	c.userAgent = userAgent
	return &c
}

// portalResponse is a fully consumed HTTP response.
type portalResponse struct {
	status int
	body   string
}

// epochMillis feeds the `_` cache-busting parameter the portal frontend
// sends on every GET.
func epochMillis() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

func (r *Request) do(ctx context.Context, method, endpoint string, query, form url.Values) (*portalResponse, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	target := r.client.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("building %s request to %s: %w", method, endpoint, err)
	}
	req.Header.Set("Cookie", r.cookies)
	req.Header.Set("User-Agent", r.userAgent)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if r.closeAfterRequest {
		req.Close = true
	}

	resp, err := r.client.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", endpoint, err)
	}
	return &portalResponse{status: resp.StatusCode, body: string(raw)}, nil
}

func (r *Request) get(ctx context.Context, endpoint string, query url.Values) (*portalResponse, error) {
	return r.do(ctx, http.MethodGet, endpoint, query, nil)
}

func (r *Request) postForm(ctx context.Context, endpoint string, form url.Values) (*portalResponse, error) {
	return r.do(ctx, http.MethodPost, endpoint, nil, form)
}

// getText is the common shape of the read endpoints: GET, then surface
// status and verification failures.
func (r *Request) getText(ctx context.Context, endpoint string, query url.Values) (string, error) {
	resp, err := r.get(ctx, endpoint, query)
	if err != nil {
		return "", err
	}
	return extractText(resp)
}

// post is the common shape of the mutating endpoints: POST a form, then
// interpret the portal's OPS/REASON envelope.
func (r *Request) post(ctx context.Context, endpoint string, form url.Values) (bool, error) {
	resp, err := r.postForm(ctx, endpoint, form)
	if err != nil {
		return false, err
	}
	return processPost(resp)
}
