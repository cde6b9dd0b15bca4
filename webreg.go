// Package webreg is a client for UC San Diego's WebReg course
// registration portal. It speaks the portal's undocumented JSON and
// form endpoints, reusing the session cookies of an already
// authenticated browser session, and normalizes the portal's flat
// per-meeting responses into usable section models.
//
// The client never authenticates on its own and never retries: every
// method issues exactly one logical operation with the cookies it was
// given.
package webreg

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tritonlabs/webreg/types"
)

const defaultTimeout = 30 * time.Second

// Client holds the session cookies and connection settings shared by
// every request. It is safe for concurrent use; cookies can be swapped
// at any time with SetCookies when the session is refreshed externally.
type Client struct {
	http              *http.Client
	baseURL           string
	userAgent         string
	defaultTerm       string
	timeout           time.Duration
	closeAfterRequest bool
	log               *logrus.Entry

	mu      sync.RWMutex
	cookies string
}

// New builds a client with default settings. Use Builder for anything
// beyond cookies and an HTTP client.
func New(httpClient *http.Client, cookies string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		http:      httpClient,
		baseURL:   defaultBaseURL,
		cookies:   cookies,
		userAgent: defaultUserAgent,
		timeout:   defaultTimeout,
		log:       logrus.NewEntry(logrus.StandardLogger()),
	}
}

// Builder configures a Client.
type Builder struct {
	httpClient        *http.Client
	baseURL           string
	cookies           string
	userAgent         string
	defaultTerm       string
	timeout           time.Duration
	closeAfterRequest bool
	rateLimit         float64
	log               *logrus.Entry
}

func NewBuilder() *Builder {
	return &Builder{
		baseURL:   defaultBaseURL,
		userAgent: defaultUserAgent,
		timeout:   defaultTimeout,
	}
}

// WithBaseURL points the client at a different host, such as a local
// stand-in for the portal.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.baseURL = baseURL
	return b
}

// WithCookies sets the session cookies, exactly as found in the Cookie
// header of an authenticated portal session.
func (b *Builder) WithCookies(cookies string) *Builder {
	b.cookies = cookies
	return b
}

// WithDefaultTerm sets the term used by DefaultRequest, e.g. `FA23`.
func (b *Builder) WithDefaultTerm(term string) *Builder {
	b.defaultTerm = term
	return b
}

func (b *Builder) WithUserAgent(userAgent string) *Builder {
	b.userAgent = userAgent
	return b
}

func (b *Builder) WithTimeout(timeout time.Duration) *Builder {
	b.timeout = timeout
	return b
}

func (b *Builder) WithHTTPClient(httpClient *http.Client) *Builder {
	b.httpClient = httpClient
	return b
}

// WithRateLimit spaces requests out to at most rps requests per second,
// backing off further whenever the portal answers 429.
func (b *Builder) WithRateLimit(rps float64) *Builder {
	b.rateLimit = rps
	return b
}

// CloseAfterRequest makes every request carry `Connection: close`. Long
// polling loops are gentler on the portal when they do not hold
// connections open.
func (b *Builder) CloseAfterRequest(close bool) *Builder {
	b.closeAfterRequest = close
	return b
}

func (b *Builder) WithLogger(log *logrus.Entry) *Builder {
	b.log = log
	return b
}

func (b *Builder) Build() (*Client, error) {
	if b.cookies == "" {
		return nil, &types.InputError{Field: "cookies", Reason: "session cookies are required"}
	}
	httpClient := b.httpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if b.rateLimit > 0 {
		base := httpClient.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		// Copy so the limiter does not leak into a caller-owned client.
		limited := *httpClient
		limited.Transport = NewRateLimitedTransport(base, b.rateLimit)
		httpClient = &limited
	}
	log := b.log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	if b.baseURL == "" {
		b.baseURL = defaultBaseURL
	}
	return &Client{
		http:              httpClient,
		baseURL:           strings.TrimRight(b.baseURL, "/"),
		cookies:           b.cookies,
		userAgent:         b.userAgent,
		defaultTerm:       b.defaultTerm,
		timeout:           b.timeout,
		closeAfterRequest: b.closeAfterRequest,
		log:               log,
	}, nil
}

// SetCookies replaces the session cookies for all future requests.
func (c *Client) SetCookies(cookies string) {
	c.mu.Lock()
	c.cookies = cookies
	c.mu.Unlock()
}

// Cookies returns the cookies currently in use.
func (c *Client) Cookies() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cookies
}

// ForTerm returns a request handle bound to the given term. The handle
// is cheap; build one per call site as needed.
func (c *Client) ForTerm(term string) *Request {
	return &Request{
		client:            c,
		term:              term,
		cookies:           c.Cookies(),
		userAgent:         c.userAgent,
		timeout:           c.timeout,
		closeAfterRequest: c.closeAfterRequest,
	}
}

// DefaultRequest returns a request handle bound to the client's default
// term.
func (c *Client) DefaultRequest() *Request {
	return c.ForTerm(c.defaultTerm)
}
