package client

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTokenTimeout    = 30 * time.Second
	defaultDownloadTimeout = 120 * time.Second
	defaultChunkSize       = 1 << 20
	defaultUserAgent       = "sheetpub/dev"

	// maxErrorExcerpt caps how much of a failed response body is surfaced.
	maxErrorExcerpt = 500
	// maxErrorBody caps how much of a failed response body is read at all.
	maxErrorBody = 64 << 10
)

// Client talks to the Microsoft identity platform and Microsoft Graph.
type Client struct {
	LoginURL   string
	GraphURL   string
	UserAgent  string
	HTTPClient *http.Client

	tokenTimeout    time.Duration
	downloadTimeout time.Duration
	chunkSize       int
}

// New creates a client for the given identity and Graph base URLs, e.g.
// "https://login.microsoftonline.com" and "https://graph.microsoft.com/v1.0".
func New(loginURL, graphURL string) *Client {
	return &Client{
		LoginURL:        strings.TrimRight(loginURL, "/"),
		GraphURL:        strings.TrimRight(graphURL, "/"),
		UserAgent:       defaultUserAgent,
		HTTPClient:      &http.Client{},
		tokenTimeout:    defaultTokenTimeout,
		downloadTimeout: defaultDownloadTimeout,
		chunkSize:       defaultChunkSize,
	}
}

func (c *Client) transport() http.RoundTripper {
	if c.HTTPClient != nil && c.HTTPClient.Transport != nil {
		return c.HTTPClient.Transport
	}
	return http.DefaultTransport
}

func (c *Client) tokenURL(tenant string) string {
	return c.LoginURL + "/" + quote(tenant) + "/oauth2/v2.0/token"
}

// scope is the application-permission scope for the Graph resource, e.g.
// "https://graph.microsoft.com/.default".
func (c *Client) scope() string {
	u, err := url.Parse(c.GraphURL)
	if err != nil || u.Host == "" {
		return "https://graph.microsoft.com/.default"
	}
	return u.Scheme + "://" + u.Host + "/.default"
}

// contentURL addresses a file by path in a user's drive root.
func (c *Client) contentURL(upn, drivePath string) string {
	if !strings.HasPrefix(drivePath, "/") {
		drivePath = "/" + drivePath
	}
	return c.GraphURL + "/users/" + quote(upn) + "/drive/root:" + quote(drivePath) + ":/content"
}

func (c *Client) setCommonHeaders(req *http.Request) {
	userAgent := strings.TrimSpace(c.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
}

// quote percent-encodes everything except RFC 3986 unreserved characters
// and '/'.
func quote(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if isUnreserved(ch) || ch == '/' {
			b.WriteByte(ch)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[ch>>4])
		b.WriteByte(hex[ch&0x0f])
	}
	return b.String()
}

func isUnreserved(ch byte) bool {
	switch {
	case 'a' <= ch && ch <= 'z', 'A' <= ch && ch <= 'Z', '0' <= ch && ch <= '9':
		return true
	case ch == '-' || ch == '.' || ch == '_' || ch == '~':
		return true
	default:
		return false
	}
}
