package academysdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the academy backend. It performs the
// unauthenticated calls (login, identity exchange, catalog reads) and hands
// out Sessions for bearer calls.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// Now is the clock used to decide whether a session token has expired.
	// Defaults to time.Now.
	Now func() time.Time
}

// NewSDKClient creates a new academy client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		Now: time.Now,
	}
}

// NewSession wraps a bearer token previously issued by the backend.
func (c *SDKClient) NewSession(token string) *Session {
	return &Session{client: c, token: token}
}

// NewSessionFromSource binds a Session to a token owner such as a session
// manager. The token is looked up again for every call.
func (c *SDKClient) NewSessionFromSource(ts TokenSource) *Session {
	return &Session{client: c, source: ts}
}

func (c *SDKClient) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
