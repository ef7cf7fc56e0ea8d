package communitysdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the Huddle community service. It provides access
// to the unauthenticated health probes and creates authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new community service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// WithToken creates a Session that authenticates every request with the given
// bearer token. The token is minted by the platform identity service; this
// client never refreshes it.
func (c *SDKClient) WithToken(accessToken string) *Session {
	return &Session{client: c, accessToken: accessToken}
}

// Session performs authenticated operations against the community service.
type Session struct {
	client      *SDKClient
	accessToken string
}
