// Package ultramsg is the REST client for the Ultramsg WhatsApp gateway and
// the parser for the webhook payloads it delivers.
package ultramsg

import (
	"net/http"
	"strings"
	"time"

	domain "github.com/TrueSelph/ultramsg-action/domains/ultramsg"
	"github.com/sirupsen/logrus"
)

// DefaultTimeout bounds every request made by the client.
const DefaultTimeout = 10 * time.Second

// DefaultMaxMediaSize caps media downloads at 50MB.
const DefaultMaxMediaSize int64 = 50000000

// Client talks to one Ultramsg instance. It holds no mutable state after
// construction and is safe for concurrent use.
type Client struct {
	apiURL     string
	instanceID string
	token      string
	timeout    time.Duration
	maxMedia   int64
	httpClient *http.Client
	log        logrus.FieldLogger
}

type Option func(*Client)

// WithHTTPClient replaces the HTTP client. The per-request timeout is still
// applied through the request context.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithMaxMediaSize bounds the bytes DownloadMedia reads from one URL.
func WithMaxMediaSize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxMedia = n
		}
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func NewClient(creds domain.Credentials, opts ...Option) *Client {
	c := &Client{
		apiURL:     strings.TrimRight(creds.APIURL, "/"),
		instanceID: creds.InstanceID,
		token:      creds.Token,
		timeout:    DefaultTimeout,
		maxMedia:   DefaultMaxMediaSize,
		log:        logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	c.log = c.log.WithField("instance_id", c.instanceID)
	return c
}

// Credentials returns a copy of the credentials the client was built with.
func (c *Client) Credentials() domain.Credentials {
	return domain.Credentials{APIURL: c.apiURL, InstanceID: c.instanceID, Token: c.token}
}

func (c *Client) Timeout() time.Duration {
	return c.timeout
}

var _ domain.IGatewayClient = (*Client)(nil)
