package kraken

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Config is captured by value at construction and never changes afterwards.
type Config struct {
	Key    string `json:"key"`
	Secret string `json:"secret"` // base64, as issued by the exchange

	Host    string        `json:"host"`
	Version int           `json:"version"`
	Timeout time.Duration `json:"timeout"`

	UserAgent string `json:"userAgent"`
	// Otp is sent as the otp parameter of private requests when the key has
	// two-factor authentication enabled.
	Otp string `json:"otp"`
}

func (c Config) withDefaults() Config {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	return c
}

type Option func(*Client)

// WithTransport replaces the default HTTP transport.
func WithTransport(t Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithHTTPClient keeps the default transport but uses hc for the round trips.
// Config.Timeout is ignored in favour of hc's own settings. A nil hc is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc == nil {
			return
		}
		c.transport = &HTTPTransport{Client: hc}
	}
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Client) {
		c.Sugar = l
	}
}

func WithNonceGenerator(g *NonceGenerator) Option {
	return func(c *Client) {
		if g != nil {
			c.nonce = g
		}
	}
}
