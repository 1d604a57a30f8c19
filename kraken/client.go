package kraken

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/xyths/hs/logger"
	"github.com/xyths/kraken/exchange"
	"go.uber.org/zap"
)

var _ exchange.RestAPI = (*Client)(nil)

// Client talks to the REST API. It holds only immutable configuration and is
// safe for concurrent use; every call builds, signs and sends its own request.
type Client struct {
	config Config

	signer    *Signer
	nonce     *NonceGenerator
	transport Transport

	Sugar *zap.SugaredLogger
}

// New validates the credentials and builds a client. Key and secret must be
// given together; without them only public requests are possible.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg = cfg.withDefaults()
	if (cfg.Key == "") != (cfg.Secret == "") {
		return nil, configError("new client", errors.New("api key and secret must be given together"))
	}
	c := &Client{
		config: cfg,
		nonce:  NewNonceGenerator(),
		Sugar:  logger.Sugar,
	}
	if cfg.Secret != "" {
		signer, err := NewSigner(cfg.Secret)
		if err != nil {
			return nil, err
		}
		c.signer = signer
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = NewHTTPTransport(cfg.Timeout)
	}
	if c.Sugar == nil {
		c.Sugar = zap.NewNop().Sugar()
	}
	return c, nil
}

// NewFromKeyPair builds a client from the shared key pair config.
func NewFromKeyPair(pair exchange.APIKeyPair, opts ...Option) (*Client, error) {
	return New(Config{
		Key:    pair.ApiKey,
		Secret: pair.SecretKey,
		Host:   pair.Domain,
		Otp:    pair.Otp,
	}, opts...)
}

func (c *Client) ExchangeName() string { return "kraken" }

// CanPrivate reports whether the client holds credentials.
func (c *Client) CanPrivate() bool {
	return c.signer != nil
}

func (c *Client) Config() Config {
	cfg := c.config
	cfg.Secret = ""
	return cfg
}

// PublicRequest posts params to the public resource. No auth headers are sent.
func (c *Client) PublicRequest(ctx context.Context, resource string, params Params) (*Result, error) {
	path := PublicPath(c.config.Version, resource)
	body := params.Encode()
	header := c.baseHeader()
	return c.send(ctx, resource, path, header, body)
}

// PrivateRequest signs and posts params to the private method. params is not
// modified: a fresh nonce goes into a copy.
func (c *Client) PrivateRequest(ctx context.Context, method string, params Params) (*Result, error) {
	if !c.CanPrivate() {
		return nil, configError(method, errors.New("private request without api credentials"))
	}
	p := params.Clone()
	nonce := c.nonce.Next()
	p.SetFirst("nonce", nonce)
	if c.config.Otp != "" && !p.Has("otp") {
		p.Set("otp", c.config.Otp)
	}

	path := PrivatePath(c.config.Version, method)
	body := p.Encode()
	header := c.baseHeader()
	header.Set(headerKey, c.config.Key)
	header.Set(headerSign, c.signer.Sign(path, nonce, body))
	return c.send(ctx, method, path, header, body)
}

func (c *Client) baseHeader() http.Header {
	h := make(http.Header)
	h.Set(headerContentType, contentTypeForm)
	h.Set(headerUserAgent, c.config.UserAgent)
	return h
}

func (c *Client) send(ctx context.Context, op, path string, header http.Header, body string) (*Result, error) {
	req := &Request{
		Method: POST,
		URL:    strings.TrimRight(c.config.Host, "/") + path,
		Header: header,
		Body:   body,
	}
	start := time.Now()
	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		c.Sugar.Debugw("request failed", "path", path, "elapsed", time.Since(start), "error", err)
		return nil, transportError(op, err)
	}
	c.Sugar.Debugw("request done", "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))
	return newResult(resp), nil
}
