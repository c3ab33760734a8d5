// Package apiclient is the console's only path to the release backend.
package apiclient

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/nmt-console/internal/config"
)

// TokenSource yields the bearer token of the current session, if any.
type TokenSource interface {
	Token() (string, bool)
}

// Options carries the session context a Client is bound to.
type Options struct {
	Tokens TokenSource
	// OnUnauthorized runs on every 401 from the backend, whichever call got it.
	OnUnauthorized func(ctx context.Context)
}

// Factory shares one transport between the per-request clients.
type Factory struct {
	endpoint string
	http     *http.Client
	logger   *zap.Logger
}

// NewFactory builds a Factory for the configured backend.
func NewFactory(cfg config.APIConfig, logger *zap.Logger) *Factory {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	return &Factory{
		endpoint: cfg.Endpoint(),
		http:     &http.Client{Transport: transport, Timeout: cfg.Timeout()},
		logger:   logger,
	}
}

// New returns a Client bound to one session.
func (f *Factory) New(opts Options) *Client {
	rest := resty.NewWithClient(f.http).
		SetBaseURL(f.endpoint).
		SetHeader("Accept", "application/json").
		SetLogger(f.logger.Sugar())

	c := &Client{rest: rest, opts: opts}
	rest.OnBeforeRequest(c.beforeRequest)
	rest.OnAfterResponse(c.afterResponse)
	return c
}

// Client performs backend calls for one session.
type Client struct {
	rest *resty.Client
	opts Options
}

type multipartKey struct{}
type credentialExchangeKey struct{}

func withMultipart(ctx context.Context) context.Context {
	return context.WithValue(ctx, multipartKey{}, true)
}

// withCredentialExchange marks the login call, whose 401 means bad
// credentials rather than an expired session.
func withCredentialExchange(ctx context.Context) context.Context {
	return context.WithValue(ctx, credentialExchangeKey{}, true)
}

func flagged(ctx context.Context, key any) bool {
	v, _ := ctx.Value(key).(bool)
	return v
}

func (c *Client) beforeRequest(_ *resty.Client, r *resty.Request) error {
	if c.opts.Tokens != nil {
		if token, ok := c.opts.Tokens.Token(); ok {
			r.SetAuthToken(token)
		}
	}
	if flagged(r.Context(), multipartKey{}) {
		// resty writes multipart/form-data with the boundary itself.
		r.Header.Del("Content-Type")
	}
	return nil
}

func (c *Client) afterResponse(_ *resty.Client, resp *resty.Response) error {
	if !resp.IsError() {
		return nil
	}
	apiErr := Normalize(resp.StatusCode(), resp.Body())
	ctx := resp.Request.Context()
	if apiErr.Kind == KindUnauthorized && c.opts.OnUnauthorized != nil && !flagged(ctx, credentialExchangeKey{}) {
		c.opts.OnUnauthorized(ctx)
	}
	return apiErr
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.rest.R().SetContext(ctx)
}

func execute(req *resty.Request, method, path string) (*resty.Response, error) {
	resp, err := req.Execute(method, path)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) {
			return resp, apiErr
		}
		return resp, &Error{Kind: KindNetwork, Message: "release backend unreachable", Err: err}
	}
	return resp, nil
}
