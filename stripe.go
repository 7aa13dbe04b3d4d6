package stripekit

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/stripe/stripe-go/v72"
)

// Mode denotes which of the two secrets authenticates a request.
type Mode uint8

const (
	ModeLive Mode = iota
	ModeTest
)

// Client is a simple HTTP client for the Stripe API. Each operation on the
// Client assembles the parameters for a single resource and action, and
// sends them through the same dispatch path, returning the raw Response
// from Stripe.
//
// A Client is safe for concurrent use.
type Client struct {
	conf  Config
	test  atomic.Bool
	http  *http.Client
	log   zerolog.Logger
	store Store
}

// Response is the raw response received from Stripe. The Body is returned
// verbatim, whatever the StatusCode, so an error payload from Stripe looks
// like any other Response until it is inspected.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the http.Client used for sending requests. The given
// client is used as is, so Config.InsecureSkipVerify has no effect on it.
func WithHTTPClient(cli *http.Client) Option {
	return func(c *Client) {
		c.http = cli
	}
}

// WithLogger sets the logger for the Client. By default nothing is logged.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithStore sets the Store that every dispatched request is recorded in.
func WithStore(s Store) Option {
	return func(c *Client) {
		c.store = s
	}
}

func (m Mode) String() string {
	if m == ModeTest {
		return "test"
	}
	return "live"
}

func respCode2xx(code int) bool { return code >= 200 && code < 300 }

// New configures a new Client with the given Config.
func New(conf Config, opts ...Option) *Client {
	c := &Client{
		conf: conf.withDefaults(),
		log:  zerolog.Nop(),
	}

	c.test.Store(conf.TestMode)

	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		c.http = newHTTPClient(c.conf.InsecureSkipVerify)

		if c.conf.InsecureSkipVerify {
			c.log.Warn().Msg("TLS certificate verification is disabled")
		}
	}
	return c
}

func newHTTPClient(insecure bool) *http.Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()

	if insecure {
		if tr.TLSClientConfig == nil {
			tr.TLSClientConfig = &tls.Config{}
		}
		tr.TLSClientConfig.InsecureSkipVerify = true
	}
	return &http.Client{Transport: tr}
}

// Config returns a copy of the Client's configuration.
func (c *Client) Config() Config { return c.conf }

// SetTestMode switches the Client between the test and live secrets. This
// affects every request sent after the call returns.
func (c *Client) SetTestMode(test bool) { c.test.Store(test) }

// Mode returns the Client's current Mode.
func (c *Client) Mode() Mode {
	if c.test.Load() {
		return ModeTest
	}
	return ModeLive
}

func (c *Client) secret(m Mode) string {
	if m == ModeTest {
		return c.conf.TestSecret
	}
	return c.conf.LiveSecret
}

func (c *Client) url(uri string) string {
	return strings.TrimSuffix(c.conf.Endpoint, "/") + "/v1/" + strings.TrimPrefix(uri, "/")
}

// Send sends the given Request to Stripe. This is the single dispatch path
// used by every operation on the Client, and is exported for calling
// endpoints the Client has no operation for.
func (c *Client) Send(ctx context.Context, r Request) (*Response, error) {
	return c.send(ctx, r)
}

func (c *Client) send(ctx context.Context, r Request) (*Response, error) {
	mode := c.Mode()
	secret := c.secret(mode)

	if secret == "" {
		return nil, fmt.Errorf("stripekit: %s: %w", mode, ErrMissingSecret)
	}

	url := c.url(r.URI())

	var body io.Reader

	if s := r.Body(); s != "" {
		body = strings.NewReader(s)
	}

	req, err := http.NewRequestWithContext(ctx, string(r.Method), url, body)

	if err != nil {
		return nil, &TransportError{Method: r.Method, URL: url, Err: err}
	}

	req.SetBasicAuth(secret, "")

	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if c.conf.Version != "" {
		req.Header.Set("Stripe-Version", c.conf.Version)
	}

	call := &Call{
		Method:  r.Method,
		Path:    r.Path,
		Mode:    mode,
		Started: time.Now(),
	}

	resp, err := c.do(req)

	call.Duration = time.Since(call.Started)

	if err != nil {
		call.Err = err.Error()
		c.record(call)

		c.log.Debug().
			Str("method", string(r.Method)).
			Str("path", r.Path).
			Stringer("mode", mode).
			Err(err).
			Msg("request failed")
		return nil, &TransportError{Method: r.Method, URL: url, Err: err}
	}

	call.StatusCode = resp.StatusCode
	c.record(call)

	c.log.Debug().
		Str("method", string(r.Method)).
		Str("path", r.Path).
		Stringer("mode", mode).
		Int("status", resp.StatusCode).
		Dur("elapsed", call.Duration).
		Msg("request sent")
	return resp, nil
}

func (c *Client) do(req *http.Request) (*Response, error) {
	resp, err := c.http.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)

	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       b,
	}, nil
}

func (c *Client) record(call *Call) {
	if c.store == nil {
		return
	}

	if err := c.store.LogRequest(call); err != nil {
		c.log.Warn().Err(err).Str("path", call.Path).Msg("failed to log request")
	}
}

// OK returns whether the Response has a 2xx status code.
func (r *Response) OK() bool { return respCode2xx(r.StatusCode) }

// Decode decodes the JSON body of the Response into the given value.
func (r *Response) Decode(v interface{}) error { return json.Unmarshal(r.Body, v) }

// Err returns the error described by the body of the Response, if the
// Response does not have a 2xx status code. The error is a *stripe.Error
// decoded from the body, or a plain error if the body could not be decoded.
func (r *Response) Err() error {
	if r.OK() {
		return nil
	}

	var payload struct {
		Error *stripe.Error `json:"error"`
	}

	if err := json.Unmarshal(r.Body, &payload); err != nil || payload.Error == nil {
		return fmt.Errorf("stripekit: unexpected response %d", r.StatusCode)
	}

	payload.Error.HTTPStatusCode = r.StatusCode
	return payload.Error
}
