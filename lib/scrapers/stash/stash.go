package stash

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http/cookiejar"
	"time"

	"stash-scrape/lib/util/restyutil"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/stash")

// ErrLoginFailed covers every way the /login handshake can fail: a
// network error, a non-2xx status, or a 2xx response that does not carry
// a session cookie. All of them abort the run before any graphql call.
var ErrLoginFailed = errors.New("stash: login failed")

// Client is an authenticated session against one stash server. It owns
// the cookie jar and headers for the process lifetime.
type Client struct {
	http *resty.Client
}

type ClientOptions struct {
	// BaseURL is the http(s)://host:port root of the server.
	BaseURL string
	// APIKey, when set, is attached to every request as an ApiKey header
	// instead of performing the login handshake.
	APIKey string
	// VerifyTLS enables certificate verification. Stash installs usually
	// run on self-signed certificates, so it defaults to off.
	VerifyTLS bool
	// Timeout bounds every HTTP call. Zero means 30 seconds.
	Timeout time.Duration
	// InstrumentOutput optionally receives wire dumps of every request.
	InstrumentOutput restyutil.InstrumentOutput
}

func NewClient(opts ClientOptions) (*Client, error) {
	client := resty.New()
	client.SetBaseURL(opts.BaseURL)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)

	if !opts.VerifyTLS {
		client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
		slog.Debug("tls certificate verification disabled")
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}
	client.SetTimeout(timeout)

	if opts.APIKey != "" {
		client.SetHeader("ApiKey", opts.APIKey)
	}

	restyutil.InstrumentClient(client, tracer, opts.InstrumentOutput)

	return &Client{http: client}, nil
}

// LoginUsernamePassword performs the form-encoded login handshake and
// keeps the resulting session cookie in the client's jar. Success is
// strictly a 2xx response carrying Set-Cookie; the response body is not
// inspected.
func (c *Client) LoginUsernamePassword(ctx context.Context, username, password string) error {
	ctx, span := tracer.Start(ctx, "client:LoginUsernamePassword")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"username":  username,
			"password":  password,
			"returnURL": "/",
		}).
		Post("/login")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "login request failed")
		return fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}
	if res.StatusCode() < 200 || res.StatusCode() >= 300 {
		span.SetStatus(codes.Error, "unexpected login status")
		return fmt.Errorf("%w: unexpected status %d", ErrLoginFailed, res.StatusCode())
	}
	if len(res.Header().Values("Set-Cookie")) == 0 {
		span.SetStatus(codes.Error, "no session cookie")
		return fmt.Errorf("%w: response carried no session cookie", ErrLoginFailed)
	}
	return nil
}

func (c *Client) call(ctx context.Context, op Operation, variables map[string]string) (any, error) {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("graphql:%s", op.Name))
	defer span.End()
	span.SetAttributes(attribute.String("operation", op.Name))

	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("content-type", "application/json").
		SetBody(NewEnvelope(op, variables)).
		Post("/graphql")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, fmt.Errorf("stash: graphql request: %w", err)
	}

	result, err := decodeResult(res.StatusCode(), res.Body(), op.ResultRoot)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode response")
		return nil, err
	}
	return result, nil
}

// ReloadScrapers asks the server to reload its scraper definitions and
// clear the scraper cache.
func (c *Client) ReloadScrapers(ctx context.Context) (bool, error) {
	result, err := c.call(ctx, BuildOperation(OpReloadScrapers), nil)
	if err != nil {
		return false, err
	}
	reloaded, ok := result.(bool)
	if !ok {
		return false, ErrEmptyResult
	}
	return reloaded, nil
}

// ScrapeSceneURL asks the server to scrape scene metadata for a url.
func (c *Client) ScrapeSceneURL(ctx context.Context, url string) (map[string]any, error) {
	return c.scrapeURL(ctx, BuildOperation(OpScrapeSceneURL), url)
}

// ScrapeGalleryURL asks the server to scrape gallery metadata for a url.
func (c *Client) ScrapeGalleryURL(ctx context.Context, url string) (map[string]any, error) {
	return c.scrapeURL(ctx, BuildOperation(OpScrapeGalleryURL), url)
}

func (c *Client) scrapeURL(ctx context.Context, op Operation, url string) (map[string]any, error) {
	result, err := c.call(ctx, op, map[string]string{"url": url})
	if err != nil {
		return nil, err
	}
	fields, ok := result.(map[string]any)
	if !ok || len(fields) == 0 {
		return nil, ErrEmptyResult
	}
	return fields, nil
}
