package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/niksmo/shopfront/internal/core/domain"
	"github.com/niksmo/shopfront/internal/core/port"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrInvalidBaseURL   = errors.New("invalid base URL")
)

var _ port.ProductsFetcher = (*Client)(nil)
var _ port.RemoteCart = (*Client)(nil)

// maxErrorBody limits how much of a failed response is kept for logs.
const maxErrorBody = 512

type ClientOpt func(*clientOpts) error

type clientOpts struct {
	httpClient *http.Client
	timeout    time.Duration
	tlsConfig  *tls.Config
}

// HTTPClientOpt sets the base client. The client is copied, so other
// options never change the caller's value.
func HTTPClientOpt(c *http.Client) ClientOpt {
	return func(o *clientOpts) error {
		if c == nil {
			return errors.New("http client is nil")
		}
		o.httpClient = c
		return nil
	}
}

// TimeoutOpt limits every request. Zero means no limit.
func TimeoutOpt(d time.Duration) ClientOpt {
	return func(o *clientOpts) error {
		if d < 0 {
			return fmt.Errorf("negative timeout: %s", d)
		}
		o.timeout = d
		return nil
	}
}

func TLSConfigOpt(c *tls.Config) ClientOpt {
	return func(o *clientOpts) error {
		o.tlsConfig = c
		return nil
	}
}

// A Client talks to the remote storefront API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, opts ...ClientOpt) (Client, error) {
	const op = "NewClient"

	u, err := url.Parse(baseURL)
	if err != nil {
		return Client{}, fmt.Errorf("%s: %w: %w", op, ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return Client{}, fmt.Errorf("%s: %w: %q", op, ErrInvalidBaseURL, baseURL)
	}

	var options clientOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return Client{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	httpClient := &http.Client{}
	if options.httpClient != nil {
		c := *options.httpClient
		httpClient = &c
	}
	if options.timeout != 0 {
		httpClient.Timeout = options.timeout
	}
	if options.tlsConfig != nil {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.TLSClientConfig = options.tlsConfig
		httpClient.Transport = t
	}

	return Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}, nil
}

// FetchProducts reads the full product list.
func (c Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "Client.FetchProducts"

	var ps []Product
	err := c.do(ctx, http.MethodGet, "/products", "", nil, &ps)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		dp, err := p.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, dp)
	}
	return out, nil
}

func (c Client) Cart(
	ctx context.Context, cartID string,
) (domain.CartSnapshot, error) {
	const op = "Client.Cart"

	var cart Cart
	if err := c.do(ctx, http.MethodGet, "/cart", cartID, nil, &cart); err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	s, err := cart.ToDomain()
	if err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

func (c Client) AddToCart(
	ctx context.Context,
	cartID string,
	productID domain.ProductID,
	variant string,
) (domain.CartSnapshot, error) {
	const op = "Client.AddToCart"

	body := AddToCartRequest{ProductID: ProductID(productID), Variant: variant}

	var cart Cart
	err := c.do(ctx, http.MethodPost, "/cart/add", cartID, body, &cart)
	if err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	s, err := cart.ToDomain()
	if err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

func (c Client) do(
	ctx context.Context,
	method, path, cartID string,
	reqBody any,
	respBody any,
) error {
	log := slog.With("op", "Client.do", "method", method, "path", path)

	var body io.Reader
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cartID != "" {
		req.Header.Set(CartIDHeader, cartID)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			log.Warn("failed to close response body", "err", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return fmt.Errorf("%w: %d: %s",
			ErrUnexpectedStatus, res.StatusCode, strings.TrimSpace(string(msg)))
	}

	if err := json.NewDecoder(res.Body).Decode(respBody); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	log.Debug("request completed", "status", res.StatusCode)
	return nil
}
