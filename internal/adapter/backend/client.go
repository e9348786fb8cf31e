package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/niksmo/qkart/internal/core/domain"
	"github.com/niksmo/qkart/internal/core/port"
)

var _ port.Backend = (*Client)(nil)

const defaultTimeout = 10 * time.Second

type ClientOpt func(*clientOpts) error

type clientOpts struct {
	httpClient *http.Client
	timeout    time.Duration
}

func HTTPClientOpt(hc *http.Client) ClientOpt {
	return func(o *clientOpts) error {
		if hc == nil {
			return errors.New("http client is nil")
		}
		o.httpClient = hc
		return nil
	}
}

func TimeoutOpt(d time.Duration) ClientOpt {
	return func(o *clientOpts) error {
		if d < 0 {
			return errors.New("timeout is negative")
		}
		o.timeout = d
		return nil
	}
}

// A Client talks to the storefront REST backend.
type Client struct {
	endpoint string
	hc       *http.Client
}

func NewClient(endpoint string, opts ...ClientOpt) (Client, error) {
	const op = "NewClient"

	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return Client{}, fmt.Errorf("%s: invalid endpoint: %w", op, err)
	}

	options := clientOpts{timeout: defaultTimeout}
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return Client{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	hc := options.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: options.timeout}
	}

	return Client{endpoint: endpoint, hc: hc}, nil
}

func (c Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "Client.FetchProducts"

	var ps []Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, "", nil, &ps); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return productsToDomain(ps), nil
}

// SearchProducts returns the products matching text. The backend answers
// 404 when nothing matches; that is reported as an empty result.
func (c Client) SearchProducts(
	ctx context.Context, text string,
) ([]domain.Product, error) {
	const op = "Client.SearchProducts"

	q := url.Values{"value": []string{text}}
	var ps []Product
	err := c.do(ctx, http.MethodGet, "/products/search", q, "", nil, &ps)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []domain.Product{}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return productsToDomain(ps), nil
}

func (c Client) FetchCart(
	ctx context.Context, token string,
) ([]domain.CartRecord, error) {
	const op = "Client.FetchCart"

	var rs []CartRecord
	if err := c.do(ctx, http.MethodGet, "/cart", nil, token, nil, &rs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return recordsToDomain(rs), nil
}

func (c Client) UpdateCart(
	ctx context.Context, token, productID string, qty int,
) ([]domain.CartRecord, error) {
	const op = "Client.UpdateCart"

	body := CartRecord{ProductID: productID, Qty: qty}
	var rs []CartRecord
	if err := c.do(ctx, http.MethodPost, "/cart", nil, token, body, &rs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return recordsToDomain(rs), nil
}

func (c Client) Login(
	ctx context.Context, creds port.Credentials,
) (domain.Session, error) {
	const op = "Client.Login"

	body := Credentials{Username: creds.Username, Password: creds.Password}
	var res LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, "", body, &res)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}
	if !res.Success || res.Token == "" {
		err := &APIError{Status: http.StatusBadRequest, Message: res.Message}
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	return domain.Session{
		Token:    res.Token,
		Username: res.Username,
		Balance:  res.Balance,
	}, nil
}

func (c Client) Register(ctx context.Context, creds port.Credentials) error {
	const op = "Client.Register"

	body := Credentials{Username: creds.Username, Password: creds.Password}
	var res RegisterResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", nil, "", body, &res)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !res.Success {
		err := &APIError{Status: http.StatusBadRequest, Message: res.Message}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c Client) do(
	ctx context.Context,
	method, path string,
	query url.Values,
	token string,
	body any,
	out any,
) error {
	log := slog.With("op", "Client.do", "method", method, "path", path)

	req, err := c.newRequest(ctx, method, path, query, token, body)
	if err != nil {
		return err
	}

	res, err := c.hc.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			log.Warn("failed to close response body", "err", err)
		}
	}()

	log.Debug("response", "status", res.StatusCode)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return c.apiError(res)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", ErrUnexpected, err)
	}
	return nil
}

func (c Client) newRequest(
	ctx context.Context,
	method, path string,
	query url.Values,
	token string,
	body any,
) (*http.Request, error) {
	target, err := url.JoinPath(c.endpoint, path)
	if err != nil {
		return nil, err
	}
	if len(query) != 0 {
		target += "?" + query.Encode()
	}

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, r)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (Client) apiError(res *http.Response) error {
	apiErr := &APIError{Status: res.StatusCode}

	var er errorResponse
	b, _ := io.ReadAll(io.LimitReader(res.Body, 1<<16))
	if json.Unmarshal(b, &er) == nil {
		apiErr.Message = er.Message
	}
	return apiErr
}

func productsToDomain(ps []Product) []domain.Product {
	out := make([]domain.Product, len(ps))
	for i, p := range ps {
		out[i] = domain.Product{
			ID:       p.ID,
			Name:     p.Name,
			Category: p.Category,
			Cost:     p.Cost,
			Rating:   p.Rating,
			Image:    p.Image,
		}
	}
	return out
}

func recordsToDomain(rs []CartRecord) []domain.CartRecord {
	out := make([]domain.CartRecord, len(rs))
	for i, r := range rs {
		out[i] = domain.CartRecord{ProductID: r.ProductID, Quantity: r.Qty}
	}
	return out
}
