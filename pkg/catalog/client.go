package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/gtd_storefront/internal/models"
)

const (
	// DefaultBaseURL is the public dummyjson product API.
	DefaultBaseURL = "https://dummyjson.com"
)

// Config holds the client settings.
type Config struct {
	BaseURL string
	// Timeout of zero keeps the transport default (no client-side deadline).
	Timeout time.Duration
	Debug   bool
}

// Client is a minimal HTTP client for the remote product catalog. It never
// retries and sends no authentication.
type Client struct {
	httpClient *http.Client
	baseURL    string
	debug      bool
}

// NewClient constructs a new catalog client.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    baseURL,
		debug:      cfg.Debug,
	}
}

// ListProducts returns the full product list.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var resp ListResponse
	if err := c.doRequest(ctx, http.MethodGet, "/products", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// Ping checks that the catalog answers a minimal list request.
func (c *Client) Ping(ctx context.Context) error {
	var resp ListResponse
	return c.doRequest(ctx, http.MethodGet, "/products?limit=1", nil, &resp)
}

// GetProduct returns a single product by id.
func (c *Client) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	var p models.Product
	if err := c.doRequest(ctx, http.MethodGet, "/products/"+strconv.Itoa(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct submits a new product. The returned resource is informational;
// callers do not rely on the id it carries.
func (c *Client) CreateProduct(ctx context.Context, payload models.ProductPayload) (*models.Product, error) {
	var p models.Product
	if err := c.doRequest(ctx, http.MethodPost, "/products/add", payload, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProduct patches an existing product.
func (c *Client) UpdateProduct(ctx context.Context, id int, payload models.ProductPayload) (*models.Product, error) {
	var p models.Product
	if err := c.doRequest(ctx, http.MethodPatch, "/products/"+strconv.Itoa(id), payload, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// doRequest performs the HTTP call with an optional JSON body and decodes the
// JSON response into result.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body any, result any) error {
	var reader io.Reader
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	if c.debug {
		ev := log.Debug().Str("method", method).Str("endpoint", c.baseURL+endpoint)
		if payload != nil {
			ev = ev.RawJSON("request", payload)
		}
		ev.Msg("[CATALOG] Outgoing request")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("endpoint", endpoint).
			Int("status_code", resp.StatusCode).
			Int("bytes", len(respBody)).
			Msg("[CATALOG] Incoming response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
