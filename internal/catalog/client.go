package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// maxErrorBody caps how much of a failed response is kept for reporting.
const maxErrorBody = 64 * 1024

// Client talks to the remote product API rooted at BaseURL.
//
//	GET  {base}        list
//	GET  {base}/{id}   get
//	PUT  {base}/{id}   update
//	POST {base}/       create
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client. A zero timeout leaves requests bounded only
// by the caller's context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the API root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List fetches every product.
func (c *Client) List(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, "list", http.MethodGet, c.baseURL, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Get fetches a single product by id.
func (c *Client) Get(ctx context.Context, id int) (Product, error) {
	var p Product
	err := c.do(ctx, "get", http.MethodGet, c.productURL(id), nil, &p)
	return p, err
}

// Update sends a partial update for the product.
func (c *Client) Update(ctx context.Context, id int, fields UpdateFields) (Product, error) {
	var p Product
	err := c.do(ctx, "update", http.MethodPut, c.productURL(id), fields, &p)
	return p, err
}

// Create posts a new product and returns the record assigned by the server.
func (c *Client) Create(ctx context.Context, fields CreateFields) (Product, error) {
	var p Product
	err := c.do(ctx, "create", http.MethodPost, c.baseURL+"/", fields, &p)
	return p, err
}

func (c *Client) productURL(id int) string {
	return c.baseURL + "/" + strconv.Itoa(id)
}

// do performs one request. Any failure, including a body that does not
// decode, is returned as a *NetworkError.
func (c *Client) do(ctx context.Context, op, method, url string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return &NetworkError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &NetworkError{Op: op, StatusCode: resp.StatusCode, Body: bytes.TrimSpace(payload)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
