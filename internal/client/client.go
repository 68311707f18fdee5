// Package client talks to the products and users REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrUnreachable = errors.New("No se pudo conectar con el servidor. Comprueba que está arrancado")

// APIError is a non-2xx answer, built from the server's error body.
type APIError struct {
	Status  int
	Message string
	Details []string
}

func (e *APIError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("%d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("%d: %s (%s)", e.Status, e.Message, strings.Join(e.Details, "; "))
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// ListOptions maps to the q, talla and orden query parameters. Empty fields
// are not sent.
type ListOptions struct {
	Search string
	Size   string
	Order  string
}

func (o ListOptions) values() url.Values {
	v := url.Values{}
	if o.Search != "" {
		v.Set("q", o.Search)
	}
	if o.Size != "" {
		v.Set("talla", o.Size)
	}
	if o.Order != "" {
		v.Set("orden", o.Order)
	}
	return v
}

type errorBody struct {
	Message string   `json:"mensaje"`
	Errors  []string `json:"errores"`
}

type successBody[T any] struct {
	Message string `json:"mensaje"`
	ID      int64  `json:"id"`
	Data    T      `json:"datos"`
}

func idPath(prefix string, id int64) string {
	return prefix + "/" + strconv.FormatInt(id, 10)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	target := c.BaseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// send performs the request and turns transport failures and non-2xx
// answers into errors. The caller owns the returned body.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	apiErr := &APIError{Status: resp.StatusCode, Message: resp.Status}
	var eb errorBody
	if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil && eb.Message != "" {
		apiErr.Message = eb.Message
		apiErr.Details = eb.Errors
	}
	return nil, apiErr
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
