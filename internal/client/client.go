// Package client is a typed HTTP client for the numlist item API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"numlist/internal/model"
)

// StatusError reports a non-2xx response.
type StatusError struct {
	Op     string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: %d %s", e.Op, e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("%s: %d %s: %s", e.Op, e.Status, http.StatusText(e.Status), e.Body)
}

type Client struct {
	Base string
	HTTP *http.Client
}

func New(base string) *Client {
	return &Client{
		Base: strings.TrimRight(strings.TrimSpace(base), "/"),
		HTTP: &http.Client{Timeout: 30 * time.Second},
	}
}

// Items fetches one page. page < 1 is sent as-is; the server coerces it.
func (c *Client) Items(ctx context.Context, page int, search string) (model.Page, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	if search != "" {
		q.Set("search", search)
	}
	var out model.Page
	if err := c.do(ctx, http.MethodGet, "/api/items?"+q.Encode(), nil, &out); err != nil {
		return model.Page{}, err
	}
	if out.Items == nil {
		out.Items = []model.Item{}
	}
	return out, nil
}

func (c *Client) SetOrder(ctx context.Context, ids []int64) (model.Ack, error) {
	if ids == nil {
		ids = []int64{}
	}
	var out model.Ack
	err := c.do(ctx, http.MethodPost, "/api/order", model.OrderRequest{Order: ids}, &out)
	return out, err
}

func (c *Client) SetSelection(ctx context.Context, ids []int64) (model.Ack, error) {
	if ids == nil {
		ids = []int64{}
	}
	var out model.Ack
	err := c.do(ctx, http.MethodPost, "/api/select", model.SelectRequest{Selected: ids}, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	op := method + " " + strings.SplitN(path, "?", 2)[0]

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.Base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Op: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
