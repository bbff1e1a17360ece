// Package netx holds the JSON-over-HTTP plumbing used by the API client.
package netx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBody caps how much of an error response is kept for messages.
const maxErrorBody = 64 << 10

// Response is a finished HTTP exchange with its body already read.
type Response struct {
	StatusCode int
	Body       []byte
}

// DoJSON sends body (if not nil) as JSON and reads the whole response.
// Transport failures are returned as errors; HTTP error statuses are not.
func DoJSON(ctx context.Context, c *http.Client, method, url string, body any, header http.Header) (*Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var src io.Reader = resp.Body
	if resp.StatusCode >= http.StatusBadRequest {
		src = io.LimitReader(resp.Body, maxErrorBody)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}

// Decode unmarshals the response body into target.
func (r *Response) Decode(target any) error {
	if err := json.Unmarshal(r.Body, target); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}
