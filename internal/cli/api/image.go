package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// MaxImageBytes — предел размера картинки товара.
const MaxImageBytes = 10 << 20

type image struct {
	data        []byte
	contentType string
}

// fetchImage скачивает картинку без заголовков авторизации.
func (c *Client) fetchImage(ctx context.Context, op, rawURL string) (*image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("image request: %w", err)}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("fetch image: %w", err)}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestError{Op: op, Status: resp.StatusCode, Message: "image download failed"}
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes+1))
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("read image: %w", err)}
	}
	if len(data) > MaxImageBytes {
		return nil, &ValidationError{Field: "favorite[image]", Message: fmt.Sprintf("image larger than %d bytes", MaxImageBytes)}
	}
	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	c.log.Debugw("image fetched", "op", op, "bytes", len(data), "content_type", ct)
	return &image{data: data, contentType: ct}, nil
}
