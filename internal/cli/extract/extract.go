package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// ErrNotConfigured — адрес сервиса извлечения не задан.
var ErrNotConfigured = errors.New("product extractor is not configured: set EXTRACTOR_URL")

const promptTemplate = `Extract product information from this URL: %s
Return a JSON object with these fields:
- name: product name
- description: short product description
- price: price as number without currency
- imageUrl: direct URL to product image
Only return the JSON, no other text and no markdown.`

// ProductInfo — поля товара, извлечённые по ссылке.
type ProductInfo struct {
	Name        string
	Description string
	Price       *decimal.Decimal
	ImageURL    string
}

// Extractor превращает ссылку на товар в ProductInfo.
type Extractor interface {
	Extract(ctx context.Context, productURL string) (ProductInfo, error)
}

type Options struct {
	URL        string // OpenAI-совместимый endpoint chat completions
	APIKey     string
	Model      string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.SugaredLogger
}

// Client вызывает OpenAI-совместимый chat completions.
type Client struct {
	url    string
	apiKey string
	model  string
	http   *http.Client
	log    *zap.SugaredLogger
}

var _ Extractor = (*Client)(nil)

func New(opts Options) *Client {
	c := &Client{url: opts.URL, apiKey: opts.APIKey, model: opts.Model, http: opts.HTTPClient, log: opts.Logger}
	if c.http == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		c.http = &http.Client{Timeout: timeout}
	}
	if c.log == nil {
		c.log = zap.NewNop().Sugar()
	}
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

func (c *Client) Extract(ctx context.Context, productURL string) (ProductInfo, error) {
	if c.url == "" {
		return ProductInfo{}, ErrNotConfigured
	}
	payload, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: fmt.Sprintf(promptTemplate, productURL)}},
	})
	if err != nil {
		return ProductInfo{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return ProductInfo{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return ProductInfo{}, fmt.Errorf("extractor request: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ProductInfo{}, fmt.Errorf("extractor read: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return ProductInfo{}, fmt.Errorf("extractor status %d: %s", resp.StatusCode, strings.TrimSpace(gjson.GetBytes(body, "error.message").String()))
	}

	content := gjson.GetBytes(body, "choices.0.message.content").String()
	c.log.Debugw("extractor answered", "url", productURL, "bytes", len(content))
	return Parse(content)
}

// Parse разбирает JSON-ответ модели. Допускаются markdown-ограждения ```json.
func Parse(content string) (ProductInfo, error) {
	raw := stripFences(content)
	if !gjson.Valid(raw) {
		return ProductInfo{}, fmt.Errorf("extractor returned non-JSON answer: %.80q", raw)
	}
	doc := gjson.Parse(raw)
	info := ProductInfo{
		Name:        strings.TrimSpace(doc.Get("name").String()),
		Description: strings.TrimSpace(doc.Get("description").String()),
		ImageURL:    strings.TrimSpace(doc.Get("imageUrl").String()),
	}
	if info.Name == "" {
		return ProductInfo{}, errors.New("extractor returned no product name")
	}
	if p := doc.Get("price"); p.Exists() && p.Type != gjson.Null {
		// цена бывает числом или строкой вида "19.99", "1,299.99", "1.299,99"
		if d, err := decimal.NewFromString(normalizePrice(p.String())); err == nil && d.IsPositive() {
			info.Price = &d
		}
	}
	return info, nil
}

// normalizePrice приводит строку цены к виду "1299.99".
// Десятичный разделитель — последний из '.' и ','; остальные считаются разделителями тысяч.
// Одиночная запятая с ровно тремя цифрами после неё ("1,299") тоже разделитель тысяч.
func normalizePrice(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f', '\'':
			return -1
		}
		return r
	}, strings.TrimSpace(s))

	dot, comma := strings.LastIndexByte(s, '.'), strings.LastIndexByte(s, ',')
	switch {
	case dot >= 0 && comma >= 0:
		if comma > dot {
			s = strings.ReplaceAll(s, ".", "")
			return strings.Replace(s, ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")
	case comma >= 0:
		if strings.Count(s, ",") > 1 || len(s)-comma-1 == 3 {
			return strings.ReplaceAll(s, ",", "")
		}
		return strings.Replace(s, ",", ".", 1)
	case strings.Count(s, ".") > 1:
		return strings.ReplaceAll(s, ".", "")
	}
	return s
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:] // язык после ограждения
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
