package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// maxAuthRetries — сколько раз операция повторяется после re-auth.
const maxAuthRetries = 1

const (
	defaultAPIVersion = "1.1"
	defaultDevice     = "wxcli"
	maxResponseBytes  = 4 << 20
)

// Authenticator выдаёт токен для запросов и умеет получить новый после 401/403.
type Authenticator interface {
	EnsureToken(ctx context.Context) (string, error)
	Reauthenticate(ctx context.Context) (string, error)
}

// Options — параметры клиента API.
type Options struct {
	BaseURL        string
	APIVersion     string
	DeviceName     string
	Timeout        time.Duration
	RequestsPerSec float64 // 0 — без ограничения
	HTTPClient     *http.Client
	Logger         *zap.SugaredLogger
}

// Client — типизированная обёртка над REST API WishlistX.
type Client struct {
	baseURL    string
	apiVersion string
	deviceName string
	http       *http.Client
	limiter    *rate.Limiter
	auth       Authenticator
	log        *zap.SugaredLogger
}

// NewClient создаёт клиент без аутентификатора: доступны только sign-in, signup и confirmation.
func NewClient(opts Options) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiVersion: opts.APIVersion,
		deviceName: opts.DeviceName,
		http:       opts.HTTPClient,
		log:        opts.Logger,
	}
	if c.apiVersion == "" {
		c.apiVersion = defaultAPIVersion
	}
	if c.deviceName == "" {
		c.deviceName = defaultDevice
	}
	if c.http == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		c.http = &http.Client{Timeout: timeout}
	}
	if c.log == nil {
		c.log = zap.NewNop().Sugar()
	}
	if opts.RequestsPerSec > 0 {
		burst := int(opts.RequestsPerSec)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSec), burst)
	}
	return c
}

// WithAuthenticator возвращает копию клиента, использующую a для защищённых операций.
func (c *Client) WithAuthenticator(a Authenticator) *Client {
	cp := *c
	cp.auth = a
	return &cp
}

// request описывает один вызов API.
type request struct {
	op         string
	method     string
	path       string
	query      url.Values
	form       *form
	apiVersion bool // отправлять x-api-version
}

type response struct {
	status int
	header http.Header
	body   []byte
}

func isAuthFailure(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}

// doAuthorized выполняет защищённый запрос: токен, отправка, при 401/403 — re-auth и не более
// maxAuthRetries повторов.
func (c *Client) doAuthorized(ctx context.Context, req *request) (*response, error) {
	if c.auth == nil {
		return nil, &AuthError{Op: req.op, Err: ErrNoAuthenticator}
	}
	token, err := c.auth.EnsureToken(ctx)
	if err != nil {
		return nil, asAuthError(req.op, err)
	}

	for attempt := 0; ; attempt++ {
		resp, err := c.send(ctx, req, token)
		if err != nil {
			return nil, err
		}
		if !isAuthFailure(resp.status) {
			return resp, checkResponse(req.op, resp)
		}
		if attempt >= maxAuthRetries {
			return nil, &AuthError{Op: req.op, Err: fmt.Errorf("still unauthorized after re-authentication (status %d)", resp.status)}
		}
		c.log.Infow("authorization expired, re-authenticating", "op", req.op, "status", resp.status)
		token, err = c.auth.Reauthenticate(ctx)
		if err != nil {
			return nil, asAuthError(req.op, err)
		}
	}
}

// send отправляет запрос один раз; token может быть пустым.
func (c *Client) send(ctx context.Context, req *request, token string) (*response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{Op: req.op, Err: err}
		}
	}

	endpoint := c.baseURL + req.path
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	if req.form != nil {
		b, ct, err := req.form.encode()
		if err != nil {
			return nil, &TransportError{Op: req.op, Err: fmt.Errorf("encode form: %w", err)}
		}
		body, contentType = b, ct
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, body)
	if err != nil {
		return nil, &TransportError{Op: req.op, Err: err}
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("x-request-id", uuid.NewString())
	if req.apiVersion {
		httpReq.Header.Set("x-api-version", c.apiVersion)
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	started := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Op: req.op, Err: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{Op: req.op, Err: fmt.Errorf("read body: %w", err)}
	}
	c.log.Debugw("api call",
		"op", req.op,
		"method", req.method,
		"path", req.path,
		"status", resp.StatusCode,
		"duration", time.Since(started),
	)
	return &response{status: resp.StatusCode, header: resp.Header, body: b}, nil
}

// checkResponse превращает не-2xx и success:false в RequestError.
func checkResponse(op string, resp *response) error {
	if resp.status < 200 || resp.status > 299 {
		return &RequestError{Op: op, Status: resp.status, Message: serverMessage(resp.body)}
	}
	if len(resp.body) > 0 && gjson.ValidBytes(resp.body) {
		if s := gjson.GetBytes(resp.body, "success"); s.Exists() && !s.Bool() {
			msg := serverMessage(resp.body)
			if msg == "" {
				msg = "server reported success=false"
			}
			return &RequestError{Op: op, Status: resp.status, Message: msg}
		}
	}
	return nil
}

// serverMessage достаёт человекочитаемое сообщение из тела ответа.
func serverMessage(body []byte) string {
	if gjson.ValidBytes(body) {
		for _, path := range []string{"error", "message", "errors.0", "errors.full_messages.0"} {
			if r := gjson.GetBytes(body, path); r.Exists() && r.String() != "" {
				return r.String()
			}
		}
		return ""
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}

func asAuthError(op string, err error) error {
	if KindOf(err) == KindAuthentication {
		return err
	}
	return &AuthError{Op: op, Err: err}
}

// bearerToken убирает схему из заголовка authorization. Сам токен не разбирается.
func bearerToken(h string) string {
	h = strings.TrimSpace(h)
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return h
}

// decodePayload разбирает JSON по gjson-пути path в dst.
func decodePayload(op string, resp *response, path string, dst any) error {
	r := gjson.GetBytes(resp.body, path)
	if !r.Exists() {
		return &RequestError{Op: op, Status: resp.status, Message: "response has no " + path}
	}
	if err := json.Unmarshal([]byte(r.Raw), dst); err != nil {
		return &RequestError{Op: op, Status: resp.status, Message: fmt.Sprintf("decode %s: %v", path, err)}
	}
	return nil
}
