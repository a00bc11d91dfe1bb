package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/sitecms/internal/client/models"
	"github.com/dmitrijs2005/sitecms/internal/common"
	"github.com/dmitrijs2005/sitecms/internal/logging"
	"github.com/dmitrijs2005/sitecms/internal/netx"
)

const DefaultTimeout = 30 * time.Second

// HTTPGateway implements Gateway over net/http.
type HTTPGateway struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger
}

// NewHTTPGateway returns a gateway rooted at baseURL. A non-positive timeout
// selects DefaultTimeout.
func NewHTTPGateway(baseURL string, timeout time.Duration, tokens TokenSource, log logging.Logger) *HTTPGateway {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

// List fetches every record under path. Numbers are kept as json.Number so
// integer ids survive decoding.
func (g *HTTPGateway) List(ctx context.Context, path string) ([]models.Record, error) {
	resp, err := g.do(ctx, http.MethodGet, path, nil, "", false)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out []models.Record
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

func (g *HTTPGateway) Create(ctx context.Context, path string, p Payload) (models.Record, error) {
	body, ct, err := encode(p)
	if err != nil {
		return nil, err
	}
	resp, err := g.do(ctx, http.MethodPost, path, body, ct, true)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	var rec models.Record
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&rec); err != nil {
		g.log.Debug(ctx, "create response is not a record", "path", path, "error", err)
		return nil, nil
	}
	return rec, nil
}

func (g *HTTPGateway) Update(ctx context.Context, path, method string, p Payload) error {
	body, ct, err := encode(p)
	if err != nil {
		return err
	}
	resp, err := g.do(ctx, method, path, body, ct, true)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

func (g *HTTPGateway) Delete(ctx context.Context, path string) error {
	resp, err := g.do(ctx, http.MethodDelete, path, nil, "", true)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

// do sends one request. Mutating calls require a token; reads attach one
// when available. Any non-2xx status is turned into an error and the body
// closed; on success the caller owns resp.Body.
func (g *HTTPGateway) do(ctx context.Context, method, path string, body io.Reader, contentType string, needAuth bool) (*http.Response, error) {
	token, err := g.token(ctx)
	if err != nil && needAuth {
		return nil, fmt.Errorf("%s %s: %w: %v", method, path, ErrUnauthorized, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}

	start := time.Now()
	resp, err := g.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		g.log.Warn(ctx, "gateway request failed", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("%s %s: %w: %v", method, path, ErrUnavailable, err)
	}
	g.log.Debug(ctx, "gateway request", "method", method, "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%s %s: %w (status %d)", method, path, ErrUnauthorized, resp.StatusCode)
	default:
		return nil, &RejectedError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: netx.ErrorBody(resp)}
	}
}

func (g *HTTPGateway) token(ctx context.Context) (string, error) {
	if g.tokens == nil {
		return "", common.ErrNoToken
	}
	t, err := g.tokens.Token(ctx)
	if err != nil {
		return "", err
	}
	if t == "" {
		return "", common.ErrNoToken
	}
	return t, nil
}

func encode(p Payload) (io.Reader, string, error) {
	if !p.Multipart() {
		b, err := json.Marshal(p.Fields)
		if err != nil {
			return nil, "", fmt.Errorf("encode payload: %w", err)
		}
		return bytes.NewReader(b), "application/json", nil
	}

	fields := make(map[string]string, len(p.Fields))
	for k, v := range p.Fields {
		fields[k] = formValue(v)
	}
	body, ct, err := netx.Multipart(fields, p.Files)
	if err != nil {
		return nil, "", fmt.Errorf("encode payload: %w", err)
	}
	return body, ct, nil
}

func formValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

var _ Gateway = (*HTTPGateway)(nil)

// IsUnauthorized reports whether err means the session token was refused.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
