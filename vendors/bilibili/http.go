package bilibili

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	json "github.com/json-iterator/go"
	log "github.com/sirupsen/logrus"
	"github.com/zijiren233/go-uhc"
)

const maxResponseSize = 4 << 20

// Doer sends one HTTP request.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type DoerFunc func(req *http.Request) (*http.Response, error)

func (f DoerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

// UHCDoer sends through go-uhc, which presents a browser TLS fingerprint.
var UHCDoer Doer = DoerFunc(func(req *http.Request) (*http.Response, error) {
	return uhc.Do(req)
})

type Response struct {
	StatusCode int
	Body       []byte
	Header     http.Header
}

// Cookies returns the name/value pairs of every Set-Cookie header.
func (r *Response) Cookies() map[string]string {
	resp := http.Response{Header: r.Header}
	cookies := resp.Cookies()
	if len(cookies) == 0 {
		return nil
	}
	m := make(map[string]string, len(cookies))
	for _, c := range cookies {
		if c.Name != "" {
			m[c.Name] = c.Value
		}
	}
	return m
}

// Gateway attaches the default headers and stored cookies to outbound
// requests. It holds no protocol logic.
type Gateway struct {
	doer      Doer
	store     AccountStore
	userAgent string
	referer   string
	timeout   time.Duration
}

func NewGateway(doer Doer, store AccountStore, conf Config) *Gateway {
	conf = conf.withDefaults()
	if doer == nil {
		doer = UHCDoer
	}
	return &Gateway{
		doer:      doer,
		store:     store,
		userAgent: conf.WebUserAgent,
		referer:   conf.WebReferer,
		timeout:   conf.Timeout,
	}
}

type requestConfig struct {
	headers     map[string]string
	query       map[string]string
	withCookies bool
}

type RequestOption func(*requestConfig)

func WithHeaders(headers map[string]string) RequestOption {
	return func(c *requestConfig) {
		if c.headers == nil {
			c.headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

func WithHeader(key, value string) RequestOption {
	return WithHeaders(map[string]string{key: value})
}

// WithQuery appends query parameters, useful for POST endpoints that read
// their arguments from the URL.
func WithQuery(query map[string]string) RequestOption {
	return func(c *requestConfig) {
		if c.query == nil {
			c.query = make(map[string]string, len(query))
		}
		for k, v := range query {
			c.query[k] = v
		}
	}
}

func WithoutCookies() RequestOption {
	return func(c *requestConfig) {
		c.withCookies = false
	}
}

func (g *Gateway) Get(ctx context.Context, rawURL string, query map[string]string, opts ...RequestOption) (*Response, error) {
	opts = append([]RequestOption{WithQuery(query)}, opts...)
	return g.do(ctx, http.MethodGet, rawURL, nil, "", opts)
}

func (g *Gateway) PostForm(ctx context.Context, rawURL string, form map[string]string, opts ...RequestOption) (*Response, error) {
	values := url.Values{}
	for k, v := range form {
		values.Set(k, v)
	}
	return g.do(ctx, http.MethodPost, rawURL, strings.NewReader(values.Encode()), "application/x-www-form-urlencoded", opts)
}

func (g *Gateway) PostJSON(ctx context.Context, rawURL string, body any, opts ...RequestOption) (*Response, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode json body: %w", err)
	}
	return g.do(ctx, http.MethodPost, rawURL, bytes.NewReader(b), "application/json; charset=utf-8", opts)
}

func (g *Gateway) do(ctx context.Context, method, rawURL string, body io.Reader, contentType string, opts []RequestOption) (*Response, error) {
	conf := &requestConfig{withCookies: true}
	for _, o := range opts {
		o(conf)
	}
	if len(conf.query) != 0 {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("parse url: %w", err)
		}
		q := u.Query()
		for k, v := range conf.query {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
		rawURL = u.String()
	}
	if _, ok := ctx.Deadline(); !ok && g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Referer", g.referer)
	if conf.withCookies && g.store != nil {
		account, err := g.store.Read(ctx)
		if err != nil {
			return nil, err
		}
		if h := account.CookieHeader(); h != "" {
			req.Header.Set("Cookie", h)
		}
	}
	for k, v := range conf.headers {
		req.Header.Set(k, v)
	}

	id := uuid.NewString()
	log.WithFields(log.Fields{"req_id": id, "method": method}).Debugf("bilibili: %s", req.URL.Redacted())
	resp, err := g.doer.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Err: err}
	}
	log.WithFields(log.Fields{"req_id": id, "status": resp.StatusCode}).Debug("bilibili: response")
	r := &Response{
		StatusCode: resp.StatusCode,
		Body:       b,
		Header:     resp.Header,
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return r, &TransportError{StatusCode: resp.StatusCode}
	}
	return r, nil
}
