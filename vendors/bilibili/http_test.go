package bilibili_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/lightningstudio/watchbili/vendors/bilibili"
)

func TestGatewayHeaders(t *testing.T) {
	t.Parallel()
	headers := make(chan http.Header, 2)
	mux := http.NewServeMux()
	mux.HandleFunc("/echo", func(w http.ResponseWriter, r *http.Request) {
		headers <- r.Header.Clone()
		writeJSON(w, `{"code":0}`)
	})
	env := newTestEnv(t, mux)
	ctx := context.Background()
	_ = env.store.Write(ctx, &bilibili.Account{Cookies: map[string]string{"b": "2", "a": "1"}})

	if _, err := env.client.Gateway().Get(ctx, env.srv.URL+"/echo", map[string]string{"x": "1"}); err != nil {
		t.Fatal(err)
	}
	got := <-headers
	if c := got.Get("Cookie"); c != "a=1; b=2" {
		t.Errorf("Cookie = %q", c)
	}
	conf := env.client.Config()
	if ua := got.Get("User-Agent"); ua != conf.WebUserAgent {
		t.Errorf("User-Agent = %q", ua)
	}
	if ref := got.Get("Referer"); ref != conf.WebReferer {
		t.Errorf("Referer = %q", ref)
	}

	_, err := env.client.Gateway().PostForm(ctx, env.srv.URL+"/echo",
		map[string]string{"k": "v"},
		bilibili.WithoutCookies(),
		bilibili.WithHeader("User-Agent", "custom"),
	)
	if err != nil {
		t.Fatal(err)
	}
	got = <-headers
	if c := got.Get("Cookie"); c != "" {
		t.Errorf("Cookie = %q, want none", c)
	}
	if ua := got.Get("User-Agent"); ua != "custom" {
		t.Errorf("User-Agent = %q, want custom", ua)
	}
	if ct := got.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestGatewayQueryAndForm(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/form", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Error(err)
		}
		if r.URL.Query().Get("q") != "1" || r.PostForm.Get("f") != "a b" {
			t.Errorf("query=%v form=%v", r.URL.Query(), r.PostForm)
		}
		writeJSON(w, `{"code":0}`)
	})
	env := newTestEnv(t, mux)
	_, err := env.client.Gateway().PostForm(context.Background(), env.srv.URL+"/form",
		map[string]string{"f": "a b"},
		bilibili.WithQuery(map[string]string{"q": "1"}),
	)
	if err != nil {
		t.Fatal(err)
	}
}

func TestGatewayStatusError(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/boom", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})
	env := newTestEnv(t, mux)
	resp, err := env.client.Gateway().Get(context.Background(), env.srv.URL+"/boom", nil)
	var te *bilibili.TransportError
	if !errors.As(err, &te) || te.StatusCode != http.StatusBadGateway {
		t.Fatalf("error = %v, want TransportError 502", err)
	}
	if bilibili.HTTPStatus(err) != http.StatusBadGateway {
		t.Errorf("HTTPStatus() = %d", bilibili.HTTPStatus(err))
	}
	if resp == nil || resp.StatusCode != http.StatusBadGateway {
		t.Errorf("resp = %+v, want the failed response", resp)
	}
}

func TestGatewayNetworkError(t *testing.T) {
	t.Parallel()
	failing := bilibili.DoerFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})
	c := bilibili.NewClient(bilibili.NewStore(bilibili.NewMemoryKV()), bilibili.WithDoer(failing))
	_, err := c.Gateway().Get(context.Background(), "http://127.0.0.1:1/", nil)
	var te *bilibili.TransportError
	if !errors.As(err, &te) || te.StatusCode != 0 {
		t.Fatalf("error = %v, want TransportError without status", err)
	}
}

func TestResponseCookies(t *testing.T) {
	t.Parallel()
	h := http.Header{}
	h.Add("Set-Cookie", "SESSDATA=abc%2C123; Path=/; HttpOnly")
	h.Add("Set-Cookie", "bili_jct=csrf; Path=/")
	r := &bilibili.Response{Header: h}
	got := r.Cookies()
	if got["SESSDATA"] != "abc%2C123" || got["bili_jct"] != "csrf" {
		t.Errorf("Cookies() = %v", got)
	}
	if (&bilibili.Response{Header: http.Header{}}).Cookies() != nil {
		t.Error("Cookies() without Set-Cookie should be nil")
	}
}
