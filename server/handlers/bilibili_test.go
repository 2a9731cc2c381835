package handlers_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	json "github.com/json-iterator/go"
	"github.com/lightningstudio/watchbili/server/handlers"
	"github.com/lightningstudio/watchbili/vendors/bilibili"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type apiResp struct {
	Error string          `json:"error"`
	Data  json.RawMessage `json:"data"`
}

type env struct {
	engine *gin.Engine
	store  *bilibili.Store
}

func newEnv(t *testing.T, upstream http.Handler) *env {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)
	conf := bilibili.DefaultConfig()
	conf.WebBaseURL = srv.URL
	conf.AppBaseURL = srv.URL
	conf.PassportBaseURL = srv.URL
	store := bilibili.NewStore(bilibili.NewMemoryKV())
	cli := bilibili.NewClient(store,
		bilibili.WithConfig(conf),
		bilibili.WithDoer(srv.Client()),
		bilibili.WithClock(func() time.Time { return time.Unix(1702204169, 0) }),
	)
	e := gin.New()
	handlers.Init(e, cli)
	return &env{engine: e, store: store}
}

func (e *env) do(t *testing.T, method, path, body string) (int, *apiResp) {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, r)
	resp := new(apiResp)
	if err := json.Unmarshal(w.Body.Bytes(), resp); err != nil {
		t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
	}
	return w.Code, resp
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func TestQRCodeLogin(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/x/passport-tv-login/qrcode/auth_code", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"code":0,"data":{"url":"https://example.com/qr?auth_code=abc","auth_code":"abc"}}`)
	})
	mux.HandleFunc("/x/passport-tv-login/qrcode/poll", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"code":0,"message":"0","data":{"access_token":"token-abcdefgh","refresh_token":"rtok",`+
			`"cookie_info":{"cookies":[{"name":"SESSDATA","value":"sess"},{"name":"bili_jct","value":"csrf-abcdefgh"}]}}}`)
	})
	e := newEnv(t, mux)

	code, resp := e.do(t, http.MethodPost, "/api/bilibili/login/qr/tv", "")
	if code != http.StatusOK {
		t.Fatalf("new qrcode status = %d, error = %s", code, resp.Error)
	}
	var qr bilibili.QRCode
	if err := json.Unmarshal(resp.Data, &qr); err != nil {
		t.Fatal(err)
	}
	if qr.Key != "abc" || qr.Flavor != "tv" {
		t.Errorf("qrcode = %+v", qr)
	}

	if code, _ := e.do(t, http.MethodPost, "/api/bilibili/login/qr/tv/poll", `{"key":"old"}`); code != http.StatusConflict {
		t.Errorf("stale key status = %d, want 409", code)
	}
	if code, _ := e.do(t, http.MethodPost, "/api/bilibili/login/qr/tv/poll", `{}`); code != http.StatusBadRequest {
		t.Errorf("empty key status = %d, want 400", code)
	}

	code, resp = e.do(t, http.MethodPost, "/api/bilibili/login/qr/tv/poll", `{"key":"abc"}`)
	if code != http.StatusOK {
		t.Fatalf("poll status = %d, error = %s", code, resp.Error)
	}
	var poll struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(resp.Data, &poll); err != nil {
		t.Fatal(err)
	}
	if poll.Status != "success" {
		t.Errorf("status = %s", poll.Status)
	}
	if strings.Contains(string(resp.Data), "token-abcdefgh") {
		t.Error("poll response leaks the access token")
	}

	code, resp = e.do(t, http.MethodGet, "/api/bilibili/account", "")
	if code != http.StatusOK {
		t.Fatalf("account status = %d", code)
	}
	var account struct {
		IsLogin     bool     `json:"isLogin"`
		AccessToken string   `json:"accessToken"`
		Cookies     []string `json:"cookies"`
	}
	if err := json.Unmarshal(resp.Data, &account); err != nil {
		t.Fatal(err)
	}
	if !account.IsLogin || account.AccessToken != "toke****efgh" {
		t.Errorf("account = %+v", account)
	}
	if len(account.Cookies) != 2 || account.Cookies[0] != "SESSDATA" || account.Cookies[1] != "bili_jct" {
		t.Errorf("cookies = %v", account.Cookies)
	}
}

func TestUnknownRoutes(t *testing.T) {
	t.Parallel()
	e := newEnv(t, http.NewServeMux())
	tests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodPost, "/api/bilibili/login/qr/sms", ""},
		{http.MethodPost, "/api/bilibili/login/qr/sms/poll", `{"key":"a"}`},
		{http.MethodPost, "/api/bilibili/identity/cookie", ""},
		{http.MethodPost, "/api/bilibili/action/share", `{"video":"av2"}`},
	}
	for _, tt := range tests {
		if code, resp := e.do(t, tt.method, tt.path, tt.body); code != http.StatusNotFound || resp.Error == "" {
			t.Errorf("%s %s = %d %q, want 404", tt.method, tt.path, code, resp.Error)
		}
	}
}

func TestSign(t *testing.T) {
	t.Parallel()
	e := newEnv(t, http.NewServeMux())
	_ = e.store.Write(context.Background(), &bilibili.Account{
		WbiImgKey: "7cd084941338484aae1ad9425b84077c",
		WbiSubKey: "4932caff0ff746eab6f01bf08b70ac45",
	})

	code, resp := e.do(t, http.MethodPost, "/api/bilibili/sign/wbi", `{"params":{"foo":"114","bar":"514","zab":"1919810"}}`)
	if code != http.StatusOK {
		t.Fatalf("sign wbi status = %d, error = %s", code, resp.Error)
	}
	var signed struct {
		Params map[string]string `json:"params"`
	}
	if err := json.Unmarshal(resp.Data, &signed); err != nil {
		t.Fatal(err)
	}
	if signed.Params["w_rid"] != "8f6f2b5b3d485fe1886cec6a0be8c5d4" {
		t.Errorf("params = %v", signed.Params)
	}

	code, resp = e.do(t, http.MethodPost, "/api/bilibili/sign/app", `{"params":{"aid":"2"}}`)
	if code != http.StatusOK {
		t.Fatalf("sign app status = %d, error = %s", code, resp.Error)
	}
	signed.Params = nil
	if err := json.Unmarshal(resp.Data, &signed); err != nil {
		t.Fatal(err)
	}
	if signed.Params["sign"] == "" || signed.Params["appkey"] == "" || signed.Params["aid"] != "2" {
		t.Errorf("params = %v", signed.Params)
	}
}

func TestSignWbiWithoutKeys(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/x/web-interface/nav", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	})
	e := newEnv(t, mux)
	if code, resp := e.do(t, http.MethodPost, "/api/bilibili/sign/wbi", `{"params":{"mid":"2"}}`); code != http.StatusBadGateway || resp.Data != nil {
		t.Errorf("status = %d, data = %s", code, resp.Data)
	}
}

func TestActionMissingCSRF(t *testing.T) {
	t.Parallel()
	e := newEnv(t, http.NewServeMux())
	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{name: "like", path: "/api/bilibili/action/like", body: `{"video":"BV1i5411y7fB"}`, want: http.StatusBadRequest},
		{name: "bad video", path: "/api/bilibili/action/like", body: `{"video":"hello"}`, want: http.StatusBadRequest},
		{name: "no video", path: "/api/bilibili/action/triple", body: `{}`, want: http.StatusBadRequest},
		{name: "bad multiply", path: "/api/bilibili/action/coin", body: `{"video":"av2","multiply":5}`, want: http.StatusBadRequest},
	}
	for _, tt := range tests {
		if code, resp := e.do(t, http.MethodPost, tt.path, tt.body); code != tt.want {
			t.Errorf("%s: status = %d %q, want %d", tt.name, code, resp.Error, tt.want)
		}
	}
}

func TestRefreshIdentity(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/x/frontend/finger/spi", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"code":0,"data":{"b_3":"B3","b_4":"B4"}}`)
	})
	e := newEnv(t, mux)
	code, resp := e.do(t, http.MethodPost, "/api/bilibili/identity/buvid", "")
	if code != http.StatusOK {
		t.Fatalf("status = %d, error = %s", code, resp.Error)
	}
	var b map[string]string
	if err := json.Unmarshal(resp.Data, &b); err != nil {
		t.Fatal(err)
	}
	if b["buvid3"] != "B3" || b["buvid4"] != "B4" {
		t.Errorf("buvid = %v", b)
	}
	if code, _ := e.do(t, http.MethodPost, "/api/bilibili/identity/ticket", ""); code != http.StatusBadGateway {
		t.Errorf("ticket status = %d, want 502", code)
	}
}

func TestClientDisconnectCancelsUpstream(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/x/frontend/finger/spi", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	})
	e := newEnv(t, mux)
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	r := httptest.NewRequest(http.MethodPost, "/api/bilibili/identity/buvid", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	start := time.Now()
	e.engine.ServeHTTP(w, r)
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("handler returned after %s", elapsed)
	}
	if w.Code == http.StatusOK {
		t.Errorf("status = %d, want failure", w.Code)
	}
}
