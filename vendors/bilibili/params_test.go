package bilibili_test

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lightningstudio/watchbili/vendors/bilibili"
)

func TestSignedAppParams(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, http.NewServeMux())
	ctx := context.Background()
	_ = env.store.Write(ctx, &bilibili.Account{AccessToken: "tok"})
	conf := env.client.Config()

	got, err := env.client.SignedAppParams(ctx, map[string]string{"aid": "2", "build": "1"})
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"aid":        "2",
		"build":      "1",
		"appkey":     conf.AppKey,
		"mobi_app":   conf.MobiApp,
		"platform":   conf.Platform,
		"ts":         "1700000000",
		"access_key": "tok",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
	if resigned := bilibili.SignApp(got, conf.AppKey, conf.AppSec); resigned["sign"] != got["sign"] {
		t.Errorf("sign = %s, want %s", got["sign"], resigned["sign"])
	}

	got, err = env.client.SignedAppParams(ctx, nil, bilibili.WithoutAccessKey(), bilibili.WithoutTS())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got["access_key"]; ok {
		t.Error("access_key added")
	}
	if _, ok := got["ts"]; ok {
		t.Error("ts added")
	}
	if got["sign"] == "" {
		t.Error("not signed")
	}
}

func TestSignedAppParamsAnonymous(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, http.NewServeMux())
	got, err := env.client.SignedAppParams(context.Background(), map[string]string{"ts": "1"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got["access_key"]; ok {
		t.Error("access_key added without a token")
	}
	if got["ts"] != "1" {
		t.Errorf("caller ts overwritten: %s", got["ts"])
	}
}

func TestSignedWbiParamsStoredKeys(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, http.NewServeMux(),
		bilibili.WithClock(func() time.Time { return time.Unix(1702204169, 0) }),
	)
	ctx := context.Background()
	_ = env.store.Write(ctx, &bilibili.Account{WbiImgKey: testImgKey, WbiSubKey: testSubKey})
	got, err := env.client.SignedWbiParams(ctx, map[string]string{"foo": "114", "bar": "514", "zab": "1919810"})
	if err != nil {
		t.Fatal(err)
	}
	if got["w_rid"] != "8f6f2b5b3d485fe1886cec6a0be8c5d4" || got["wts"] != "1702204169" {
		t.Errorf("SignedWbiParams() = %v", got)
	}
	if n := env.doer.n.Load(); n != 0 {
		t.Errorf("%d requests with keys stored", n)
	}
}

func TestSignedWbiParamsRefreshesOnce(t *testing.T) {
	t.Parallel()
	var navs atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/x/web-interface/nav", func(w http.ResponseWriter, r *http.Request) {
		if navs.Add(1) == 1 {
			http.Error(w, "down", http.StatusInternalServerError)
			return
		}
		writeJSON(w, navBody)
	})
	env := newTestEnv(t, mux)
	ctx := context.Background()

	got, err := env.client.SignedWbiParams(ctx, map[string]string{"mid": "2"})
	if !errors.Is(err, bilibili.ErrMissingWbiKeys) {
		t.Fatalf("error = %v, want ErrMissingWbiKeys", err)
	}
	if bilibili.HasWbiSignature(got) || got["mid"] != "2" {
		t.Errorf("unsigned copy = %v", got)
	}
	if navs.Load() != 1 {
		t.Errorf("nav called %d times, want 1", navs.Load())
	}

	got, err = env.client.SignedWbiParams(ctx, map[string]string{"mid": "2"})
	if err != nil {
		t.Fatal(err)
	}
	if !bilibili.HasWbiSignature(got) {
		t.Errorf("not signed after refresh: %v", got)
	}
}
