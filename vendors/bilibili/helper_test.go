package bilibili_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lightningstudio/watchbili/vendors/bilibili"
)

const testUnix = 1700000000

const (
	testImgURL = "https://i0.hdslb.com/bfs/wbi/7cd084941338484aae1ad9425b84077c.png"
	testSubURL = "https://i0.hdslb.com/bfs/wbi/4932caff0ff746eab6f01bf08b70ac45.png"
	testImgKey = "7cd084941338484aae1ad9425b84077c"
	testSubKey = "4932caff0ff746eab6f01bf08b70ac45"
)

type countingDoer struct {
	n    atomic.Int32
	doer bilibili.Doer
}

func (c *countingDoer) Do(req *http.Request) (*http.Response, error) {
	c.n.Add(1)
	return c.doer.Do(req)
}

type testEnv struct {
	client *bilibili.Client
	store  *bilibili.Store
	kv     *bilibili.MemoryKV
	doer   *countingDoer
	srv    *httptest.Server
}

func newTestEnv(t *testing.T, handler http.Handler, opts ...bilibili.ClientConfig) *testEnv {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	conf := bilibili.DefaultConfig()
	conf.WebBaseURL = srv.URL
	conf.AppBaseURL = srv.URL
	conf.PassportBaseURL = srv.URL

	kv := bilibili.NewMemoryKV()
	store := bilibili.NewStore(kv)
	doer := &countingDoer{doer: srv.Client()}
	opts = append([]bilibili.ClientConfig{
		bilibili.WithConfig(conf),
		bilibili.WithDoer(doer),
		bilibili.WithClock(func() time.Time { return time.Unix(testUnix, 0) }),
	}, opts...)
	return &testEnv{
		client: bilibili.NewClient(store, opts...),
		store:  store,
		kv:     kv,
		doer:   doer,
		srv:    srv,
	}
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

const navBody = `{"code":0,"message":"0","data":{"isLogin":true,"mid":42,"uname":"tester","wbi_img":{"img_url":"` +
	testImgURL + `","sub_url":"` + testSubURL + `"}}}`
