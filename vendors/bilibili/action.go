package bilibili

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type VideoID struct {
	Aid  int64
	Bvid string
}

// videoIDRegex captures a BV id in group 1 or an av number in group 2,
// bare or as a bilibili.com/video URL.
var videoIDRegex = regexp.MustCompile(`^(?:(?:https?://)?(?:www\.|m\.)?bilibili\.com/video/)?(?:((?i:bv)\w+)|(?i:av)(\d+))/?(?:\?.*)?$`)

// ParseVideoID accepts a bare av number, an av/BV id or a video URL.
func ParseVideoID(s string) (VideoID, error) {
	s = strings.TrimSpace(s)
	if aid, err := strconv.ParseInt(s, 10, 64); err == nil && aid > 0 {
		return VideoID{Aid: aid}, nil
	}
	m := videoIDRegex.FindStringSubmatch(s)
	switch {
	case m == nil:
		return VideoID{}, fmt.Errorf("%w: %s", ErrMissingVideoID, s)
	case m[1] != "":
		return VideoID{Bvid: m[1]}, nil
	}
	aid, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil || aid <= 0 {
		return VideoID{}, fmt.Errorf("%w: %s", ErrMissingVideoID, s)
	}
	return VideoID{Aid: aid}, nil
}

func (v VideoID) String() string {
	if v.Aid > 0 {
		return "av" + strconv.FormatInt(v.Aid, 10)
	}
	return v.Bvid
}

func (v VideoID) put(params map[string]string) error {
	switch {
	case v.Aid > 0:
		params["aid"] = strconv.FormatInt(v.Aid, 10)
	case v.Bvid != "":
		params["bvid"] = v.Bvid
	default:
		return ErrMissingVideoID
	}
	return nil
}

type ActionResult struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Like    bool   `json:"like"`
	Coin    bool   `json:"coin"`
	Fav     bool   `json:"fav"`
	Prompt  bool   `json:"prompt"`
}

func (r *ActionResult) OK() bool {
	return r != nil && r.Code == 0
}

type actionConfig struct {
	preferApp bool
}

type ActionOption func(*actionConfig)

// PreferWeb forces the cookie variant even when an access token is stored.
func PreferWeb() ActionOption {
	return func(c *actionConfig) {
		c.preferApp = false
	}
}

// Action sends the mutating video interactions. The app variant is used when
// an access token is stored, otherwise the web variant which needs bili_jct.
type Action struct {
	c *Client
}

func (a *Action) Like(ctx context.Context, id VideoID, like bool, opts ...ActionOption) (*ActionResult, error) {
	params := make(map[string]string, 2)
	if err := id.put(params); err != nil {
		return nil, err
	}
	useApp, err := a.useApp(ctx, opts)
	if err != nil {
		return nil, err
	}
	if useApp {
		params["like"] = boolFlag(!like)
		return a.postApp(ctx, a.c.conf.AppBaseURL+"/x/v2/view/like", params)
	}
	if like {
		params["like"] = "1"
	} else {
		params["like"] = "2"
	}
	return a.postWeb(ctx, a.c.conf.WebBaseURL+"/x/web-interface/archive/like", params)
}

func (a *Action) Coin(ctx context.Context, id VideoID, multiply int, selectLike bool, opts ...ActionOption) (*ActionResult, error) {
	if multiply < 1 || multiply > 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMultiply, multiply)
	}
	params := map[string]string{
		"multiply":    strconv.Itoa(multiply),
		"select_like": boolFlag(selectLike),
	}
	if err := id.put(params); err != nil {
		return nil, err
	}
	useApp, err := a.useApp(ctx, opts)
	if err != nil {
		return nil, err
	}
	if useApp {
		return a.postApp(ctx, a.c.conf.AppBaseURL+"/x/v2/view/coin/add", params)
	}
	return a.postWeb(ctx, a.c.conf.WebBaseURL+"/x/web-interface/coin/add", params)
}

func (a *Action) Triple(ctx context.Context, id VideoID, opts ...ActionOption) (*ActionResult, error) {
	params := make(map[string]string, 1)
	if err := id.put(params); err != nil {
		return nil, err
	}
	useApp, err := a.useApp(ctx, opts)
	if err != nil {
		return nil, err
	}
	if useApp {
		return a.postApp(ctx, a.c.conf.AppBaseURL+"/x/v2/view/like/triple", params)
	}
	return a.postWeb(ctx, a.c.conf.WebBaseURL+"/x/web-interface/archive/like/triple", params)
}

// Favorite adds the video to addMediaIDs and removes it from delMediaIDs.
// The endpoint only takes the numeric aid.
func (a *Action) Favorite(ctx context.Context, id VideoID, addMediaIDs, delMediaIDs []int64, opts ...ActionOption) (*ActionResult, error) {
	if id.Aid <= 0 {
		return nil, ErrMissingVideoID
	}
	params := map[string]string{
		"rid":           strconv.FormatInt(id.Aid, 10),
		"type":          "2",
		"add_media_ids": joinInts(addMediaIDs),
		"del_media_ids": joinInts(delMediaIDs),
	}
	account, err := a.c.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	conf := a.conf(opts)
	if conf.preferApp && account != nil && account.AccessToken != "" {
		params["access_key"] = account.AccessToken
	} else {
		csrf := account.CSRFToken()
		if csrf == "" {
			return nil, ErrMissingCSRF
		}
		params["csrf"] = csrf
	}
	return a.post(ctx, a.c.conf.WebBaseURL+"/medialist/gateway/coll/resource/deal", params)
}

func (a *Action) conf(opts []ActionOption) *actionConfig {
	conf := &actionConfig{preferApp: true}
	for _, o := range opts {
		o(conf)
	}
	return conf
}

func (a *Action) useApp(ctx context.Context, opts []ActionOption) (bool, error) {
	if !a.conf(opts).preferApp {
		return false, nil
	}
	account, err := a.c.store.Read(ctx)
	if err != nil {
		return false, err
	}
	return account != nil && account.AccessToken != "", nil
}

func (a *Action) postApp(ctx context.Context, url string, params map[string]string) (*ActionResult, error) {
	signed, err := a.c.SignedAppParams(ctx, params)
	if err != nil {
		return nil, err
	}
	return a.post(ctx, url, signed, WithHeader("User-Agent", a.c.conf.AppUserAgent))
}

// postWeb checks the CSRF cookie before anything is sent.
func (a *Action) postWeb(ctx context.Context, url string, params map[string]string) (*ActionResult, error) {
	account, err := a.c.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	csrf := account.CSRFToken()
	if csrf == "" {
		return nil, ErrMissingCSRF
	}
	params["csrf"] = csrf
	return a.post(ctx, url, params)
}

func (a *Action) post(ctx context.Context, url string, params map[string]string, opts ...RequestOption) (*ActionResult, error) {
	resp, err := a.c.gateway.PostForm(ctx, url, params, opts...)
	if err != nil {
		return nil, err
	}
	r, err := decodeResp[actionData](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode action: %w", err)
	}
	res := &ActionResult{Code: r.Code, Message: r.Message}
	if r.Data != nil {
		res.Like = deref(r.Data.Like)
		res.Coin = deref(r.Data.Coin)
		res.Fav = deref(r.Data.Fav)
		res.Prompt = deref(r.Data.Prompt)
	}
	return res, nil
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func deref(b *bool) bool {
	return b != nil && *b
}

func joinInts(ids []int64) string {
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(s, ",")
}
