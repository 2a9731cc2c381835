package bilibili

import (
	"context"
	"strconv"
)

type appParamsConfig struct {
	accessKey bool
	ts        bool
}

type AppParamsOption func(*appParamsConfig)

func WithoutAccessKey() AppParamsOption {
	return func(c *appParamsConfig) {
		c.accessKey = false
	}
}

func WithoutTS() AppParamsOption {
	return func(c *appParamsConfig) {
		c.ts = false
	}
}

func (c *Client) defaultAppParams() map[string]string {
	return map[string]string{
		"appkey":   c.conf.AppKey,
		"mobi_app": c.conf.MobiApp,
		"platform": c.conf.Platform,
		"build":    strconv.Itoa(c.conf.Build),
	}
}

// SignedAppParams merges the app identity defaults with params, adds ts and
// the stored access_key when absent, then signs.
func (c *Client) SignedAppParams(ctx context.Context, params map[string]string, opts ...AppParamsOption) (map[string]string, error) {
	conf := &appParamsConfig{accessKey: true, ts: true}
	for _, o := range opts {
		o(conf)
	}
	base := c.defaultAppParams()
	for k, v := range params {
		base[k] = v
	}
	if _, ok := base["ts"]; conf.ts && !ok {
		base["ts"] = strconv.FormatInt(c.unix(), 10)
	}
	if _, ok := base["access_key"]; conf.accessKey && !ok {
		account, err := c.store.Read(ctx)
		if err != nil {
			return nil, err
		}
		if account != nil && account.AccessToken != "" {
			base["access_key"] = account.AccessToken
		}
	}
	return SignApp(base, c.conf.AppKey, c.conf.AppSec), nil
}

// SignedWbiParams signs params with the stored WBI keys, refreshing them once
// when either is missing. If they are still missing the unsigned copy is
// returned together with ErrMissingWbiKeys.
func (c *Client) SignedWbiParams(ctx context.Context, params map[string]string) (map[string]string, error) {
	account, err := c.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	if !account.HasWbiKeys() {
		if _, err := c.Identity.RefreshWbiKeys(ctx); err != nil {
			c.debugf("wbi", "refresh wbi keys failed: %v", err)
		}
		account, err = c.store.Read(ctx)
		if err != nil {
			return nil, err
		}
	}
	var imgKey, subKey string
	if account.HasWbiKeys() {
		imgKey, subKey = account.WbiImgKey, account.WbiSubKey
	}
	signed := SignWbi(params, imgKey, subKey, c.unix())
	if !HasWbiSignature(signed) {
		return signed, ErrMissingWbiKeys
	}
	return signed, nil
}
