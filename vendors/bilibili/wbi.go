package bilibili

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
)

var mixinKeyEncTab = [64]int{
	46, 47, 18, 2, 53, 8, 23, 32, 15, 50, 10, 31, 58, 3, 45, 35, 27, 43, 5, 49,
	33, 9, 42, 19, 29, 28, 14, 39, 12, 38, 41, 13, 37, 48, 7, 16, 24, 55, 40,
	61, 26, 17, 0, 1, 60, 51, 30, 4, 22, 25, 54, 21, 56, 59, 6, 63, 57, 62, 11,
	36, 20, 34, 44, 52,
}

var wbiEscapeFixer = strings.NewReplacer("+", "%20", "*", "%2A", "%7E", "~")

// SignWbi adds wts and w_rid. With either key fragment missing the copy is
// returned unsigned and callers must not send it to a WBI endpoint.
func SignWbi(params map[string]string, imgKey, subKey string, ts int64) map[string]string {
	signed := maps.Clone(params)
	if signed == nil {
		signed = make(map[string]string, 2)
	}
	if imgKey == "" || subKey == "" {
		return signed
	}
	mixinKey := MixinKey(imgKey, subKey)
	delete(signed, "w_rid")
	signed["wts"] = strconv.FormatInt(ts, 10)

	var sb strings.Builder
	for i, k := range sortedKeys(signed) {
		if i != 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(encodeWbi(k))
		sb.WriteByte('=')
		sb.WriteString(encodeWbi(signed[k]))
	}
	sb.WriteString(mixinKey)

	signed["w_rid"] = md5Hex(sb.String())
	return signed
}

func HasWbiSignature(params map[string]string) bool {
	return params["w_rid"] != ""
}

func MixinKey(imgKey, subKey string) string {
	orig := imgKey + subKey
	var str strings.Builder
	for _, v := range mixinKeyEncTab {
		if v < len(orig) {
			str.WriteByte(orig[v])
		}
	}
	s := str.String()
	if len(s) > 32 {
		return s[:32]
	}
	return s
}

// ExtractWbiKey takes ".../7cd084941338484aae1ad9425b84077c.png" to its
// bare file name.
func ExtractWbiKey(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	name := rawURL[strings.LastIndexByte(rawURL, '/')+1:]
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	return name
}

func encodeWbi(s string) string {
	return wbiEscapeFixer.Replace(url.QueryEscape(s))
}

type WbiKeys struct {
	ImgKey string
	SubKey string
}

// RefreshWbiKeys reads the key fragments from the nav endpoint. nav answers
// -101 for anonymous sessions while still carrying wbi_img, so the envelope
// code is not checked.
func (i *Identity) RefreshWbiKeys(ctx context.Context) (*WbiKeys, error) {
	resp, err := i.c.gateway.Get(ctx, i.c.conf.WebBaseURL+"/x/web-interface/nav", nil)
	if err != nil {
		return nil, err
	}
	r, err := decodeResp[navData](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode nav: %w", err)
	}
	if r.Data == nil {
		return nil, ErrMissingWbiKeys
	}
	keys := &WbiKeys{
		ImgKey: ExtractWbiKey(r.Data.WbiImg.ImgURL),
		SubKey: ExtractWbiKey(r.Data.WbiImg.SubURL),
	}
	if keys.ImgKey == "" || keys.SubKey == "" {
		return nil, ErrMissingWbiKeys
	}
	err = i.c.store.Update(ctx, func(a *Account) error {
		a.WbiImgKey = keys.ImgKey
		a.WbiSubKey = keys.SubKey
		a.UpdatedAtMillis = i.c.millis()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}
