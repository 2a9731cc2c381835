package bilibili

import (
	"context"
	"fmt"
)

// Identity refreshes the auxiliary identity material: device fingerprints,
// WBI key fragments and the anti-abuse ticket. Every refresh is a single
// attempt and leaves the store untouched on failure.
type Identity struct {
	c *Client
}

type Buvid struct {
	Buvid3 string
	Buvid4 string
}

func (i *Identity) RefreshBuvid(ctx context.Context) (*Buvid, error) {
	resp, err := i.c.gateway.Get(ctx, i.c.conf.WebBaseURL+"/x/frontend/finger/spi", nil, WithoutCookies())
	if err != nil {
		return nil, err
	}
	data, err := decodeData[buvidData](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode buvid: %w", err)
	}
	if data.B3 == "" && data.B4 == "" {
		return nil, ErrEmptyBuvid
	}
	updates := make(map[string]string, 2)
	if data.B3 != "" {
		updates[CookieBuvid3] = data.B3
	}
	if data.B4 != "" {
		updates[CookieBuvid4] = data.B4
	}
	err = i.c.store.Update(ctx, func(a *Account) error {
		a.Cookies = MergeCookies(a.Cookies, updates)
		if data.B3 != "" {
			a.Buvid3 = data.B3
		}
		if data.B4 != "" {
			a.Buvid4 = data.B4
		}
		a.UpdatedAtMillis = i.c.millis()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Buvid{Buvid3: data.B3, Buvid4: data.B4}, nil
}
