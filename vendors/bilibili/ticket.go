package bilibili

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/zijiren233/stream"
)

const ticketTag = "ticket"

// TicketSign is hex(HMAC-SHA256(key, "ts"+unix)).
func TicketSign(key string, ts int64) string {
	mac := hmac.New(sha256.New, stream.StringToBytes(key))
	mac.Write(stream.StringToBytes("ts" + strconv.FormatInt(ts, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}

// RefreshTicket obtains a fresh bili_ticket. csrf may be empty. Failures are
// reported to the debug logger as well as returned.
func (i *Identity) RefreshTicket(ctx context.Context, csrf string) (string, error) {
	ticket, err := i.refreshTicket(ctx, csrf)
	if err != nil {
		i.c.debugf(ticketTag, "refresh ticket failed: %v", err)
		return "", err
	}
	return ticket, nil
}

func (i *Identity) refreshTicket(ctx context.Context, csrf string) (string, error) {
	ts := i.c.unix()
	query := map[string]string{
		"key_id":      i.c.conf.TicketKeyID,
		"hexsign":     TicketSign(i.c.conf.TicketHMACKey, ts),
		"context[ts]": strconv.FormatInt(ts, 10),
	}
	if csrf != "" {
		query["csrf"] = csrf
	}
	resp, err := i.c.gateway.PostForm(ctx,
		i.c.conf.WebBaseURL+"/bapis/bilibili.api.ticket.v1.Ticket/GenWebTicket",
		nil,
		WithQuery(query),
	)
	if err != nil {
		return "", err
	}
	data, err := decodeData[ticketData](resp.Body)
	if err != nil {
		return "", fmt.Errorf("decode ticket: %w", err)
	}
	if data.Ticket == "" {
		return "", ErrEmptyTicket
	}
	err = i.c.store.Update(ctx, func(a *Account) error {
		a.Cookies = MergeCookies(a.Cookies, map[string]string{CookieTicket: data.Ticket})
		a.Ticket = data.Ticket
		a.UpdatedAtMillis = i.c.millis()
		return nil
	})
	if err != nil {
		return "", err
	}
	return data.Ticket, nil
}
