package conf_test

import (
	"testing"
	"time"

	"github.com/lightningstudio/watchbili/internal/conf"
	"github.com/lightningstudio/watchbili/vendors/bilibili"
)

func TestBilibiliDefaultsRoundTrip(t *testing.T) {
	t.Parallel()
	got := conf.DefaultBilibiliConfig().ToBilibili()
	want := bilibili.DefaultConfig()
	if got.AppKey != want.AppKey || got.TVAppSec != want.TVAppSec || got.TicketHMACKey != want.TicketHMACKey {
		t.Errorf("ToBilibili() = %+v", got)
	}
	if got.Timeout != want.Timeout {
		t.Errorf("Timeout = %v, want %v", got.Timeout, want.Timeout)
	}
}

func TestBilibiliOverride(t *testing.T) {
	t.Parallel()
	c := conf.DefaultBilibiliConfig()
	c.TicketKeyID = "ec03"
	c.Timeout = 5
	got := c.ToBilibili()
	if got.TicketKeyID != "ec03" || got.Timeout != 5*time.Second {
		t.Errorf("ToBilibili() = %+v", got)
	}
}
