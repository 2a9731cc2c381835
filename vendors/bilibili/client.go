package bilibili

import (
	"time"
)

type Client struct {
	conf     Config
	store    AccountStore
	gateway  *Gateway
	doer     Doer
	debugLog DebugLogger
	now      func() time.Time

	Identity *Identity
	Login    *Login
	Action   *Action
}

type ClientConfig func(*Client)

func WithConfig(conf Config) ClientConfig {
	return func(c *Client) {
		c.conf = conf
	}
}

// WithDoer replaces the go-uhc transport, e.g. with an *http.Client.
func WithDoer(doer Doer) ClientConfig {
	return func(c *Client) {
		c.doer = doer
	}
}

func WithDebugLogger(l DebugLogger) ClientConfig {
	return func(c *Client) {
		c.debugLog = l
	}
}

func WithClock(now func() time.Time) ClientConfig {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient wires every component around one shared store.
func NewClient(store AccountStore, conf ...ClientConfig) *Client {
	cli := &Client{
		conf:  DefaultConfig(),
		store: store,
		now:   time.Now,
	}
	for _, v := range conf {
		v(cli)
	}
	cli.conf = cli.conf.withDefaults()
	cli.gateway = NewGateway(cli.doer, store, cli.conf)
	cli.Identity = &Identity{c: cli}
	cli.Login = &Login{c: cli}
	cli.Action = &Action{c: cli}
	return cli
}

func (c *Client) Config() Config {
	return c.conf
}

func (c *Client) Store() AccountStore {
	return c.store
}

func (c *Client) Gateway() *Gateway {
	return c.gateway
}

func (c *Client) unix() int64 {
	return c.now().Unix()
}

func (c *Client) millis() int64 {
	return c.now().UnixMilli()
}
