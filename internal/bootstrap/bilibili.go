package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/lightningstudio/watchbili/cmd/flags"
	"github.com/lightningstudio/watchbili/internal/conf"
	"github.com/lightningstudio/watchbili/internal/db"
	"github.com/lightningstudio/watchbili/internal/keyring"
	"github.com/lightningstudio/watchbili/internal/kvstore"
	"github.com/lightningstudio/watchbili/internal/sysnotify"
	"github.com/lightningstudio/watchbili/utils"
	"github.com/lightningstudio/watchbili/vendors/bilibili"
	log "github.com/sirupsen/logrus"
)

var client *bilibili.Client

// InitClient prepares a command that talks to the remote service.
func InitClient(ctx context.Context) error {
	return New(WithContext(ctx)).Add(
		InitDiscardLog,
		InitConfig,
		InitLog,
		InitDatabase,
		InitBilibili,
	).Run()
}

// BilibiliClient returns the client built by InitBilibili.
func BilibiliClient() *bilibili.Client {
	return client
}

// InitBilibili builds the account store and client. The database must be
// initialized first unless running ephemeral.
func InitBilibili(ctx context.Context) error {
	kv, err := accountKV()
	if err != nil {
		return err
	}
	opts := []bilibili.ClientConfig{
		bilibili.WithConfig(conf.Conf.Bilibili.ToBilibili()),
	}
	if conf.Conf.Bilibili.Debug || flags.Dev {
		opts = append(opts, bilibili.WithDebugLogger(bilibili.LogrusDebugLogger))
	}
	client = bilibili.NewClient(bilibili.NewStore(kv), opts...)
	return sysnotify.RegisterSysNotifyTask(0, sysnotify.NewSysNotifyTask(
		"bilibili identity",
		sysnotify.NotifyTypeRELOAD,
		func() error {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			return RefreshIdentity(ctx, client)
		},
	))
}

func accountKV() (bilibili.KV, error) {
	if flags.Ephemeral {
		log.Warn("ephemeral mode, the account is lost on exit")
		return bilibili.NewMemoryKV(), nil
	}
	if db.DB() == nil {
		return nil, fmt.Errorf("database is not initialized")
	}
	var kv bilibili.KV = db.NewKV(db.DB())
	if conf.Conf.Keyring.Disable {
		log.Warn("keyring disabled, the account is stored unencrypted")
		return kv, nil
	}
	keyFile, err := utils.OptFilePath(conf.Conf.Keyring.FilePath)
	if err != nil {
		return nil, err
	}
	stores := []keyring.KeyStore{keyring.NewOSKeyring(conf.Conf.Keyring.Service)}
	if keyFile != "" {
		stores = append(stores, keyring.NewFileKeyStore(keyFile))
	}
	master, err := keyring.MasterKey(stores...)
	if err != nil {
		return nil, err
	}
	return kvstore.NewEncrypted(kv, master)
}

// RefreshIdentity refreshes buvid and wbi keys, then the ticket when a csrf
// token is known. Failures are logged and the first one is returned.
func RefreshIdentity(ctx context.Context, c *bilibili.Client) error {
	var first error
	keep := func(name string, err error) {
		if err == nil {
			return
		}
		log.Warnf("refresh %s failed: %v", name, err)
		if first == nil {
			first = err
		}
	}
	_, err := c.Identity.RefreshBuvid(ctx)
	keep("buvid", err)
	_, err = c.Identity.RefreshWbiKeys(ctx)
	keep("wbi", err)
	a, err := c.Store().Read(ctx)
	if err != nil {
		keep("account", err)
		return first
	}
	if csrf := a.CSRFToken(); csrf != "" {
		_, err = c.Identity.RefreshTicket(ctx, csrf)
		keep("ticket", err)
	}
	return first
}
