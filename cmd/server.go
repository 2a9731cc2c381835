package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/lightningstudio/watchbili/cmd/flags"
	"github.com/lightningstudio/watchbili/internal/bootstrap"
	"github.com/lightningstudio/watchbili/internal/conf"
	"github.com/lightningstudio/watchbili/internal/sysnotify"
	"github.com/lightningstudio/watchbili/server"
	"github.com/lightningstudio/watchbili/utils"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var ServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the http api",
	Long:  `Start the http api that login uis and scripts talk to`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("log-std") {
			flags.LogStd = true
		}
		return bootstrap.New(bootstrap.WithContext(cmd.Context())).Add(
			bootstrap.InitSysNotify,
			bootstrap.InitConfig,
			bootstrap.InitLog,
			bootstrap.InitGinMode,
			bootstrap.InitDatabase,
			bootstrap.InitBilibili,
		).Run()
	},
	RunE: Server,
}

func Server(cmd *cobra.Command, args []string) error {
	sc := conf.Conf.Server
	certPath, err := utils.OptFilePath(sc.CertPath)
	if err != nil {
		return err
	}
	keyPath, err := utils.OptFilePath(sc.KeyPath)
	if err != nil {
		return err
	}
	if (certPath == "") != (keyPath == "") {
		return errors.New("cert and key must be both set")
	}
	addr := net.JoinHostPort(sc.Listen, fmt.Sprint(sc.Port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	e, err := server.NewAndInit(bootstrap.BilibiliClient())
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           e.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		var err error
		if certPath != "" {
			log.Infof("api run on https://%s", listener.Addr())
			err = srv.ServeTLS(listener, certPath, keyPath)
		} else {
			log.Infof("api run on http://%s", listener.Addr())
			err = srv.Serve(listener)
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("api server error: %v", err)
		}
	}()
	err = sysnotify.RegisterSysNotifyTask(-1, sysnotify.NewSysNotifyTask("http server", sysnotify.NotifyTypeEXIT, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}))
	if err != nil {
		return err
	}
	sysnotify.WaitCbk()
	return nil
}

func init() {
	RootCmd.AddCommand(ServerCmd)
	ServerCmd.PersistentFlags().BoolVar(&flags.DisableRateLimit, "disable-rate-limit", false, "disable the rate limiter")
}
