package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/lightningstudio/watchbili/internal/bootstrap"
	"github.com/lightningstudio/watchbili/internal/sysnotify"
	"github.com/lightningstudio/watchbili/vendors/bilibili"
	log "github.com/sirupsen/logrus"
	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"
)

var (
	loginInterval time.Duration
	loginTimeout  time.Duration
	loginPNG      string
)

var (
	ErrLoginTimeout    = errors.New("login timed out")
	ErrInvalidDuration = errors.New("duration must be positive")
)

// ValidateLoginFlags rejects poll settings a ticker or deadline cannot use.
func ValidateLoginFlags(interval, timeout time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("--interval %s: %w", interval, ErrInvalidDuration)
	}
	if timeout <= 0 {
		return fmt.Errorf("--timeout %s: %w", timeout, ErrInvalidDuration)
	}
	return nil
}

var LoginCmd = &cobra.Command{
	Use:       "login [tv|web]",
	Short:     "log in by scanning a qrcode with the mobile app",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{bilibili.FlavorTV.Name, bilibili.FlavorWeb.Name},
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ValidateLoginFlags(loginInterval, loginTimeout); err != nil {
			return err
		}
		return bootstrap.InitClient(cmd.Context())
	},
	PostRun: func(cmd *cobra.Command, args []string) {
		sysnotify.Run(sysnotify.NotifyTypeEXIT)
	},
	RunE: Login,
}

func Login(cmd *cobra.Command, args []string) error {
	name := bilibili.FlavorTV.Name
	if len(args) == 1 {
		name = args[0]
	}
	f, ok := bilibili.FlavorByName(name)
	if !ok {
		return fmt.Errorf("unknown login flavor: %s", name)
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, loginTimeout)
	defer cancel()

	session := bootstrap.BilibiliClient().Login.NewSession(f)
	if err := showQRCode(ctx, session); err != nil {
		return err
	}
	ticker := time.NewTicker(loginInterval)
	defer ticker.Stop()
	last := session.State()
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return ErrLoginTimeout
			}
			return ctx.Err()
		case <-ticker.C:
		}
		res, err := session.Poll(ctx)
		if err != nil {
			return err
		}
		if res.State != last {
			fmt.Printf("status: %s\n", res.State)
			last = res.State
		}
		switch res.State {
		case bilibili.QRStateSuccess:
			for _, fu := range res.FollowUps {
				if fu.Err != nil {
					log.Warnf("refresh %s after login: %v", fu.Name, fu.Err)
				}
			}
			fmt.Println("login success")
			return nil
		case bilibili.QRStateExpired:
			fmt.Println("qrcode expired, requesting a new one")
			if err := showQRCode(ctx, session); err != nil {
				return err
			}
			last = session.State()
		case bilibili.QRStateError:
			return fmt.Errorf("login failed: %d %s", res.Code, res.Message)
		}
	}
}

func showQRCode(ctx context.Context, session *bilibili.QRSession) error {
	qr, err := session.Request(ctx)
	if err != nil {
		return err
	}
	q, err := qrcode.New(qr.URL, qrcode.Medium)
	if err != nil {
		return err
	}
	fmt.Println(q.ToSmallString(false))
	fmt.Println(qr.URL)
	if loginPNG != "" {
		if err := q.WriteFile(256, loginPNG); err != nil {
			return err
		}
		fmt.Printf("qrcode written to %s\n", loginPNG)
	}
	return nil
}

func init() {
	RootCmd.AddCommand(LoginCmd)
	LoginCmd.Flags().DurationVar(&loginInterval, "interval", 2*time.Second, "poll interval")
	LoginCmd.Flags().DurationVar(&loginTimeout, "timeout", 3*time.Minute, "give up after")
	LoginCmd.Flags().StringVar(&loginPNG, "png", "", "also write the qrcode to this png file")
}
