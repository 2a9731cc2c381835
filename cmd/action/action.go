package action

import (
	"fmt"

	"github.com/lightningstudio/watchbili/internal/bootstrap"
	"github.com/lightningstudio/watchbili/internal/sysnotify"
	"github.com/lightningstudio/watchbili/vendors/bilibili"
	"github.com/spf13/cobra"
)

var preferWeb bool

var ActionCmd = &cobra.Command{
	Use:   "action",
	Short: "like, coin or favorite a video",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return bootstrap.InitClient(cmd.Context())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		sysnotify.Run(sysnotify.NotifyTypeEXIT)
	},
}

func options() []bilibili.ActionOption {
	if preferWeb {
		return []bilibili.ActionOption{bilibili.PreferWeb()}
	}
	return nil
}

func report(res *bilibili.ActionResult, err error) error {
	if err != nil {
		return err
	}
	if !res.OK() {
		return fmt.Errorf("rejected: %d %s", res.Code, res.Message)
	}
	fmt.Printf("ok like=%t coin=%t fav=%t\n", res.Like, res.Coin, res.Fav)
	return nil
}

func init() {
	ActionCmd.PersistentFlags().BoolVar(&preferWeb, "web", false, "use the cookie endpoints even when an access token is stored")
}
