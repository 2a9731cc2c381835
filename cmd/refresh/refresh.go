package refresh

import (
	"fmt"

	"github.com/lightningstudio/watchbili/internal/bootstrap"
	"github.com/lightningstudio/watchbili/internal/sysnotify"
	"github.com/lightningstudio/watchbili/utils"
	"github.com/spf13/cobra"
)

var RefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "refresh device identity",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return bootstrap.InitClient(cmd.Context())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		sysnotify.Run(sysnotify.NotifyTypeEXIT)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return bootstrap.RefreshIdentity(cmd.Context(), bootstrap.BilibiliClient())
	},
}

var BuvidCmd = &cobra.Command{
	Use:   "buvid",
	Short: "refresh buvid3 and buvid4",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := bootstrap.BilibiliClient().Identity.RefreshBuvid(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("buvid3: %s\nbuvid4: %s\n", b.Buvid3, b.Buvid4)
		return nil
	},
}

var WbiCmd = &cobra.Command{
	Use:   "wbi",
	Short: "refresh wbi keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		k, err := bootstrap.BilibiliClient().Identity.RefreshWbiKeys(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("img key: %s\nsub key: %s\n", k.ImgKey, k.SubKey)
		return nil
	},
}

var TicketCmd = &cobra.Command{
	Use:   "ticket",
	Short: "refresh bili_ticket",
	RunE: func(cmd *cobra.Command, args []string) error {
		cli := bootstrap.BilibiliClient()
		a, err := cli.Store().Read(cmd.Context())
		if err != nil {
			return err
		}
		t, err := cli.Identity.RefreshTicket(cmd.Context(), a.CSRFToken())
		if err != nil {
			return err
		}
		fmt.Printf("ticket: %s\n", utils.Mask(t))
		return nil
	},
}

func init() {
	RefreshCmd.AddCommand(BuvidCmd, WbiCmd, TicketCmd)
}
