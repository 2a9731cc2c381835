package account

import (
	"github.com/lightningstudio/watchbili/internal/bootstrap"
	"github.com/lightningstudio/watchbili/internal/sysnotify"
	"github.com/spf13/cobra"
)

var AccountCmd = &cobra.Command{
	Use:   "account",
	Short: "stored account",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return bootstrap.InitClient(cmd.Context())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		sysnotify.Run(sysnotify.NotifyTypeEXIT)
	},
}
