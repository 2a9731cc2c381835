package account

import (
	"fmt"

	json "github.com/json-iterator/go"
	"github.com/lightningstudio/watchbili/internal/bootstrap"
	"github.com/lightningstudio/watchbili/server/model"
	"github.com/spf13/cobra"
)

var info bool

var ShowCmd = &cobra.Command{
	Use:   "show",
	Short: "show the stored account, secrets masked",
	RunE: func(cmd *cobra.Command, args []string) error {
		cli := bootstrap.BilibiliClient()
		a, err := cli.Store().Read(cmd.Context())
		if err != nil {
			return err
		}
		resp := model.NewAccountResp(a)
		if info && resp.IsLogin {
			ui, err := cli.UserInfo(cmd.Context())
			if err != nil {
				return err
			}
			resp.IsLogin = ui.IsLogin
			resp.Mid = ui.Mid
			resp.Uname = ui.Uname
		}
		b, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	},
}

func init() {
	AccountCmd.AddCommand(ShowCmd)
	ShowCmd.Flags().BoolVar(&info, "info", false, "ask the remote service who the session belongs to")
}
