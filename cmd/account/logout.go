package account

import (
	"fmt"
	"time"

	"github.com/lightningstudio/watchbili/internal/bootstrap"
	"github.com/lightningstudio/watchbili/vendors/bilibili"
	"github.com/spf13/cobra"
)

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "forget the stored session, keeping device identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := bootstrap.BilibiliClient().Store().Update(cmd.Context(), func(a *bilibili.Account) error {
			kept := make(map[string]string, 2)
			for _, name := range []string{bilibili.CookieBuvid3, bilibili.CookieBuvid4} {
				if v, ok := a.Cookies[name]; ok {
					kept[name] = v
				}
			}
			*a = bilibili.Account{
				Cookies:         kept,
				Buvid3:          a.Buvid3,
				Buvid4:          a.Buvid4,
				WbiImgKey:       a.WbiImgKey,
				WbiSubKey:       a.WbiSubKey,
				UpdatedAtMillis: time.Now().UnixMilli(),
			}
			return nil
		})
		if err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil
	},
}

func init() {
	AccountCmd.AddCommand(LogoutCmd)
}
