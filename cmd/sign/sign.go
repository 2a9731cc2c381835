package sign

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/lightningstudio/watchbili/internal/bootstrap"
	"github.com/lightningstudio/watchbili/internal/sysnotify"
	"github.com/spf13/cobra"
)

var SignCmd = &cobra.Command{
	Use:   "sign",
	Short: "sign request parameters with the stored session",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return bootstrap.InitClient(cmd.Context())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		sysnotify.Run(sysnotify.NotifyTypeEXIT)
	},
}

var AppCmd = &cobra.Command{
	Use:   "app [key=value...]",
	Short: "app sign, with appkey, ts and access_key filled in",
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := ParseParams(args)
		if err != nil {
			return err
		}
		signed, err := bootstrap.BilibiliClient().SignedAppParams(cmd.Context(), params)
		if err != nil {
			return err
		}
		fmt.Println(Encode(signed))
		return nil
	},
}

var WbiCmd = &cobra.Command{
	Use:   "wbi [key=value...]",
	Short: "wbi sign, refreshing the keys once when missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := ParseParams(args)
		if err != nil {
			return err
		}
		signed, err := bootstrap.BilibiliClient().SignedWbiParams(cmd.Context(), params)
		if err != nil {
			return err
		}
		fmt.Println(Encode(signed))
		return nil
	},
}

// ParseParams reads key=value pairs. A later key wins.
func ParseParams(args []string) (map[string]string, error) {
	params := make(map[string]string, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid param %q, want key=value", arg)
		}
		params[k] = v
	}
	return params, nil
}

// Encode renders params as a query string sorted by key.
func Encode(params map[string]string) string {
	v := make(url.Values, len(params))
	for k, val := range params {
		v.Set(k, val)
	}
	return v.Encode()
}

func init() {
	SignCmd.AddCommand(AppCmd, WbiCmd)
}
