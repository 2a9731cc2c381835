package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lightningstudio/watchbili/cmd/account"
	"github.com/lightningstudio/watchbili/cmd/action"
	"github.com/lightningstudio/watchbili/cmd/flags"
	"github.com/lightningstudio/watchbili/cmd/refresh"
	"github.com/lightningstudio/watchbili/cmd/sign"
	"github.com/lightningstudio/watchbili/internal/version"
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "watchbili",
	Short: "watchbili",
	Long:  `watchbili keeps a bilibili session and signs requests for it`,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "data"
	}
	return filepath.Join(dir, "watchbili")
}

func init() {
	RootCmd.PersistentFlags().BoolVar(&flags.Dev, "dev", version.Version == "dev", "start with dev mode")
	RootCmd.PersistentFlags().BoolVar(&flags.LogStd, "log-std", false, "log to std as well as the log file")
	RootCmd.PersistentFlags().BoolVar(&flags.DisableLogColor, "disable-log-color", false, "disable log color")
	RootCmd.PersistentFlags().StringVar(&flags.DataDir, "data-dir", defaultDataDir(), "data dir")
	RootCmd.PersistentFlags().BoolVar(&flags.EnvNoPrefix, "env-no-prefix", false, "env no "+flags.ENV_PREFIX+" prefix")
	RootCmd.PersistentFlags().BoolVar(&flags.SkipConfig, "skip-config", false, "skip config")
	RootCmd.PersistentFlags().BoolVar(&flags.SkipEnv, "skip-env", false, "skip env")
	RootCmd.PersistentFlags().BoolVar(&flags.Ephemeral, "ephemeral", false, "keep the account in memory only")

	RootCmd.AddCommand(
		account.AccountCmd,
		action.ActionCmd,
		refresh.RefreshCmd,
		sign.SignCmd,
	)
}
