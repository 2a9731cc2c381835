package cmd

import (
	"fmt"

	"github.com/lightningstudio/watchbili/internal/bootstrap"
	"github.com/lightningstudio/watchbili/internal/conf"
	"github.com/spf13/cobra"
)

var ConfCmd = &cobra.Command{
	Use:   "conf",
	Short: "conf",
	Long:  `print the effective config, creating the config file when missing`,
	RunE:  Conf,
}

func Conf(cmd *cobra.Command, args []string) error {
	err := bootstrap.New(bootstrap.WithContext(cmd.Context())).Add(
		bootstrap.InitDiscardLog,
		bootstrap.InitConfig,
	).Run()
	if err != nil {
		return err
	}
	fmt.Println(conf.Conf.String())
	return nil
}

func init() {
	RootCmd.AddCommand(ConfCmd)
}
