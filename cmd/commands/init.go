package commands

import (
	cfg "github.com/beatoz/fxseries/cmd/config"
	"github.com/spf13/cobra"
	tmos "github.com/tendermint/tendermint/libs/os"
)

var overwriteConfig bool

func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the current configuration to $HOME/config/config.toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfigFile(rootConfig, overwriteConfig)
		},
	}
	cmd.Flags().BoolVar(&overwriteConfig, "overwrite", false, "replace an existing config file")
	return cmd
}

func initConfigFile(conf *cfg.Config, overwrite bool) error {
	if tmos.FileExists(conf.ConfigFile()) && !overwrite {
		logger.Info("Found config file", "path", conf.ConfigFile())
		return nil
	}
	if err := cfg.WriteConfigFile(conf); err != nil {
		return err
	}
	logger.Info("Generated config file", "path", conf.ConfigFile())
	return nil
}
