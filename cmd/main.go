package main

import (
	"os"
	"path/filepath"

	"github.com/beatoz/fxseries/cmd/commands"
	"github.com/tendermint/tendermint/libs/cli"
)

func main() {
	commands.RootCmd.AddCommand(
		commands.NewInitCmd(),
		commands.NewEvalCmd(),
		commands.NewPackCmd(),
		commands.NewUnpackCmd(),
		commands.NewBoundaryCmd(),
		commands.NewCompareCmd(),
		commands.NewBatchCmd(),
		commands.VersionCmd,
	)

	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	executor := cli.PrepareBaseCmd(commands.RootCmd, "FXSERIES", filepath.Join(home, ".fxseries"))
	if err := executor.Execute(); err != nil {
		panic(err)
	}
}
