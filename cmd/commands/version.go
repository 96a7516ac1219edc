package commands

import (
	"fmt"

	"github.com/beatoz/fxseries/cmd/version"
	"github.com/spf13/cobra"
)

// VersionCmd ...
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version info",
	RunE: func(cmd *cobra.Command, args []string) error {
		if rootConfig.IsJSONOutput() {
			return writeJSON(cmd.OutOrStdout(), version.Get())
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
		return err
	},
}
