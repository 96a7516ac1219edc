package commands

import (
	"io"
	"os"

	cfg "github.com/beatoz/fxseries/cmd/config"
	"github.com/beatoz/fxseries/types/xerrors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/cli"
	tmflags "github.com/tendermint/tendermint/libs/cli/flags"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	rootConfig = cfg.DefaultConfig()
	logger     = log.NewTMLogger(log.NewSyncWriter(os.Stderr))
)

func init() {
	registerFlagsRootCmd(RootCmd)
}

func registerFlagsRootCmd(cmd *cobra.Command) {
	cmd.PersistentFlags().String("log_level", rootConfig.LogLevel, "log level")
	cmd.PersistentFlags().String("log_format", rootConfig.LogFormat, "log format: plain | json")
	cmd.PersistentFlags().String("ordering", rootConfig.Ordering, "term ordering: A (separate) | B (fused)")
	cmd.PersistentFlags().Uint8("scale", rootConfig.Scale, "decimal digits of the default unit k")
	cmd.PersistentFlags().Uint64("max_precision", rootConfig.MaxPrecision, "highest precision probed by boundary and compare")
	cmd.PersistentFlags().Int("workers", rootConfig.Workers, "batch worker pool size (0 = every CPU)")
	cmd.PersistentFlags().String("output", rootConfig.Output, "output format: text | json")
	cmd.PersistentFlags().String("cache_dir", rootConfig.CacheDir, "result database directory (empty disables caching)")
}

// ParseConfig retrieves the configuration assembled by viper from the config
// file, the environment and the flags.
func ParseConfig() (*cfg.Config, error) {
	conf := cfg.DefaultConfig()
	if err := viper.Unmarshal(conf); err != nil {
		return nil, xerrors.ErrConfig.Wrap(err)
	}
	conf.SetRoot(viper.GetString(cli.HomeFlag))
	if err := conf.ValidateBasic(); err != nil {
		return nil, err
	}
	return conf, nil
}

// NewLogger returns the logger configured by conf, writing to w.
func NewLogger(conf *cfg.Config, w io.Writer) (log.Logger, error) {
	var l log.Logger
	if conf.LogFormat == cfg.LogFormatJSON {
		l = log.NewTMJSONLogger(log.NewSyncWriter(w))
	} else {
		l = log.NewTMLogger(log.NewSyncWriter(w))
	}
	l, err := tmflags.ParseLogLevel(conf.LogLevel, l, cfg.DefaultLogLevel)
	if err != nil {
		return nil, xerrors.ErrConfig.Wrap(err)
	}
	return l, nil
}

// RootCmd is the root command for fxseries.
var RootCmd = &cobra.Command{
	Use:   "fxseries",
	Short: "Fixed-point binomial series evaluator",
	Long: "fxseries evaluates k·(1+1/x)^(a/b) as a truncated Maclaurin binomial series\n" +
		"in checked 256-bit unsigned integer arithmetic.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		rootConfig, err = ParseConfig()
		if err != nil {
			return err
		}

		logger, err = NewLogger(rootConfig, os.Stderr)
		if err != nil {
			return err
		}
		if viper.GetBool(cli.TraceFlag) {
			logger = log.NewTracingLogger(logger)
		}

		logger = logger.With("module", "main")
		return nil
	},
}
