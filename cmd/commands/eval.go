package commands

import (
	"io"
	"strconv"

	"github.com/beatoz/fxseries/binomial"
	cfg "github.com/beatoz/fxseries/cmd/config"
	"github.com/beatoz/fxseries/libs/fxnum"
	"github.com/spf13/cobra"
)

func NewEvalCmd() *cobra.Command {
	f := &paramFlags{}
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate k·(1+1/x)^(a/b) truncated to --precision series terms",
		Example: "  fxseries eval --x 2 --a 250 --b 365 --precision 21\n" +
			"  fxseries eval --packed 0xde0b6b3a7640000000200fa016d0015 --ordering A",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, xerr := f.params(rootConfig)
			if xerr != nil {
				return xerr
			}
			return runEval(cmd.OutOrStdout(), rootConfig, p)
		},
	}
	addParamFlags(cmd, f, true)
	return cmd
}

func runEval(w io.Writer, conf *cfg.Config, p binomial.Params) error {
	rdb, err := openCache(conf)
	if err != nil {
		return err
	}
	defer closeCache(rdb)

	ordering := conf.OrderingValue()
	evaluate := binomial.EvaluateParams
	if rdb != nil {
		evaluate = rdb.Evaluate
	}
	ret, xerr := evaluate(p, ordering)
	if xerr != nil {
		logger.Error("evaluation failed", "params", p, "ordering", ordering.Label(), "error", xerr)
		return xerr
	}
	logger.Debug("evaluated", "params", p, "ordering", ordering.Label(), "value", ret.Value)

	if conf.IsJSONOutput() {
		return writeJSON(w, ret)
	}
	return lines(w,
		[2]string{"value", ret.Value.Dec()},
		[2]string{"scaled", fxnum.FormatScaled(ret.Value, p.K)},
		[2]string{"last term", ret.LastTerm.Dec()},
		[2]string{"precision", strconv.FormatUint(ret.Precision, 10)},
		[2]string{"ordering", ordering.Label() + " (" + ordering.String() + ")"},
	)
}
