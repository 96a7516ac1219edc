package commands

import (
	"io"
	"strconv"

	"github.com/beatoz/fxseries/binomial"
	cfg "github.com/beatoz/fxseries/cmd/config"
	"github.com/spf13/cobra"
)

type boundaryOutput struct {
	Params   binomial.Params `json:"params"`
	Limit    uint64          `json:"limit"`
	Separate uint64          `json:"separate"`
	Fused    uint64          `json:"fused"`
}

func NewBoundaryCmd() *cobra.Command {
	f := &paramFlags{}
	cmd := &cobra.Command{
		Use:   "boundary",
		Short: "Find the highest precision that evaluates without overflow, for both orderings",
		Long: "boundary probes precisions up to max_precision and reports, per ordering,\n" +
			"the largest one whose evaluation completes without overflow.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, xerr := f.params(rootConfig)
			if xerr != nil {
				return xerr
			}
			return runBoundary(cmd.OutOrStdout(), rootConfig, p)
		},
	}
	addParamFlags(cmd, f, false)
	return cmd
}

func runBoundary(w io.Writer, conf *cfg.Config, p binomial.Params) error {
	sepa, xerr := binomial.MaxPrecision(p, binomial.NumeratorDenominatorSeparate, conf.MaxPrecision)
	if xerr != nil {
		return xerr
	}
	fused, xerr := binomial.MaxPrecision(p, binomial.FusedDivideThenMultiply, conf.MaxPrecision)
	if xerr != nil {
		return xerr
	}
	logger.Info("overflow boundary", "params", p, "A", sepa, "B", fused, "limit", conf.MaxPrecision)

	if conf.IsJSONOutput() {
		return writeJSON(w, &boundaryOutput{Params: p, Limit: conf.MaxPrecision, Separate: sepa, Fused: fused})
	}
	return lines(w,
		[2]string{binomial.NumeratorDenominatorSeparate.Label(), boundaryString(sepa, conf.MaxPrecision)},
		[2]string{binomial.FusedDivideThenMultiply.Label(), boundaryString(fused, conf.MaxPrecision)},
	)
}

func boundaryString(n, limit uint64) string {
	if n == limit {
		return strconv.FormatUint(n, 10) + " (limit)"
	}
	return strconv.FormatUint(n, 10)
}
