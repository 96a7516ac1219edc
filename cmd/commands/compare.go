package commands

import (
	"fmt"
	"io"
	"math"

	"github.com/beatoz/fxseries/binomial"
	cfg "github.com/beatoz/fxseries/cmd/config"
	"github.com/beatoz/fxseries/libs/fxnum"
	"github.com/beatoz/fxseries/types/xerrors"
	"github.com/holiman/uint256"
	"github.com/spf13/cobra"
)

// compareRow is one precision of the A/B comparison. A nil value means the
// ordering overflowed at that precision.
type compareRow struct {
	Precision uint64       `json:"precision"`
	Separate  *uint256.Int `json:"separate"`
	Fused     *uint256.Int `json:"fused"`
	Diff      *uint256.Int `json:"diff,omitempty"`
	Digits    int          `json:"digits"`
}

type compareOutput struct {
	Params    binomial.Params `json:"params"`
	Reference string          `json:"reference"`
	Approx    string          `json:"approx,omitempty"`
	Rows      []*compareRow   `json:"rows"`
}

func NewCompareCmd() *cobra.Command {
	f := &paramFlags{}
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare both orderings with a high precision reference, precision by precision",
		Long: "compare evaluates precisions 1..--precision (or max_precision when omitted)\n" +
			"with both orderings and reports their difference and how many leading digits\n" +
			"of the fused result agree with k·((x+1)/x)^(a/b) computed in decimal arithmetic.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, xerr := f.params(rootConfig)
			if xerr != nil {
				return xerr
			}
			if p.Precision == 0 {
				p.Precision = rootConfig.MaxPrecision
			}
			return runCompare(cmd.OutOrStdout(), rootConfig, p)
		},
	}
	addParamFlags(cmd, f, false)
	return cmd
}

func runCompare(w io.Writer, conf *cfg.Config, p binomial.Params) error {
	if xerr := p.Validate(); xerr != nil {
		return xerr
	}
	ref, err := fxnum.Reference(p.K, p.X, p.A, p.B)
	if err != nil {
		return xerrors.ErrCLI.Wrap(err)
	}
	out := &compareOutput{Params: p, Reference: ref.String(), Approx: approxString(p)}

	for n := uint64(1); n <= p.Precision; n++ {
		row := &compareRow{Precision: n}
		for _, o := range []binomial.Ordering{binomial.NumeratorDenominatorSeparate, binomial.FusedDivideThenMultiply} {
			v, xerr := binomial.Evaluate(p.K, p.X, p.A, p.B, n, o)
			if xerr != nil && !xerr.Contains(xerrors.ErrOverflow) {
				return xerr
			}
			if o == binomial.NumeratorDenominatorSeparate {
				row.Separate = v
			} else {
				row.Fused = v
			}
		}
		if row.Separate == nil && row.Fused == nil {
			break
		}
		if row.Separate != nil && row.Fused != nil {
			row.Diff = absDiff(row.Separate, row.Fused)
			if row.Diff.GtUint64(binomial.OrderingEpsilon) {
				logger.Info("orderings diverge", "precision", n, "diff", row.Diff)
			}
		}
		if row.Fused != nil {
			row.Digits = fxnum.LeadingDigits(row.Fused, ref)
		}
		out.Rows = append(out.Rows, row)
	}

	if conf.IsJSONOutput() {
		return writeJSON(w, out)
	}
	return writeCompareTable(w, out)
}

func writeCompareTable(w io.Writer, out *compareOutput) error {
	if _, err := fmt.Fprintf(w, "reference  %s\n", out.Reference); err != nil {
		return xerrors.ErrIO.Wrap(err)
	}
	if out.Approx != "" {
		if _, err := fmt.Fprintf(w, "approx     %s\n", out.Approx); err != nil {
			return xerrors.ErrIO.Wrap(err)
		}
	}
	width := len(out.Reference) + 1
	if _, err := fmt.Fprintf(w, "%9s  %*s  %*s  %6s  %6s\n", "precision", width, "A", width, "B", "|A-B|", "digits"); err != nil {
		return xerrors.ErrIO.Wrap(err)
	}
	for _, row := range out.Rows {
		if _, err := fmt.Fprintf(w, "%9d  %*s  %*s  %6s  %6d\n",
			row.Precision, width, decOrOverflow(row.Separate), width, decOrOverflow(row.Fused), decOrDash(row.Diff), row.Digits); err != nil {
			return xerrors.ErrIO.Wrap(err)
		}
	}
	return nil
}

// approxString is the 7 decimal fixed-point estimate scaled by k, or "" when
// the operands do not fit the fixed-point range.
func approxString(p binomial.Params) string {
	for _, v := range []*uint256.Int{p.X, p.A, p.B} {
		if !v.IsUint64() || v.Uint64() > math.MaxInt64 {
			return ""
		}
	}
	f, err := fxnum.Approx(int64(p.X.Uint64()), int64(p.A.Uint64()), int64(p.B.Uint64()))
	if err != nil {
		logger.Debug("fixed-point approximation failed", "error", err)
		return ""
	}
	d, err := fxnum.ScaledFixed(f, p.K)
	if err != nil {
		return ""
	}
	return d.Truncate(0).String()
}

func absDiff(x, y *uint256.Int) *uint256.Int {
	if x.Lt(y) {
		return new(uint256.Int).Sub(y, x)
	}
	return new(uint256.Int).Sub(x, y)
}

func decOrOverflow(v *uint256.Int) string {
	if v == nil {
		return "overflow"
	}
	return v.Dec()
}

func decOrDash(v *uint256.Int) string {
	if v == nil {
		return "-"
	}
	return v.Dec()
}
