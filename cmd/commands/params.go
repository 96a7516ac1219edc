package commands

import (
	"github.com/beatoz/fxseries/binomial"
	cfg "github.com/beatoz/fxseries/cmd/config"
	"github.com/beatoz/fxseries/types"
	"github.com/beatoz/fxseries/types/argpack"
	"github.com/beatoz/fxseries/types/xerrors"
	"github.com/holiman/uint256"
	"github.com/spf13/cobra"
)

// paramFlags are the series parameters shared by eval, pack, boundary and compare.
type paramFlags struct {
	k, x, a, b string
	precision  uint64
	packed     string
}

func addParamFlags(cmd *cobra.Command, f *paramFlags, withPacked bool) {
	cmd.Flags().StringVar(&f.k, "k", "", "unit the series is scaled by, decimal or 0x hex (default 10^scale)")
	cmd.Flags().StringVar(&f.x, "x", "", "base denominator, (1+1/x)")
	cmd.Flags().StringVar(&f.a, "a", "", "exponent numerator")
	cmd.Flags().StringVar(&f.b, "b", "", "exponent denominator")
	cmd.Flags().Uint64Var(&f.precision, "precision", 0, "number of series terms")
	if withPacked {
		cmd.Flags().StringVar(&f.packed, "packed", "", "packed argument word; replaces --k --x --a --b --precision")
	}
}

func (f *paramFlags) params(conf *cfg.Config) (binomial.Params, xerrors.XError) {
	if f.packed != "" {
		word, xerr := types.NumberFrom(f.packed)
		if xerr != nil {
			return binomial.Params{}, xerr
		}
		args, xerr := argpack.Strict(word)
		if xerr != nil {
			return binomial.Params{}, xerr
		}
		return args.Params(), nil
	}

	var (
		p    = binomial.Params{Precision: f.precision}
		xerr xerrors.XError
	)
	if f.k == "" {
		p.K = conf.Unit()
	} else if p.K, xerr = types.NumberFrom(f.k); xerr != nil {
		return p, xerr
	}
	for _, op := range []struct {
		name string
		src  string
		dst  **uint256.Int
	}{
		{"x", f.x, &p.X},
		{"a", f.a, &p.A},
		{"b", f.b, &p.B},
	} {
		if op.src == "" {
			return p, xerrors.ErrCLI.Wrapf("missing --%s", op.name)
		}
		v, xerr := types.NumberFrom(op.src)
		if xerr != nil {
			return p, xerr
		}
		*op.dst = v
	}
	return p, nil
}
