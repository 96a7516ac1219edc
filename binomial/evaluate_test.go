package binomial

import (
	"fmt"
	"testing"

	"github.com/beatoz/fxseries/types/xerrors"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

const (
	scale = uint64(1_000_000_000_000_000_000)

	// k·(3/2)^(250/365) with k = 10^18, truncated.
	refScenario = "1320111004619619371"
)

var orderings = []Ordering{NumeratorDenominatorSeparate, FusedDivideThenMultiply}

func scenario(precision uint64) Params {
	return NewParams(scale, 2, 250, 365, precision)
}

func absDiff(x, y *uint256.Int) *uint256.Int {
	if x.Lt(y) {
		return new(uint256.Int).Sub(y, x)
	}
	return new(uint256.Int).Sub(x, y)
}

func TestEvaluate_Scenario(t *testing.T) {
	cases := []struct {
		precision uint64
		sepa      string // "" when the separate ordering overflows
		fused     string
	}{
		{0, "0", "0"},
		{1, "1000000000000000000", "1000000000000000000"},
		{2, "1342465753424657534", "1342465753424657534"},
		{3, "1315490711202852318", "1315490711202852318"},
		{4, "1321403049224069899", "1321403049224069899"},
		{5, "1319692115789847688", "1319692115789847689"},
		{6, "1320259301942014503", "1320259301942014503"},
		{8, "1320132778665904858", "1320132778665904857"},
		{12, "1320111660020720887", "1320111660020720886"},
		{17, "1320110993544268393", "1320110993544268392"},
		{18, "1320111009630163049", "1320111009630163047"},
		{19, "", "1320111002340094351"},
		{20, "", "1320111005661884845"},
		{21, "", "1320111004140914335"},
		{24, "", "1320111004667078629"},
	}

	for _, c := range cases {
		p := scenario(c.precision)

		ret, xerr := EvaluateParams(p, FusedDivideThenMultiply)
		require.NoError(t, xerr, p.String())
		require.Equal(t, c.fused, ret.Value.Dec(), p.String())

		ret, xerr = EvaluateParams(p, NumeratorDenominatorSeparate)
		if c.sepa == "" {
			require.Error(t, xerr, p.String())
			require.True(t, xerr.Contains(xerrors.ErrOverflow), xerr.Error())
			require.Nil(t, ret)
			continue
		}
		require.NoError(t, xerr, p.String())
		require.Equal(t, c.sepa, ret.Value.Dec(), p.String())
	}
}

func TestEvaluate_OrderingsAgreeAt18(t *testing.T) {
	sepa, xerr := Evaluate(uint256.NewInt(scale), uint256.NewInt(2), uint256.NewInt(250), uint256.NewInt(365), 18, NumeratorDenominatorSeparate)
	require.NoError(t, xerr)
	fused, xerr := Evaluate(uint256.NewInt(scale), uint256.NewInt(2), uint256.NewInt(250), uint256.NewInt(365), 18, FusedDivideThenMultiply)
	require.NoError(t, xerr)
	require.False(t, absDiff(sepa, fused).Gt(uint256.NewInt(2)), "sepa:%v fused:%v", sepa, fused)
}

func TestEvaluate_FusedAt21(t *testing.T) {
	_, xerr := EvaluateParams(scenario(21), NumeratorDenominatorSeparate)
	require.True(t, xerr.Contains(xerrors.ErrOverflow))

	ret, xerr := EvaluateParams(scenario(21), FusedDivideThenMultiply)
	require.NoError(t, xerr)
	require.Equal(t, refScenario[:10], ret.Value.Dec()[:10])
}

func TestEvaluate_SpecialCases(t *testing.T) {
	cases := []struct {
		k, x, a, b string
		want       [4]string
	}{
		{"1000000000000000000", "2", "250", "365", [4]string{"0", "1000000000000000000", "1342465753424657534", "1315490711202852318"}},
		{"1000000", "3", "1", "2", [4]string{"0", "1000000", "1166666", "1152778"}},
		{"12345678901234567890", "7", "3", "4", [4]string{"0", "12345678901234567890", "13668430212081128735", "13644809652958868720"}},
		{"170141183460469231731687303715884105728", "65535", "65535", "65535", [4]string{"0", "170141183460469231731687303715884105728", "170143779648513184874767057851898691584", "170143779648513184874767057851898691584"}},
		{"1", "1", "1", "1", [4]string{"0", "1", "2", "2"}},
		{"1000000000000000000", "1", "0", "5", [4]string{"0", "1000000000000000000", "1000000000000000000", "1000000000000000000"}},
	}

	for _, c := range cases {
		for precision, want := range c.want {
			p := Params{
				K:         uint256.MustFromDecimal(c.k),
				X:         uint256.MustFromDecimal(c.x),
				A:         uint256.MustFromDecimal(c.a),
				B:         uint256.MustFromDecimal(c.b),
				Precision: uint64(precision),
			}
			for _, o := range orderings {
				ret, xerr := EvaluateParams(p, o)
				require.NoError(t, xerr, p.String())
				require.Equal(t, want, ret.Value.Dec(), "%v ordering:%v", p, o)
			}

			lit, xerr := EvaluateLiteral(p)
			require.NoError(t, xerr)
			require.Equal(t, want, lit.Dec(), p.String())
		}
	}
}

func TestEvaluate_DivisionByZero(t *testing.T) {
	cases := []Params{
		NewParams(scale, 0, 250, 365, 0),
		NewParams(scale, 0, 250, 365, 5),
		NewParams(scale, 2, 250, 0, 1),
		NewParams(scale, 2, 0, 0, 30),
		NewParams(0, 0, 0, 0, 0),
		NewParams(scale, 2, 500, 0, 3), // a > b as well
	}
	for _, p := range cases {
		for _, o := range orderings {
			ret, xerr := EvaluateParams(p, o)
			require.Nil(t, ret)
			require.Equal(t, xerrors.ErrCodeDivisionByZero, xerr.Code(), p.String())
		}
		_, xerr := EvaluateLiteral(p)
		require.Equal(t, xerrors.ErrCodeDivisionByZero, xerr.Code(), p.String())
	}
}

func TestEvaluate_InvalidExponent(t *testing.T) {
	for _, precision := range []uint64{0, 1, 2, 3, 4, 20} {
		p := NewParams(scale, 2, 366, 365, precision)
		for _, o := range orderings {
			_, xerr := EvaluateParams(p, o)
			require.True(t, xerr.Contains(xerrors.ErrInvalidExponent), p.String())
		}
	}

	_, xerr := EvaluateParams(Params{K: uint256.NewInt(1), X: uint256.NewInt(1), B: uint256.NewInt(1)}, DefaultOrdering)
	require.True(t, xerr.Contains(xerrors.ErrInvalidParams))
}

func TestEvaluate_InvalidOrdering(t *testing.T) {
	_, xerr := EvaluateParams(scenario(5), Ordering(0))
	require.True(t, xerr.Contains(xerrors.ErrInvalidOrdering))
	_, xerr = EvaluateParams(scenario(5), Ordering(9))
	require.True(t, xerr.Contains(xerrors.ErrInvalidOrdering))
}

func TestEvaluate_Overflow(t *testing.T) {
	maxK := new(uint256.Int).SetAllOne()

	// k·a already exceeds the width at precision 2
	_, xerr := Evaluate(maxK, uint256.NewInt(2), uint256.NewInt(2), uint256.NewInt(3), 2, FusedDivideThenMultiply)
	require.True(t, xerr.Contains(xerrors.ErrOverflow))

	// the seed total k + k·a/(b·x) exceeds the width
	_, xerr = Evaluate(maxK, uint256.NewInt(2), uint256.NewInt(1), uint256.NewInt(1), 2, FusedDivideThenMultiply)
	require.True(t, xerr.Contains(xerrors.ErrOverflow))

	// a = 0 never multiplies k beyond itself
	v, xerr := Evaluate(maxK, uint256.NewInt(2), uint256.NewInt(0), uint256.NewInt(1), 10, FusedDivideThenMultiply)
	require.NoError(t, xerr)
	require.True(t, v.Eq(maxK))
}

func TestEvaluate_FusedHugePrecision(t *testing.T) {
	const huge = uint64(1) << 40
	cases := []struct {
		p    Params
		want string
	}{
		{NewParams(scale, 2, 0, 365, huge), "1000000000000000000"},
		{NewParams(scale, 4, 7, 7, huge), "1250000000000000000"},
		{NewParams(scale, 1000, 1, 3, huge), MustEvaluate(scale, 1000, 1, 3, 64, FusedDivideThenMultiply).Dec()},
	}
	for _, c := range cases {
		ret, xerr := EvaluateParams(c.p, FusedDivideThenMultiply)
		require.NoError(t, xerr, c.p.String())
		require.Equal(t, c.want, ret.Value.Dec(), c.p.String())
		require.True(t, ret.LastTerm.IsZero())
		require.Equal(t, huge, ret.Precision)

		n, xerr := MaxPrecision(c.p, FusedDivideThenMultiply, huge)
		require.NoError(t, xerr)
		require.Equal(t, huge, n)
	}

	// the separate ordering keeps multiplying its denominator
	_, xerr := EvaluateParams(NewParams(scale, 2, 0, 365, huge), NumeratorDenominatorSeparate)
	require.True(t, xerr.Contains(xerrors.ErrOverflow))
}

// Successive partial sums differ by strictly decreasing magnitudes until the
// terms vanish or the evaluation overflows.
func TestEvaluate_MonotonicConvergence(t *testing.T) {
	cases := []struct{ x, a, b uint64 }{
		{2, 250, 365},
		{2, 1, 2},
		{3, 2, 3},
		{10, 7, 10},
		{10, 99, 100},
		{1000, 12345, 54321},
		{2, 1, 65535},
	}
	for _, c := range cases {
		for _, o := range orderings {
			var (
				prevSum  = uint256.NewInt(0)
				prevDiff *uint256.Int
			)
			for precision := uint64(1); precision <= 64; precision++ {
				sum, xerr := Evaluate(uint256.NewInt(scale), uint256.NewInt(c.x), uint256.NewInt(c.a), uint256.NewInt(c.b), precision, o)
				if xerr != nil {
					require.True(t, xerr.Contains(xerrors.ErrOverflow))
					break
				}
				diff := absDiff(sum, prevSum)
				if diff.IsZero() {
					break
				}
				if prevDiff != nil {
					require.True(t, diff.Lt(prevDiff), "x:%v a:%v b:%v ordering:%v precision:%v", c.x, c.a, c.b, o, precision)
				}
				prevSum, prevDiff = sum, diff
			}
		}
	}
}

func TestEvaluate_LastTerm(t *testing.T) {
	for precision := uint64(1); precision <= 30; precision++ {
		curr, xerr := EvaluateParams(scenario(precision), FusedDivideThenMultiply)
		require.NoError(t, xerr)
		prev, xerr := EvaluateParams(scenario(precision-1), FusedDivideThenMultiply)
		require.NoError(t, xerr)
		require.Equal(t, absDiff(curr.Value, prev.Value).Dec(), curr.LastTerm.Dec(), "precision %d", precision)
	}
}

func TestEvaluate_Concurrent(t *testing.T) {
	want := MustEvaluate(scale, 2, 250, 365, 30, FusedDivideThenMultiply)
	errCh := make(chan error, 16)
	for i := 0; i < 16; i++ {
		go func() {
			got := MustEvaluate(scale, 2, 250, 365, 30, FusedDivideThenMultiply)
			if !got.Eq(want) {
				errCh <- fmt.Errorf("got %v want %v", got, want)
				return
			}
			errCh <- nil
		}()
	}
	for i := 0; i < 16; i++ {
		require.NoError(t, <-errCh)
	}
}

func TestMustEvaluatePanics(t *testing.T) {
	require.Panics(t, func() {
		MustEvaluate(scale, 0, 1, 2, 4, FusedDivideThenMultiply)
	})
}
