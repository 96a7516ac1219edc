package commands

import (
	"io"
	"strconv"

	"github.com/beatoz/fxseries/binomial"
	cfg "github.com/beatoz/fxseries/cmd/config"
	"github.com/beatoz/fxseries/types"
	"github.com/beatoz/fxseries/types/argpack"
	"github.com/beatoz/fxseries/types/xerrors"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/spf13/cobra"
)

type packOutput struct {
	Word         *uint256.Int  `json:"word"`
	Hex          string        `json:"hex"`
	Calldata     hexutil.Bytes `json:"calldata"`
	ArgsCalldata hexutil.Bytes `json:"argsCalldata"`
}

type unpackOutput struct {
	Word   *uint256.Int    `json:"word"`
	Params binomial.Params `json:"params"`
}

func NewPackCmd() *cobra.Command {
	f := &paramFlags{}
	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Pack the evaluation arguments into one 256-bit word and its ABI calldata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, xerr := f.params(rootConfig)
			if xerr != nil {
				return xerr
			}
			return runPack(cmd.OutOrStdout(), rootConfig, p)
		},
	}
	addParamFlags(cmd, f, false)
	return cmd
}

func runPack(w io.Writer, conf *cfg.Config, p binomial.Params) error {
	word, xerr := argpack.EncodeParams(p)
	if xerr != nil {
		return xerr
	}
	calldata, xerr := argpack.PackCalldata(word)
	if xerr != nil {
		return xerr
	}
	argsCalldata, xerr := argpack.PackArgsCalldata(p)
	if xerr != nil {
		return xerr
	}
	logger.Debug("packed", "params", p, "word", word.Hex(), "calldata", len(calldata), "argsCalldata", len(argsCalldata))

	if conf.IsJSONOutput() {
		return writeJSON(w, &packOutput{
			Word:         word,
			Hex:          word.Hex(),
			Calldata:     calldata,
			ArgsCalldata: argsCalldata,
		})
	}
	return lines(w,
		[2]string{"word", word.Dec()},
		[2]string{"hex", word.Hex()},
		[2]string{"calldata", hexutil.Encode(calldata)},
		[2]string{"calldata size", strconv.Itoa(len(calldata)) + " bytes (unpacked " + strconv.Itoa(len(argsCalldata)) + " bytes)"},
	)
}

func NewUnpackCmd() *cobra.Command {
	var (
		calldata string
		loose    bool
	)
	cmd := &cobra.Command{
		Use:   "unpack [WORD]",
		Short: "Unpack a packed argument word, given directly or as ABI calldata",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				word *uint256.Int
				xerr xerrors.XError
			)
			switch {
			case calldata != "" && len(args) == 0:
				bz, err := hexutil.Decode(calldata)
				if err != nil {
					return xerrors.ErrMalformedInput.Wrap(err)
				}
				if word, xerr = argpack.UnpackCalldata(bz); xerr != nil {
					return xerr
				}
			case calldata == "" && len(args) == 1:
				if word, xerr = types.NumberFrom(args[0]); xerr != nil {
					return xerr
				}
			default:
				return xerrors.ErrCLI.Wrapf("give either WORD or --calldata")
			}
			return runUnpack(cmd.OutOrStdout(), rootConfig, word, !loose)
		},
	}
	cmd.Flags().StringVar(&calldata, "calldata", "", "0x-prefixed ABI calldata carrying the packed word")
	cmd.Flags().BoolVar(&loose, "ignore-high-bits", false, "accept words with the unused high 64 bits set")
	return cmd
}

func runUnpack(w io.Writer, conf *cfg.Config, word *uint256.Int, strict bool) error {
	args := argpack.Decode(word)
	if strict {
		var xerr xerrors.XError
		if args, xerr = argpack.Strict(word); xerr != nil {
			return xerr
		}
	}

	if conf.IsJSONOutput() {
		return writeJSON(w, &unpackOutput{Word: word, Params: args.Params()})
	}
	return lines(w,
		[2]string{"k", args.K.Dec()},
		[2]string{"x", strconv.FormatUint(uint64(args.X), 10)},
		[2]string{"a", strconv.FormatUint(uint64(args.A), 10)},
		[2]string{"b", strconv.FormatUint(uint64(args.B), 10)},
		[2]string{"precision", strconv.FormatUint(uint64(args.Precision), 10)},
	)
}
