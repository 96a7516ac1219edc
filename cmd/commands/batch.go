package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/beatoz/fxseries/binomial"
	cfg "github.com/beatoz/fxseries/cmd/config"
	"github.com/beatoz/fxseries/libs/jsonx"
	"github.com/beatoz/fxseries/store"
	"github.com/beatoz/fxseries/types/xerrors"
	"github.com/holiman/uint256"
	"github.com/spf13/cobra"
)

type batchItem struct {
	Params binomial.Params  `json:"params"`
	Result *binomial.Result `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

func NewBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch FILE",
		Short: "Evaluate a JSON array of parameter sets concurrently",
		Long: "batch reads a JSON array of {\"k\",\"x\",\"a\",\"b\",\"precision\"} objects from FILE\n" +
			"(\"-\" for stdin) and evaluates them on a pool of `workers` goroutines.\n" +
			"Numbers may be given as decimal or 0x hex strings.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return xerrors.ErrIO.Wrap(err)
				}
				defer f.Close()
				r = f
			}
			reqs, xerr := readBatch(r, rootConfig.Unit())
			if xerr != nil {
				return xerr
			}
			return runBatch(cmd.OutOrStdout(), rootConfig, reqs)
		},
	}
}

// evaluateBatch answers cached requests from rdb and runs the rest on the
// worker pool, storing what succeeded.
func evaluateBatch(rdb *store.ResultDB, conf *cfg.Config, reqs []binomial.Params) []*binomial.BatchResult {
	ordering := conf.OrderingValue()
	bt := binomial.NewBatch(ordering, conf.Workers, logger)
	if rdb == nil {
		return bt.Run(reqs)
	}

	rets := make([]*binomial.BatchResult, len(reqs))
	var (
		missIdx []int
		misses  []binomial.Params
	)
	for i, p := range reqs {
		if ret, ok := rdb.Get(p, ordering); ok {
			rets[i] = &binomial.BatchResult{Params: p, Result: ret}
			continue
		}
		missIdx = append(missIdx, i)
		misses = append(misses, p)
	}

	for j, ret := range bt.Run(misses) {
		rets[missIdx[j]] = ret
		if ret.Err != nil {
			continue
		}
		if xerr := rdb.Put(ret.Params, ret.Result); xerr != nil {
			logger.Error("failed to store result", "params", ret.Params, "error", xerr)
		}
	}
	logger.Debug("batch cache", "requests", len(reqs), "hits", len(reqs)-len(misses))
	return rets
}

// readBatch decodes the request list; a missing k defaults to unit.
func readBatch(r io.Reader, unit *uint256.Int) ([]binomial.Params, xerrors.XError) {
	var reqs []binomial.Params
	if err := jsonx.NewDecoder(r).Decode(&reqs); err != nil {
		return nil, xerrors.ErrMalformedInput.Wrap(err)
	}
	for i := range reqs {
		if reqs[i].K == nil {
			reqs[i].K = unit.Clone()
		}
	}
	return reqs, nil
}

func runBatch(w io.Writer, conf *cfg.Config, reqs []binomial.Params) error {
	rdb, err := openCache(conf)
	if err != nil {
		return err
	}
	defer closeCache(rdb)

	rets := evaluateBatch(rdb, conf, reqs)

	failed := 0
	items := make([]*batchItem, len(rets))
	for i, ret := range rets {
		items[i] = &batchItem{Params: ret.Params, Result: ret.Result}
		if ret.Err != nil {
			items[i].Error = ret.Err.Error()
			failed++
		}
	}

	if conf.IsJSONOutput() {
		if err := writeJSON(w, items); err != nil {
			return err
		}
	} else {
		for i, item := range items {
			v := item.Error
			if item.Result != nil {
				v = item.Result.Value.Dec()
			}
			if _, err := fmt.Fprintf(w, "%d\t%v\t%s\n", i, item.Params, v); err != nil {
				return xerrors.ErrIO.Wrap(err)
			}
		}
	}

	if failed > 0 {
		return xerrors.ErrCLI.Wrapf("%d of %d evaluations failed", failed, len(reqs))
	}
	return nil
}
