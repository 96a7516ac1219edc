package binomial

import (
	"runtime"

	"github.com/beatoz/fxseries/types/xerrors"
	"github.com/tendermint/tendermint/libs/log"
)

type reqEval struct {
	idx    int
	params Params
}

type respEval struct {
	idx  int
	ret  *Result
	xerr xerrors.XError
}

// BatchResult pairs one request with its own outcome.
type BatchResult struct {
	Params Params
	Result *Result
	Err    xerrors.XError
}

// Batch evaluates independent requests on a fixed pool of workers.
type Batch struct {
	ordering Ordering
	workers  int
	logger   log.Logger
}

func NewBatch(ordering Ordering, workers int, logger log.Logger) *Batch {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Batch{
		ordering: ordering,
		workers:  workers,
		logger:   logger.With("module", "batch"),
	}
}

// Run returns one BatchResult per request, in request order.
func (bt *Batch) Run(reqs []Params) []*BatchResult {
	rets := make([]*BatchResult, len(reqs))
	if len(reqs) == 0 {
		return rets
	}

	workers := min(bt.workers, len(reqs))
	reqCh := make(chan *reqEval, len(reqs))
	respCh := make(chan *respEval, len(reqs))
	for i := 0; i < workers; i++ {
		go evaluateRoutine(bt.ordering, reqCh, respCh)
	}

	for i, p := range reqs {
		reqCh <- &reqEval{idx: i, params: p}
	}
	close(reqCh)

	failed := 0
	for range reqs {
		resp := <-respCh
		if resp.xerr != nil {
			failed++
			bt.logger.Debug("evaluation failed", "index", resp.idx, "params", reqs[resp.idx], "error", resp.xerr)
		}
		rets[resp.idx] = &BatchResult{
			Params: reqs[resp.idx],
			Result: resp.ret,
			Err:    resp.xerr,
		}
	}

	bt.logger.Info("batch finished", "ordering", bt.ordering, "requests", len(reqs), "failed", failed, "workers", workers)
	return rets
}

func evaluateRoutine(ordering Ordering, reqCh chan *reqEval, respCh chan *respEval) {
	for {
		req, ok := <-reqCh
		if !ok {
			break
		}
		ret, xerr := EvaluateParams(req.params, ordering)
		respCh <- &respEval{
			idx:  req.idx,
			ret:  ret,
			xerr: xerr,
		}
	}
}
