// Package store persists evaluation results so repeated requests are answered
// without running the series again.
package store

import (
	"encoding/binary"
	"sync"

	"github.com/beatoz/fxseries/binomial"
	"github.com/beatoz/fxseries/libs/jsonx"
	"github.com/beatoz/fxseries/types/argpack"
	"github.com/beatoz/fxseries/types/xerrors"
	tmdb "github.com/tendermint/tm-db"
)

const (
	keyLookups = "lk"
	keyHits    = "ht"
)

var (
	prefixPacked = []byte("p/")
	prefixArgs   = []byte("a/")
)

// ResultDB caches successful evaluations keyed by their arguments and ordering.
// Failed evaluations are never stored.
type ResultDB struct {
	db tmdb.DB

	lookups uint64
	hits    uint64

	mtx sync.RWMutex
}

// OpenResultDB opens (or creates) a goleveldb database named name under dir.
func OpenResultDB(name, dir string) (*ResultDB, error) {
	// The returned 'db' instance is safe in concurrent use.
	db, err := tmdb.NewDB(name, tmdb.GoLevelDBBackend, dir)
	if err != nil {
		return nil, xerrors.ErrIO.Wrap(err)
	}
	return newResultDB(db), nil
}

// NewMemResultDB returns a ResultDB that lives only in memory.
func NewMemResultDB() *ResultDB {
	return newResultDB(tmdb.NewMemDB())
}

func newResultDB(db tmdb.DB) *ResultDB {
	rdb := &ResultDB{db: db}
	if v, err := db.Get([]byte(keyLookups)); v != nil && err == nil {
		rdb.lookups = binary.BigEndian.Uint64(v)
	}
	if v, err := db.Get([]byte(keyHits)); v != nil && err == nil {
		rdb.hits = binary.BigEndian.Uint64(v)
	}
	return rdb
}

func (rdb *ResultDB) Close() error {
	rdb.mtx.Lock()
	defer rdb.mtx.Unlock()

	if err := rdb.putCounters(); err != nil {
		return err
	}
	return rdb.db.Close()
}

// resultKey is the packed argument word when every field fits its slot,
// otherwise the five-word ABI encoding of the arguments. The ordering byte
// comes last.
func resultKey(p binomial.Params, ordering binomial.Ordering) ([]byte, xerrors.XError) {
	var key []byte
	if word, xerr := argpack.EncodeParams(p); xerr == nil {
		bz := word.Bytes32()
		key = append(append(key, prefixPacked...), bz[:]...)
	} else {
		bz, xerr := argpack.PackArgsCalldata(p)
		if xerr != nil {
			return nil, xerr
		}
		key = append(append(key, prefixArgs...), bz...)
	}
	return append(key, byte(ordering)), nil
}

// Get returns the stored result of p evaluated with ordering.
func (rdb *ResultDB) Get(p binomial.Params, ordering binomial.Ordering) (*binomial.Result, bool) {
	key, xerr := resultKey(p, ordering)
	if xerr != nil {
		return nil, false
	}

	rdb.mtx.Lock()
	defer rdb.mtx.Unlock()

	rdb.lookups++
	bz, err := rdb.db.Get(key)
	if err != nil || bz == nil {
		return nil, false
	}
	ret := &binomial.Result{}
	if err := jsonx.Unmarshal(bz, ret); err != nil {
		return nil, false
	}
	rdb.hits++
	return ret, true
}

func (rdb *ResultDB) Put(p binomial.Params, ret *binomial.Result) xerrors.XError {
	key, xerr := resultKey(p, ret.Ordering)
	if xerr != nil {
		return xerr
	}
	bz, err := jsonx.Marshal(ret)
	if err != nil {
		return xerrors.ErrIO.Wrap(err)
	}

	rdb.mtx.Lock()
	defer rdb.mtx.Unlock()

	if err := rdb.db.SetSync(key, bz); err != nil {
		return xerrors.ErrIO.Wrap(err)
	}
	return nil
}

// Evaluate answers from the database when possible and stores new successful
// results.
func (rdb *ResultDB) Evaluate(p binomial.Params, ordering binomial.Ordering) (*binomial.Result, xerrors.XError) {
	if ret, ok := rdb.Get(p, ordering); ok {
		return ret, nil
	}
	ret, xerr := binomial.EvaluateParams(p, ordering)
	if xerr != nil {
		return nil, xerr
	}
	if xerr := rdb.Put(p, ret); xerr != nil {
		return nil, xerr
	}
	return ret, nil
}

// Stats returns the number of lookups and hits, including earlier sessions.
func (rdb *ResultDB) Stats() (lookups, hits uint64) {
	rdb.mtx.RLock()
	defer rdb.mtx.RUnlock()

	return rdb.lookups, rdb.hits
}

// Len returns the number of stored results.
func (rdb *ResultDB) Len() (int, error) {
	rdb.mtx.RLock()
	defer rdb.mtx.RUnlock()

	n := 0
	for _, prefix := range [][]byte{prefixPacked, prefixArgs} {
		it, err := tmdb.IteratePrefix(rdb.db, prefix)
		if err != nil {
			return 0, xerrors.ErrIO.Wrap(err)
		}
		for ; it.Valid(); it.Next() {
			n++
		}
		if err := it.Close(); err != nil {
			return 0, xerrors.ErrIO.Wrap(err)
		}
	}
	return n, nil
}

func (rdb *ResultDB) putCounters() error {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, rdb.lookups)
	if err := rdb.db.SetSync([]byte(keyLookups), bz); err != nil {
		return xerrors.ErrIO.Wrap(err)
	}
	bz = make([]byte, 8)
	binary.BigEndian.PutUint64(bz, rdb.hits)
	if err := rdb.db.SetSync([]byte(keyHits), bz); err != nil {
		return xerrors.ErrIO.Wrap(err)
	}
	return nil
}
