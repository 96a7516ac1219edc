package commands

import (
	cfg "github.com/beatoz/fxseries/cmd/config"
	"github.com/beatoz/fxseries/store"
	"github.com/beatoz/fxseries/types/xerrors"
	tmos "github.com/tendermint/tendermint/libs/os"
)

const resultDBName = "results"

// openCache opens the result database configured by conf, or returns nil
// when caching is disabled.
func openCache(conf *cfg.Config) (*store.ResultDB, error) {
	dir := conf.CachePath()
	if dir == "" {
		return nil, nil
	}
	if err := tmos.EnsureDir(dir, 0o700); err != nil {
		return nil, xerrors.ErrIO.Wrap(err)
	}
	rdb, err := store.OpenResultDB(resultDBName, dir)
	if err != nil {
		return nil, err
	}
	logger.Debug("opened result database", "path", dir)
	return rdb, nil
}

func closeCache(rdb *store.ResultDB) {
	if rdb == nil {
		return
	}
	lookups, hits := rdb.Stats()
	if err := rdb.Close(); err != nil {
		logger.Error("failed to close result database", "error", err)
		return
	}
	logger.Debug("closed result database", "lookups", lookups, "hits", hits)
}
