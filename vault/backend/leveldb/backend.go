package leveldb

import (
	"fmt"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru"
	"github.com/syndtr/goleveldb/leveldb"

	tpcmm "github.com/TopiaNetwork/tpwallet/common"
	tplog "github.com/TopiaNetwork/tpwallet/log"
	tpvbcmm "github.com/TopiaNetwork/tpwallet/vault/backend/common"
)

type LeveldbBackend struct {
	log   tplog.Logger
	name  string
	cache *lru.ARCCache
	db    *leveldb.DB
}

func NewLeveldbBackend(log tplog.Logger, name string, path string, cacheSize int) (*LeveldbBackend, error) {
	pathWithName := filepath.Join(path, name+".db")
	if err := os.MkdirAll(pathWithName, 0700); err != nil {
		log.Errorf("can't create the path %s: %v", pathWithName, err)
		return nil, err
	}

	db, err := leveldb.OpenFile(pathWithName, nil)
	if err != nil {
		log.Errorf("Create leveldb %s error %v, dbPath=%s", name, err, pathWithName)
		return nil, err
	}

	cache, err := lru.NewARC(cacheSize)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create leveldb cache: %w", err)
	}
	return &LeveldbBackend{
		log:   log,
		name:  name,
		cache: cache,
		db:    db,
	}, nil
}

func (b *LeveldbBackend) Get(key []byte) ([]byte, error) {
	if err := tpvbcmm.ValidateKey(key); err != nil {
		return nil, err
	}

	if v, ok := b.cache.Get(string(key)); ok {
		return tpcmm.BytesCopy(v.([]byte)), nil
	}

	value, err := b.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	b.cache.Add(string(key), tpcmm.BytesCopy(value))

	return value, nil
}

func (b *LeveldbBackend) Has(key []byte) (bool, error) {
	if err := tpvbcmm.ValidateKey(key); err != nil {
		return false, err
	}
	if b.cache.Contains(string(key)) {
		return true, nil
	}
	return b.db.Has(key, nil)
}

func (b *LeveldbBackend) Set(key []byte, value []byte) error {
	if err := tpvbcmm.ValidateKv(key, value); err != nil {
		return err
	}

	b.cache.Remove(string(key))

	return b.db.Put(key, value, nil)
}

func (b *LeveldbBackend) Delete(key []byte) error {
	if err := tpvbcmm.ValidateKey(key); err != nil {
		return err
	}

	b.cache.Remove(string(key))

	return b.db.Delete(key, nil)
}

func (b *LeveldbBackend) Close() error {
	b.cache.Purge()
	return b.db.Close()
}
