package badger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
	lru "github.com/hashicorp/golang-lru"

	tpcmm "github.com/TopiaNetwork/tpwallet/common"
	tplog "github.com/TopiaNetwork/tpwallet/log"
	tpvbcmm "github.com/TopiaNetwork/tpwallet/vault/backend/common"
)

type BadgerBackend struct {
	log   tplog.Logger
	name  string
	cache *lru.ARCCache
	db    *badger.DB
}

func NewBadgerBackend(log tplog.Logger, name string, path string, cacheSize int) (*BadgerBackend, error) {
	pathWithName := filepath.Join(path, name+".db")
	if err := os.MkdirAll(pathWithName, 0700); err != nil {
		log.Errorf("can't create the path %s: %v", pathWithName, err)
		return nil, err
	}

	opts := badger.DefaultOptions(pathWithName)
	opts.SyncWrites = true
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		log.Errorf("can't open badger: path=%s, err=%v", pathWithName, err)
		return nil, err
	}

	cache, err := lru.NewARC(cacheSize)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create badger cache: %w", err)
	}
	return &BadgerBackend{
		log:   log,
		name:  name,
		cache: cache,
		db:    db,
	}, nil
}

func (b *BadgerBackend) Get(key []byte) ([]byte, error) {
	if err := tpvbcmm.ValidateKey(key); err != nil {
		return nil, err
	}

	if v, ok := b.cache.Get(string(key)); ok {
		return tpcmm.BytesCopy(v.([]byte)), nil
	}

	var val []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	if val == nil {
		val = []byte{}
	}

	b.cache.Add(string(key), tpcmm.BytesCopy(val))

	return val, nil
}

func (b *BadgerBackend) Has(key []byte) (bool, error) {
	v, err := b.Get(key)
	return v != nil, err
}

func (b *BadgerBackend) Set(key []byte, value []byte) error {
	if err := tpvbcmm.ValidateKv(key, value); err != nil {
		return err
	}

	b.cache.Remove(string(key))

	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

func (b *BadgerBackend) Delete(key []byte) error {
	if err := tpvbcmm.ValidateKey(key); err != nil {
		return err
	}

	b.cache.Remove(string(key))

	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

func (b *BadgerBackend) Close() error {
	b.cache.Purge()
	return b.db.Close()
}
