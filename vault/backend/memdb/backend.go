package memdb

import (
	"bytes"
	"sync"

	"github.com/google/btree"

	tpcmm "github.com/TopiaNetwork/tpwallet/common"
	tplog "github.com/TopiaNetwork/tpwallet/log"
	tpvbcmm "github.com/TopiaNetwork/tpwallet/vault/backend/common"
)

const (
	bTreeDegree = 32
)

type item struct {
	key   []byte
	value []byte
}

func (i *item) Less(other btree.Item) bool {
	return bytes.Compare(i.key, other.(*item).key) == -1
}

// MemBackend keeps the vault in process memory. It is lost on Close.
type MemBackend struct {
	log    tplog.Logger
	name   string
	mtx    sync.RWMutex
	btree  *btree.BTree
	closed bool
}

func NewMemDBBackend(log tplog.Logger, name string) *MemBackend {
	return &MemBackend{
		log:   log,
		name:  name,
		btree: btree.New(bTreeDegree),
	}
}

func (b *MemBackend) Get(key []byte) ([]byte, error) {
	if err := tpvbcmm.ValidateKey(key); err != nil {
		return nil, err
	}

	b.mtx.RLock()
	defer b.mtx.RUnlock()

	if b.closed {
		return nil, tpvbcmm.ErrClosed
	}

	i := b.btree.Get(&item{key: key})
	if i == nil {
		return nil, nil
	}
	return tpcmm.BytesCopy(i.(*item).value), nil
}

func (b *MemBackend) Has(key []byte) (bool, error) {
	v, err := b.Get(key)
	return v != nil, err
}

func (b *MemBackend) Set(key []byte, value []byte) error {
	if err := tpvbcmm.ValidateKv(key, value); err != nil {
		return err
	}

	b.mtx.Lock()
	defer b.mtx.Unlock()

	if b.closed {
		return tpvbcmm.ErrClosed
	}

	b.btree.ReplaceOrInsert(&item{key: tpcmm.BytesCopy(key), value: tpcmm.BytesCopy(value)})

	return nil
}

func (b *MemBackend) Delete(key []byte) error {
	if err := tpvbcmm.ValidateKey(key); err != nil {
		return err
	}

	b.mtx.Lock()
	defer b.mtx.Unlock()

	if b.closed {
		return tpvbcmm.ErrClosed
	}

	b.btree.Delete(&item{key: key})

	return nil
}

func (b *MemBackend) Close() error {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	b.btree.Clear(false)
	b.closed = true

	return nil
}
