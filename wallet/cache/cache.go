package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/TopiaNetwork/tpwallet/keyring"
)

const DefaultAccountCacheSize = 512 // hold 512 item max

// AccountIndex remembers which keyring owns an address. It must be purged
// whenever the keyring list or any keyring's accounts change.
type AccountIndex struct {
	cache *lru.Cache
}

func NewAccountIndex(size int) (*AccountIndex, error) {
	if size <= 0 {
		size = DefaultAccountCacheSize
	}
	c, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("create account index: %w", err)
	}
	return &AccountIndex{cache: c}, nil
}

// Get takes a normalized address.
func (ai *AccountIndex) Get(address string) (keyring.Keyring, bool) {
	value, ok := ai.cache.Get(address)
	if !ok {
		return nil, false
	}
	kr, ok := value.(keyring.Keyring)
	return kr, ok
}

func (ai *AccountIndex) Add(address string, kr keyring.Keyring) {
	ai.cache.Add(address, kr)
}

func (ai *AccountIndex) Remove(address string) {
	ai.cache.Remove(address)
}

func (ai *AccountIndex) Len() int {
	return ai.cache.Len()
}

func (ai *AccountIndex) Purge() {
	ai.cache.Purge()
}
