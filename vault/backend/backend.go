package backend

import (
	"fmt"
	"strings"

	tplog "github.com/TopiaNetwork/tpwallet/log"
	tplogcmm "github.com/TopiaNetwork/tpwallet/log/common"
	"github.com/TopiaNetwork/tpwallet/vault/backend/badger"
	tpvbcmm "github.com/TopiaNetwork/tpwallet/vault/backend/common"
	"github.com/TopiaNetwork/tpwallet/vault/backend/keychain"
	"github.com/TopiaNetwork/tpwallet/vault/backend/leveldb"
	"github.com/TopiaNetwork/tpwallet/vault/backend/memdb"
)

type BackendType int

const (
	BackendType_Unknown BackendType = iota
	BackendType_Leveldb
	BackendType_Badger
	BackendType_Memdb
	BackendType_Keychain
)

const (
	DefaultCacheSize = 64
)

type Backend interface {
	tpvbcmm.KVStore
}

func (t BackendType) String() string {
	switch t {
	case BackendType_Leveldb:
		return "leveldb"
	case BackendType_Badger:
		return "badger"
	case BackendType_Memdb:
		return "memdb"
	case BackendType_Keychain:
		return "keychain"
	default:
		return "unknown"
	}
}

func ParseBackendType(s string) (BackendType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "leveldb":
		return BackendType_Leveldb, nil
	case "badger":
		return BackendType_Badger, nil
	case "memdb":
		return BackendType_Memdb, nil
	case "keychain":
		return BackendType_Keychain, nil
	default:
		return BackendType_Unknown, fmt.Errorf("invalid vault backend %q", s)
	}
}

// NewBackend opens the store the vault lives in. path and name are ignored by
// memdb, keychainPassword is used by the keychain file fallback only.
func NewBackend(backendType BackendType, log tplog.Logger, path string, name string, keychainPassword string) (Backend, error) {
	bLog := tplog.CreateModuleLogger(tplogcmm.InfoLevel, "VaultBackend", log).With("backend", backendType.String())

	switch backendType {
	case BackendType_Leveldb:
		return leveldb.NewLeveldbBackend(bLog, name, path, DefaultCacheSize)
	case BackendType_Badger:
		return badger.NewBadgerBackend(bLog, name, path, DefaultCacheSize)
	case BackendType_Memdb:
		return memdb.NewMemDBBackend(bLog, name), nil
	case BackendType_Keychain:
		return keychain.NewKeychainBackend(bLog, name, path, keychainPassword)
	default:
		return nil, fmt.Errorf("invalid backend type %d", backendType)
	}
}
