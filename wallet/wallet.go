package wallet

import (
	"fmt"
	"math/big"

	"github.com/TopiaNetwork/tpwallet/configuration"
	"github.com/TopiaNetwork/tpwallet/crypt"
	tpcrtypes "github.com/TopiaNetwork/tpwallet/crypt/types"
	"github.com/TopiaNetwork/tpwallet/encryptor"
	"github.com/TopiaNetwork/tpwallet/encryptor/keystorev4"
	"github.com/TopiaNetwork/tpwallet/encryptor/scrypt"
	tplog "github.com/TopiaNetwork/tpwallet/log"
	tplogcmm "github.com/TopiaNetwork/tpwallet/log/common"
	"github.com/TopiaNetwork/tpwallet/vault"
	"github.com/TopiaNetwork/tpwallet/vault/backend"
)

func NewEncryptor(name string, scryptN int) (encryptor.Encryptor, error) {
	switch name {
	case scrypt.Name, "":
		return scrypt.New(scryptN), nil
	case keystorev4.Name:
		return keystorev4.New(), nil
	default:
		return nil, fmt.Errorf("invalid encryptor %q", name)
	}
}

// Open builds a controller over the vault described by config.
func Open(level tplogcmm.LogLevel, log tplog.Logger, config *configuration.WalletConfiguration) (KeyringController, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	cs, err := crypt.CreateCryptService(log, tpcrtypes.CryptType_Secp256)
	if err != nil {
		return nil, err
	}

	registry, err := DefaultRegistry(log, cs, config.HDPath)
	if err != nil {
		return nil, err
	}

	enc, err := NewEncryptor(config.Encryptor, config.ScryptN)
	if err != nil {
		return nil, err
	}

	backendType, err := backend.ParseBackendType(config.VaultBackend)
	if err != nil {
		return nil, err
	}
	b, err := backend.NewBackend(backendType, log, config.VaultPath, config.VaultName, config.KeychainPassword)
	if err != nil {
		return nil, err
	}

	c, err := NewKeyringController(level, log, registry, vault.New(log, enc, b), &ControllerConfig{
		DefaultKeyringType: config.DefaultKeyringType,
		LockTimeout:        config.LockTimeout,
		AccountCacheSize:   config.AccountCacheSize,
		ChainID:            big.NewInt(config.ChainID),
	})
	if err != nil {
		b.Close()
		return nil, err
	}

	return c, nil
}
