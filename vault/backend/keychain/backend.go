package keychain

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/99designs/keyring"

	tplog "github.com/TopiaNetwork/tpwallet/log"
	tpvbcmm "github.com/TopiaNetwork/tpwallet/vault/backend/common"
)

const (
	serviceName          = "TopiaWalletVault"
	keyCtlScope          = "user"
	keyCtlPerm    uint32 = 0x3f3f0000 // "alswrvalswrv------------"
	kWalletAppID         = "TopiaWalletApp"
	kWalletFolder        = "TopiaWallet"
)

// KeychainBackend stores the vault in the OS credential store. When filePassword
// is set the encrypted file keyring under path is used instead.
type KeychainBackend struct {
	log  tplog.Logger
	name string
	k    keyring.Keyring
}

func NewKeychainBackend(log tplog.Logger, name string, path string, filePassword string) (*KeychainBackend, error) {
	fileDir := filepath.Join(path, name+".keyring")

	config := keyring.Config{
		ServiceName:                    serviceName,
		KeychainName:                   name,
		KeychainTrustApplication:       true,
		KeychainAccessibleWhenUnlocked: true,
		KeyCtlScope:                    keyCtlScope,
		KeyCtlPerm:                     keyCtlPerm,
		KWalletAppID:                   kWalletAppID,
		KWalletFolder:                  kWalletFolder,
		FileDir:                        fileDir,
	}
	if filePassword != "" {
		if err := os.MkdirAll(fileDir, 0700); err != nil {
			return nil, err
		}
		config.AllowedBackends = []keyring.BackendType{keyring.FileBackend}
		config.FilePasswordFunc = keyring.FixedStringPrompt(filePassword)
	}

	k, err := keyring.Open(config)
	if err != nil {
		log.Errorf("open keyring err: %v", err)
		return nil, fmt.Errorf("open keyring: %w", err)
	}

	return &KeychainBackend{
		log:  log,
		name: name,
		k:    k,
	}, nil
}

func (b *KeychainBackend) Get(key []byte) ([]byte, error) {
	if err := tpvbcmm.ValidateKey(key); err != nil {
		return nil, err
	}

	item, err := b.k.Get(string(key))
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	if item.Data == nil {
		return []byte{}, nil
	}

	return item.Data, nil
}

func (b *KeychainBackend) Has(key []byte) (bool, error) {
	v, err := b.Get(key)
	return v != nil, err
}

func (b *KeychainBackend) Set(key []byte, value []byte) error {
	if err := tpvbcmm.ValidateKv(key, value); err != nil {
		return err
	}

	return b.k.Set(keyring.Item{
		Key:         string(key),
		Data:        value,
		Label:       b.name,
		Description: "tpwallet vault",
	})
}

func (b *KeychainBackend) Delete(key []byte) error {
	if err := tpvbcmm.ValidateKey(key); err != nil {
		return err
	}

	err := b.k.Remove(string(key))
	if errors.Is(err, keyring.ErrKeyNotFound) || os.IsNotExist(err) {
		return nil
	}
	return err
}

func (b *KeychainBackend) Close() error {
	return nil
}
