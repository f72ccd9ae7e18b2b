package simple

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/core/types"

	"github.com/TopiaNetwork/tpwallet/crypt"
	"github.com/TopiaNetwork/tpwallet/keyring"
	tplog "github.com/TopiaNetwork/tpwallet/log"
	tplogcmm "github.com/TopiaNetwork/tpwallet/log/common"
)

const Type = "Simple Key Pair"

// Keyring holds independent imported or generated key pairs. Its serialized form
// is a JSON array of hex private keys.
type Keyring struct {
	log     tplog.Logger
	cs      crypt.CryptService
	sync    sync.RWMutex
	wallets []keyring.KeyPair
}

func New(log tplog.Logger, cs crypt.CryptService) *Keyring {
	return &Keyring{
		log: tplog.CreateModuleLogger(tplogcmm.InfoLevel, "SimpleKeyring", log),
		cs:  cs,
	}
}

func Factory(log tplog.Logger, cs crypt.CryptService) keyring.Factory {
	return keyring.Factory{
		Type: Type,
		New:  func() keyring.Keyring { return New(log, cs) },
	}
}

func (k *Keyring) Type() string {
	return Type
}

func (k *Keyring) Serialize() (json.RawMessage, error) {
	k.sync.RLock()
	defer k.sync.RUnlock()

	keys := make([]string, len(k.wallets))
	for i := range k.wallets {
		keys[i] = k.wallets[i].ExportHex()
	}
	return json.Marshal(keys)
}

// Deserialize appends the keys of data. Nothing is appended if any key is invalid.
func (k *Keyring) Deserialize(data json.RawMessage) error {
	var keys []string
	if err := json.Unmarshal(data, &keys); err != nil {
		return fmt.Errorf("%w: %v", keyring.ErrInvalidSecretData, err)
	}

	pairs := make([]keyring.KeyPair, 0, len(keys))
	for i, s := range keys {
		priKey, err := keyring.ParsePrivateKey(s)
		if err != nil {
			return fmt.Errorf("key %d: %w", i, err)
		}
		kp, err := keyring.NewKeyPair(k.cs, priKey)
		if err != nil {
			return fmt.Errorf("key %d: %w", i, err)
		}
		pairs = append(pairs, kp)
	}

	k.sync.Lock()
	defer k.sync.Unlock()
	k.wallets = append(k.wallets, pairs...)

	k.log.Debugf("simple keyring restored %d accounts", len(pairs))

	return nil
}

func (k *Keyring) AddAccounts(n int) ([]string, error) {
	if n <= 0 {
		return nil, keyring.ErrInvalidAccountCount
	}

	pairs := make([]keyring.KeyPair, 0, n)
	for i := 0; i < n; i++ {
		priKey, _, err := k.cs.GeneratePriPubKey()
		if err != nil {
			return nil, err
		}
		kp, err := keyring.NewKeyPair(k.cs, priKey)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, kp)
	}

	k.sync.Lock()
	defer k.sync.Unlock()
	k.wallets = append(k.wallets, pairs...)

	return keyring.Addresses(pairs), nil
}

func (k *Keyring) GetAccounts() ([]string, error) {
	k.sync.RLock()
	defer k.sync.RUnlock()

	return keyring.Addresses(k.wallets), nil
}

func (k *Keyring) SignTransaction(address string, tx *types.Transaction, opts *keyring.SignOptions) (*types.Transaction, error) {
	k.sync.RLock()
	defer k.sync.RUnlock()

	i, err := keyring.FindKeyPair(k.wallets, address)
	if err != nil {
		return nil, err
	}
	return keyring.SignTransactionWith(k.cs, &k.wallets[i], tx, opts)
}

func (k *Keyring) SignMessage(address string, data []byte, opts *keyring.SignOptions) ([]byte, error) {
	k.sync.RLock()
	defer k.sync.RUnlock()

	i, err := keyring.FindKeyPair(k.wallets, address)
	if err != nil {
		return nil, err
	}
	return keyring.SignMessageWith(k.cs, &k.wallets[i], data)
}

func (k *Keyring) SignPersonalMessage(address string, data []byte, opts *keyring.SignOptions) ([]byte, error) {
	k.sync.RLock()
	defer k.sync.RUnlock()

	i, err := keyring.FindKeyPair(k.wallets, address)
	if err != nil {
		return nil, err
	}
	return keyring.SignPersonalMessageWith(k.cs, &k.wallets[i], data)
}

func (k *Keyring) ExportAccount(address string, opts *keyring.SignOptions) (string, error) {
	k.sync.RLock()
	defer k.sync.RUnlock()

	i, err := keyring.FindKeyPair(k.wallets, address)
	if err != nil {
		return "", err
	}
	return k.wallets[i].ExportHex(), nil
}

func (k *Keyring) RemoveAccount(address string) error {
	k.sync.Lock()
	defer k.sync.Unlock()

	i, err := keyring.FindKeyPair(k.wallets, address)
	if err != nil {
		return err
	}
	k.wallets[i].Wipe()
	k.wallets = append(k.wallets[:i], k.wallets[i+1:]...)

	return nil
}
