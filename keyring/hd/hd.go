package hd

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/btcsuite/btcutil/hdkeychain"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/tyler-smith/go-bip39"
	"lukechampine.com/frand"

	tpcmm "github.com/TopiaNetwork/tpwallet/common"
	"github.com/TopiaNetwork/tpwallet/crypt"
	"github.com/TopiaNetwork/tpwallet/keyring"
	tplog "github.com/TopiaNetwork/tpwallet/log"
	tplogcmm "github.com/TopiaNetwork/tpwallet/log/common"
)

const (
	Type = "HD Key Tree"

	DefaultHDPath = "m/44'/60'/0'/0"

	mnemonicEntropyBits = 128
)

// SerializedKeyring is the secret material of an hd keyring. NextIndex is the
// first index never handed out, so removed accounts are not derived again.
type SerializedKeyring struct {
	Mnemonic         string   `json:"mnemonic"`
	NumberOfAccounts int      `json:"numberOfAccounts"`
	HDPath           string   `json:"hdPath,omitempty"`
	AccountIndices   []uint32 `json:"accountIndices,omitempty"`
	NextIndex        uint32   `json:"nextIndex,omitempty"`
}

// Keyring derives its accounts from one BIP39 mnemonic along hdPath/index.
type Keyring struct {
	log      tplog.Logger
	cs       crypt.CryptService
	hdPath   string
	sync     sync.RWMutex
	mnemonic string
	root     *hdkeychain.ExtendedKey
	indices  []uint32
	next     uint32
	wallets  []keyring.KeyPair
}

// New creates an empty keyring deriving along hdPath, DefaultHDPath if empty.
func New(log tplog.Logger, cs crypt.CryptService, hdPath string) *Keyring {
	if hdPath == "" {
		hdPath = DefaultHDPath
	}
	return &Keyring{
		log:    tplog.CreateModuleLogger(tplogcmm.InfoLevel, "HDKeyring", log),
		cs:     cs,
		hdPath: hdPath,
	}
}

func Factory(log tplog.Logger, cs crypt.CryptService, hdPath string) keyring.Factory {
	return keyring.Factory{
		Type: Type,
		New:  func() keyring.Keyring { return New(log, cs, hdPath) },
	}
}

// NormalizeMnemonic lower-cases a phrase and collapses its whitespace.
func NormalizeMnemonic(mnemonic string) string {
	return strings.Join(strings.Fields(strings.ToLower(mnemonic)), " ")
}

func IsMnemonicValid(mnemonic string) bool {
	return bip39.IsMnemonicValid(NormalizeMnemonic(mnemonic))
}

func (k *Keyring) Type() string {
	return Type
}

func (k *Keyring) Serialize() (json.RawMessage, error) {
	k.sync.RLock()
	defer k.sync.RUnlock()

	indices := make([]uint32, len(k.indices))
	copy(indices, k.indices)

	return json.Marshal(&SerializedKeyring{
		Mnemonic:         k.mnemonic,
		NumberOfAccounts: len(k.wallets),
		HDPath:           k.hdPath,
		AccountIndices:   indices,
		NextIndex:        k.next,
	})
}

// Deserialize initializes an empty keyring from its serialized form. A keyring
// which already holds a mnemonic rejects it.
func (k *Keyring) Deserialize(data json.RawMessage) error {
	var s SerializedKeyring
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", keyring.ErrInvalidSecretData, err)
	}
	if s.NumberOfAccounts < 0 {
		return fmt.Errorf("%w: negative number of accounts", keyring.ErrInvalidSecretData)
	}
	if s.AccountIndices != nil && len(s.AccountIndices) != s.NumberOfAccounts {
		return fmt.Errorf("%w: %d account indices for %d accounts", keyring.ErrInvalidSecretData, len(s.AccountIndices), s.NumberOfAccounts)
	}
	if dup, ok := duplicateIndex(s.AccountIndices); ok {
		return fmt.Errorf("%w: duplicated account index %d", keyring.ErrInvalidSecretData, dup)
	}

	k.sync.Lock()
	defer k.sync.Unlock()

	if k.mnemonic != "" {
		return fmt.Errorf("%w: hd keyring is already initialized", keyring.ErrInvalidSecretData)
	}

	hdPath := k.hdPath
	if s.HDPath != "" {
		hdPath = s.HDPath
	}
	if s.Mnemonic == "" {
		if s.NumberOfAccounts > 0 {
			return fmt.Errorf("%w: accounts without mnemonic", keyring.ErrInvalidSecretData)
		}
		k.hdPath = hdPath
		return nil
	}

	root, mnemonic, err := k.rootFromMnemonic(s.Mnemonic, hdPath)
	if err != nil {
		return err
	}

	indices := s.AccountIndices
	if indices == nil {
		indices = make([]uint32, s.NumberOfAccounts)
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	pairs, err := k.derivePairs(root, indices)
	if err != nil {
		root.Zero()
		return err
	}

	k.hdPath = hdPath
	k.mnemonic = mnemonic
	k.root = root
	k.indices = append(k.indices, indices...)
	k.wallets = append(k.wallets, pairs...)
	k.next = s.NextIndex
	for _, index := range indices {
		if index >= k.next {
			k.next = index + 1
		}
	}

	k.log.Debugf("hd keyring restored %d accounts along %s", len(pairs), hdPath)

	return nil
}

func (k *Keyring) rootFromMnemonic(mnemonic string, hdPath string) (*hdkeychain.ExtendedKey, string, error) {
	mnemonic = NormalizeMnemonic(mnemonic)
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", keyring.ErrInvalidSecretData, err)
	}
	defer tpcmm.ZeroBytes(seed)

	path, err := ParsePath(hdPath)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", keyring.ErrInvalidSecretData, err)
	}

	master, err := newMasterKey(seed)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", keyring.ErrInvalidSecretData, err)
	}
	root, err := deriveKey(master, path)
	master.Zero()
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", keyring.ErrInvalidSecretData, err)
	}

	return root, mnemonic, nil
}

func (k *Keyring) derivePairs(root *hdkeychain.ExtendedKey, indices []uint32) ([]keyring.KeyPair, error) {
	pairs := make([]keyring.KeyPair, 0, len(indices))
	for _, index := range indices {
		if index >= HardenedKeyStart {
			return nil, fmt.Errorf("%w: account index %d out of range", keyring.ErrInvalidSecretData, index)
		}
		node, err := root.Derive(index)
		if err != nil {
			return nil, fmt.Errorf("%w: account index %d: %v", keyring.ErrInvalidSecretData, index, err)
		}
		priKey, err := privateKey(node)
		node.Zero()
		if err != nil {
			return nil, fmt.Errorf("%w: account index %d: %v", keyring.ErrInvalidSecretData, index, err)
		}
		kp, err := keyring.NewKeyPair(k.cs, priKey)
		tpcmm.ZeroBytes(priKey)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, kp)
	}
	return pairs, nil
}

func (k *Keyring) initMnemonic() error {
	mnemonic, err := bip39.NewMnemonic(frand.Bytes(mnemonicEntropyBits / 8))
	if err != nil {
		return err
	}
	root, mnemonic, err := k.rootFromMnemonic(mnemonic, k.hdPath)
	if err != nil {
		return err
	}
	k.mnemonic = mnemonic
	k.root = root

	return nil
}

// AddAccounts derives the next n indices, generating a mnemonic first if the
// keyring has none.
func (k *Keyring) AddAccounts(n int) ([]string, error) {
	if n <= 0 {
		return nil, keyring.ErrInvalidAccountCount
	}

	k.sync.Lock()
	defer k.sync.Unlock()

	if k.mnemonic == "" {
		if err := k.initMnemonic(); err != nil {
			return nil, err
		}
	}

	indices := make([]uint32, n)
	for i := range indices {
		indices[i] = k.next + uint32(i)
	}
	pairs, err := k.derivePairs(k.root, indices)
	if err != nil {
		return nil, err
	}
	k.indices = append(k.indices, indices...)
	k.wallets = append(k.wallets, pairs...)
	k.next += uint32(n)

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

// RemoveAccount forgets the derivation index of address. The index is never
// handed out again by AddAccounts.
func (k *Keyring) RemoveAccount(address string) error {
	k.sync.Lock()
	defer k.sync.Unlock()

	i, err := keyring.FindKeyPair(k.wallets, address)
	if err != nil {
		return err
	}
	k.wallets[i].Wipe()
	k.wallets = append(k.wallets[:i], k.wallets[i+1:]...)
	k.indices = append(k.indices[:i], k.indices[i+1:]...)

	return nil
}

func (k *Keyring) Mnemonic() (string, error) {
	k.sync.RLock()
	defer k.sync.RUnlock()

	if k.mnemonic == "" {
		return "", fmt.Errorf("%w: hd keyring has no mnemonic", keyring.ErrUnsupportedOperation)
	}
	return k.mnemonic, nil
}

func duplicateIndex(indices []uint32) (uint32, bool) {
	items := make([]interface{}, len(indices))
	for i, index := range indices {
		items[i] = index
	}
	if dup, ok := tpcmm.FirstDuplicate(items); ok {
		return dup.(uint32), true
	}
	return 0, false
}

var _ keyring.MnemonicHolder = (*Keyring)(nil)
