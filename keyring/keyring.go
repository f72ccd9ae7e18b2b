package keyring

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"
)

// DefaultChainID is used by SignTransaction when SignOptions carry no chain id.
var DefaultChainID = big.NewInt(1)

type SignOptions struct {
	ChainID *big.Int
}

func (o *SignOptions) chainID() *big.Int {
	if o == nil || o.ChainID == nil {
		return DefaultChainID
	}
	return o.ChainID
}

// Keyring holds the key pairs of one scheme. Addresses returned by a keyring are
// normalized, addresses passed in are matched case-insensitively.
type Keyring interface {
	Type() string

	// Serialize returns the minimal secret material Deserialize needs to rebuild every account.
	Serialize() (json.RawMessage, error)

	Deserialize(data json.RawMessage) error

	AddAccounts(n int) ([]string, error)

	GetAccounts() ([]string, error)

	SignTransaction(address string, tx *types.Transaction, opts *SignOptions) (*types.Transaction, error)

	// SignMessage signs keccak256(data).
	SignMessage(address string, data []byte, opts *SignOptions) ([]byte, error)

	// SignPersonalMessage signs the EIP-191 "\x19Ethereum Signed Message" hash of data.
	SignPersonalMessage(address string, data []byte, opts *SignOptions) ([]byte, error)

	// ExportAccount returns the hex private key of address.
	ExportAccount(address string, opts *SignOptions) (string, error)

	RemoveAccount(address string) error
}

// DeviceForgetter is implemented by keyrings bound to an external device.
type DeviceForgetter interface {
	ForgetDevice() error
}

// MnemonicHolder is implemented by keyrings derived from a seed phrase.
type MnemonicHolder interface {
	Mnemonic() (string, error)
}
