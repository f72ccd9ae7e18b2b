package keyring

import (
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	tpcmm "github.com/TopiaNetwork/tpwallet/common"
	"github.com/TopiaNetwork/tpwallet/crypt"
	tpcrtypes "github.com/TopiaNetwork/tpwallet/crypt/types"
)

// KeyPair is one account held by a keyring. It never leaves memory except as
// the private key inside a keyring's serialized form.
type KeyPair struct {
	PrivateKey tpcrtypes.PrivateKey
	PublicKey  tpcrtypes.PublicKey
	Address    tpcrtypes.Address
}

func NewKeyPair(cs crypt.CryptService, priKey tpcrtypes.PrivateKey) (KeyPair, error) {
	pub, err := cs.ConvertToPublic(priKey)
	if err != nil {
		return KeyPair{}, fmt.Errorf("%w: %v", ErrInvalidSecretData, err)
	}
	addr, err := cs.CreateAddress(pub)
	if err != nil {
		return KeyPair{}, fmt.Errorf("%w: %v", ErrInvalidSecretData, err)
	}

	return KeyPair{
		PrivateKey: tpcmm.BytesCopy(priKey),
		PublicKey:  pub,
		Address:    tpcrtypes.NormalizeAddress(string(addr)),
	}, nil
}

// ParsePrivateKey decodes a hex private key, with or without the 0x prefix.
func ParsePrivateKey(s string) (tpcrtypes.PrivateKey, error) {
	raw := tpcmm.Strip0xPrefix(s)
	if raw == "" || !tpcmm.IsHex(raw) {
		return nil, fmt.Errorf("%w: private key is not hex", ErrInvalidSecretData)
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSecretData, err)
	}
	return b, nil
}

func (kp *KeyPair) ExportHex() string {
	return hex.EncodeToString(kp.PrivateKey)
}

// Wipe zeroes the private key held by kp.
func (kp *KeyPair) Wipe() {
	tpcmm.ZeroBytes(kp.PrivateKey)
}

// FindKeyPair returns the index of the pair owning address.
func FindKeyPair(pairs []KeyPair, address string) (int, error) {
	if address == "" {
		return -1, fmt.Errorf("%w: must specify address", ErrAddressNotFound)
	}
	target := tpcrtypes.NormalizeAddress(address)
	for i := range pairs {
		if pairs[i].Address == target {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrAddressNotFound, address)
}

func Addresses(pairs []KeyPair) []string {
	addrs := make([]string, len(pairs))
	for i := range pairs {
		addrs[i] = pairs[i].Address.String()
	}
	return addrs
}

func SignTransactionWith(cs crypt.CryptService, kp *KeyPair, tx *types.Transaction, opts *SignOptions) (*types.Transaction, error) {
	if tx == nil {
		return nil, fmt.Errorf("nil transaction")
	}
	signer := types.LatestSignerForChainID(opts.chainID())
	h := signer.Hash(tx)
	sig, err := cs.Sign(kp.PrivateKey, h[:])
	if err != nil {
		return nil, err
	}
	return tx.WithSignature(signer, sig)
}

func SignMessageWith(cs crypt.CryptService, kp *KeyPair, data []byte) ([]byte, error) {
	return signDigest(cs, kp, crypto.Keccak256(data))
}

func SignPersonalMessageWith(cs crypt.CryptService, kp *KeyPair, data []byte) ([]byte, error) {
	return signDigest(cs, kp, accounts.TextHash(data))
}

func signDigest(cs crypt.CryptService, kp *KeyPair, digest []byte) ([]byte, error) {
	sig, err := cs.Sign(kp.PrivateKey, digest)
	if err != nil {
		return nil, err
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}
