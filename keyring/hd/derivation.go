package hd

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcutil/hdkeychain"
	"github.com/ethereum/go-ethereum/accounts"
)

const HardenedKeyStart uint32 = hdkeychain.HardenedKeyStart

// ParsePath parses an absolute derivation path such as m/44'/60'/0'/0.
func ParsePath(path string) (accounts.DerivationPath, error) {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "m/") {
		return nil, fmt.Errorf("invalid hd path %q: must start with m/", path)
	}
	return accounts.ParseDerivationPath(path)
}

func newMasterKey(seed []byte) (*hdkeychain.ExtendedKey, error) {
	return hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
}

// deriveKey walks path from node. Intermediate nodes are zeroed, node itself is
// left untouched.
func deriveKey(node *hdkeychain.ExtendedKey, path []uint32) (*hdkeychain.ExtendedKey, error) {
	cur := node
	for _, index := range path {
		next, err := cur.Derive(index)
		if cur != node {
			cur.Zero()
		}
		if err != nil {
			return nil, fmt.Errorf("derive index %d: %w", index, err)
		}
		cur = next
	}
	return cur, nil
}

// privateKey returns the 32 byte secp256k1 scalar of a private node.
func privateKey(node *hdkeychain.ExtendedKey) ([]byte, error) {
	priv, err := node.ECPrivKey()
	if err != nil {
		return nil, err
	}
	return priv.Serialize(), nil
}
