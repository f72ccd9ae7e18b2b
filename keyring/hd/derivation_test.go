package hd

import (
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	path, err := ParsePath("m/44'/60'/0'/0")
	require.NoError(t, err)
	assert.Equal(t, accounts.DerivationPath{44 + HardenedKeyStart, 60 + HardenedKeyStart, HardenedKeyStart, 0}, path)

	path, err = ParsePath(" m/0'/1 ")
	require.NoError(t, err)
	assert.Equal(t, accounts.DerivationPath{HardenedKeyStart, 1}, path)

	for _, bad := range []string{"", "m", "44'/60'", "/44'/60'", "m/x", "m//0", "m/-1", "m/4294967296"} {
		_, err = ParsePath(bad)
		assert.Error(t, err, bad)
	}
}

// BIP32 test vector 1.
func TestDeriveKey(t *testing.T) {
	seed, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")

	master, err := newMasterKey(seed)
	require.NoError(t, err)
	key, err := privateKey(master)
	require.NoError(t, err)
	assert.Equal(t, "e8f32e723decf4051aefac8e2c93c9c5b214313817cdb01a1494b917c8436b35", hex.EncodeToString(key))
	assert.Equal(t, "873dff81c02f525623fd1fe5167eac3a55a049de3d314bb42ee227ffed37d508", hex.EncodeToString(master.ChainCode()))

	path, err := ParsePath("m/0'")
	require.NoError(t, err)
	node, err := deriveKey(master, path)
	require.NoError(t, err)
	key, err = privateKey(node)
	require.NoError(t, err)
	assert.Equal(t, "edb2e14f9ee77d26dd93b4ecede8d16ed408ce149b6cd80b0715a2d911a0afea", hex.EncodeToString(key))
	assert.Equal(t, "47fdacbd0f1097043b78c63c20c34ef4ed9a111d980047ad16282c7ae6236141", hex.EncodeToString(node.ChainCode()))

	path, err = ParsePath("m/0'/1")
	require.NoError(t, err)
	node, err = deriveKey(master, path)
	require.NoError(t, err)
	key, err = privateKey(node)
	require.NoError(t, err)
	assert.Equal(t, "3c6cb8d0f6a264c91ea8b5030fadaa8e538b020f0a387421a12de9319dc93368", hex.EncodeToString(key))

	// master survives the walk
	key, err = privateKey(master)
	require.NoError(t, err)
	assert.Equal(t, "e8f32e723decf4051aefac8e2c93c9c5b214313817cdb01a1494b917c8436b35", hex.EncodeToString(key))
}
