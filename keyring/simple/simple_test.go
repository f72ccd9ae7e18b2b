package simple

import (
	"encoding/json"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TopiaNetwork/tpwallet/crypt/secp256"
	"github.com/TopiaNetwork/tpwallet/keyring"
)

const (
	testPriKey  = "c87509a1c067bbde78beb793e6fa76530b6382a4c0241e5e4a9ec0a0f44dc0d3"
	testAddress = "0x627306090abab3a6e1400e9345bc60c78a8bef57"
)

func newTestKeyring(t *testing.T, keys ...string) *Keyring {
	k := New(nil, secp256.New(nil))
	if len(keys) > 0 {
		data, err := json.Marshal(keys)
		require.NoError(t, err)
		require.NoError(t, k.Deserialize(data))
	}
	return k
}

func TestSimpleKeyring_Deserialize(t *testing.T) {
	k := newTestKeyring(t, testPriKey)
	assert.Equal(t, Type, k.Type())

	accs, err := k.GetAccounts()
	require.NoError(t, err)
	assert.Equal(t, []string{testAddress}, accs)

	k2 := newTestKeyring(t, "0x"+strings.ToUpper(testPriKey))
	accs2, _ := k2.GetAccounts()
	assert.Equal(t, accs, accs2)
}

func TestSimpleKeyring_DeserializeInvalid(t *testing.T) {
	k := newTestKeyring(t)

	err := k.Deserialize(json.RawMessage(`{"not":"an array"}`))
	assert.True(t, errors.Is(err, keyring.ErrInvalidSecretData), "unexpected err: %v", err)

	err = k.Deserialize(json.RawMessage(`["` + testPriKey + `", "zz"]`))
	assert.True(t, errors.Is(err, keyring.ErrInvalidSecretData), "unexpected err: %v", err)

	accs, _ := k.GetAccounts()
	assert.Empty(t, accs)
}

func TestSimpleKeyring_SerializeRoundTrip(t *testing.T) {
	k := newTestKeyring(t, testPriKey)
	_, err := k.AddAccounts(3)
	require.NoError(t, err)

	data, err := k.Serialize()
	require.NoError(t, err)

	var keys []string
	require.NoError(t, json.Unmarshal(data, &keys))
	assert.Equal(t, testPriKey, keys[0])

	k2 := New(nil, secp256.New(nil))
	require.NoError(t, k2.Deserialize(data))

	want, _ := k.GetAccounts()
	got, _ := k2.GetAccounts()
	assert.Equal(t, want, got)
	assert.Len(t, got, 4)
}

func TestSimpleKeyring_AddAccounts(t *testing.T) {
	k := newTestKeyring(t)

	_, err := k.AddAccounts(0)
	assert.Equal(t, keyring.ErrInvalidAccountCount, err)

	added, err := k.AddAccounts(2)
	require.NoError(t, err)
	assert.Len(t, added, 2)
	assert.NotEqual(t, added[0], added[1])

	accs, _ := k.GetAccounts()
	assert.Equal(t, added, accs)
	for _, a := range accs {
		assert.Equal(t, strings.ToLower(a), a)
		assert.True(t, strings.HasPrefix(a, "0x"))
	}
}

func TestSimpleKeyring_ExportAccount(t *testing.T) {
	k := newTestKeyring(t, testPriKey)

	hexKey, err := k.ExportAccount(strings.ToUpper(testAddress[2:]), nil)
	require.NoError(t, err)
	assert.Equal(t, testPriKey, hexKey)

	_, err = k.ExportAccount("0x0000000000000000000000000000000000000000", nil)
	assert.True(t, errors.Is(err, keyring.ErrAddressNotFound))

	_, err = k.ExportAccount("", nil)
	assert.True(t, errors.Is(err, keyring.ErrAddressNotFound))
}

func TestSimpleKeyring_RemoveAccount(t *testing.T) {
	k := newTestKeyring(t)
	added, err := k.AddAccounts(3)
	require.NoError(t, err)

	err = k.RemoveAccount(testAddress)
	assert.True(t, errors.Is(err, keyring.ErrAddressNotFound))

	require.NoError(t, k.RemoveAccount(strings.ToUpper(added[1])))

	accs, _ := k.GetAccounts()
	assert.Equal(t, []string{added[0], added[2]}, accs)
}

func TestSimpleKeyring_SignMessage(t *testing.T) {
	k := newTestKeyring(t, testPriKey)
	msg := []byte("hello tpwallet")

	sig, err := k.SignMessage(testAddress, msg, nil)
	require.NoError(t, err)
	require.Len(t, sig, 65)
	assert.Contains(t, []byte{27, 28}, sig[64])

	sig[64] -= 27
	pub, err := crypto.SigToPub(crypto.Keccak256(msg), sig)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(testAddress), crypto.PubkeyToAddress(*pub))

	psig, err := k.SignPersonalMessage(testAddress, msg, nil)
	require.NoError(t, err)
	psig[64] -= 27
	pub, err = crypto.SigToPub(accounts.TextHash(msg), psig)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(testAddress), crypto.PubkeyToAddress(*pub))

	_, err = k.SignMessage("0x0000000000000000000000000000000000000001", msg, nil)
	assert.True(t, errors.Is(err, keyring.ErrAddressNotFound))
}

func TestSimpleKeyring_SignTransaction(t *testing.T) {
	k := newTestKeyring(t, testPriKey)

	to := common.HexToAddress("0x49dd2653f38f75d40fdbd51e83b9c9724c87f7eb")
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    1,
		GasPrice: big.NewInt(1000000000),
		Gas:      21000,
		To:       &to,
		Value:    big.NewInt(1),
	})

	chainID := big.NewInt(5)
	signed, err := k.SignTransaction(testAddress, tx, &keyring.SignOptions{ChainID: chainID})
	require.NoError(t, err)

	from, err := types.Sender(types.LatestSignerForChainID(chainID), signed)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(testAddress), from)
	assert.Equal(t, chainID, signed.ChainId())

	_, err = k.SignTransaction(testAddress, nil, nil)
	assert.Error(t, err)
}
