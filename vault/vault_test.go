package vault

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TopiaNetwork/tpwallet/encryptor"
	"github.com/TopiaNetwork/tpwallet/encryptor/scrypt"
	"github.com/TopiaNetwork/tpwallet/vault/backend"
)

func newTestVault(t *testing.T) *Vault {
	b, err := backend.NewBackend(backend.BackendType_Memdb, nil, "", "test", "")
	require.NoError(t, err)
	return New(nil, scrypt.New(1<<10), b)
}

func TestVault_SaveLoad(t *testing.T) {
	v := newTestVault(t)
	defer v.Close()

	_, err := v.Load("pw")
	assert.Equal(t, ErrNoVault, err)
	assert.Equal(t, ErrNoVault, v.Verify("pw"))

	exists, err := v.Exists()
	require.NoError(t, err)
	assert.False(t, exists)

	entries := []Entry{
		{Type: "Simple Key Pair", Data: json.RawMessage(`["aa"]`)},
		{Type: "HD Key Tree", Data: json.RawMessage(`{"mnemonic":"m","numberOfAccounts":1}`)},
	}
	require.NoError(t, v.Save("pw", entries))

	exists, err = v.Exists()
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := v.Load("pw")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, entries[0].Type, got[0].Type)
	assert.JSONEq(t, string(entries[1].Data), string(got[1].Data))

	assert.NoError(t, v.Verify("pw"))
	err = v.Verify("other")
	assert.True(t, errors.Is(err, encryptor.ErrInvalidPassword))
}

func TestVault_SaveReplaces(t *testing.T) {
	v := newTestVault(t)
	defer v.Close()

	require.NoError(t, v.Save("pw", []Entry{{Type: "a", Data: json.RawMessage(`[]`)}}))
	require.NoError(t, v.Save("pw2", nil))

	_, err := v.Load("pw")
	assert.True(t, errors.Is(err, encryptor.ErrInvalidPassword))

	got, err := v.Load("pw2")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, v.Clear())
	_, err = v.Load("pw2")
	assert.Equal(t, ErrNoVault, err)
}
