package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TopiaNetwork/tpwallet/crypt/secp256"
	"github.com/TopiaNetwork/tpwallet/keyring/simple"
)

func TestAccountIndex(t *testing.T) {
	ai, err := NewAccountIndex(2)
	require.NoError(t, err)

	kr := simple.New(nil, secp256.New(nil))

	_, ok := ai.Get("0x01")
	assert.False(t, ok)

	ai.Add("0x01", kr)
	ai.Add("0x02", kr)
	got, ok := ai.Get("0x01")
	assert.True(t, ok)
	assert.Equal(t, kr, got)

	ai.Add("0x03", kr)
	assert.Equal(t, 2, ai.Len())
	_, ok = ai.Get("0x02")
	assert.False(t, ok, "least recently used entry should be evicted")

	ai.Remove("0x01")
	_, ok = ai.Get("0x01")
	assert.False(t, ok)
	assert.Equal(t, 1, ai.Len())

	ai.Purge()
	assert.Equal(t, 0, ai.Len())
}

func TestAccountIndex_DefaultSize(t *testing.T) {
	ai, err := NewAccountIndex(0)
	require.NoError(t, err)
	assert.NotNil(t, ai)
}
