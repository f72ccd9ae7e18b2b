package secp256

import (
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tpcrtypes "github.com/TopiaNetwork/tpwallet/crypt/types"
)

const (
	knownPrivateKey = "c87509a1c067bbde78beb793e6fa76530b6382a4c0241e5e4a9ec0a0f44dc0d3"
	knownAddress    = "0x627306090abab3a6e1400e9345bc60c78a8bef57"
)

func TestGeneratePriPubKey(t *testing.T) {
	c := New(nil)
	sec, pub, err := c.GeneratePriPubKey()
	assert.Equal(t, nil, err, "GeneratePriPubKey err")
	assert.Equal(t, PrivateKeyBytes, len(sec), "private key length err")
	assert.Equal(t, PublicKeyBytes, len(pub), "public key length err")

	pubConvert, err := c.ConvertToPublic(sec)
	assert.Equal(t, nil, err, "ConvertToPublic err")
	assert.Equal(t, pub, pubConvert)
}

func TestCreateAddressKnownVector(t *testing.T) {
	c := New(nil)
	sec, err := hex.DecodeString(knownPrivateKey)
	require.Nil(t, err)

	pub, err := c.ConvertToPublic(sec)
	require.Nil(t, err)

	for i := 0; i < 3; i++ {
		addr, err := c.CreateAddress(pub)
		assert.Nil(t, err)
		assert.Equal(t, tpcrtypes.Address(knownAddress), addr)
	}
}

func TestSignVerify(t *testing.T) {
	c := New(nil)
	sec, pub, err := c.GeneratePriPubKey()
	require.Nil(t, err)
	addr, err := c.CreateAddress(pub)
	require.Nil(t, err)

	digest := crypto.Keccak256([]byte("this is test msg for sign"))
	sig, err := c.Sign(sec, digest)
	assert.Nil(t, err)
	assert.Equal(t, SignatureRecoverableBytes, len(sig))

	ok, err := c.Verify(addr, digest, sig)
	assert.Nil(t, err)
	assert.True(t, ok)

	sig27 := make([]byte, len(sig))
	copy(sig27, sig)
	sig27[64] += 27
	ok, err = c.Verify(addr, digest, sig27)
	assert.Nil(t, err)
	assert.True(t, ok)

	otherDigest := crypto.Keccak256([]byte("another msg"))
	ok, err = c.Verify(addr, otherDigest, sig)
	assert.Nil(t, err)
	assert.False(t, ok)
}

func TestInvalidInput(t *testing.T) {
	c := New(nil)
	_, err := c.ConvertToPublic([]byte{0x01})
	assert.NotNil(t, err)

	_, err = c.ConvertToPublic(make([]byte, PrivateKeyBytes))
	assert.NotNil(t, err, "zero scalar is not a valid key")

	sec, _, err := c.GeneratePriPubKey()
	require.Nil(t, err)
	_, err = c.Sign(sec, []byte("short"))
	assert.NotNil(t, err)

	_, err = c.CreateAddress([]byte{0x04, 0x01})
	assert.NotNil(t, err)
}
