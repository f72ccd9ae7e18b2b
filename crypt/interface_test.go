package crypt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	tpcrtypes "github.com/TopiaNetwork/tpwallet/crypt/types"
)

func TestCreateCryptService(t *testing.T) {
	cs, err := CreateCryptService(nil, tpcrtypes.CryptType_Secp256)
	assert.Nil(t, err)
	assert.Equal(t, tpcrtypes.CryptType_Secp256, cs.CryptType())

	_, err = CreateCryptService(nil, tpcrtypes.CryptType_Unknown)
	assert.NotNil(t, err)
}
