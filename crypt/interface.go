package crypt

import (
	"fmt"

	"github.com/TopiaNetwork/tpwallet/crypt/secp256"
	tpcrtypes "github.com/TopiaNetwork/tpwallet/crypt/types"
	tplog "github.com/TopiaNetwork/tpwallet/log"
	tplogcmm "github.com/TopiaNetwork/tpwallet/log/common"
)

// CryptService is the chain capability keyrings are built on: key generation,
// address derivation and signing of 32 byte digests.
type CryptService interface {
	CryptType() tpcrtypes.CryptType

	GeneratePriPubKey() (tpcrtypes.PrivateKey, tpcrtypes.PublicKey, error)

	ConvertToPublic(priKey tpcrtypes.PrivateKey) (tpcrtypes.PublicKey, error)

	Sign(priKey tpcrtypes.PrivateKey, digest []byte) (tpcrtypes.Signature, error)

	Verify(addr tpcrtypes.Address, digest []byte, signData tpcrtypes.Signature) (bool, error)

	CreateAddress(pubKey tpcrtypes.PublicKey) (tpcrtypes.Address, error)
}

func CreateCryptService(log tplog.Logger, cryptType tpcrtypes.CryptType) (CryptService, error) {
	cryptLog := tplog.CreateModuleLogger(tplogcmm.InfoLevel, "crypt", log)
	switch cryptType {
	case tpcrtypes.CryptType_Secp256:
		return secp256.New(cryptLog), nil
	default:
		return nil, fmt.Errorf("invalid crypt type %s", cryptType)
	}
}
