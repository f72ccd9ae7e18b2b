package secp256

import (
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	"lukechampine.com/frand"

	tpcrtypes "github.com/TopiaNetwork/tpwallet/crypt/types"
	tplog "github.com/TopiaNetwork/tpwallet/log"
	tplogcmm "github.com/TopiaNetwork/tpwallet/log/common"
)

const (
	PublicKeyBytes            = 65 //65 bytes, uncompressed
	PrivateKeyBytes           = 32 //32 bytes
	SignatureRecoverableBytes = 65 //65 bytes
	DigestBytes               = 32 //32 bytes
)

type CryptServiceSecp256 struct {
	log tplog.Logger
}

func New(log tplog.Logger) *CryptServiceSecp256 {
	if log == nil {
		log = tplog.CreateModuleLogger(tplogcmm.InfoLevel, "secp256", nil)
	}
	return &CryptServiceSecp256{log}
}

func (c *CryptServiceSecp256) CryptType() tpcrtypes.CryptType {
	return tpcrtypes.CryptType_Secp256
}

func (c *CryptServiceSecp256) GeneratePriPubKey() (tpcrtypes.PrivateKey, tpcrtypes.PublicKey, error) {
	key, err := ecdsa.GenerateKey(crypto.S256(), frand.Reader)
	if err != nil {
		c.log.Errorf("generate secp256k1 key err: %v", err)
		return nil, nil, err
	}

	return crypto.FromECDSA(key), crypto.FromECDSAPub(&key.PublicKey), nil
}

func (c *CryptServiceSecp256) ConvertToPublic(priKey tpcrtypes.PrivateKey) (tpcrtypes.PublicKey, error) {
	key, err := ToECDSA(priKey)
	if err != nil {
		return nil, err
	}
	return crypto.FromECDSAPub(&key.PublicKey), nil
}

// Sign produces a recoverable [R || S || V] signature over digest, V is 0 or 1.
func (c *CryptServiceSecp256) Sign(priKey tpcrtypes.PrivateKey, digest []byte) (tpcrtypes.Signature, error) {
	if len(digest) != DigestBytes {
		return nil, fmt.Errorf("secp256 Sign digest len %d, expected %d", len(digest), DigestBytes)
	}
	key, err := ToECDSA(priKey)
	if err != nil {
		return nil, err
	}

	sig, err := crypto.Sign(digest, key)
	if err != nil {
		return nil, err
	}
	return sig, nil
}

func (c *CryptServiceSecp256) Verify(addr tpcrtypes.Address, digest []byte, signData tpcrtypes.Signature) (bool, error) {
	if len(digest) != DigestBytes || len(signData) != SignatureRecoverableBytes {
		return false, errors.New("secp256 Verify input invalid parameter")
	}

	sig := make([]byte, SignatureRecoverableBytes)
	copy(sig, signData)
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pubKey, err := crypto.SigToPub(digest, sig)
	if err != nil {
		return false, err
	}

	recovered, err := c.CreateAddress(crypto.FromECDSAPub(pubKey))
	if err != nil {
		return false, err
	}
	return recovered.Equal(addr), nil
}

func (c *CryptServiceSecp256) CreateAddress(pubKey tpcrtypes.PublicKey) (tpcrtypes.Address, error) {
	if len(pubKey) != PublicKeyBytes {
		return tpcrtypes.UndefAddress, fmt.Errorf("Invalid public key: len %d, expected %d", len(pubKey), PublicKeyBytes)
	}
	pub, err := crypto.UnmarshalPubkey(pubKey)
	if err != nil {
		return tpcrtypes.UndefAddress, err
	}
	return tpcrtypes.NewAddress(crypto.PubkeyToAddress(*pub).Bytes())
}

// ToECDSA validates priKey as a secp256k1 scalar.
func ToECDSA(priKey tpcrtypes.PrivateKey) (*ecdsa.PrivateKey, error) {
	if len(priKey) != PrivateKeyBytes {
		return nil, fmt.Errorf("secp256 private key len %d, expected %d", len(priKey), PrivateKeyBytes)
	}
	return crypto.ToECDSA(priKey)
}
