package types

import "fmt"

type PrivateKey []byte

type PublicKey []byte

type Signature []byte

type CryptType byte

const (
	CryptType_Unknown CryptType = iota
	CryptType_Secp256
)

func (c CryptType) String() string {
	switch c {
	case CryptType_Secp256:
		return "secp256k1"
	case CryptType_Unknown:
		return "unknown"
	}
	return fmt.Sprintf("CryptType(%d)", byte(c))
}
