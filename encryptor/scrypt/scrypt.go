package scrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/scrypt"
	"lukechampine.com/frand"

	tpcmm "github.com/TopiaNetwork/tpwallet/common"
	"github.com/TopiaNetwork/tpwallet/encryptor"
)

const (
	Name = "scrypt"

	DefaultN = 1 << 18
	// MaxN bounds the cost read back from a blob, 1 GiB of scrypt memory at r=8.
	MaxN = 1 << 20

	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
	saltLen      = 32
	nonceLen     = 12

	envelopeVersion = 1
)

// envelope is the persisted form. KDF parameters travel with the ciphertext so a
// vault stays readable after the configured cost changes.
type envelope struct {
	Version    int    `json:"version"`
	KDF        string `json:"kdf"`
	N          int    `json:"n"`
	R          int    `json:"r"`
	P          int    `json:"p"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"ciphertext"`
}

type Encryptor struct {
	n int
}

// New returns an scrypt + AES-256-GCM encryptor with cost n, DefaultN if n <= 0.
// n is capped at MaxN.
func New(n int) *Encryptor {
	if n <= 0 {
		n = DefaultN
	}
	if n > MaxN {
		n = MaxN
	}
	return &Encryptor{n: n}
}

func (e *Encryptor) Name() string {
	return Name
}

func (e *Encryptor) Encrypt(password string, v interface{}) ([]byte, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal plaintext: %w", err)
	}
	defer tpcmm.ZeroBytes(plaintext)

	salt := frand.Bytes(saltLen)
	nonce := frand.Bytes(nonceLen)

	aead, err := newAEAD(password, salt, e.n, scryptR, scryptP)
	if err != nil {
		return nil, err
	}

	return json.Marshal(&envelope{
		Version:    envelopeVersion,
		KDF:        Name,
		N:          e.n,
		R:          scryptR,
		P:          scryptP,
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(aead.Seal(nil, nonce, plaintext, nil)),
	})
}

func (e *Encryptor) Decrypt(password string, blob []byte, v interface{}) error {
	var env envelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return fmt.Errorf("%w: %v", encryptor.ErrMalformedCiphertext, err)
	}
	if env.Version != envelopeVersion || env.KDF != Name {
		return fmt.Errorf("%w: unsupported envelope %d/%s", encryptor.ErrMalformedCiphertext, env.Version, env.KDF)
	}

	if err := checkParams(env.N, env.R, env.P); err != nil {
		return err
	}

	salt, err := base64.StdEncoding.DecodeString(env.Salt)
	if err != nil || len(salt) != saltLen {
		return fmt.Errorf("%w: invalid salt", encryptor.ErrMalformedCiphertext)
	}
	nonce, err := base64.StdEncoding.DecodeString(env.Nonce)
	if err != nil || len(nonce) != nonceLen {
		return fmt.Errorf("%w: invalid nonce", encryptor.ErrMalformedCiphertext)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(env.CipherText)
	if err != nil {
		return fmt.Errorf("%w: ciphertext: %v", encryptor.ErrMalformedCiphertext, err)
	}

	aead, err := newAEAD(password, salt, env.N, env.R, env.P)
	if err != nil {
		return fmt.Errorf("%w: %v", encryptor.ErrMalformedCiphertext, err)
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return encryptor.ErrInvalidPassword
	}
	defer tpcmm.ZeroBytes(plaintext)

	if err = json.Unmarshal(plaintext, v); err != nil {
		return fmt.Errorf("%w: plaintext: %v", encryptor.ErrMalformedCiphertext, err)
	}

	return nil
}

// checkParams rejects KDF parameters this package never writes, before any
// memory is allocated for them.
func checkParams(n, r, p int) error {
	if n < 2 || n > MaxN || n&(n-1) != 0 {
		return fmt.Errorf("%w: scrypt N %d out of range", encryptor.ErrMalformedCiphertext, n)
	}
	if r != scryptR || p != scryptP {
		return fmt.Errorf("%w: scrypt r=%d p=%d unsupported", encryptor.ErrMalformedCiphertext, r, p)
	}
	return nil
}

func newAEAD(password string, salt []byte, n, r, p int) (cipher.AEAD, error) {
	key, err := scrypt.Key([]byte(password), salt, n, r, p, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	defer tpcmm.ZeroBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
