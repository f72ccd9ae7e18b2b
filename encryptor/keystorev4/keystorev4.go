package keystorev4

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	keystorev4 "github.com/wealdtech/go-eth2-wallet-encryptor-keystorev4"

	tpcmm "github.com/TopiaNetwork/tpwallet/common"
	"github.com/TopiaNetwork/tpwallet/encryptor"
	tpscrypt "github.com/TopiaNetwork/tpwallet/encryptor/scrypt"
)

const Name = "keystorev4"

const maxPBKDF2Rounds = 1 << 22

// errChecksumMismatch is the text keystorev4 v1.1.3 returns when the derived
// key does not match the stored checksum. Every other checksum failure is
// rejected by checkCrypto before the library runs.
const errChecksumMismatch = "invalid checksum"

// keystore wraps the EIP-2335 crypto section the way validator keystores do.
type keystore struct {
	Crypto  map[string]interface{} `json:"crypto"`
	Version uint                   `json:"version"`
	Name    string                 `json:"name"`
}

type cryptoSection struct {
	KDF struct {
		Function string `json:"function"`
		Params   struct {
			DKLen int    `json:"dklen"`
			N     int    `json:"n"`
			R     int    `json:"r"`
			P     int    `json:"p"`
			C     int    `json:"c"`
			PRF   string `json:"prf"`
			Salt  string `json:"salt"`
		} `json:"params"`
	} `json:"kdf"`
	Checksum struct {
		Message string `json:"message"`
	} `json:"checksum"`
	Cipher struct {
		Function string `json:"function"`
		Params   struct {
			IV string `json:"iv"`
		} `json:"params"`
		Message string `json:"message"`
	} `json:"cipher"`
}

type Encryptor struct {
	enc *keystorev4.Encryptor
}

func New() *Encryptor {
	return &Encryptor{enc: keystorev4.New()}
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

	cryptoFields, err := e.enc.Encrypt(plaintext, password)
	if err != nil {
		return nil, err
	}

	return json.Marshal(&keystore{
		Crypto:  cryptoFields,
		Version: e.enc.Version(),
		Name:    e.enc.Name(),
	})
}

func (e *Encryptor) Decrypt(password string, blob []byte, v interface{}) error {
	var ks keystore
	if err := json.Unmarshal(blob, &ks); err != nil {
		return fmt.Errorf("%w: %v", encryptor.ErrMalformedCiphertext, err)
	}
	if ks.Crypto == nil {
		return fmt.Errorf("%w: missing crypto section", encryptor.ErrMalformedCiphertext)
	}

	if err := checkCrypto(ks.Crypto); err != nil {
		return fmt.Errorf("%w: %v", encryptor.ErrMalformedCiphertext, err)
	}

	plaintext, err := e.enc.Decrypt(ks.Crypto, password)
	if err != nil {
		if err.Error() == errChecksumMismatch {
			return encryptor.ErrInvalidPassword
		}
		return fmt.Errorf("%w: %v", encryptor.ErrMalformedCiphertext, err)
	}
	defer tpcmm.ZeroBytes(plaintext)

	if err = json.Unmarshal(plaintext, v); err != nil {
		return fmt.Errorf("%w: plaintext: %v", encryptor.ErrMalformedCiphertext, err)
	}

	return nil
}

// checkCrypto bounds the KDF cost and checks every hex field, so the library
// only fails on a checksum mismatch or on a cipher it cannot run.
func checkCrypto(fields map[string]interface{}) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	var cs cryptoSection
	if err = json.Unmarshal(raw, &cs); err != nil {
		return err
	}

	kdf := cs.KDF.Params
	if kdf.DKLen != 32 {
		return fmt.Errorf("unsupported kdf dklen %d", kdf.DKLen)
	}
	switch cs.KDF.Function {
	case "scrypt":
		if kdf.N < 2 || kdf.N > tpscrypt.MaxN || kdf.N&(kdf.N-1) != 0 {
			return fmt.Errorf("scrypt n %d out of range", kdf.N)
		}
		if kdf.R != 8 || kdf.P != 1 {
			return fmt.Errorf("unsupported scrypt r=%d p=%d", kdf.R, kdf.P)
		}
	case "pbkdf2":
		if kdf.C < 1 || kdf.C > maxPBKDF2Rounds {
			return fmt.Errorf("pbkdf2 rounds %d out of range", kdf.C)
		}
	default:
		return fmt.Errorf("unsupported kdf %q", cs.KDF.Function)
	}
	if _, err = hex.DecodeString(kdf.Salt); err != nil {
		return errors.New("invalid kdf salt")
	}

	if sum, err := hex.DecodeString(cs.Checksum.Message); err != nil || len(sum) != 32 {
		return errors.New("invalid checksum message")
	}

	if cs.Cipher.Function != "aes-128-ctr" {
		return fmt.Errorf("unsupported cipher %q", cs.Cipher.Function)
	}
	if iv, err := hex.DecodeString(cs.Cipher.Params.IV); err != nil || len(iv) != 16 {
		return errors.New("invalid cipher iv")
	}
	if _, err = hex.DecodeString(cs.Cipher.Message); err != nil {
		return errors.New("invalid cipher message")
	}

	return nil
}
