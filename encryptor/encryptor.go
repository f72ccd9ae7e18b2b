package encryptor

import "errors"

var (
	ErrInvalidPassword     = errors.New("invalid password")
	ErrMalformedCiphertext = errors.New("malformed ciphertext")
)

// Encryptor seals a JSON serializable value under a password. Decrypt fails with
// ErrInvalidPassword when password does not match the one blob was sealed with.
type Encryptor interface {
	Name() string

	Encrypt(password string, v interface{}) ([]byte, error)

	Decrypt(password string, blob []byte, v interface{}) error
}
