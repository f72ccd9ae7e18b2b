package wallet

import (
	"errors"
	"fmt"

	"github.com/TopiaNetwork/tpwallet/encryptor"
	"github.com/TopiaNetwork/tpwallet/keyring"
	"github.com/TopiaNetwork/tpwallet/vault"
)

var (
	ErrInvalidPassword      = encryptor.ErrInvalidPassword
	ErrMalformedCiphertext  = encryptor.ErrMalformedCiphertext
	ErrNoVault              = vault.ErrNoVault
	ErrUnknownKeyringType   = keyring.ErrUnknownKeyringType
	ErrAddressNotFound      = keyring.ErrAddressNotFound
	ErrUnsupportedOperation = keyring.ErrUnsupportedOperation
	ErrInvalidSecretData    = keyring.ErrInvalidSecretData
	ErrInvalidAccountCount  = keyring.ErrInvalidAccountCount

	ErrInvalidSeed       = errors.New("seed phrase is invalid")
	ErrInvalidKeyring    = errors.New("keyring is not held by the controller")
	ErrNotUnlocked       = errors.New("keyring controller is locked")
	ErrNoKeyrings        = errors.New("there are no keyrings")
	ErrNoMatchingKeyring = errors.New("no keyring found for the requested account")
	ErrEmptyAddress      = errors.New("must specify address")
	ErrDuplicateAccount  = errors.New("the account you are trying to import is a duplicate")
	ErrBusy              = errors.New("keyring controller is busy")
	ErrPersistFailed     = errors.New("persist vault failed")
)

// PersistError reports that the in-memory keyrings were changed but could not be
// written to the vault. It matches ErrPersistFailed and unwraps to the cause.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%v: %v", ErrPersistFailed, e.Err)
}

func (e *PersistError) Is(target error) bool {
	return target == ErrPersistFailed
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
