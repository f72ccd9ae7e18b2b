package keyring

import "errors"

var (
	ErrAddressNotFound      = errors.New("address not found in keyring")
	ErrInvalidSecretData    = errors.New("invalid secret data")
	ErrUnknownKeyringType   = errors.New("unknown keyring type")
	ErrUnsupportedOperation = errors.New("unsupported keyring operation")
	ErrInvalidAccountCount  = errors.New("number of accounts to add must be positive")
)
