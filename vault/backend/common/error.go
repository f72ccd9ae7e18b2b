package common

import (
	"errors"
)

var (
	// ErrKeyEmpty is returned when attempting to use an empty or nil key.
	ErrKeyEmpty = errors.New("key cannot be empty")

	// ErrValueNil is returned when attempting to set a nil value.
	ErrValueNil = errors.New("value cannot be nil")

	ErrClosed = errors.New("backend is closed")
)

func ValidateKey(key []byte) error {
	if len(key) == 0 {
		return ErrKeyEmpty
	}
	return nil
}

func ValidateKv(key, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if value == nil {
		return ErrValueNil
	}
	return nil
}
