package keyring

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubKeyring struct {
	typ string
}

func (s *stubKeyring) Type() string                           { return s.typ }
func (s *stubKeyring) Serialize() (json.RawMessage, error)    { return json.RawMessage("[]"), nil }
func (s *stubKeyring) Deserialize(data json.RawMessage) error { return nil }
func (s *stubKeyring) AddAccounts(n int) ([]string, error)    { return nil, nil }
func (s *stubKeyring) GetAccounts() ([]string, error)         { return nil, nil }
func (s *stubKeyring) RemoveAccount(address string) error     { return ErrAddressNotFound }
func (s *stubKeyring) ExportAccount(string, *SignOptions) (string, error) {
	return "", ErrAddressNotFound
}
func (s *stubKeyring) SignTransaction(string, *types.Transaction, *SignOptions) (*types.Transaction, error) {
	return nil, ErrAddressNotFound
}
func (s *stubKeyring) SignMessage(string, []byte, *SignOptions) ([]byte, error) {
	return nil, ErrAddressNotFound
}
func (s *stubKeyring) SignPersonalMessage(string, []byte, *SignOptions) ([]byte, error) {
	return nil, ErrAddressNotFound
}

func stubFactory(typ string) Factory {
	return Factory{Type: typ, New: func() Keyring { return &stubKeyring{typ: typ} }}
}

func TestRegistry_Lookup(t *testing.T) {
	r, err := NewRegistry(stubFactory("a"), stubFactory("b"))
	require.NoError(t, err)

	newFn, err := r.Lookup("b")
	require.NoError(t, err)
	assert.Equal(t, "b", newFn().Type())

	_, err = r.Lookup("c")
	assert.True(t, errors.Is(err, ErrUnknownKeyringType), "unexpected err: %v", err)

	assert.Equal(t, []string{"a", "b"}, r.Types())
}

func TestRegistry_Invalid(t *testing.T) {
	_, err := NewRegistry(stubFactory("a"), stubFactory("a"))
	assert.Error(t, err)

	_, err = NewRegistry(Factory{Type: "a"})
	assert.Error(t, err)

	_, err = NewRegistry(Factory{New: func() Keyring { return &stubKeyring{} }})
	assert.Error(t, err)
}

func TestRegistry_TypesIsCopy(t *testing.T) {
	r, err := NewRegistry(stubFactory("a"))
	require.NoError(t, err)

	names := r.Types()
	names[0] = "z"
	assert.Equal(t, []string{"a"}, r.Types())
}

func TestSignOptions_ChainID(t *testing.T) {
	var opts *SignOptions
	assert.Equal(t, DefaultChainID, opts.chainID())
	assert.Equal(t, DefaultChainID, (&SignOptions{}).chainID())
}
