package vault

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/TopiaNetwork/tpwallet/encryptor"
	tplog "github.com/TopiaNetwork/tpwallet/log"
	tplogcmm "github.com/TopiaNetwork/tpwallet/log/common"
	"github.com/TopiaNetwork/tpwallet/vault/backend"
)

var vaultKey = []byte("vault")

var ErrNoVault = errors.New("cannot unlock without a previous vault")

// Entry is the serialized state of one keyring.
type Entry struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Vault is the encrypted list of keyring entries, kept under a single key of
// its backend and replaced as a whole on every Save.
type Vault struct {
	log tplog.Logger
	enc encryptor.Encryptor
	b   backend.Backend
}

func New(log tplog.Logger, enc encryptor.Encryptor, b backend.Backend) *Vault {
	return &Vault{
		log: tplog.CreateModuleLogger(tplogcmm.InfoLevel, "vault", log),
		enc: enc,
		b:   b,
	}
}

func (v *Vault) Exists() (bool, error) {
	return v.b.Has(vaultKey)
}

// Load decrypts the persisted entries. It fails with ErrNoVault when nothing was
// saved and with encryptor.ErrInvalidPassword on a password mismatch.
func (v *Vault) Load(password string) ([]Entry, error) {
	blob, err := v.b.Get(vaultKey)
	if err != nil {
		return nil, fmt.Errorf("read vault: %w", err)
	}
	if blob == nil {
		return nil, ErrNoVault
	}

	var entries []Entry
	if err = v.enc.Decrypt(password, blob, &entries); err != nil {
		if !errors.Is(err, encryptor.ErrInvalidPassword) {
			v.log.Errorf("decrypt vault err: %v", err)
		}
		return nil, err
	}

	return entries, nil
}

// Verify checks password against the persisted vault without returning its content.
func (v *Vault) Verify(password string) error {
	_, err := v.Load(password)
	return err
}

func (v *Vault) Save(password string, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	blob, err := v.enc.Encrypt(password, entries)
	if err != nil {
		return fmt.Errorf("encrypt vault: %w", err)
	}
	if err = v.b.Set(vaultKey, blob); err != nil {
		v.log.Errorf("write vault err: %v", err)
		return fmt.Errorf("write vault: %w", err)
	}

	v.log.Debugf("vault saved with %d keyrings", len(entries))

	return nil
}

func (v *Vault) Clear() error {
	return v.b.Delete(vaultKey)
}

func (v *Vault) Close() error {
	return v.b.Close()
}
