package wallet

import (
	"crypto/subtle"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/TopiaNetwork/tpwallet/eventhub"
	"github.com/TopiaNetwork/tpwallet/keyring"
	"github.com/TopiaNetwork/tpwallet/keyring/hd"
	"github.com/TopiaNetwork/tpwallet/vault"
)

func checkPassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password must be text", ErrInvalidPassword)
	}
	return nil
}

// CreateNewVaultAndKeychain starts a fresh vault holding one default keyring with
// one account. An unlocked controller with keyrings is returned as is.
func (c *keyringController) CreateNewVaultAndKeychain(password string) (State, error) {
	if err := checkPassword(password); err != nil {
		return c.State(), err
	}
	if err := c.lock(); err != nil {
		return State{}, err
	}
	defer c.mutex.Unlock()

	if c.isUnlocked() && len(c.keyrings) > 0 {
		return c.state(), nil
	}

	snap := c.takeSnapshot()
	defer c.dropSnapshot(snap)

	kr, err := c.newKeyring(c.cfg.DefaultKeyringType, nil)
	if err != nil {
		c.restoreSnapshot(snap)
		return c.state(), err
	}

	c.keyrings = []keyring.Keyring{kr}
	c.setPassword(password)
	c.accIndex.Purge()

	err = c.persist()
	c.emit(eventhub.EventName_KeyringUnlocked)

	c.log.Info("new vault created")

	return c.state(), err
}

// CreateNewVaultAndRestore replaces every keyring with one default keyring
// derived from seed, holding its first account.
func (c *keyringController) CreateNewVaultAndRestore(password string, seed string) (State, error) {
	if err := checkPassword(password); err != nil {
		return c.State(), err
	}
	mnemonic := hd.NormalizeMnemonic(seed)
	if !hd.IsMnemonicValid(mnemonic) {
		return c.State(), fmt.Errorf("%w: seed phrase is not a valid mnemonic", ErrInvalidSeed)
	}

	if err := c.lock(); err != nil {
		return State{}, err
	}
	defer c.mutex.Unlock()

	kr, err := c.newKeyring(c.cfg.DefaultKeyringType, &hd.SerializedKeyring{
		Mnemonic:         mnemonic,
		NumberOfAccounts: 1,
	})
	if err != nil {
		if errorsIsSecretData(err) {
			return c.state(), fmt.Errorf("%w: %v", ErrInvalidSeed, err)
		}
		return c.state(), err
	}

	c.clearKeyrings()
	c.keyrings = []keyring.Keyring{kr}
	c.setPassword(password)

	err = c.persist()
	c.emit(eventhub.EventName_KeyringUnlocked)

	c.log.Info("vault restored from seed phrase")

	return c.state(), err
}

// SubmitPassword unlocks the vault and emits the unlock event.
func (c *keyringController) SubmitPassword(password string) (State, error) {
	if err := c.lock(); err != nil {
		return State{}, err
	}
	defer c.mutex.Unlock()

	if _, err := c.unlockKeyrings(password); err != nil {
		return c.state(), err
	}
	c.emit(eventhub.EventName_KeyringUnlocked)

	return c.state(), nil
}

func (c *keyringController) UnlockKeyrings(password string) ([]keyring.Keyring, error) {
	if err := c.lock(); err != nil {
		return nil, err
	}
	defer c.mutex.Unlock()

	return c.unlockKeyrings(password)
}

// unlockKeyrings restores every vault entry before replacing the live keyrings,
// so a failure leaves the controller untouched.
func (c *keyringController) unlockKeyrings(password string) ([]keyring.Keyring, error) {
	entries, err := c.vault.Load(password)
	if err != nil {
		return nil, err
	}

	krs := make([]keyring.Keyring, 0, len(entries))
	for i, entry := range entries {
		newFn, err := c.registry.Lookup(entry.Type)
		if err != nil {
			return nil, fmt.Errorf("vault entry %d: %w", i, err)
		}
		kr := newFn()
		if err = kr.Deserialize(entry.Data); err != nil {
			return nil, fmt.Errorf("vault entry %d of type %s: %w", i, entry.Type, err)
		}
		krs = append(krs, kr)
	}

	c.clearKeyrings()
	c.keyrings = krs
	c.setPassword(password)
	c.diverged = false

	c.log.Infof("vault unlocked with %d keyrings", len(krs))

	ret := make([]keyring.Keyring, len(krs))
	copy(ret, krs)
	return ret, nil
}

// SetLocked forgets the password and every keyring, then emits the lock event.
func (c *keyringController) SetLocked() State {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.clearPassword()
	c.clearKeyrings()
	c.emit(eventhub.EventName_KeyringLocked)

	return c.state()
}

func (c *keyringController) VerifyPassword(password string) error {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.vault.Verify(password)
}

func (c *keyringController) PersistAllKeyrings() error {
	if err := c.lock(); err != nil {
		return err
	}
	defer c.mutex.Unlock()

	return c.persist()
}

// persist writes every keyring to the vault under the in-memory password.
func (c *keyringController) persist() error {
	if !c.isUnlocked() {
		return ErrNotUnlocked
	}

	entries, err := c.serializeKeyrings()
	if err == nil {
		err = c.vault.Save(string(c.password), entries)
	}
	if err != nil {
		c.diverged = true
		c.log.Errorf("persist keyrings err: %v", err)
		return &PersistError{Err: err}
	}
	c.diverged = false

	return nil
}

func (c *keyringController) serializeKeyrings() ([]vault.Entry, error) {
	entries := make([]vault.Entry, 0, len(c.keyrings))
	for _, kr := range c.keyrings {
		data, err := kr.Serialize()
		if err != nil {
			return nil, fmt.Errorf("serialize keyring %s: %w", kr.Type(), err)
		}
		entries = append(entries, vault.Entry{Type: kr.Type(), Data: data})
	}
	return entries, nil
}

// ExportSeedPhrase returns the mnemonic of the first keyring holding one once
// password is verified against the vault.
func (c *keyringController) ExportSeedPhrase(password string) (string, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if !c.isUnlocked() {
		return "", ErrNotUnlocked
	}
	if err := c.vault.Verify(password); err != nil {
		return "", err
	}

	for _, kr := range c.keyrings {
		if holder, ok := kr.(keyring.MnemonicHolder); ok {
			return holder.Mnemonic()
		}
	}

	return "", fmt.Errorf("%w: no keyring holds a seed phrase", ErrUnsupportedOperation)
}

// ChangePassword re-encrypts the vault under newPassword. The in-memory password
// is replaced only after the new vault was written.
func (c *keyringController) ChangePassword(oldPassword string, newPassword string) error {
	if err := checkPassword(newPassword); err != nil {
		return err
	}
	if err := c.lock(); err != nil {
		return err
	}
	defer c.mutex.Unlock()

	entries, err := c.vault.Load(oldPassword)
	if err != nil {
		return err
	}

	if c.isUnlocked() {
		if subtle.ConstantTimeCompare(c.password, []byte(oldPassword)) != 1 {
			return ErrInvalidPassword
		}
		if entries, err = c.serializeKeyrings(); err != nil {
			return &PersistError{Err: err}
		}
	}

	if err = c.vault.Save(newPassword, entries); err != nil {
		c.log.Errorf("re-encrypt vault err: %v", err)
		return &PersistError{Err: err}
	}

	if c.isUnlocked() {
		c.setPassword(newPassword)
		c.diverged = false
	}

	c.log.Info("vault password changed")

	return nil
}

// Close locks the controller and releases the event hub and the vault backend.
func (c *keyringController) Close() error {
	c.SetLocked()

	var result error
	if err := c.evHub.Stop(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := c.vault.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("close vault: %w", err))
	}

	return result
}
