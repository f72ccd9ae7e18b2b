package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/core/types"

	tpcmm "github.com/TopiaNetwork/tpwallet/common"
	tpcrtypes "github.com/TopiaNetwork/tpwallet/crypt/types"
	"github.com/TopiaNetwork/tpwallet/keyring"
)

func errorsIsSecretData(err error) bool {
	return errors.Is(err, keyring.ErrInvalidSecretData)
}

// newKeyring builds a keyring of keyringType. opts is marshaled to JSON and
// restored with Deserialize; without opts the keyring gets one fresh account.
func (c *keyringController) newKeyring(keyringType string, opts interface{}) (keyring.Keyring, error) {
	newFn, err := c.registry.Lookup(keyringType)
	if err != nil {
		return nil, err
	}
	kr := newFn()

	if opts != nil {
		data, err := json.Marshal(opts)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSecretData, err)
		}
		if err = kr.Deserialize(data); err != nil {
			return nil, err
		}
	} else if _, err = kr.AddAccounts(1); err != nil {
		return nil, err
	}

	return kr, nil
}

func (c *keyringController) clearKeyrings() {
	c.keyrings = nil
	c.accIndex.Purge()
}

func (c *keyringController) allAccounts() ([]string, error) {
	var addrs []string
	for _, kr := range c.keyrings {
		accounts, err := kr.GetAccounts()
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, accounts...)
	}
	return addrs, nil
}

func (c *keyringController) indexOf(kr keyring.Keyring) int {
	for i, held := range c.keyrings {
		if held == kr {
			return i
		}
	}
	return -1
}

func (c *keyringController) checkDuplicate(incoming []string) error {
	if dup, ok := tpcmm.HasDuplicate(incoming); ok {
		return fmt.Errorf("%w: %s", ErrDuplicateAccount, dup)
	}
	existing, err := c.allAccounts()
	if err != nil {
		return err
	}
	if dup, ok := tpcmm.FirstIntersection(existing, incoming); ok {
		return fmt.Errorf("%w: %s", ErrDuplicateAccount, dup)
	}
	return nil
}

func (c *keyringController) AddNewKeyring(keyringType string, opts interface{}) (keyring.Keyring, error) {
	if err := c.lock(); err != nil {
		return nil, err
	}
	defer c.mutex.Unlock()

	if !c.isUnlocked() {
		return nil, ErrNotUnlocked
	}

	kr, err := c.newKeyring(keyringType, opts)
	if err != nil {
		return nil, err
	}

	accounts, err := kr.GetAccounts()
	if err != nil {
		return nil, err
	}
	if err = c.checkDuplicate(accounts); err != nil {
		return nil, err
	}

	c.keyrings = append(c.keyrings, kr)
	c.accIndex.Purge()

	c.log.With("keyring", kr.Type()).Infof("keyring added with %d accounts", len(accounts))
	c.emitAccountsChanged()

	return kr, c.persist()
}

func (c *keyringController) AddNewAccount(kr keyring.Keyring) ([]string, error) {
	if err := c.lock(); err != nil {
		return nil, err
	}
	defer c.mutex.Unlock()

	if !c.isUnlocked() {
		return nil, ErrNotUnlocked
	}
	if c.indexOf(kr) < 0 {
		return nil, ErrInvalidKeyring
	}

	existing, err := c.allAccounts()
	if err != nil {
		return nil, err
	}
	added, err := kr.AddAccounts(1)
	if err != nil {
		return nil, err
	}
	if dup, ok := tpcmm.FirstIntersection(existing, added); ok {
		for _, addr := range added {
			if rmErr := kr.RemoveAccount(addr); rmErr != nil {
				c.log.Errorf("roll back account %s err: %v", addr, rmErr)
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrDuplicateAccount, dup)
	}
	c.accIndex.Purge()

	accounts, err := kr.GetAccounts()
	if err != nil {
		return nil, err
	}

	c.log.With("keyring", kr.Type()).Infof("account %s added", added[0])
	c.emitAccountsChanged()

	return accounts, c.persist()
}

// RemoveAccount drops address from its keyring and prunes the keyring once it
// holds no account.
func (c *keyringController) RemoveAccount(address string) (State, error) {
	if err := c.lock(); err != nil {
		return State{}, err
	}
	defer c.mutex.Unlock()

	kr, err := c.getKeyringForAccount(address)
	if errors.Is(err, ErrNoKeyrings) || errors.Is(err, ErrNoMatchingKeyring) {
		return c.state(), fmt.Errorf("%w: %s", ErrAddressNotFound, address)
	} else if err != nil {
		return c.state(), err
	}
	if err = kr.RemoveAccount(address); err != nil {
		return c.state(), err
	}
	c.accIndex.Purge()

	accounts, err := kr.GetAccounts()
	if err != nil {
		return c.state(), err
	}
	if len(accounts) == 0 {
		if i := c.indexOf(kr); i >= 0 {
			c.keyrings = append(c.keyrings[:i:i], c.keyrings[i+1:]...)
		}
		c.log.Infof("empty keyring %s pruned", kr.Type())
	}
	c.emitAccountsChanged()

	err = c.persist()

	return c.state(), err
}

func (c *keyringController) ExportAccount(address string) (string, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	kr, err := c.getKeyringForAccount(address)
	if err != nil {
		return "", err
	}
	return kr.ExportAccount(address, c.signOptions(nil))
}

func (c *keyringController) GetAccounts() ([]string, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	addrs, err := c.allAccounts()
	if err != nil {
		return nil, err
	}
	if addrs == nil {
		addrs = []string{}
	}
	return addrs, nil
}

func (c *keyringController) GetKeyringForAccount(address string) (keyring.Keyring, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.getKeyringForAccount(address)
}

// getKeyringForAccount only rejects an empty address; any other input is
// compared against the held accounts after normalization. A cached owner is
// trusted only while it still holds the address.
func (c *keyringController) getKeyringForAccount(address string) (keyring.Keyring, error) {
	if strings.TrimSpace(address) == "" {
		return nil, ErrEmptyAddress
	}
	if len(c.keyrings) == 0 {
		return nil, ErrNoKeyrings
	}
	addr := tpcrtypes.NormalizeAddress(address)

	if kr, ok := c.accIndex.Get(addr.String()); ok {
		held, err := holdsAccount(kr, addr)
		if err != nil {
			return nil, err
		}
		if held && c.indexOf(kr) >= 0 {
			return kr, nil
		}
		c.accIndex.Remove(addr.String())
	}

	for _, kr := range c.keyrings {
		held, err := holdsAccount(kr, addr)
		if err != nil {
			return nil, err
		}
		if held {
			c.accIndex.Add(addr.String(), kr)
			return kr, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNoMatchingKeyring, address)
}

func holdsAccount(kr keyring.Keyring, addr tpcrtypes.Address) (bool, error) {
	accounts, err := kr.GetAccounts()
	if err != nil {
		return false, err
	}
	for _, a := range accounts {
		if tpcrtypes.Address(a).Equal(addr) {
			return true, nil
		}
	}
	return false, nil
}

func (c *keyringController) GetKeyringsByType(keyringType string) []keyring.Keyring {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	var krs []keyring.Keyring
	for _, kr := range c.keyrings {
		if kr.Type() == keyringType {
			krs = append(krs, kr)
		}
	}
	return krs
}

func (c *keyringController) ForgetKeyring(kr keyring.Keyring) error {
	if err := c.lock(); err != nil {
		return err
	}
	defer c.mutex.Unlock()

	forgetter, ok := kr.(keyring.DeviceForgetter)
	if !ok {
		return fmt.Errorf("%w: keyring %s does not support forgetting a device", ErrUnsupportedOperation, kr.Type())
	}
	return forgetter.ForgetDevice()
}

func (c *keyringController) SignTransaction(tx *types.Transaction, from string, opts *keyring.SignOptions) (*types.Transaction, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	kr, err := c.getKeyringForAccount(from)
	if err != nil {
		return nil, err
	}
	return kr.SignTransaction(from, tx, c.signOptions(opts))
}

func (c *keyringController) SignMessage(address string, data []byte) ([]byte, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	kr, err := c.getKeyringForAccount(address)
	if err != nil {
		return nil, err
	}
	return kr.SignMessage(address, data, c.signOptions(nil))
}

func (c *keyringController) SignPersonalMessage(address string, data []byte) ([]byte, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	kr, err := c.getKeyringForAccount(address)
	if err != nil {
		return nil, err
	}
	return kr.SignPersonalMessage(address, data, c.signOptions(nil))
}
