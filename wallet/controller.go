package wallet

import (
	"context"
	"math/big"
	"time"

	"github.com/AsynkronIT/protoactor-go/actor"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/subchen/go-trylock/v2"

	tpcmm "github.com/TopiaNetwork/tpwallet/common"
	"github.com/TopiaNetwork/tpwallet/eventhub"
	"github.com/TopiaNetwork/tpwallet/keyring"
	"github.com/TopiaNetwork/tpwallet/keyring/hd"
	tplog "github.com/TopiaNetwork/tpwallet/log"
	tplogcmm "github.com/TopiaNetwork/tpwallet/log/common"
	"github.com/TopiaNetwork/tpwallet/vault"
	"github.com/TopiaNetwork/tpwallet/wallet/cache"
)

const (
	MOD_NAME = "wallet"
)

type KeyringController interface {
	CreateNewVaultAndKeychain(password string) (State, error)

	CreateNewVaultAndRestore(password string, seed string) (State, error)

	SubmitPassword(password string) (State, error)

	UnlockKeyrings(password string) ([]keyring.Keyring, error)

	SetLocked() State

	VerifyPassword(password string) error

	AddNewKeyring(keyringType string, opts interface{}) (keyring.Keyring, error)

	AddNewAccount(kr keyring.Keyring) ([]string, error)

	RemoveAccount(address string) (State, error)

	ExportAccount(address string) (string, error)

	GetAccounts() ([]string, error)

	GetKeyringForAccount(address string) (keyring.Keyring, error)

	GetKeyringsByType(keyringType string) []keyring.Keyring

	ForgetKeyring(kr keyring.Keyring) error

	PersistAllKeyrings() error

	SignTransaction(tx *types.Transaction, from string, opts *keyring.SignOptions) (*types.Transaction, error)

	SignMessage(address string, data []byte) ([]byte, error)

	SignPersonalMessage(address string, data []byte) ([]byte, error)

	ExportSeedPhrase(password string) (string, error)

	ChangePassword(oldPassword string, newPassword string) error

	State() State

	IsUnlocked() bool

	Observe(evName string, evHandler eventhub.EventHandler) (string, error)

	UnObserve(obsID string, evName string) error

	Close() error
}

type ControllerConfig struct {
	DefaultKeyringType string
	LockTimeout        time.Duration
	AccountCacheSize   int
	ChainID            *big.Int
}

func DefControllerConfig() *ControllerConfig {
	return &ControllerConfig{
		DefaultKeyringType: hd.Type,
		LockTimeout:        10 * time.Second,
		AccountCacheSize:   cache.DefaultAccountCacheSize,
		ChainID:            big.NewInt(1),
	}
}

type keyringController struct {
	log      tplog.Logger
	cfg      ControllerConfig
	registry *keyring.Registry
	vault    *vault.Vault
	accIndex *cache.AccountIndex
	evHub    eventhub.EventHub
	mutex    trylock.TryLocker
	password []byte
	keyrings []keyring.Keyring
	diverged bool
}

// snapshot is the controller state a failed multi-step mutation rolls back to.
type snapshot struct {
	password []byte
	keyrings []keyring.Keyring
}

func NewKeyringController(level tplogcmm.LogLevel, log tplog.Logger, registry *keyring.Registry, v *vault.Vault, cfg *ControllerConfig) (KeyringController, error) {
	wLog := tplog.CreateModuleLogger(level, MOD_NAME, log)

	def := DefControllerConfig()
	if cfg == nil {
		cfg = def
	}
	c := *cfg
	if c.DefaultKeyringType == "" {
		c.DefaultKeyringType = def.DefaultKeyringType
	}
	if c.LockTimeout <= 0 {
		c.LockTimeout = def.LockTimeout
	}
	if c.ChainID == nil {
		c.ChainID = def.ChainID
	}
	if _, err := registry.Lookup(c.DefaultKeyringType); err != nil {
		return nil, err
	}

	accIndex, err := cache.NewAccountIndex(c.AccountCacheSize)
	if err != nil {
		return nil, err
	}

	evHub := eventhub.NewEventHub(level, wLog)
	if err = evHub.Start(actor.NewActorSystem()); err != nil {
		return nil, err
	}

	return &keyringController{
		log:      wLog,
		cfg:      c,
		registry: registry,
		vault:    v,
		accIndex: accIndex,
		evHub:    evHub,
		mutex:    trylock.New(),
	}, nil
}

func (c *keyringController) lock() error {
	if ok := c.mutex.TryLockTimeout(c.cfg.LockTimeout); !ok {
		c.log.Warnf("keyring controller lock timeout %s", c.cfg.LockTimeout)
		return ErrBusy
	}
	return nil
}

func (c *keyringController) isUnlocked() bool {
	return len(c.password) > 0
}

func (c *keyringController) setPassword(password string) {
	tpcmm.ZeroBytes(c.password)
	c.password = []byte(password)
}

func (c *keyringController) clearPassword() {
	tpcmm.ZeroBytes(c.password)
	c.password = nil
}

func (c *keyringController) takeSnapshot() *snapshot {
	krs := make([]keyring.Keyring, len(c.keyrings))
	copy(krs, c.keyrings)
	return &snapshot{
		password: tpcmm.BytesCopy(c.password),
		keyrings: krs,
	}
}

func (c *keyringController) restoreSnapshot(s *snapshot) {
	tpcmm.ZeroBytes(c.password)
	c.password = s.password
	if len(c.password) == 0 {
		c.password = nil
	}
	c.keyrings = s.keyrings
	c.accIndex.Purge()
}

func (c *keyringController) dropSnapshot(s *snapshot) {
	tpcmm.ZeroBytes(s.password)
}

func (c *keyringController) state() State {
	st := State{
		IsUnlocked:    c.isUnlocked(),
		Keyrings:      make([]KeyringState, 0, len(c.keyrings)),
		VaultDiverged: c.diverged,
	}
	for _, kr := range c.keyrings {
		accounts, err := kr.GetAccounts()
		if err != nil {
			c.log.Errorf("get accounts of keyring %s err: %v", kr.Type(), err)
		}
		st.Keyrings = append(st.Keyrings, KeyringState{Type: kr.Type(), Accounts: accounts})
	}
	return st
}

func (c *keyringController) State() State {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.state()
}

func (c *keyringController) IsUnlocked() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.isUnlocked()
}

func (c *keyringController) emit(evName string) {
	c.trig(evName, &eventhub.LockStateEvent{
		IsUnlocked:   c.isUnlocked(),
		KeyringCount: len(c.keyrings),
	})
}

func (c *keyringController) emitAccountsChanged() {
	accounts, err := c.allAccounts()
	if err != nil {
		c.log.Errorf("collect accounts err: %v", err)
		return
	}
	c.trig(eventhub.EventName_AccountsChanged, &eventhub.AccountsChangedEvent{Accounts: accounts})
}

func (c *keyringController) trig(evName string, data interface{}) {
	if err := c.evHub.Trig(context.Background(), evName, data); err != nil {
		c.log.Errorf("trigger event %s err: %v", evName, err)
	}
}

func (c *keyringController) Observe(evName string, evHandler eventhub.EventHandler) (string, error) {
	return c.evHub.Observe(context.Background(), evName, evHandler)
}

func (c *keyringController) UnObserve(obsID string, evName string) error {
	return c.evHub.UnObserve(context.Background(), obsID, evName)
}

func (c *keyringController) signOptions(opts *keyring.SignOptions) *keyring.SignOptions {
	if opts != nil && opts.ChainID != nil {
		return opts
	}
	return &keyring.SignOptions{ChainID: c.cfg.ChainID}
}
