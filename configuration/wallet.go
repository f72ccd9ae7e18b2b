package configuration

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/TopiaNetwork/tpwallet/encryptor/scrypt"
)

const EnvPrefix = "TPWALLET"

type WalletConfiguration struct {
	DefaultKeyringType string        `json:"defaultKeyringType" envconfig:"DEFAULT_KEYRING_TYPE"`
	VaultBackend       string        `json:"vaultBackend" envconfig:"VAULT_BACKEND"`
	VaultPath          string        `json:"vaultPath" envconfig:"VAULT_PATH"`
	VaultName          string        `json:"vaultName" envconfig:"VAULT_NAME"`
	KeychainPassword   string        `json:"-" envconfig:"KEYCHAIN_PASSWORD"`
	Encryptor          string        `json:"encryptor" envconfig:"ENCRYPTOR"`
	ScryptN            int           `json:"scryptN" envconfig:"SCRYPT_N"`
	HDPath             string        `json:"hdPath" envconfig:"HD_PATH"`
	ChainID            int64         `json:"chainID" envconfig:"CHAIN_ID"`
	LockTimeout        time.Duration `json:"lockTimeout" envconfig:"LOCK_TIMEOUT"`
	AccountCacheSize   int           `json:"accountCacheSize" envconfig:"ACCOUNT_CACHE_SIZE"`
	LogLevel           string        `json:"logLevel" envconfig:"LOG_LEVEL"`
	LogFormat          string        `json:"logFormat" envconfig:"LOG_FORMAT"`
	LogOutput          string        `json:"logOutput" envconfig:"LOG_OUTPUT"`
}

func DefWalletConfiguration() *WalletConfiguration {
	homeDir, _ := os.UserHomeDir()
	return &WalletConfiguration{
		DefaultKeyringType: "HD Key Tree",
		VaultBackend:       "leveldb",
		VaultPath:          filepath.Join(homeDir, ".tpwallet"),
		VaultName:          "vault",
		Encryptor:          "scrypt",
		ScryptN:            1 << 18,
		HDPath:             "m/44'/60'/0'/0",
		ChainID:            1,
		LockTimeout:        10 * time.Second,
		AccountCacheSize:   512,
		LogLevel:           "info",
		LogFormat:          "text",
		LogOutput:          "stderr",
	}
}

func (c *WalletConfiguration) Save(fileFullName string) error {
	dataBytes, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return ioutil.WriteFile(fileFullName, dataBytes, 0600)
}

// Load overlays the fields present in the file on c.
func (c *WalletConfiguration) Load(fileFullName string) error {
	dataBytes, err := ioutil.ReadFile(fileFullName)
	if err != nil {
		return err
	}

	return json.Unmarshal(dataBytes, c)
}

// LoadEnv overlays the TPWALLET_* environment variables that are set on c.
func (c *WalletConfiguration) LoadEnv() error {
	return envconfig.Process(EnvPrefix, c)
}

func (c *WalletConfiguration) Validate() error {
	if c.VaultName == "" {
		return fmt.Errorf("empty vault name")
	}
	if c.ChainID <= 0 {
		return fmt.Errorf("invalid chain id %d", c.ChainID)
	}
	if c.ScryptN < 2 || c.ScryptN > scrypt.MaxN || c.ScryptN&(c.ScryptN-1) != 0 {
		return fmt.Errorf("scrypt N %d must be a power of two in [2, %d]", c.ScryptN, scrypt.MaxN)
	}
	if c.LockTimeout <= 0 {
		return fmt.Errorf("invalid lock timeout %s", c.LockTimeout)
	}
	return nil
}
