package configuration

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletConfiguration_SaveLoad(t *testing.T) {
	cfg := DefWalletConfiguration()
	require.NoError(t, cfg.Validate())

	cfg.VaultBackend = "badger"
	cfg.ChainID = 5
	cfg.KeychainPassword = "secret"

	fileName := filepath.Join(t.TempDir(), "wallet.json")
	require.NoError(t, cfg.Save(fileName))

	loaded := DefWalletConfiguration()
	require.NoError(t, loaded.Load(fileName))
	assert.Equal(t, "badger", loaded.VaultBackend)
	assert.Equal(t, int64(5), loaded.ChainID)
	assert.Empty(t, loaded.KeychainPassword, "keychain password must not be written to disk")
}

func TestWalletConfiguration_LoadEnv(t *testing.T) {
	t.Setenv("TPWALLET_VAULT_BACKEND", "memdb")
	t.Setenv("TPWALLET_LOCK_TIMEOUT", "3s")
	t.Setenv("TPWALLET_SCRYPT_N", "1024")

	cfg := DefWalletConfiguration()
	require.NoError(t, cfg.LoadEnv())
	assert.Equal(t, "memdb", cfg.VaultBackend)
	assert.Equal(t, 3*time.Second, cfg.LockTimeout)
	assert.Equal(t, 1024, cfg.ScryptN)
	assert.Equal(t, "vault", cfg.VaultName)
}

func TestWalletConfiguration_Validate(t *testing.T) {
	cfg := DefWalletConfiguration()
	cfg.ScryptN = 1000
	assert.Error(t, cfg.Validate())

	cfg = DefWalletConfiguration()
	cfg.ScryptN = 1 << 30
	assert.Error(t, cfg.Validate())

	cfg = DefWalletConfiguration()
	cfg.ChainID = 0
	assert.Error(t, cfg.Validate())

	cfg = DefWalletConfiguration()
	cfg.LockTimeout = 0
	assert.Error(t, cfg.Validate())
}
