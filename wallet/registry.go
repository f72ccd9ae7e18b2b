package wallet

import (
	"github.com/TopiaNetwork/tpwallet/crypt"
	"github.com/TopiaNetwork/tpwallet/keyring"
	"github.com/TopiaNetwork/tpwallet/keyring/hd"
	"github.com/TopiaNetwork/tpwallet/keyring/simple"
	tplog "github.com/TopiaNetwork/tpwallet/log"
)

// DefaultRegistry registers the simple and hd keyrings over cs. hdPath may be
// empty for the standard Ethereum path.
func DefaultRegistry(log tplog.Logger, cs crypt.CryptService, hdPath string) (*keyring.Registry, error) {
	return keyring.NewRegistry(
		simple.Factory(log, cs),
		hd.Factory(log, cs, hdPath),
	)
}
