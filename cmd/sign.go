package cmd

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/spf13/cobra"

	tpcmm "github.com/TopiaNetwork/tpwallet/common"
	"github.com/TopiaNetwork/tpwallet/keyring"
	"github.com/TopiaNetwork/tpwallet/wallet"
)

const (
	signFuncName = "sign"
	signCmdDes   = "Sign with an account: message, tx."
)

var personalSign bool
var signChainID int64

// messageBytes treats 0x-prefixed hex input as raw bytes and anything else as text.
func messageBytes(s string) ([]byte, error) {
	if tpcmm.Has0xPrefix(s) {
		return hexutil.Decode(s)
	}
	return []byte(s), nil
}

var signMessageCmd = &cobra.Command{
	Use:   "message <address> <data>",
	Short: "Signs a message, eth_sign style unless --personal is set.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		data, err := messageBytes(args[1])
		if err != nil {
			return err
		}

		return withUnlocked(func(kc wallet.KeyringController, pw string) error {
			var sig []byte
			if personalSign {
				sig, err = kc.SignPersonalMessage(args[0], data)
			} else {
				sig, err = kc.SignMessage(args[0], data)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hexutil.Encode(sig))
			return nil
		})
	},
}

var signTxCmd = &cobra.Command{
	Use:   "tx <address> <rawTxHex>",
	Short: "Signs a binary encoded transaction and prints the signed encoding.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		raw, err := hexutil.Decode(args[1])
		if err != nil {
			return fmt.Errorf("decode transaction: %w", err)
		}
		tx := new(types.Transaction)
		if err = tx.UnmarshalBinary(raw); err != nil {
			return fmt.Errorf("decode transaction: %w", err)
		}

		var opts *keyring.SignOptions
		if signChainID > 0 {
			opts = &keyring.SignOptions{ChainID: big.NewInt(signChainID)}
		}

		return withUnlocked(func(kc wallet.KeyringController, pw string) error {
			signed, err := kc.SignTransaction(tx, args[0], opts)
			if err != nil {
				return err
			}
			enc, err := signed.MarshalBinary()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hexutil.Encode(enc))
			return nil
		})
	},
}

var signCmd = &cobra.Command{
	Use:   signFuncName,
	Short: fmt.Sprint(signCmdDes),
	Long:  fmt.Sprint(signCmdDes),
}

var signCmdOnce sync.Once

func SignCmd() *cobra.Command {
	signCmdOnce.Do(func() {
		signMessageCmd.Flags().BoolVarP(&personalSign, "personal", "", false, "sign with the Ethereum signed message prefix")
		signTxCmd.Flags().Int64VarP(&signChainID, "chain-id", "", 0, "chain id, the configured one when 0")

		signCmd.AddCommand(signMessageCmd, signTxCmd)
	})

	return signCmd
}
