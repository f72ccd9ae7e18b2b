package cmd

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/TopiaNetwork/tpwallet/keyring/hd"
	"github.com/TopiaNetwork/tpwallet/keyring/simple"
	"github.com/TopiaNetwork/tpwallet/wallet"
)

const (
	accountFuncName = "account"
	accountCmdDes   = "Operate accounts: list, add, import, export, remove."
)

var addKeyringType string

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists the accounts of every keyring.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		return withUnlocked(func(kc wallet.KeyringController, pw string) error {
			printState(cmd, kc.State())
			return nil
		})
	},
}

var accountAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Adds a new account to the first keyring of the given type.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		return withUnlocked(func(kc wallet.KeyringController, pw string) error {
			krs := kc.GetKeyringsByType(addKeyringType)
			if len(krs) == 0 {
				kr, err := kc.AddNewKeyring(addKeyringType, nil)
				if err != nil {
					return err
				}
				accounts, err := kr.GetAccounts()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), accounts[len(accounts)-1])
				return nil
			}

			accounts, err := kc.AddNewAccount(krs[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), accounts[len(accounts)-1])
			return nil
		})
	},
}

var accountImportCmd = &cobra.Command{
	Use:   "import <hexkey>",
	Short: "Imports a private key into a new simple keyring.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		return withUnlocked(func(kc wallet.KeyringController, pw string) error {
			kr, err := kc.AddNewKeyring(simple.Type, []string{args[0]})
			if err != nil {
				return err
			}
			accounts, err := kr.GetAccounts()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), accounts[0])
			return nil
		})
	},
}

var accountExportCmd = &cobra.Command{
	Use:   "export <address>",
	Short: "Prints the private key of an account.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		return withUnlocked(func(kc wallet.KeyringController, pw string) error {
			hexKey, err := kc.ExportAccount(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hexKey)
			return nil
		})
	},
}

var accountRemoveCmd = &cobra.Command{
	Use:   "remove <address>",
	Short: "Removes an account from the vault.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		return withUnlocked(func(kc wallet.KeyringController, pw string) error {
			st, err := kc.RemoveAccount(args[0])
			if err != nil {
				return err
			}
			printState(cmd, st)
			return nil
		})
	},
}

var accountCmd = &cobra.Command{
	Use:   accountFuncName,
	Short: fmt.Sprint(accountCmdDes),
	Long:  fmt.Sprint(accountCmdDes),
}

var accountCmdOnce sync.Once

func AccountCmd() *cobra.Command {
	accountCmdOnce.Do(func() {
		accountAddCmd.Flags().StringVarP(&addKeyringType, "type", "t", hd.Type, "the keyring type to add the account to")

		accountCmd.AddCommand(accountListCmd, accountAddCmd, accountImportCmd, accountExportCmd, accountRemoveCmd)
	})

	return accountCmd
}
