package cmd

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/TopiaNetwork/tpwallet/wallet"
)

const (
	vaultFuncName = "vault"
	vaultCmdDes   = "Operate the encrypted vault: create, restore, verify, seed, passwd."
)

var restoreSeed string
var newPassword string

var vaultCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Creates a new vault with one account.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		kc, err := openController()
		if err != nil {
			return err
		}
		defer kc.Close()

		pw, err := readPassword("New password")
		if err != nil {
			return err
		}
		st, err := kc.CreateNewVaultAndKeychain(pw)
		if err != nil {
			return err
		}
		printState(cmd, st)
		return nil
	},
}

var vaultRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Replaces the vault with one restored from a seed phrase.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		seed := restoreSeed
		if seed == "" {
			var err error
			if seed, err = promptSecret("Seed phrase"); err != nil {
				return err
			}
		}

		kc, err := openController()
		if err != nil {
			return err
		}
		defer kc.Close()

		pw, err := readPassword("New password")
		if err != nil {
			return err
		}
		st, err := kc.CreateNewVaultAndRestore(pw, seed)
		if err != nil {
			return err
		}
		printState(cmd, st)
		return nil
	},
}

var vaultVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Checks the password against the vault.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		kc, err := openController()
		if err != nil {
			return err
		}
		defer kc.Close()

		pw, err := readPassword("Password")
		if err != nil {
			return err
		}
		if err = kc.VerifyPassword(pw); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "password is correct")
		return nil
	},
}

var vaultSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Prints the seed phrase of the vault.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		return withUnlocked(func(kc wallet.KeyringController, pw string) error {
			mnemonic, err := kc.ExportSeedPhrase(pw)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), mnemonic)
			return nil
		})
	},
}

var vaultPasswdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Re-encrypts the vault under a new password.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		kc, err := openController()
		if err != nil {
			return err
		}
		defer kc.Close()

		oldPw, err := readPassword("Current password")
		if err != nil {
			return err
		}
		newPw := newPassword
		if newPw == "" {
			if newPw, err = promptSecret("New password"); err != nil {
				return err
			}
		}
		return kc.ChangePassword(oldPw, newPw)
	},
}

var vaultCmd = &cobra.Command{
	Use:   vaultFuncName,
	Short: fmt.Sprint(vaultCmdDes),
	Long:  fmt.Sprint(vaultCmdDes),
}

var vaultCmdOnce sync.Once

func VaultCmd() *cobra.Command {
	vaultCmdOnce.Do(func() {
		vaultRestoreCmd.Flags().StringVarP(&restoreSeed, "seed", "", "", "the seed phrase to restore from, prompted for when empty")
		vaultPasswdCmd.Flags().StringVarP(&newPassword, "new", "", "", "the new password, prompted for when empty")

		vaultCmd.AddCommand(vaultCreateCmd, vaultRestoreCmd, vaultVerifyCmd, vaultSeedCmd, vaultPasswdCmd)
	})

	return vaultCmd
}
