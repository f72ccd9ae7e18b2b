package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/TopiaNetwork/tpwallet/cmd"
)

var mainCmd = &cobra.Command{Use: "tpwallet", Short: "Manage the keys of an encrypted wallet vault."}

func main() {
	cmd.AddGlobalFlags(mainCmd)
	mainCmd.AddCommand(cmd.VaultCmd(), cmd.AccountCmd(), cmd.SignCmd())

	if mainCmd.Execute() != nil {
		os.Exit(1)
	}
}
