package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/TopiaNetwork/tpwallet/configuration"
	tplog "github.com/TopiaNetwork/tpwallet/log"
	tplogcmm "github.com/TopiaNetwork/tpwallet/log/common"
	"github.com/TopiaNetwork/tpwallet/wallet"
)

var configFile string
var password string

// AddGlobalFlags registers the flags every wallet command understands on root.
func AddGlobalFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "wallet configuration file, TPWALLET_* environment variables override it")
	flags.StringVarP(&password, "password", "p", "", "vault password, prompted for when empty")
}

func loadConfig() (*configuration.WalletConfiguration, error) {
	cfg := configuration.DefWalletConfiguration()
	if configFile != "" {
		if err := cfg.Load(configFile); err != nil {
			return nil, fmt.Errorf("load config %s: %w", configFile, err)
		}
	}
	if err := cfg.LoadEnv(); err != nil {
		return nil, fmt.Errorf("load config from environment: %w", err)
	}
	return cfg, nil
}

func openController() (wallet.KeyringController, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	level, err := tplogcmm.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	format, err := tplog.ParseLogFormat(cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	output, param := tplog.ParseLogOutput(cfg.LogOutput)
	log, err := tplog.CreateMainLogger(level, format, output, param)
	if err != nil {
		return nil, err
	}

	if err = os.MkdirAll(cfg.VaultPath, 0700); err != nil {
		return nil, err
	}

	return wallet.Open(level, log, cfg)
}

func readPassword(prompt string) (string, error) {
	if password != "" {
		return password, nil
	}
	return promptSecret(prompt)
}

func promptSecret(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("no terminal to prompt for %s, use --password", strings.ToLower(prompt))
	}

	fmt.Fprintf(os.Stderr, "%s: ", prompt)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(secret), nil
}

// withUnlocked opens the vault, unlocks it and runs fn. The controller is closed afterwards.
func withUnlocked(fn func(kc wallet.KeyringController, pw string) error) error {
	kc, err := openController()
	if err != nil {
		return err
	}
	defer kc.Close()

	pw, err := readPassword("Password")
	if err != nil {
		return err
	}
	if _, err = kc.SubmitPassword(pw); err != nil {
		return err
	}

	return fn(kc, pw)
}

func printState(cmd *cobra.Command, st wallet.State) {
	out := cmd.OutOrStdout()
	for i, kr := range st.Keyrings {
		fmt.Fprintf(out, "keyring %d (%s)\n", i, kr.Type)
		for _, addr := range kr.Accounts {
			fmt.Fprintf(out, "  %s\n", addr)
		}
	}
	if st.VaultDiverged {
		fmt.Fprintln(out, "warning: the vault could not be written, run again to retry")
	}
}
