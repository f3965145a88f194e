package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd(provider *appProvider) *cobra.Command {
	root := &cobra.Command{
		Use:   "dprefs",
		Short: "Encrypted write-once preference store",
		Long: `dprefs stores typed preferences in an encrypted local database.

Every key is write-once: putting a key that already holds a value fails
until the key is removed. Values are sealed under a per-store keyset that
is itself wrapped with the master key kept in the data directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return provider.Close()
		},
	}
	root.SetOut(provider.Out)
	root.SetErr(provider.Err)

	root.PersistentFlags().StringVar(&provider.ConfigPath, "config", "", "path to config file (default ~/.dprefs/config.toml)")
	root.PersistentFlags().StringVar(&provider.DataDir, "data-dir", "", "data directory (overrides config)")
	root.PersistentFlags().StringVar(&provider.Name, "name", "", "preference store name (overrides config)")
	root.PersistentFlags().StringVar(&provider.LogLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	root.AddCommand(newPutCmd(provider))
	root.AddCommand(newGetCmd(provider))
	root.AddCommand(newRmCmd(provider))
	root.AddCommand(newClearCmd(provider))
	root.AddCommand(newExistsCmd(provider))
	root.AddCommand(newListCmd(provider))
	root.AddCommand(newKeyinfoCmd(provider))
	return root
}
