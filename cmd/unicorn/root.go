package main

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:           "unicorn",
	Short:         "Unicorn is a single-repository analysis dashboard.",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, hashPasswordCmd)
}
