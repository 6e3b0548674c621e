package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "dbmigrations",
	Short:         "Manages the schema of a relational database through dependent migrations",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(revertCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(upgradeCmd)
	rootCmd.AddCommand(upgradeListCmd)
}
