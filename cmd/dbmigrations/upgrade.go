package main

import (
	"github.com/spf13/cobra"
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade [store_path db_path]",
	Short: "Apply every pending migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		storePath, dbPath, _, err := resolvePaths(cmd, args, false)
		if err != nil {
			return err
		}

		coordinator, closeDb, err := newCoordinator(storePath, dbPath)
		if err != nil {
			return err
		}

		defer closeDb()

		return coordinator.Upgrade()
	},
}
