package main

import (
	"github.com/spf13/cobra"
)

var revertCmd = &cobra.Command{
	Use:   "revert [store_path db_path] migration_id",
	Short: "Revert a migration and every installed migration that depends on it",
	RunE: func(cmd *cobra.Command, args []string) error {
		storePath, dbPath, id, err := resolvePaths(cmd, args, true)
		if err != nil {
			return err
		}

		coordinator, closeDb, err := newCoordinator(storePath, dbPath)
		if err != nil {
			return err
		}

		defer closeDb()

		return coordinator.Revert(id)
	},
}
