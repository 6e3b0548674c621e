package main

import (
	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply [store_path db_path] migration_id",
	Short: "Apply a migration and any missing dependencies",
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

		return coordinator.Apply(id)
	},
}
