package main

import (
	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use:   "test [store_path db_path] migration_id",
	Short: "Apply then revert a migration, rolling everything back",
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

		return coordinator.Test(id)
	},
}
