package main

import (
	"github.com/spf13/cobra"
)

var upgradeListCmd = &cobra.Command{
	Use:   "upgrade-list [store_path db_path]",
	Short: "List every pending migration without applying anything",
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

		return coordinator.ListPending()
	},
}
