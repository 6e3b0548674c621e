package main

import (
	"github.com/spf13/cobra"

	"github.com/yaccz/dbmigrations"
)

var newCmd = &cobra.Command{
	Use:   "new [store_path] migration_id",
	Short: "Create an empty migration file in the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		storePath, id, err := resolveStoreAndId(cmd, args)
		if err != nil {
			return err
		}

		store := dbmigrations.NewFilesystemStore(storePath)
		coordinator := dbmigrations.NewCoordinator(store, nil, nil, &stdoutLogger{})
		return coordinator.New(id)
	},
}
