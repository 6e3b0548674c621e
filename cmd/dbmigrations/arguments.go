package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func usageError(cmd *cobra.Command) error {
	return fmt.Errorf("usage: %s", cmd.UseLine())
}

// resolvePaths resolves the store path, database path and, when wantId is
// set, the migration id for a verb.  The full positional form always wins;
// the short form is accepted when DBM_MIGRATION_STORE and DBM_DATABASE
// provide the paths.
func resolvePaths(cmd *cobra.Command, args []string, wantId bool) (string, string, string, error) {
	environment, err := loadEnvironment()
	if err != nil {
		return "", "", "", err
	}

	want := 2
	if wantId {
		want = 3
	}

	switch {
	case len(args) == want:
		if wantId {
			return args[0], args[1], args[2], nil
		}
		return args[0], args[1], "", nil

	case wantId && len(args) == 1 && environment.MigrationStore != "" && environment.Database != "":
		return environment.MigrationStore, environment.Database, args[0], nil

	case !wantId && len(args) == 0 && environment.MigrationStore != "" && environment.Database != "":
		return environment.MigrationStore, environment.Database, "", nil
	}

	return "", "", "", usageError(cmd)
}

// resolveStoreAndId resolves the arguments of verbs that never touch a
// database.
func resolveStoreAndId(cmd *cobra.Command, args []string) (string, string, error) {
	environment, err := loadEnvironment()
	if err != nil {
		return "", "", err
	}

	switch {
	case len(args) == 2:
		return args[0], args[1], nil

	case len(args) == 1 && environment.MigrationStore != "":
		return environment.MigrationStore, args[0], nil
	}

	return "", "", usageError(cmd)
}
