package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/yaccz/dbmigrations"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
		os.Exit(1)
	}
}

func formatError(err error) string {
	var sqlErr *dbmigrations.SqlError
	if errors.As(err, &sqlErr) {
		return fmt.Sprintf("A database error occurred: %v", sqlErr.Message)
	}

	return err.Error()
}
