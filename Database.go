package dbmigrations

import "database/sql"

// Database redefines the slice of *sql.DB that the Coordinator needs: the
// ability to open a transaction.  Connection open and close belong to the
// caller.
type Database interface {
	Begin() (*sql.Tx, error)
}

var _ Database = &sql.DB{}
