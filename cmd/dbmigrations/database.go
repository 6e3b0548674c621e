package main

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/yaccz/dbmigrations"
)

// openDatabase opens the database at the provided path and returns the
// matching dialect dictionary.  Postgres URLs go through the pgx driver;
// anything else is treated as a SQLite3 file path.
func openDatabase(dbPath string) (*sql.DB, dbmigrations.Dictionary, error) {
	if strings.HasPrefix(dbPath, "postgres://") || strings.HasPrefix(dbPath, "postgresql://") {
		db, err := sql.Open("pgx", dbPath)
		return db, dbmigrations.NewPostgresDictionary(), err
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%v", dbPath))
	return db, dbmigrations.NewSQLite3Dictionary(), err
}

// newCoordinator wires a Coordinator for the provided paths.  The returned
// closer releases the database session and must run on every exit path.
func newCoordinator(storePath string, dbPath string) (*dbmigrations.Coordinator, func(), error) {
	db, dictionary, err := openDatabase(dbPath)
	if err != nil {
		return nil, nil, err
	}

	coordinator := dbmigrations.NewCoordinator(
		dbmigrations.NewFilesystemStore(storePath),
		db,
		dbmigrations.NewSqlBackend(dictionary),
		&stdoutLogger{},
	)

	return coordinator, func() { db.Close() }, nil
}
