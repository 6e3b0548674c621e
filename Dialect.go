package dbmigrations

// Dialect is a simple string alias type that represents different SQL
// dialects e.g. "Postgres" or "SQLite3".
type Dialect string

// Ledger dictionaries are provided for two dialects: "Postgres" and
// "SQLite3".
const (
	PostgresDialect = "Postgres"
	SQLite3Dialect  = "SQLite3"
)
