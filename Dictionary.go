package dbmigrations

// Dictionary defines the dialect-specific SQL used to maintain the ledger of
// installed migrations.  Placeholders follow the dialect (`?` for SQLite3,
// `$n` for Postgres); argument order is the same across dialects.
type Dictionary interface {
	Dialect() Dialect

	CreateLedgerTableIfDoesNotExist() string
	EnsureBootstrapRecordIsPresentInTable() string

	SelectInstalledMigrationIds() string
	InsertInstalledMigrationId() string
	DeleteInstalledMigrationId() string
}
