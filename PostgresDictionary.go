package dbmigrations

// PostgresDictionary is an implementation of Dictionary for use with
// Postgres.
type PostgresDictionary struct{}

var _ Dictionary = &PostgresDictionary{}

// NewPostgresDictionary returns a new PostgresDictionary.
func NewPostgresDictionary() *PostgresDictionary {
	return &PostgresDictionary{}
}

// Dialect returns Postgres.
func (d *PostgresDictionary) Dialect() Dialect {
	return PostgresDialect
}

// CreateLedgerTableIfDoesNotExist returns the Postgres version of this
// query.
func (d *PostgresDictionary) CreateLedgerTableIfDoesNotExist() string {
	return `
		CREATE TABLE IF NOT EXISTS installed_migrations (
			migration_id TEXT NOT NULL PRIMARY KEY
		);
	`
}

// EnsureBootstrapRecordIsPresentInTable returns the Postgres version of this
// query.  It takes the bootstrap id twice.
func (d *PostgresDictionary) EnsureBootstrapRecordIsPresentInTable() string {
	return `
		INSERT INTO installed_migrations (migration_id)
		SELECT $1
		WHERE NOT EXISTS (SELECT * FROM installed_migrations m WHERE m.migration_id = $2);
	`
}

// SelectInstalledMigrationIds returns the Postgres version of this query.
func (d *PostgresDictionary) SelectInstalledMigrationIds() string {
	return `
		SELECT migration_id FROM installed_migrations;
	`
}

// InsertInstalledMigrationId returns the Postgres version of this query.
func (d *PostgresDictionary) InsertInstalledMigrationId() string {
	return `
		INSERT INTO installed_migrations (migration_id) VALUES ($1);
	`
}

// DeleteInstalledMigrationId returns the Postgres version of this query.
func (d *PostgresDictionary) DeleteInstalledMigrationId() string {
	return `
		DELETE FROM installed_migrations WHERE migration_id = $1;
	`
}
