package dbmigrations

// SQLite3Dictionary is an implementation of Dictionary for use with SQLite3.
type SQLite3Dictionary struct{}

var _ Dictionary = &SQLite3Dictionary{}

// NewSQLite3Dictionary returns a new SQLite3Dictionary.
func NewSQLite3Dictionary() *SQLite3Dictionary {
	return &SQLite3Dictionary{}
}

// Dialect returns SQLite3.
func (d *SQLite3Dictionary) Dialect() Dialect {
	return SQLite3Dialect
}

// CreateLedgerTableIfDoesNotExist returns the SQLite3 version of this query.
func (d *SQLite3Dictionary) CreateLedgerTableIfDoesNotExist() string {
	return `
		CREATE TABLE IF NOT EXISTS installed_migrations (
			migration_id TEXT NOT NULL PRIMARY KEY
		);
	`
}

// EnsureBootstrapRecordIsPresentInTable returns the SQLite3 version of this
// query.  It takes the bootstrap id twice.
func (d *SQLite3Dictionary) EnsureBootstrapRecordIsPresentInTable() string {
	return `
		INSERT INTO installed_migrations (migration_id)
		SELECT ?
		WHERE NOT EXISTS (SELECT * FROM installed_migrations m WHERE m.migration_id = ?);
	`
}

// SelectInstalledMigrationIds returns the SQLite3 version of this query.
func (d *SQLite3Dictionary) SelectInstalledMigrationIds() string {
	return `
		SELECT migration_id FROM installed_migrations;
	`
}

// InsertInstalledMigrationId returns the SQLite3 version of this query.
func (d *SQLite3Dictionary) InsertInstalledMigrationId() string {
	return `
		INSERT INTO installed_migrations (migration_id) VALUES (?);
	`
}

// DeleteInstalledMigrationId returns the SQLite3 version of this query.
func (d *SQLite3Dictionary) DeleteInstalledMigrationId() string {
	return `
		DELETE FROM installed_migrations WHERE migration_id = ?;
	`
}
