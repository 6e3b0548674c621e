package dbmigrations

import "fmt"

// SqlBackend is a Backend over database/sql.  The ledger SQL comes from the
// provided Dictionary, so the same backend serves every supported dialect.
type SqlBackend struct {
	dictionary Dictionary
}

var _ Backend = &SqlBackend{}

// NewSqlBackend creates a new SqlBackend using the provided Dictionary.
func NewSqlBackend(dictionary Dictionary) *SqlBackend {
	return &SqlBackend{dictionary: dictionary}
}

// Bootstrap ensures the ledger table exists and that the bootstrap migration
// id is recorded.  It is idempotent.
func (b *SqlBackend) Bootstrap(tx Tx) error {
	if _, err := tx.Exec(b.dictionary.CreateLedgerTableIfDoesNotExist()); err != nil {
		return wrapSqlError(err)
	}

	_, err := tx.Exec(b.dictionary.EnsureBootstrapRecordIsPresentInTable(), BootstrapMigrationId, BootstrapMigrationId)
	return wrapSqlError(err)
}

// ListInstalled reads the ledger and returns the set of installed migration
// ids.
func (b *SqlBackend) ListInstalled(tx Tx) (map[string]bool, error) {
	rows, err := tx.Query(b.dictionary.SelectInstalledMigrationIds())
	if err != nil {
		return nil, wrapSqlError(err)
	}

	defer rows.Close()

	installed := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, wrapSqlError(err)
		}

		installed[id] = true
	}

	return installed, wrapSqlError(rows.Err())
}

// ApplyMigration executes the migration's forward SQL and inserts its id
// into the ledger.  Both effects happen in the enclosing transaction.
func (b *SqlBackend) ApplyMigration(tx Tx, migration *Migration) error {
	if migration.Apply != "" {
		if _, err := tx.Exec(migration.Apply); err != nil {
			return wrapSqlError(err)
		}
	}

	_, err := tx.Exec(b.dictionary.InsertInstalledMigrationId(), migration.Id)
	return wrapSqlError(err)
}

// RevertMigration executes the migration's backward SQL and deletes its id
// from the ledger.  A migration without a revert cannot be uninstalled.
func (b *SqlBackend) RevertMigration(tx Tx, migration *Migration) error {
	if migration.Revert == "" {
		return fmt.Errorf("%w: %s", ErrMissingRevert, migration.Id)
	}

	if _, err := tx.Exec(migration.Revert); err != nil {
		return wrapSqlError(err)
	}

	_, err := tx.Exec(b.dictionary.DeleteInstalledMigrationId(), migration.Id)
	return wrapSqlError(err)
}
