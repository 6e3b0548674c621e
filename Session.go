package dbmigrations

// runUnderTransaction runs closure inside a single transaction on db.  The
// transaction commits when the closure returns nil and rolls back otherwise,
// including on panic.
func runUnderTransaction(db Database, closure func(tx Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return wrapSqlError(err)
	}

	didCommit := false
	defer func() {
		if !didCommit {
			tx.Rollback()
		}
	}()

	if err := closure(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return wrapSqlError(err)
	}

	didCommit = true
	return nil
}

// runAndRollback runs closure inside a transaction that is always rolled
// back, leaving the database exactly as it was.
func runAndRollback(db Database, closure func(tx Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return wrapSqlError(err)
	}

	defer tx.Rollback()

	return closure(tx)
}
