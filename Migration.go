package dbmigrations

import "time"

// BootstrapMigrationId is the id of the internal migration that creates the
// ledger table.  It is never stored on disk and is installed implicitly on
// first contact with a database.
const BootstrapMigrationId = "root"

// Migration is a single named schema change.  Apply and Revert hold the
// forward and backward SQL.  Depends lists the ids of the migrations that
// must be installed before this one.  A migration without Revert is one-way
// and fails at revert time.
type Migration struct {
	Id          string
	Description string
	Created     time.Time
	Depends     []string
	Apply       string
	Revert      string
}

// BootstrapMigration returns the synthetic migration that stands in for the
// ledger bootstrap.  Its SQL lives in the backend dictionaries, so Apply and
// Revert are empty here.
func BootstrapMigration() *Migration {
	return &Migration{
		Id:          BootstrapMigrationId,
		Description: "Creates the table that tracks installed migrations.",
	}
}

// MigrationSet maps migration ids to migrations.  Every id referenced in a
// Depends list resolves within the set once the bootstrap migration has been
// added.
type MigrationSet map[string]*Migration

// WithBootstrap returns a copy of the set that includes the bootstrap
// migration.
func (ms MigrationSet) WithBootstrap() MigrationSet {
	out := make(MigrationSet, len(ms)+1)
	for id, migration := range ms {
		out[id] = migration
	}
	out[BootstrapMigrationId] = BootstrapMigration()
	return out
}
