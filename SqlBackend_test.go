package dbmigrations

import (
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"testing"

	"github.com/ljpx/test"
	_ "github.com/mattn/go-sqlite3"
)

type SqlBackendFixture struct {
	db               *sql.DB
	databaseFileName string
	backend          *SqlBackend
}

func SetupSqlBackendFixture(t *testing.T) *SqlBackendFixture {
	databaseFileName := fmt.Sprintf("./dbmigrations-test-%v.db", rand.Int63())
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%v", databaseFileName))
	test.That(t, err).IsNil()

	return &SqlBackendFixture{
		db:               db,
		databaseFileName: databaseFileName,
		backend:          NewSqlBackend(NewSQLite3Dictionary()),
	}
}

func TearDownSqlBackendFixture(fixture *SqlBackendFixture) {
	fixture.db.Close()
	os.Remove(fixture.databaseFileName)
}

func (f *SqlBackendFixture) inTransaction(t *testing.T, closure func(tx Tx) error) {
	tx, err := f.db.Begin()
	test.That(t, err).IsNil()

	err = closure(tx)
	test.That(t, err).IsNil()

	err = tx.Commit()
	test.That(t, err).IsNil()
}

func TestSqlBackendBootstrapsIdempotently(t *testing.T) {
	// Arrange.
	fixture := SetupSqlBackendFixture(t)
	defer TearDownSqlBackendFixture(fixture)

	// Act.
	fixture.inTransaction(t, fixture.backend.Bootstrap)
	fixture.inTransaction(t, fixture.backend.Bootstrap)

	// Assert.
	fixture.inTransaction(t, func(tx Tx) error {
		installed, err := fixture.backend.ListInstalled(tx)
		test.That(t, err).IsNil()
		test.That(t, len(installed)).IsEqualTo(1)
		test.That(t, installed[BootstrapMigrationId]).IsEqualTo(true)
		return nil
	})
}

func TestSqlBackendAppliesAMigrationAndRecordsIt(t *testing.T) {
	// Arrange.
	fixture := SetupSqlBackendFixture(t)
	defer TearDownSqlBackendFixture(fixture)

	fixture.inTransaction(t, fixture.backend.Bootstrap)

	migration := &Migration{
		Id:     "add-user-table",
		Apply:  "CREATE TABLE user (id INTEGER NOT NULL PRIMARY KEY, name TEXT NOT NULL);",
		Revert: "DROP TABLE user;",
	}

	// Act.
	fixture.inTransaction(t, func(tx Tx) error {
		return fixture.backend.ApplyMigration(tx, migration)
	})

	// Assert.
	var count int
	row := fixture.db.QueryRow("SELECT COUNT(*) FROM user")
	err := row.Scan(&count)
	test.That(t, err).IsNil()
	test.That(t, count).IsEqualTo(0)

	fixture.inTransaction(t, func(tx Tx) error {
		installed, err := fixture.backend.ListInstalled(tx)
		test.That(t, err).IsNil()
		test.That(t, installed["add-user-table"]).IsEqualTo(true)
		return nil
	})
}

func TestSqlBackendRevertsAMigrationAndForgetsIt(t *testing.T) {
	// Arrange.
	fixture := SetupSqlBackendFixture(t)
	defer TearDownSqlBackendFixture(fixture)

	fixture.inTransaction(t, fixture.backend.Bootstrap)

	migration := &Migration{
		Id:     "add-user-table",
		Apply:  "CREATE TABLE user (id INTEGER NOT NULL PRIMARY KEY, name TEXT NOT NULL);",
		Revert: "DROP TABLE user;",
	}

	fixture.inTransaction(t, func(tx Tx) error {
		return fixture.backend.ApplyMigration(tx, migration)
	})

	// Act.
	fixture.inTransaction(t, func(tx Tx) error {
		return fixture.backend.RevertMigration(tx, migration)
	})

	// Assert.
	fixture.inTransaction(t, func(tx Tx) error {
		installed, err := fixture.backend.ListInstalled(tx)
		test.That(t, err).IsNil()
		test.That(t, installed["add-user-table"]).IsEqualTo(false)
		return nil
	})
}

func TestSqlBackendRefusesToRevertAOneWayMigration(t *testing.T) {
	// Arrange.
	fixture := SetupSqlBackendFixture(t)
	defer TearDownSqlBackendFixture(fixture)

	fixture.inTransaction(t, fixture.backend.Bootstrap)

	migration := &Migration{Id: "one-way", Apply: "CREATE TABLE one_way (id INTEGER);"}

	// Act.
	tx, err := fixture.db.Begin()
	test.That(t, err).IsNil()
	defer tx.Rollback()

	err = fixture.backend.RevertMigration(tx, migration)

	// Assert.
	test.That(t, errors.Is(err, ErrMissingRevert)).IsEqualTo(true)
}

func TestSqlBackendSurfacesSqlFailuresAsSqlErrors(t *testing.T) {
	// Arrange.
	fixture := SetupSqlBackendFixture(t)
	defer TearDownSqlBackendFixture(fixture)

	fixture.inTransaction(t, fixture.backend.Bootstrap)

	migration := &Migration{Id: "broken", Apply: "THIS IS NOT SQL;"}

	// Act.
	tx, err := fixture.db.Begin()
	test.That(t, err).IsNil()
	defer tx.Rollback()

	err = fixture.backend.ApplyMigration(tx, migration)

	// Assert.
	var sqlErr *SqlError
	test.That(t, errors.As(err, &sqlErr)).IsEqualTo(true)
}
