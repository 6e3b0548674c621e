package dbmigrations

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMigrationNotFound  = errors.New("migration not found")
	ErrMigrationExists    = errors.New("migration already exists")
	ErrInvalidMigrationId = errors.New("invalid migration id")
	ErrMissingRevert      = errors.New("migration has no revert")
	ErrRevertBootstrap    = errors.New("the bootstrap migration cannot be reverted")
)

// ParseError reports a migration file that could not be read or decoded.
type ParseError struct {
	Id     string
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse migration %q: %v", e.Id, e.Detail)
}

// DuplicateIdError reports two migrations claiming the same id.
type DuplicateIdError struct {
	Id string
}

func (e *DuplicateIdError) Error() string {
	return fmt.Sprintf("duplicate migration id %q", e.Id)
}

// UnresolvedDependencyError reports a migration depending on an id that does
// not exist in the loaded set.
type UnresolvedDependencyError struct {
	Id         string
	Dependency string
}

func (e *UnresolvedDependencyError) Error() string {
	return fmt.Sprintf("migration %q depends on %q, which does not exist", e.Id, e.Dependency)
}

// CycleError reports a dependency cycle.  Path is the offending cycle as an
// ordered id list beginning and ending at the same id.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle: %v", strings.Join(e.Path, " -> "))
}

// SqlError wraps any failure surfaced by a backend.  The original driver
// error remains reachable through Unwrap.
type SqlError struct {
	Message string
	Err     error
}

func (e *SqlError) Error() string {
	return e.Message
}

func (e *SqlError) Unwrap() error {
	return e.Err
}

func wrapSqlError(err error) error {
	if err == nil {
		return nil
	}

	var sqlErr *SqlError
	if errors.As(err, &sqlErr) {
		return err
	}

	return &SqlError{Message: err.Error(), Err: err}
}
