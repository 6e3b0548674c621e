package dbmigrations

import (
	"github.com/ljpx/logging"
)

// Coordinator orchestrates the store, the dependency graph and the backend
// to carry out the user-facing operations.  It owns the transaction
// boundaries: the ledger bootstrap commits eagerly so a later failure cannot
// lose it, every other operation's SQL runs under a single transaction, and
// Test always finishes with a rollback.  It is not thread safe.
type Coordinator struct {
	store   Store
	db      Database
	backend Backend
	logger  logging.Logger
}

// NewCoordinator creates a new Coordinator over the provided store, database
// and backend.  Progress is reported through logger.
func NewCoordinator(store Store, db Database, backend Backend, logger logging.Logger) *Coordinator {
	return &Coordinator{
		store:   store,
		db:      db,
		backend: backend,
		logger:  logger,
	}
}

// Upgrade applies every migration in the store that is not yet installed.
func (c *Coordinator) Upgrade() error {
	set, graph, err := c.prepare()
	if err != nil {
		return err
	}

	return runUnderTransaction(c.db, func(tx Tx) error {
		installed, err := c.backend.ListInstalled(tx)
		if err != nil {
			return err
		}

		required := pending(graph.Order(), installed)
		if len(required) == 0 {
			c.logger.Printf("Database is up to date.\n")
			return nil
		}

		return c.applyAll(tx, set, required)
	})
}

// Apply installs the named migration along with any of its dependencies that
// are missing.
func (c *Coordinator) Apply(id string) error {
	set, graph, err := c.prepare()
	if err != nil {
		return err
	}

	ancestors, err := graph.Ancestors(id)
	if err != nil {
		return err
	}

	return runUnderTransaction(c.db, func(tx Tx) error {
		installed, err := c.backend.ListInstalled(tx)
		if err != nil {
			return err
		}

		plan := pending(append(ancestors, id), installed)
		if len(plan) == 0 {
			c.logger.Printf("Migration already installed.\n")
			return nil
		}

		return c.applyAll(tx, set, plan)
	})
}

// Revert uninstalls the named migration along with every installed migration
// that transitively depends on it, most-dependent first.
func (c *Coordinator) Revert(id string) error {
	if id == BootstrapMigrationId {
		return ErrRevertBootstrap
	}

	set, graph, err := c.prepare()
	if err != nil {
		return err
	}

	descendants, err := graph.Descendants(id)
	if err != nil {
		return err
	}

	return runUnderTransaction(c.db, func(tx Tx) error {
		installed, err := c.backend.ListInstalled(tx)
		if err != nil {
			return err
		}

		var plan []string
		for _, node := range append(descendants, id) {
			if installed[node] {
				plan = append(plan, node)
			}
		}

		if len(plan) == 0 {
			c.logger.Printf("Migration not installed.\n")
			return nil
		}

		return c.revertAll(tx, set, plan)
	})
}

// Test applies the named migration and its missing dependencies, reverts the
// exact list it applied in reverse, and rolls the transaction back, leaving
// the database exactly as it began.
func (c *Coordinator) Test(id string) error {
	set, graph, err := c.prepare()
	if err != nil {
		return err
	}

	ancestors, err := graph.Ancestors(id)
	if err != nil {
		return err
	}

	return runAndRollback(c.db, func(tx Tx) error {
		installed, err := c.backend.ListInstalled(tx)
		if err != nil {
			return err
		}

		applied := pending(append(ancestors, id), installed)
		if err := c.applyAll(tx, set, applied); err != nil {
			return err
		}

		reverted := make([]string, 0, len(applied))
		for i := len(applied) - 1; i >= 0; i-- {
			reverted = append(reverted, applied[i])
		}

		if err := c.revertAll(tx, set, reverted); err != nil {
			return err
		}

		c.logger.Printf("Successfully tested migrations.\n")
		return nil
	})
}

// ListPending reports the ids an Upgrade would apply, in order, without
// applying anything.
func (c *Coordinator) ListPending() error {
	_, graph, err := c.prepare()
	if err != nil {
		return err
	}

	return runAndRollback(c.db, func(tx Tx) error {
		installed, err := c.backend.ListInstalled(tx)
		if err != nil {
			return err
		}

		required := pending(graph.Order(), installed)
		if len(required) == 0 {
			c.logger.Printf("Database is up to date.\n")
			return nil
		}

		for _, id := range required {
			c.logger.Printf("%v\n", id)
		}

		return nil
	})
}

// New creates a template migration file for the provided id in the store.
// It never touches the database.
func (c *Coordinator) New(id string) error {
	if err := c.store.CreateNew(id); err != nil {
		return err
	}

	c.logger.Printf("Created new migration %v.\n", c.store.Resolve(id))
	return nil
}

// prepare is the preamble shared by every database-touching operation: load
// the migration set, add the bootstrap migration, build the graph, and
// bootstrap the ledger under an eagerly committed transaction.
func (c *Coordinator) prepare() (MigrationSet, *DependencyGraph, error) {
	loaded, err := c.store.LoadAll()
	if err != nil {
		return nil, nil, err
	}

	set := loaded.WithBootstrap()
	graph, err := NewDependencyGraph(set)
	if err != nil {
		return nil, nil, err
	}

	err = runUnderTransaction(c.db, func(tx Tx) error {
		return c.backend.Bootstrap(tx)
	})
	if err != nil {
		return nil, nil, err
	}

	return set, graph, nil
}

func (c *Coordinator) applyAll(tx Tx, set MigrationSet, plan []string) error {
	for _, id := range plan {
		if err := c.backend.ApplyMigration(tx, set[id]); err != nil {
			return err
		}

		c.logger.Printf("Applying: %v... done.\n", id)
	}

	return nil
}

func (c *Coordinator) revertAll(tx Tx, set MigrationSet, plan []string) error {
	for _, id := range plan {
		if err := c.backend.RevertMigration(tx, set[id]); err != nil {
			return err
		}

		c.logger.Printf("Reverting: %v... done.\n", id)
	}

	return nil
}

func pending(ids []string, installed map[string]bool) []string {
	var out []string
	for _, id := range ids {
		if !installed[id] {
			out = append(out, id)
		}
	}

	return out
}
