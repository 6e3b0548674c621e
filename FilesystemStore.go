package dbmigrations

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// MigrationFileExtension is the extension of every file in a store.  The
// filename stem is the migration id.
const MigrationFileExtension = ".yml"

var migrationIdPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// FilesystemStore is a Store backed by a directory containing one file per
// migration.
type FilesystemStore struct {
	path string
}

var _ Store = &FilesystemStore{}

// NewFilesystemStore creates a new FilesystemStore over the provided
// directory.  The directory is read-only to the store except for CreateNew.
func NewFilesystemStore(path string) *FilesystemStore {
	return &FilesystemStore{path: path}
}

// Resolve returns the path of the file that holds the migration with the
// provided id, whether or not it exists.
func (s *FilesystemStore) Resolve(id string) string {
	return filepath.Join(s.path, id+MigrationFileExtension)
}

// LoadAll parses every migration file in the store directory and returns the
// complete set.  Dependencies are checked after all files have parsed: every
// referenced id must exist in the set or be the bootstrap id.
func (s *FilesystemStore) LoadAll() (MigrationSet, error) {
	entries, err := os.ReadDir(s.path)
	if err != nil {
		return nil, fmt.Errorf("could not read migration store: %w", err)
	}

	set := make(MigrationSet)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != MigrationFileExtension {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), MigrationFileExtension)
		if id == BootstrapMigrationId {
			return nil, &DuplicateIdError{Id: id}
		}

		migration, err := s.loadOne(id)
		if err != nil {
			return nil, err
		}

		set[id] = migration
	}

	for id, migration := range set {
		for _, dep := range migration.Depends {
			if dep == BootstrapMigrationId {
				continue
			}

			if _, ok := set[dep]; !ok {
				return nil, &UnresolvedDependencyError{Id: id, Dependency: dep}
			}
		}
	}

	return set, nil
}

// CreateNew writes a template migration file for the provided id.  It fails
// if the id is syntactically invalid or a file already exists at the
// resolved path.
func (s *FilesystemStore) CreateNew(id string) error {
	if !migrationIdPattern.MatchString(id) || id == BootstrapMigrationId {
		return fmt.Errorf("%w: %q", ErrInvalidMigrationId, id)
	}

	f, err := os.OpenFile(s.Resolve(id), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, os.ErrExist) {
		return ErrMigrationExists
	}

	if err != nil {
		return err
	}

	defer f.Close()

	template := migrationFile{
		Description: "(please describe the migration)",
		Created:     createdTime{time.Now().UTC()},
	}

	encoder := yaml.NewEncoder(f)
	if err := encoder.Encode(&template); err != nil {
		return err
	}

	return encoder.Close()
}

func (s *FilesystemStore) loadOne(id string) (*Migration, error) {
	f, err := os.Open(s.Resolve(id))
	if err != nil {
		return nil, &ParseError{Id: id, Detail: err.Error()}
	}

	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)

	var file migrationFile
	if err := decoder.Decode(&file); err != nil {
		return nil, &ParseError{Id: id, Detail: err.Error()}
	}

	var trailing yaml.Node
	if err := decoder.Decode(&trailing); !errors.Is(err, io.EOF) {
		return nil, &ParseError{Id: id, Detail: "trailing content after migration fields"}
	}

	for _, dep := range file.Depends {
		if dep == id {
			return nil, &ParseError{Id: id, Detail: "migration depends on itself"}
		}
	}

	return &Migration{
		Id:          id,
		Description: file.Description,
		Created:     file.Created.Time,
		Depends:     file.Depends,
		Apply:       file.Apply,
		Revert:      file.Revert,
	}, nil
}

// migrationFile is the on-disk representation of a migration.  CreateNew
// writes the fields in this order; the strict decoder rejects unknown fields
// but accepts the known ones in any order.
type migrationFile struct {
	Description string      `yaml:"Description"`
	Created     createdTime `yaml:"Created"`
	Depends     dependsList `yaml:"Depends"`
	Apply       string      `yaml:"Apply"`
	Revert      string      `yaml:"Revert,omitempty"`
}

// createdTimeFormat is the layout written by CreateNew.  Older stores carry
// fractional seconds or RFC 3339 timestamps, so parsing tries those too.
const createdTimeFormat = "2006-01-02 15:04:05 MST"

type createdTime struct {
	time.Time
}

func (t createdTime) MarshalYAML() (interface{}, error) {
	return t.UTC().Format(createdTimeFormat), nil
}

func (t *createdTime) UnmarshalYAML(value *yaml.Node) error {
	str := strings.TrimSpace(value.Value)
	if str == "" {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range []string{createdTimeFormat, "2006-01-02 15:04:05.999999999 MST", time.RFC3339} {
		if parsed, err := time.Parse(layout, str); err == nil {
			t.Time = parsed
			return nil
		}
	}

	return &ParseError{Detail: "unrecognized Created timestamp: " + str}
}

// dependsList is a space-separated list of migration ids on disk.
type dependsList []string

func (d dependsList) MarshalYAML() (interface{}, error) {
	return strings.Join(d, " "), nil
}

func (d *dependsList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return &ParseError{Detail: "Depends must be a space-separated scalar"}
	}

	*d = strings.Fields(value.Value)
	return nil
}
