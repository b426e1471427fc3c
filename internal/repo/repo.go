// Package repo provides index initialisation and discovery for docdex.
//
// A docdex index is a .docdex directory containing the SQLite database. This
// package handles:
//   - Initialising new indexes (creating .docdex/ and the database)
//   - Discovering existing indexes by walking up the directory tree
//
// The discovery algorithm mirrors git's approach: starting from the current
// directory, walk up until a .docdex directory containing the database is
// found, or the filesystem root is reached. This lets a team keep one index
// at the top of a shared documentation drive and run docdex from anywhere
// below it.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jpl-au/docdex/internal/store"
)

const (
	// Dir is the directory name for the docdex index.
	Dir = ".docdex"
	// DBFile is the database filename.
	DBFile = "docdex.db"
)

// ErrNotInitialised is returned when no docdex index is found.
var ErrNotInitialised = errors.New("docdex not initialised (run 'docdex init')")

// Init initialises a new docdex index in dir (current directory when empty).
// The index database is derived state rebuilt by scanning, so the created
// .gitignore excludes it entirely: only configuration is worth committing.
func Init(force bool, dir string) error {
	if dir == "" {
		dir = "."
	}
	dexDir := filepath.Join(dir, Dir)
	dbPath := filepath.Join(dexDir, DBFile)

	if _, err := os.Stat(dbPath); err == nil {
		if !force {
			return fmt.Errorf("index %s already exists (use --force to reinitialise)", DBFile)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("remove index: %w", err)
		}
	}

	if err := os.MkdirAll(dexDir, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	if err := s.Init(); err != nil {
		return fmt.Errorf("init store: %w", err)
	}

	// Only create on first init so custom entries survive reinitialisation.
	gitignore := filepath.Join(dexDir, ".gitignore")
	if _, err := os.Stat(gitignore); os.IsNotExist(err) {
		g := `# docdex - the index is derived from the filesystem, rebuild with 'docdex scan'
*.db
*.db-wal
*.db-shm
`
		if err := os.WriteFile(gitignore, []byte(g), 0644); err != nil {
			return fmt.Errorf("write gitignore: %w", err)
		}
	}

	return nil
}

// Discover walks up the directory tree looking for a .docdex database.
// Returns the full path to the database if found.
func Discover() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		dbPath := filepath.Join(dir, Dir, DBFile)
		if _, err := os.Stat(dbPath); err == nil {
			return dbPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

// DiscoverDir finds the .docdex directory, walking up the tree.
// Returns the full path to the .docdex directory.
func DiscoverDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		dexDir := filepath.Join(dir, Dir)
		if info, err := os.Stat(dexDir); err == nil && info.IsDir() {
			return dexDir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}
