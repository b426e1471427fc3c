// Package document provides the concrete index service backed by a SQLite
// store. It wires the store, the scanner, the search engine and their task
// bridges into the one service.Service implementation used by the CLI and
// the MCP server.
package document

import (
	"context"
	"database/sql"

	"github.com/jpl-au/docdex/internal/config"
	"github.com/jpl-au/docdex/internal/log"
	"github.com/jpl-au/docdex/internal/repo"
	"github.com/jpl-au/docdex/internal/scan"
	"github.com/jpl-au/docdex/internal/search"
	"github.com/jpl-au/docdex/internal/store"
	"github.com/jpl-au/docdex/internal/task"
)

// Service implements service.Service over a discovered SQLite index.
type Service struct {
	store  *store.SQLiteStore
	dbPath string

	scanner *scan.Scanner
	engine  *search.Engine

	scanBridge   *task.Bridge
	searchBridge *task.Bridge
}

// New creates a new Service, discovering the index by walking up the
// directory tree. Returns repo.ErrNotInitialised if no index is found.
func New() (*Service, error) {
	dbPath, err := repo.Discover()
	if err != nil {
		return nil, err
	}
	return Open(dbPath)
}

// Open creates a Service over a specific database file. Used by New after
// discovery and by tests that place the index themselves.
func Open(dbPath string) (*Service, error) {
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		s.Close()
		return nil, err // config.Load provides detailed, actionable error messages
	}

	scanner := scan.New(s)
	scanner.MaxDepth = cfg.MaxDepth()
	engine := search.New(s)
	engine.Limit = cfg.SearchLimit()

	return &Service{
		store:        s,
		dbPath:       dbPath,
		scanner:      scanner,
		engine:       engine,
		scanBridge:   task.NewBridge(),
		searchBridge: task.NewBridge(),
	}, nil
}

// Init initialises a new docdex index.
// If dir is empty, uses current directory; otherwise uses dir.
//
// Note: Init does not write config. Config is managed separately via
// "docdex config".
func Init(force bool, dir string) error {
	return repo.Init(force, dir)
}

// Close checkpoints the WAL and closes the database connection.
func (s *Service) Close() error {
	if err := s.store.Checkpoint(context.Background()); err != nil {
		log.Event("service:close", "checkpoint").
			Detail("error", err.Error()).
			Write(err)
	}
	return s.store.Close()
}

// ReloadConfig reloads configuration from disk and updates cached values.
// Call this after modifying config to ensure the service uses new settings.
func (s *Service) ReloadConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	s.scanner.MaxDepth = cfg.MaxDepth()
	s.engine.Limit = cfg.SearchLimit()
	return nil
}

// DB returns the underlying database connection for maintenance queries.
func (s *Service) DB() *sql.DB {
	return s.store.DB()
}

// DBPath returns the path to the database file.
func (s *Service) DBPath() string {
	return s.dbPath
}

// Checkpoint flushes the WAL to the main database file.
func (s *Service) Checkpoint(ctx context.Context) error {
	return s.store.Checkpoint(ctx)
}
