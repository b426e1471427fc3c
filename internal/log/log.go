// Package log provides centralised audit logging for docdex operations.
// Logs are stored in ~/.docdex/log/docdex-log.db and track all CLI commands
// and MCP tool invocations across indexes.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("show", "read").
//		Author(cmd.Author()).
//		Doc(id).
//		Write(err)
//
//	log.Event("search", "search").
//		Author(cmd.Author()).
//		Detail("query", query).
//		Detail("hits", len(res.Hits)).
//		Write(err)
//
// The source parameter is the CLI command name, or "mcp:{tool}" for MCP
// tools. Examples: "scan", "link", "mcp:docdex_search".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source string // e.g., "scan", "mcp:docdex_search"
	Author string // who performed the action
	Action string // verb: read, search, scan, link, note, etc.
	Path   string // filesystem path the operation targeted, if any
	DocID  int64  // document the operation targeted, if any

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated:
//   - CLI commands: the command name (e.g., "scan", "search", "fav")
//   - MCP tools: "mcp:{tool}" (e.g., "mcp:docdex_search")
//
// The action describes what operation was performed:
//   - "read", "search", "scan", "edit", "link", "note", "favorite", etc.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation.
//
// For CLI commands, use cmd.Author() which returns the configured author.
// For MCP tools, use "mcp" as the author.
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Path sets the filesystem path this operation affects. Use for scan roots
// and file-targeted operations; leave unset otherwise.
func (b *Builder) Path(path string) *Builder {
	b.entry.Path = path
	return b
}

// Doc sets the document id this operation targets.
func (b *Builder) Doc(id int64) *Builder {
	b.entry.DocID = id
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
//
// Use for operation-specific data that doesn't fit standard fields:
// search queries, hit counts, scan summaries, link endpoints.
// Can be called multiple times to add multiple details.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from err.
//
// If err is nil, the entry is logged as successful.
// If err is non-nil, the entry is logged as failed with the error message.
//
// This is the standard way to complete a log entry after an operation.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetIndex sets the index identifier for subsequent log entries.
// The dir should be the absolute path to the .docdex directory.
func SetIndex(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.index = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
