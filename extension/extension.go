// Package extension provides the plugin architecture for docdex. Extensions
// encapsulate related commands and register at init time, enabling modular
// feature development without touching core code.
package extension

import (
	"github.com/spf13/cobra"
)

// Extension defines the contract for docdex extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command
}

// Initializable extensions can perform setup once the shared service exists.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Storeless is an optional interface for extensions with commands that
// don't require an index. Commands returned by NoStoreCommands() will
// not trigger index initialisation in PersistentPreRunE.
//
// Use cases:
// 1. Bootstrap commands (like init) that run before an index exists
// 2. Commands that manage their own service lifecycle (like serve)
// 3. Utility commands that don't touch the index at all
type Storeless interface {
	NoStoreCommands() []string
}
