// Package all imports all core docdex extensions.
// Import this package to register all built-in commands.
package all

import (
	// Core extensions - each registers itself via init()
	_ "github.com/jpl-au/docdex/extension/annotate"
	_ "github.com/jpl-au/docdex/extension/core"
	_ "github.com/jpl-au/docdex/extension/index"
	_ "github.com/jpl-au/docdex/extension/search"
)
