// flags.go defines constants for all CLI flag names.
//
// Using constants instead of string literals prevents typos and enables
// compile-time checking when flag names are used in both Flags().Type()
// definitions and GetType() calls.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "revision-date" -> FlagRevisionDate).

package extension

// Flag name constants for CLI commands.
// These are used with cobra's Flags().Type() and GetType() methods.
const (
	// Boolean flags

	FlagList  = "list"  // List mode
	FlagLocal = "local" // Use local scope config

	// String flags

	FlagDescription      = "description"       // Link description
	FlagManufacturer     = "manufacturer"      // Manufacturer name
	FlagModel            = "model"             // Device model
	FlagType             = "type"              // Document type
	FlagKeywords         = "keywords"          // Comma-separated keywords
	FlagRevisionNumber   = "revision-number"   // Document revision number
	FlagRevisionDate     = "revision-date"     // Document revision date
	FlagStatus           = "status"            // Lifecycle status
	FlagApplicableModels = "applicable-models" // Other applicable device models
	FlagTestEquipment    = "test-equipment"    // Associated test equipment

	// Integer flags

	FlagLimit = "limit" // Limit number of results
	FlagPage  = "page"  // Page number (0-based)
)
