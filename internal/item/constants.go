package item

// ==================== Configuration File Names ====================

// Item configuration file names
const (
	// ConfigFileName is the name of the catalog file
	ConfigFileName = "items.json"
)

// ==================== Error Messages ====================

// File operation error messages
const (
	ErrMsgReadConfigFileFailed = "failed to read items config file: %w"
	ErrMsgParseConfigFailed    = "failed to parse items config: %w"
)

// Validation error messages (fragments used with error wrapping)
const (
	ErrMsgNoItemsDefined = "no items defined"
)

// ==================== Format Strings for Error Construction ====================

// These format strings are used with fmt.Errorf for detailed error messages
const (
	ErrFmtItemAtIndexEmpty  = "%w: item at index %d has empty id"
	ErrFmtItemBadCategory   = "%w: item '%s' has unknown category %q"
	ErrFmtItemBadRarity     = "%w: item '%s' has unknown rarity %q"
	ErrFmtItemNegativePrice = "%w: item '%s' has negative price"
	ErrFmtItemUnknownClass  = "%w: item '%s' lists unknown class %q"
)
