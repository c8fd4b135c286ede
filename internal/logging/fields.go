package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError = "error"
	FieldPath  = "path"
	FieldDir   = "dir"
	FieldFile  = "file"

	// Review fields.
	FieldAddon    = "addon"
	FieldVersion  = "version"
	FieldBase     = "base"
	FieldHead     = "head"
	FieldRoute    = "route"
	FieldEncoding = "encoding"
	FieldLanguage = "language"

	// Linter fields.
	FieldMessages = "messages"
	FieldSeverity = "severity"

	// Overview fields.
	FieldHeight = "height"
	FieldRows   = "rows"

	// Build fields.
	FieldCommit = "commit"
	FieldBuilt  = "built"
)
