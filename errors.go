package configstack

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the loading pipeline to signal well-known
// failure conditions. Callers should use [errors.Is] to match against these
// values.
var (
	// ErrFileNotFound is returned when a required configuration file does not
	// exist: the default layer, the base schema, or any path passed explicitly
	// to [Config.LoadConfig]. Missing optional layers are skipped silently and
	// never produce this error.
	ErrFileNotFound = errors.New("configuration file not found")

	// ErrMalformedConfig is returned when a configuration file exists but its
	// content is not valid JSON, or the top-level JSON value is not an object.
	ErrMalformedConfig = errors.New("malformed configuration file")

	// ErrMalformedSchema is returned when a schema file exists but its content
	// is not valid JSON, or the assembled schema cannot be compiled as a JSON
	// Schema document.
	ErrMalformedSchema = errors.New("malformed schema file")

	// ErrNotLoaded is returned by operations that need an effective
	// configuration (updates, saves) before any load has succeeded.
	ErrNotLoaded = errors.New("no configuration loaded")
)

// Internal conditions for save targets whose location is not configured.
var (
	errNoEnvironmentPath = errors.New("no environment config file path is set")
	errNoHomePath        = errors.New("home directory is not resolved")
	errNoWorkPath        = errors.New("working directory is not resolved")
)

// SchemaValidationError describes a single schema violation found while
// validating a merged configuration. Callers should use [errors.As] to
// extract it; when several violations are found they are combined with
// [errors.Join] in deterministic (path-sorted) order, and errors.As yields
// the first one.
type SchemaValidationError struct {
	// Path is the dotted key path of the offending value ("user.foo").
	// For a missing required key it names the key that is absent.
	Path string

	// Expected describes the expected type or constraint ("integer",
	// "required").
	Expected string

	// Actual describes what was found instead ("string", "missing").
	Actual string

	// Value is the offending value, nil when the key is missing.
	Value any

	// Reason carries the validator's own description for violations that are
	// neither type mismatches nor missing required keys.
	Reason string
}

// Error implements the error interface.
func (e *SchemaValidationError) Error() string {
	switch {
	case e.Expected != "" && e.Actual != "":
		return fmt.Sprintf("schema validation failed at %q: expected %s, got %s", e.Path, e.Expected, e.Actual)
	case e.Reason != "":
		return fmt.Sprintf("schema validation failed at %q: %s", e.Path, e.Reason)
	default:
		return fmt.Sprintf("schema validation failed at %q", e.Path)
	}
}

func newTypeError(path, expected, actual string, value any) *SchemaValidationError {
	return &SchemaValidationError{
		Path:     path,
		Expected: expected,
		Actual:   actual,
		Value:    value,
	}
}

func newRequiredError(path string) *SchemaValidationError {
	return &SchemaValidationError{
		Path:     path,
		Expected: "required key",
		Actual:   "missing",
	}
}
