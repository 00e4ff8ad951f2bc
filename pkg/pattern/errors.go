package pattern

import (
	"errors"
	"fmt"
)

// ErrDuplicateName is returned when a name is added to a catalog group that
// already holds an entry with that name.
var ErrDuplicateName = errors.New("duplicate name")

// ConfigError reports a malformed catalog entry. It is fatal at load time:
// a catalog that fails validation must not be used for segmentation.
type ConfigError struct {
	// Path is the slash-separated location of the offending entry within
	// the catalog tree, e.g. "TypeKnownBlocks/BlockOrcaTotalRunTime".
	Path string

	// Reason describes what is wrong with the entry.
	Reason string

	// Err is the underlying cause, if any (e.g. a regexp compile error).
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog entry %q: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("catalog entry %q: %s", e.Path, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configErrorf(path string, err error, format string, args ...any) *ConfigError {
	return &ConfigError{Path: path, Reason: fmt.Sprintf(format, args...), Err: err}
}
