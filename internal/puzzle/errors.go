package puzzle

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the engine.
var (
	ErrInvalidPattern  = errors.New("puzzle: invalid pattern")
	ErrInvalidSnapshot = errors.New("puzzle: invalid board snapshot")
	ErrLevelNotFound   = errors.New("puzzle: level not found")
)

// Configuration error codes.
const (
	CodeBadSize        = "BAD_SIZE"
	CodeBadPattern     = "BAD_PATTERN"
	CodeUnknownPattern = "UNKNOWN_PATTERN"
	CodeInvalidStep    = "INVALID_STEP"
	CodeDuplicateID    = "DUPLICATE_ID"
	CodeEmptyCatalog   = "EMPTY_CATALOG"
)

// ConfigError reports corrupt static catalog data: a level that cannot be
// generated as authored. It is fatal at startup.
type ConfigError struct {
	Code    string
	Level   string // Level ID, empty for catalog-wide problems
	Message string
}

func (e *ConfigError) Error() string {
	if e.Level == "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] level %s: %s", e.Code, e.Level, e.Message)
}

// IsConfigError reports whether err is (or wraps) a *ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
