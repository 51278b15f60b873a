package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Relay outcomes. The messages are shown to the user as-is.
var (
	ErrMissingCredentials = errors.New("API token and database ID are required")
	ErrMissingConfig      = errors.New("sync configuration not found")
	ErrNotFound           = errors.New("database not found, please check the database ID")
	ErrUnauthorized       = errors.New("invalid API token or database not shared with the integration")
	ErrSchemaMismatch     = errors.New("database is missing required properties")
	ErrConnectionFailed   = errors.New("failed to connect to the workspace, please check your credentials")
	ErrPushFailed         = errors.New("failed to add entry to the workspace")
	ErrPullFailed         = errors.New("failed to pull entries from the workspace")
	ErrInvalidEntry       = errors.New("invalid time entry")
)

// SchemaMismatchError lists the mandatory fields absent from a collection schema.
type SchemaMismatchError struct {
	Missing []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%s: %s", ErrSchemaMismatch.Error(), strings.Join(e.Missing, ", "))
}

// Is makes errors.Is(err, ErrSchemaMismatch) hold.
func (e *SchemaMismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch
}
