package model

import (
	"fmt"
	"strings"
)

// Error codes for import failures.
const (
	ErrCodeNoHeader       = "NO_HEADER_ROW"
	ErrCodeMissingColumns = "MISSING_COLUMNS"
)

// DomainError carries a stable code alongside an operator-facing message.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNoHeader = NewDomainError(ErrCodeNoHeader, "CSV has no header row")
)

// MissingColumnsError reports the required CSV columns absent from the
// header, so the operator sees every missing name at once.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("CSV missing required columns: %s", strings.Join(e.Columns, ", "))
}
