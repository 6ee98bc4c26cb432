package errors

import (
	"fmt"
	"sort"
	"strings"
)

// ErrorType classifies application errors for logging and HTTP mapping.
type ErrorType string

const (
	ErrTypeNotFound   ErrorType = "NOT_FOUND"
	ErrTypeSchema     ErrorType = "SCHEMA"
	ErrTypeParsing    ErrorType = "PARSING"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeFilter     ErrorType = "FILTER"
	ErrTypeCompute    ErrorType = "COMPUTE"
	ErrTypeReport     ErrorType = "REPORT"
	ErrTypeConfig     ErrorType = "CONFIG"
)

// AppError represents an application-specific error with a type, an optional
// cause and free-form context.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NotFoundError reports that one or more required input files are missing.
// It is fatal to the load operation and always names the missing files.
type NotFoundError struct {
	Files []string
}

func (e *NotFoundError) Error() string {
	files := append([]string(nil), e.Files...)
	sort.Strings(files)
	return fmt.Sprintf("[%s] required input file(s) not found: %s",
		ErrTypeNotFound, strings.Join(files, ", "))
}

// NewNotFoundError creates a missing-input-files error.
func NewNotFoundError(files ...string) *NotFoundError {
	return &NotFoundError{Files: files}
}

// SchemaError reports that a loaded table is missing required columns.
type SchemaError struct {
	Table   string
	Missing []string
}

func (e *SchemaError) Error() string {
	missing := append([]string(nil), e.Missing...)
	sort.Strings(missing)
	return fmt.Sprintf("[%s] table %q is missing required column(s): %s",
		ErrTypeSchema, e.Table, strings.Join(missing, ", "))
}

// NewSchemaError creates a missing-columns error for the named table.
func NewSchemaError(table string, missing []string) *SchemaError {
	return &SchemaError{Table: table, Missing: missing}
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewReportError wraps a report serialization failure. Unlike filter and KPI
// errors, report errors always propagate to the caller.
func NewReportError(stage string, cause error) *AppError {
	return NewAppError(ErrTypeReport, fmt.Sprintf("report generation failed during %s", stage), cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
