// internal/errors/errors.go
package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError is returned when a tenant-scoped record does not exist.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d not found", e.Resource, e.ID)
}

func NewProjectNotFound(id int64) error {
	return &NotFoundError{Resource: "project", ID: id}
}

func NewCompanyNotFound(id int64) error {
	return &NotFoundError{Resource: "company", ID: id}
}

func NewUserNotFound(id int64) error {
	return &NotFoundError{Resource: "user", ID: id}
}

type UnauthorizedError struct {
	Reason string
}

func (e *UnauthorizedError) Error() string {
	if e.Reason == "" {
		return "unauthorized"
	}
	return "unauthorized: " + e.Reason
}

func NewUnauthorized(reason string) error {
	return &UnauthorizedError{Reason: reason}
}

type ForbiddenError struct {
	Role string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("role %q required", e.Role)
}

func NewForbidden(role string) error {
	return &ForbiddenError{Role: role}
}

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflict(format string, args ...any) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// BadRequestError carries a message that is safe to show the client as is.
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string {
	return e.Message
}

func NewBadRequest(message string) error {
	return &BadRequestError{Message: message}
}

// ErrInvalidCredentials does not say which of the two was wrong.
var ErrInvalidCredentials = NewBadRequest("Invalid email or password")

// FieldError points at one violated constraint. Field is a dotted path with
// bracketed slice indexes, e.g. "monthly.schedules[0].day".
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every violated constraint of one input.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		field := f.Field
		if field == "" {
			field = "value"
		}
		parts = append(parts, field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Has reports whether a violation was recorded for field.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// OrNil returns nil when nothing was collected so callers can return it directly.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Merge appends the violations of err under prefix. Any error that is not a
// ValidationError is returned unchanged for the caller to handle.
func (e *ValidationError) Merge(prefix string, err error) error {
	if err == nil {
		return nil
	}
	var other *ValidationError
	if !errors.As(err, &other) {
		return err
	}
	for _, f := range other.Fields {
		field := prefix
		switch {
		case f.Field == "":
		case strings.HasPrefix(f.Field, "["):
			field += f.Field
		default:
			field += "." + f.Field
		}
		e.Add(field, f.Message)
	}
	return nil
}
