// Package domainerr holds the structured validation and persistence errors
// shared by the exam-fee and employee features.
package domainerr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind identifies a class of rejection. Kinds are stable strings so the
// frontend can branch on them.
type Kind string

const (
	MissingRequiredField        Kind = "MissingRequiredField"
	InvalidFieldValue           Kind = "InvalidFieldValue"
	InsufficientStudents        Kind = "InsufficientStudents"
	NegativeRate                Kind = "NegativeRate"
	DistributionPercentMismatch Kind = "DistributionPercentMismatch"
	ExpenseExceedsIncome        Kind = "ExpenseExceedsIncome"
	TotalExpenseExceedsIncome   Kind = "TotalExpenseExceedsIncome"
	DuplicateUniqueField        Kind = "DuplicateUniqueField"
	InvalidCategory             Kind = "InvalidCategory"
	NotFound                    Kind = "NotFound"
)

// Error is a rejection with a kind, the offending field (may be empty)
// and a human-readable message.
type Error struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Field)
}

// New builds a domain error.
func New(kind Kind, field, message string) error {
	return &Error{Kind: kind, Field: field, Message: message}
}

// Newf is New with a formatted message.
func Newf(kind Kind, field, format string, args ...any) error {
	return &Error{Kind: kind, Field: field, Message: fmt.Sprintf(format, args...)}
}

// As unwraps err into a domain error.
func As(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// KindOf returns the kind of err, or "" when err is not a domain error.
func KindOf(err error) Kind {
	if de, ok := As(err); ok {
		return de.Kind
	}
	return ""
}

// Is reports whether err is a domain error of the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps a kind to the status code the API answers with.
func HTTPStatus(kind Kind) int {
	switch kind {
	case NotFound:
		return fiber.StatusNotFound
	case DuplicateUniqueField:
		return fiber.StatusConflict
	case "":
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusBadRequest
	}
}
