package appErrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies an error class on the wire.
type ErrorCode string

// AppError is the application error carried from services to handlers.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap keeps the causing error on the chain.
func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// MarshalJSON hides the wrapped error and HTTP code from clients.
func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

// Is wraps the standard errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As wraps the standard errors.As for *AppError targets.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Constructors for the common cases.

func InvalidRequest(message string) *AppError {
	return New(CodeInvalidRequest, message, http.StatusBadRequest)
}

func ValidationFailed(details interface{}) *AppError {
	return New(CodeValidationFailed, "Request validation failed", http.StatusBadRequest).WithDetails(details)
}

func NoObservations() *AppError {
	return New(CodeNoObservations, "No valid test values provided", http.StatusUnprocessableEntity)
}

func CatalogUnavailable(err error) *AppError {
	return Wrap(err, CodeCatalogUnavailable, "Strain catalog query failed", http.StatusInternalServerError)
}

func StrainNotFound(strainID int) *AppError {
	return New(CodeStrainNotFound, fmt.Sprintf("Strain %d not found", strainID), http.StatusNotFound)
}

func TestNotFound(testID int) *AppError {
	return New(CodeTestNotFound, fmt.Sprintf("Test %d not found", testID), http.StatusNotFound)
}

func StrainIdentifierInUse(identifier string) *AppError {
	return New(CodeStrainIdentifierInUse, fmt.Sprintf("Strain identifier %q already exists", identifier), http.StatusConflict)
}

func DatabaseError(err error) *AppError {
	return Wrap(err, CodeDatabaseError, "Database operation failed", http.StatusInternalServerError)
}

func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}
