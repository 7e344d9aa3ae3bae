package models

import "fmt"

// ValidationCode identifies why a proposal input was rejected
type ValidationCode string

const (
	CodeInvalidAddress          ValidationCode = "invalid_address"
	CodeMissingUpload           ValidationCode = "missing_upload"
	CodeInsufficientBalance     ValidationCode = "insufficient_balance"
	CodeInvalidCode             ValidationCode = "invalid_code"
	CodeDuplicateRepresentative ValidationCode = "duplicate_representative"
	CodeDuplicateCommunity      ValidationCode = "duplicate_community"
	CodeNotARepresentative      ValidationCode = "not_a_representative"
	CodeCommunityMismatch       ValidationCode = "community_mismatch"
	CodeOutOfRange              ValidationCode = "out_of_range"
)

// ValidationError is returned when a proposal input is rejected before submission
type ValidationError struct {
	Code    ValidationCode
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is matches validation errors by code, so sentinels work with errors.Is
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Sentinel validation errors
var (
	ErrInvalidAddress          = &ValidationError{Code: CodeInvalidAddress, Message: "invalid address"}
	ErrMissingUpload           = &ValidationError{Code: CodeMissingUpload, Message: "the file has not been uploaded to ipfs"}
	ErrInsufficientBalance     = &ValidationError{Code: CodeInsufficientBalance, Message: "insufficient contract balance"}
	ErrInvalidCode             = &ValidationError{Code: CodeInvalidCode, Message: "invalid michelson code"}
	ErrDuplicateRepresentative = &ValidationError{Code: CodeDuplicateRepresentative, Message: "address is already a representative"}
	ErrDuplicateCommunity      = &ValidationError{Code: CodeDuplicateCommunity, Message: "community already exists"}
	ErrNotARepresentative      = &ValidationError{Code: CodeNotARepresentative, Message: "address is not a representative"}
	ErrCommunityMismatch       = &ValidationError{Code: CodeCommunityMismatch, Message: "community does not match"}
	ErrOutOfRange              = &ValidationError{Code: CodeOutOfRange, Message: "value out of range"}
)

// NewValidationError builds a validation error with a formatted message
func NewValidationError(code ValidationCode, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}
