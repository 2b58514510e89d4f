package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation groups every locally rejected input. It is never returned bare.
	ErrValidation = errors.New("validation failed")

	// Sentinels matched by errors.Is. Each typed error below unwraps to one of them.
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrVersionIsInvalid  = errors.New("version is invalid")
	ErrRemoteOperation   = errors.New("remote operation failed")
	ErrExtractionFailed  = errors.New("extraction failed")
)

// ObjectNotFoundError reports a lookup by identifier that matched nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates a not found error for the given parameter and id.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause is NewObjectNotFoundError with the underlying cause attached.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

// Error renders the message, including the cause when set.
func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

// Unwrap returns ErrObjectNotFound, so errors.Is matches the sentinel. The cause is
// only part of the message.
func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a value that is present but breaks a rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates an invalid value error for the named parameter.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause is NewValueIsInvalidError with the underlying cause attached.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

// Error renders the message, including the cause when set.
func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

// Unwrap returns ErrValueIsInvalid.
func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// Is reports true for ErrValidation.
func (e *ValueIsInvalidError) Is(target error) bool {
	return target == ErrValidation
}

// ValueIsOutOfRangeError reports a value outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a range error for the named parameter.
//
// Parameters:
//   - paramName: the offending field
//   - value: what was given
//   - minValue, maxValue: the accepted bounds
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause is NewValueIsOutOfRangeError with the underlying
// cause attached.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

// Error renders the value with its bounds.
func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	return withCause(msg, e.Cause)
}

// Unwrap returns ErrValueIsOutOfRange.
func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// Is reports true for ErrValidation.
func (e *ValueIsOutOfRangeError) Is(target error) bool {
	return target == ErrValidation
}

// ValueIsRequiredError reports a missing or blank value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a required value error for the named parameter.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause is NewValueIsRequiredError with the underlying cause attached.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

// Error renders the message, including the cause when set.
func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

// Unwrap returns ErrValueIsRequired.
func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// Is reports true for ErrValidation.
func (e *ValueIsRequiredError) Is(target error) bool {
	return target == ErrValidation
}

// VersionIsInvalidError reports a compare-and-set write that lost against a newer version.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewVersionIsInvalidError creates a version conflict error for the named parameter.
func NewVersionIsInvalidError(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

// NewVersionIsInvalidErrorWithCause is NewVersionIsInvalidError with the underlying cause attached.
func NewVersionIsInvalidErrorWithCause(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

// Error renders the message, including the cause when set.
func (e *VersionIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName), e.Cause)
}

// Unwrap returns ErrVersionIsInvalid.
func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// RemoteOperationError wraps a failure of the remote entity store or of another
// outbound collaborator. Code carries the store's own error code when it has one.
type RemoteOperationError struct {
	Operation string
	Code      string
	Cause     error
}

// NewRemoteOperationError wraps a failed call to the store or another collaborator.
//
// Example:
//
// 	if err := db.WithContext(ctx).Save(&dto).Error; err != nil {
// 	    return errs.NewRemoteOperationError("save order", err)
// 	}
func NewRemoteOperationError(operation string, cause error) *RemoteOperationError {
	return &RemoteOperationError{Operation: operation, Cause: cause}
}

// NewRemoteOperationErrorWithCode also records the remote side's own error code.
func NewRemoteOperationErrorWithCode(operation, code string, cause error) *RemoteOperationError {
	return &RemoteOperationError{Operation: operation, Code: code, Cause: cause}
}

// Error renders the operation, the code when known and the cause.
func (e *RemoteOperationError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrRemoteOperation, e.Operation)
	if e.Code != "" {
		msg += fmt.Sprintf(" [%s]", e.Code)
	}
	return withCause(msg, e.Cause)
}

// Unwrap returns ErrRemoteOperation.
func (e *RemoteOperationError) Unwrap() error {
	return ErrRemoteOperation
}

// ExtractionFailedError reports that the extraction collaborator produced nothing usable.
type ExtractionFailedError struct {
	Reason string
	Cause  error
}

// NewExtractionFailedError creates an extraction error with the given reason.
func NewExtractionFailedError(reason string) *ExtractionFailedError {
	return &ExtractionFailedError{Reason: reason}
}

// NewExtractionFailedErrorWithCause is NewExtractionFailedError with the underlying cause attached.
func NewExtractionFailedErrorWithCause(reason string, cause error) *ExtractionFailedError {
	return &ExtractionFailedError{Reason: reason, Cause: cause}
}

// Error renders the message, including the cause when set.
func (e *ExtractionFailedError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrExtractionFailed, e.Reason), e.Cause)
}

// Unwrap returns ErrExtractionFailed.
func (e *ExtractionFailedError) Unwrap() error {
	return ErrExtractionFailed
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
