// Package errs provides the typed errors shared by the warehouse core and its adapters.
//
// Every error type follows the same shape:
//   - a sentinel error variable (e.g., ErrValueIsRequired)
//   - a struct type carrying the details (parameter name, offending value, cause)
//   - constructors with and without a cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// The value errors (required, invalid, out of range) also match ErrValidation, so
// callers can tell a locally rejected input apart from a failed remote call
// (ErrRemoteOperation) or a rejected extraction (ErrExtractionFailed):
//
//	if errors.Is(err, errs.ErrValidation) {
//	    // surface to the operator, nothing was sent to the store
//	}
package errs
