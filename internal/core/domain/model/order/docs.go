// Package order provides the Order aggregate of the warehouse fulfillment pipeline and
// the value objects it is composed of.
//
// The package includes:
//   - Order: the aggregate root, with per-field change tracking for partial writes
//   - Status: the PENDING -> COMPLETED -> DISPATCHED -> ARCHIVED state machine
//   - PackagingLedger: parcel entries and their total
//   - DispatchAssignment: the "who delivers this" tagged union and its string encoding
//   - Reviewers: the operators attributed to preparing an order
//   - OrderNumbers: comma-joined order identifiers that only grow by linking
//   - Draft: a validated order that the store has not assigned an identity to yet
//
// Key business rules:
//   - Status advances one step at a time and never leaves ARCHIVED
//   - ARCHIVED orders reject every mutation; they can only be deleted
//   - Packaging quantities are positive and entries are immutable once added
//   - Reviewer names are upper-cased, unique and kept in order of first addition
//   - Order number tokens are never removed
package order
