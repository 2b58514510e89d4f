// Package kernel holds the small value objects shared by the warehouse domain:
//   - UUID: identifiers of orders and packaging entries, wrapping github.com/google/uuid
//   - operator names: trimmed, whitespace-collapsed, upper-cased with Unicode-aware casing
//
// The zero UUID is invalid; it marks an identifier that was never assigned.
package kernel
