// Package services provides domain services that derive or resolve values across
// orders without belonging to the Order aggregate itself.
//
// The package includes:
//   - DispatchResolver: roster-aware encoding and decoding of dispatch assignments
//   - SearchFilter: lifecycle views and free-text search over an order set
//   - NotificationComposer: the status message handed to the outbound notifier
//
// All services are pure: they never mutate the orders they are given.
package services
