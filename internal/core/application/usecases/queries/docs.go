// Package queries contains the read operations of the order desk.
// Most of them read the sync engine's snapshot, so they never wait on the store.
// GetStatusCountsQuery is the exception: it reads the orders table directly.
package queries
