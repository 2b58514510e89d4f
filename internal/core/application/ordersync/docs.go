// Package ordersync keeps the shared order set consistent between operators.
//
// Engine owns the local snapshot of all orders. Every write goes to the store inside a
// unit of work and is followed by a full refresh; change notifications from the store
// trigger the same refresh, which is how operators see each other's work.
//
// Refreshes are numbered when they start. A result that arrives after a newer one has
// been applied is dropped, so a slow fetch never rolls the snapshot back.
package ordersync
