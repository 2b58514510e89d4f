// Package commands contains the operator actions that change orders.
// Each action is a command, validated by its constructor, and a handler that runs it
// through the order sync engine. Handlers never touch the store directly: every write
// goes through ports.OrderSync so that it is followed by a refresh.
package commands
