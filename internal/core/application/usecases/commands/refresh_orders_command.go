package commands

import (
	"errors"

	"warehouse/internal/pkg/guard"
)

// ErrRefreshOrdersCommandIsNotConstructed is returned by Validate for a
// RefreshOrdersCommand built without its constructor.
var ErrRefreshOrdersCommandIsNotConstructed = errors.New(
	"RefreshOrdersCommand must be created via NewRefreshOrdersCommand constructor",
)

// RefreshOrdersCommand re-fetches the whole order set, e.g. from the resync job or
// when an operator asks for it.
type RefreshOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewRefreshOrdersCommand creates the command.
func NewRefreshOrdersCommand() RefreshOrdersCommand {
	return RefreshOrdersCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through its constructor.
func (c RefreshOrdersCommand) Validate() error {
	return c.guard.Validate(ErrRefreshOrdersCommandIsNotConstructed)
}
