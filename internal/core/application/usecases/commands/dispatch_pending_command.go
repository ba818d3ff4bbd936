package commands

import (
	"errors"

	"pharmadelivery/internal/pkg/guard"
)

var ErrDispatchPendingCommandIsNotConstructed = errors.New(
	"DispatchPendingCommand must be created via NewDispatchPendingCommand constructor",
)

// DispatchPendingCommand represents a request to assign partners to all
// deliveries currently awaiting one. Carries no parameters; the handler works
// off the pending backlog.
type DispatchPendingCommand struct {
	guard guard.ConstructorGuard
}

// NewDispatchPendingCommand creates a command to dispatch pending deliveries.
func NewDispatchPendingCommand() DispatchPendingCommand {
	return DispatchPendingCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c DispatchPendingCommand) Validate() error {
	return c.guard.Validate(ErrDispatchPendingCommandIsNotConstructed)
}
