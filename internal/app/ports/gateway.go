package ports

import (
	"context"

	"wardmend/internal/domain/combat"
)

// ExecutionGateway issues a selected action to the environment. A false
// result is a rejection (resource changed between check and execute, cast
// interrupted); the tick ends with no action and no retry. A non-nil error
// is treated the same way by the caller.
type ExecutionGateway interface {
	Execute(ctx context.Context, action combat.ActionID, target combat.EntityID) (bool, error)
	ExecuteGround(ctx context.Context, action combat.ActionID, pos combat.Position) (bool, error)
}

// ActionCatalogue resolves static per-action facts by stable identifier.
// Returns ErrUnknownAction for identifiers it does not carry.
type ActionCatalogue interface {
	Resolve(id combat.ActionID) (combat.ActionDef, error)
}
