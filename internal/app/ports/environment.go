package ports

import (
	"context"

	"wardmend/internal/domain/combat"
)

// TickInput is everything the engine consumes for one tick: a fresh
// snapshot of every visible participant plus the raw timing observation.
type TickInput struct {
	Entities []combat.EntitySnapshot
	Sample   combat.TimingSample
}

// EnvironmentReader produces one TickInput per call. Implementations may
// poll a live client, replay a recorded log, or serve a test fixture; the
// engine makes no assumption which. ErrNoMoreTicks signals the end of a
// finite input such as a replay file.
type EnvironmentReader interface {
	ReadTick(ctx context.Context) (TickInput, error)
}
