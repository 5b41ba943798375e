package pipeline

import (
	"errors"
	"fmt"
	"sort"

	"wardmend/internal/domain/combat"
)

var (
	ErrDuplicatePriority = errors.New("duplicate module priority")
	ErrNoModules         = errors.New("pipeline has no modules")
)

// Standard priority bands, lower runs first. Each archetype pipeline uses
// one module per band; priorities must be unique within a pipeline.
const (
	PriorityRaise      = 10
	PriorityGauge      = 20
	PriorityEmergency  = 30
	PriorityBuff       = 40
	PriorityMitigation = 50
	PriorityFreeSpend  = 60
	PriorityAreaHeal   = 70
	PrioritySingleHeal = 80
	PriorityOffense    = 90
)

// Proposal is a module's committed action for this tick. HealTargets
// lists every entity credited with Def.Potency as a pending heal once the
// gateway confirms execution.
type Proposal struct {
	Action      combat.ActionID
	Def         combat.ActionDef
	TargetID    combat.EntityID
	Ground      *combat.Position
	HealTargets []combat.EntityID
}

// Module is one self-contained decision unit: a priority, a name, and a
// commit predicate. TryCommit must be free of side effects when it
// declines; a declined module leaves nothing behind for later modules to
// observe.
type Module struct {
	Priority  int
	Name      string
	TryCommit func(ctx *Context) (Proposal, bool)
}

// Pipeline is the immutable ascending-priority module table, assembled
// once at startup per archetype.
type Pipeline struct {
	modules []Module
}

// New validates and orders the module table. Duplicate priorities are a
// configuration error and abort assembly; they are never tolerated at
// tick time.
func New(modules ...Module) (*Pipeline, error) {
	if len(modules) == 0 {
		return nil, ErrNoModules
	}
	ordered := make([]Module, len(modules))
	copy(ordered, modules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Priority == ordered[i-1].Priority {
			return nil, fmt.Errorf("%w: %d (%s, %s)",
				ErrDuplicatePriority, ordered[i].Priority, ordered[i-1].Name, ordered[i].Name)
		}
	}
	return &Pipeline{modules: ordered}, nil
}

func (p *Pipeline) Modules() []Module {
	out := make([]Module, len(p.modules))
	copy(out, p.modules)
	return out
}

// Evaluate runs the modules top to bottom and stops at the first commit.
// At most one module acts per tick; a tick where every module declines
// returns ok=false, which is a valid outcome, not an error.
func (p *Pipeline) Evaluate(ctx *Context) (Proposal, string, bool) {
	for _, m := range p.modules {
		if prop, ok := m.TryCommit(ctx); ok {
			return prop, m.Name, true
		}
	}
	return Proposal{}, "", false
}
