// Package sim is a scripted execution gateway for replay runs and tests:
// every issue succeeds unless the action is on the failure list, and all
// issued actions are kept for inspection.
package sim

import (
	"context"
	"sync"

	"wardmend/internal/domain/combat"
)

type Issued struct {
	Action combat.ActionID
	Target combat.EntityID
	Ground *combat.Position
}

type Gateway struct {
	mu     sync.Mutex
	fail   map[combat.ActionID]bool
	issued []Issued
}

func New() *Gateway {
	return &Gateway{fail: map[combat.ActionID]bool{}}
}

// FailAction makes every subsequent issue of the action report rejection.
func (g *Gateway) FailAction(id combat.ActionID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fail[id] = true
}

func (g *Gateway) Execute(_ context.Context, action combat.ActionID, target combat.EntityID) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.issued = append(g.issued, Issued{Action: action, Target: target})
	return !g.fail[action], nil
}

func (g *Gateway) ExecuteGround(_ context.Context, action combat.ActionID, pos combat.Position) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p := pos
	g.issued = append(g.issued, Issued{Action: action, Ground: &p})
	return !g.fail[action], nil
}

func (g *Gateway) IssuedActions() []Issued {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Issued, len(g.issued))
	copy(out, g.issued)
	return out
}
