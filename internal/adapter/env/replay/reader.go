// Package replay feeds the engine from a recorded encounter fixture
// instead of a live client. One YAML document holds the ordered tick
// inputs; reads past the end return ports.ErrNoMoreTicks.
package replay

import (
	"context"
	"fmt"
	"os"

	"wardmend/internal/app/ports"
	"wardmend/internal/domain/combat"

	"gopkg.in/yaml.v3"
)

type tickSpec struct {
	Elapsed       float64                 `yaml:"elapsed"`
	IsCasting     bool                    `yaml:"is_casting"`
	CycleTotal    float64                 `yaml:"cycle_total"`
	CycleElapsed  float64                 `yaml:"cycle_elapsed"`
	LockRemaining float64                 `yaml:"lock_remaining"`
	NoTiming      bool                    `yaml:"no_timing"`
	Entities      []combat.EntitySnapshot `yaml:"entities"`
}

type fileSpec struct {
	Name  string     `yaml:"name"`
	Ticks []tickSpec `yaml:"ticks"`
}

type Reader struct {
	name  string
	ticks []tickSpec
	next  int
}

func Open(path string) (*Reader, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read replay fixture: %w", err)
	}
	var spec fileSpec
	if err := yaml.Unmarshal(b, &spec); err != nil {
		return nil, fmt.Errorf("parse replay fixture: %w", err)
	}
	return &Reader{name: spec.Name, ticks: spec.Ticks}, nil
}

func FromTicks(inputs []ports.TickInput) *Reader {
	ticks := make([]tickSpec, 0, len(inputs))
	for _, in := range inputs {
		ticks = append(ticks, tickSpec{
			Elapsed:       in.Sample.Elapsed,
			IsCasting:     in.Sample.IsCasting,
			CycleTotal:    in.Sample.CycleTotal,
			CycleElapsed:  in.Sample.CycleElapsed,
			LockRemaining: in.Sample.LockRemaining,
			NoTiming:      !in.Sample.Valid,
			Entities:      in.Entities,
		})
	}
	return &Reader{ticks: ticks}
}

func (r *Reader) Name() string { return r.name }

func (r *Reader) Remaining() int { return len(r.ticks) - r.next }

func (r *Reader) ReadTick(_ context.Context) (ports.TickInput, error) {
	if r.next >= len(r.ticks) {
		return ports.TickInput{}, ports.ErrNoMoreTicks
	}
	t := r.ticks[r.next]
	r.next++
	return ports.TickInput{
		Entities: t.Entities,
		Sample: combat.TimingSample{
			Elapsed:       t.Elapsed,
			IsCasting:     t.IsCasting,
			CycleTotal:    t.CycleTotal,
			CycleElapsed:  t.CycleElapsed,
			LockRemaining: t.LockRemaining,
			Valid:         !t.NoTiming,
		},
	}, nil
}
