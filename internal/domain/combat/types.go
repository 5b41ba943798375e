package combat

import "time"

type EntityID string

type Role string

const (
	RoleTank   Role = "tank"
	RoleHealer Role = "healer"
	RoleDPS    Role = "dps"
	RoleNone   Role = ""
)

type StatusEffect struct {
	ID        string  `json:"id" yaml:"id"`
	Remaining float64 `json:"remaining" yaml:"remaining"`
}

type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// DistSq returns the squared distance to other. Callers compare against
// squared ranges so the root is never taken.
func (p Position) DistSq(other Position) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// EntitySnapshot is the read-only per-tick view of one participant. It is
// produced fresh each tick by the environment reader and never mutated.
type EntitySnapshot struct {
	ID                 EntityID       `json:"id" yaml:"id"`
	Name               string         `json:"name" yaml:"name"`
	HP                 int            `json:"hp" yaml:"hp"`
	MaxHP              int            `json:"max_hp" yaml:"max_hp"`
	Position           Position       `json:"position" yaml:"position"`
	Role               Role           `json:"role" yaml:"role"`
	Alive              bool           `json:"alive" yaml:"alive"`
	IsSelf             bool           `json:"is_self" yaml:"is_self"`
	IsEnemy            bool           `json:"is_enemy" yaml:"is_enemy"`
	HasAggro           bool           `json:"has_aggro" yaml:"has_aggro"`
	ShieldFraction     float64        `json:"shield_fraction" yaml:"shield_fraction"`
	MitigationFraction float64        `json:"mitigation_fraction" yaml:"mitigation_fraction"`
	Statuses           []StatusEffect `json:"statuses,omitempty" yaml:"statuses,omitempty"`
}

func (e EntitySnapshot) HPFraction() float64 {
	if e.MaxHP <= 0 {
		return 0
	}
	return float64(e.HP) / float64(e.MaxHP)
}

func (e EntitySnapshot) MissingHP() int {
	missing := e.MaxHP - e.HP
	if missing < 0 {
		return 0
	}
	return missing
}

func (e EntitySnapshot) HasStatus(id string) bool {
	for _, s := range e.Statuses {
		if s.ID == id && s.Remaining > 0 {
			return true
		}
	}
	return false
}

// TimingSample is the raw per-tick timing observation from the environment.
// Valid is false when the environment has no timing data (out of combat);
// the timing machine treats that as safe-to-act, never as an error.
type TimingSample struct {
	Elapsed       float64 `json:"elapsed" yaml:"elapsed"`
	IsCasting     bool    `json:"is_casting" yaml:"is_casting"`
	CycleTotal    float64 `json:"cycle_total" yaml:"cycle_total"`
	CycleElapsed  float64 `json:"cycle_elapsed" yaml:"cycle_elapsed"`
	LockRemaining float64 `json:"lock_remaining" yaml:"lock_remaining"`
	Valid         bool    `json:"valid" yaml:"valid"`
}

type Decision struct {
	Committed bool      `json:"committed" yaml:"committed"`
	Module    string    `json:"module,omitempty" yaml:"module,omitempty"`
	Action    ActionID  `json:"action,omitempty" yaml:"action,omitempty"`
	TargetID  EntityID  `json:"target_id,omitempty" yaml:"target_id,omitempty"`
	GroundPos *Position `json:"ground_pos,omitempty" yaml:"ground_pos,omitempty"`
	Reason    string    `json:"reason,omitempty" yaml:"reason,omitempty"`
}

const (
	ReasonNoModuleCommitted = "no_module_committed"
	ReasonGatewayRejected   = "gateway_rejected"
	ReasonNoEntities        = "no_entities"
)

type DecisionRecord struct {
	EncounterID string    `json:"encounter_id" yaml:"encounter_id"`
	Tick        int64     `json:"tick" yaml:"tick"`
	At          time.Time `json:"at" yaml:"at"`
	Phase       string    `json:"phase" yaml:"phase"`
	Decision    Decision  `json:"decision" yaml:"decision"`
}
