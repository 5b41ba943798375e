package combat

type ActionID string

// ActionClass separates actions bound by the shared cycle cooldown from
// short-lock actions that can be interleaved between them.
type ActionClass string

const (
	ActionClassPrimary   ActionClass = "primary"
	ActionClassSecondary ActionClass = "secondary"
)

// ActionDef is static reference data resolved from the action catalogue.
// Potency is expressed directly in HP units.
type ActionDef struct {
	ID       ActionID    `json:"id" yaml:"id"`
	Name     string      `json:"name" yaml:"name"`
	Class    ActionClass `json:"class" yaml:"class"`
	Ground   bool        `json:"ground" yaml:"ground"`
	Potency  int         `json:"potency" yaml:"potency"`
	ManaCost int         `json:"mana_cost" yaml:"mana_cost"`
	Recast   float64     `json:"recast" yaml:"recast"`
	Charges  int         `json:"charges" yaml:"charges"`
	Lock     float64     `json:"lock" yaml:"lock"`
	CastTime float64     `json:"cast_time" yaml:"cast_time"`
	Range    float64     `json:"range" yaml:"range"`
	Radius   float64     `json:"radius" yaml:"radius"`
	MinLevel int         `json:"min_level" yaml:"min_level"`
}

func (d ActionDef) IsSecondary() bool {
	return d.Class == ActionClassSecondary
}

func (d ActionDef) MaxCharges() int {
	if d.Charges < 1 {
		return 1
	}
	return d.Charges
}
