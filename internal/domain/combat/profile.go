package combat

// TriageWeights scale the normalized factors of the most-endangered score.
type TriageWeights struct {
	DamageRate    float64 `json:"damage_rate" yaml:"damage_rate"`
	TankBonus     float64 `json:"tank_bonus" yaml:"tank_bonus"`
	MissingHealth float64 `json:"missing_health" yaml:"missing_health"`
	Acceleration  float64 `json:"acceleration" yaml:"acceleration"`
	TimeToDeath   float64 `json:"time_to_death" yaml:"time_to_death"`
	CoHealer      float64 `json:"co_healer" yaml:"co_healer"`
	Shield        float64 `json:"shield" yaml:"shield"`
	Mitigation    float64 `json:"mitigation" yaml:"mitigation"`
}

func DefaultTriageWeights() TriageWeights {
	return TriageWeights{
		DamageRate:    1.0,
		TankBonus:     0.6,
		MissingHealth: 1.2,
		Acceleration:  0.5,
		TimeToDeath:   1.5,
		CoHealer:      0.2,
		Shield:        0.4,
		Mitigation:    0.3,
	}
}

// ArchetypeProfile is the per-archetype tuning that parameterizes the
// generic decision modules and triage calls. Archetype behavior is data;
// there is one module set shared by every profile.
type ArchetypeProfile struct {
	Name            string        `yaml:"name"`
	HealRange       float64       `yaml:"heal_range"`
	ClusterRadius   float64       `yaml:"cluster_radius"`
	MinClusterCount int           `yaml:"min_cluster_count"`
	RaisingStatus   string        `yaml:"raising_status"`
	GaugeStatus     string        `yaml:"gauge_status"`
	BuffStatus      string        `yaml:"buff_status"`
	Weights         TriageWeights `yaml:"weights"`

	RaiseAction      ActionID   `yaml:"raise_action"`
	GaugeAction      ActionID   `yaml:"gauge_action"`
	EmergencyAction  ActionID   `yaml:"emergency_action"`
	BuffAction       ActionID   `yaml:"buff_action"`
	MitigationAction ActionID   `yaml:"mitigation_action"`
	FreeSpendAction  ActionID   `yaml:"free_spend_action"`
	AreaHealAction   ActionID   `yaml:"area_heal_action"`
	SingleHealAction ActionID   `yaml:"single_heal_action"`
	ComboChain       []ActionID `yaml:"combo_chain"`

	GaugeGrant int `yaml:"gauge_grant"`
	GaugeCost  int `yaml:"gauge_cost"`
}

// BoundActions lists every action identifier the profile references, for
// catalogue validation at pipeline assembly.
func (p ArchetypeProfile) BoundActions() []ActionID {
	out := make([]ActionID, 0, 8+len(p.ComboChain))
	for _, id := range []ActionID{
		p.RaiseAction,
		p.GaugeAction,
		p.EmergencyAction,
		p.BuffAction,
		p.MitigationAction,
		p.FreeSpendAction,
		p.AreaHealAction,
		p.SingleHealAction,
	} {
		if id != "" {
			out = append(out, id)
		}
	}
	out = append(out, p.ComboChain...)
	return out
}
