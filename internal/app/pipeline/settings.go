package pipeline

// Settings is the immutable per-tick configuration snapshot: per-module
// enable flags and numeric thresholds. The engine reads it at the start
// of each tick and never writes it.
type Settings struct {
	// Enabled toggles modules by name; a missing key means enabled.
	Enabled map[string]bool `yaml:"enabled"`

	EmergencyHPThreshold  float64 `yaml:"emergency_hp_threshold"`
	SingleHealHPThreshold float64 `yaml:"single_heal_hp_threshold"`
	AreaHealHPThreshold   float64 `yaml:"area_heal_hp_threshold"`
	MinAreaTargets        int     `yaml:"min_area_targets"`
	UnderFireMinAllies    int     `yaml:"under_fire_min_allies"`
	ManaReserve           int     `yaml:"mana_reserve"`
	PendingHealExpiry     float64 `yaml:"pending_heal_expiry"`
}

func DefaultSettings() Settings {
	return Settings{
		EmergencyHPThreshold:  0.35,
		SingleHealHPThreshold: 0.75,
		AreaHealHPThreshold:   0.80,
		MinAreaTargets:        3,
		UnderFireMinAllies:    2,
		ManaReserve:           2400,
		PendingHealExpiry:     5.0,
	}
}

func (s Settings) ModuleEnabled(name string) bool {
	if s.Enabled == nil {
		return true
	}
	enabled, ok := s.Enabled[name]
	if !ok {
		return true
	}
	return enabled
}
