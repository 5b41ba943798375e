// Package staticfile loads the action catalogue, archetype profiles, and
// engine settings from one YAML file. The result is immutable reference
// data: loaded once at startup, read-only afterwards.
package staticfile

import (
	"fmt"
	"os"

	"wardmend/internal/app/pipeline"
	"wardmend/internal/app/ports"
	"wardmend/internal/domain/combat"

	"gopkg.in/yaml.v3"
)

type Catalogue struct {
	byID map[combat.ActionID]combat.ActionDef
}

func (c Catalogue) Resolve(id combat.ActionID) (combat.ActionDef, error) {
	def, ok := c.byID[id]
	if !ok {
		return combat.ActionDef{}, fmt.Errorf("%w: %s", ports.ErrUnknownAction, id)
	}
	return def, nil
}

func (c Catalogue) Len() int { return len(c.byID) }

type fileSpec struct {
	Actions    []combat.ActionDef                 `yaml:"actions"`
	Archetypes map[string]combat.ArchetypeProfile `yaml:"archetypes"`
	Settings   *pipeline.Settings                 `yaml:"settings"`
}

// Load reads and validates the catalogue file. Duplicate action ids are a
// configuration error.
func Load(path string) (Catalogue, map[string]combat.ArchetypeProfile, pipeline.Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Catalogue{}, nil, pipeline.Settings{}, fmt.Errorf("read catalogue: %w", err)
	}
	var spec fileSpec
	if err := yaml.Unmarshal(b, &spec); err != nil {
		return Catalogue{}, nil, pipeline.Settings{}, fmt.Errorf("parse catalogue: %w", err)
	}

	byID := make(map[combat.ActionID]combat.ActionDef, len(spec.Actions))
	for _, def := range spec.Actions {
		if def.ID == "" {
			return Catalogue{}, nil, pipeline.Settings{}, fmt.Errorf("action with empty id in %s", path)
		}
		if _, dup := byID[def.ID]; dup {
			return Catalogue{}, nil, pipeline.Settings{}, fmt.Errorf("duplicate action id %q in %s", def.ID, path)
		}
		if def.Class == "" {
			def.Class = combat.ActionClassPrimary
		}
		byID[def.ID] = def
	}

	profiles := make(map[string]combat.ArchetypeProfile, len(spec.Archetypes))
	for name, profile := range spec.Archetypes {
		if profile.Name == "" {
			profile.Name = name
		}
		if profile.Weights == (combat.TriageWeights{}) {
			profile.Weights = combat.DefaultTriageWeights()
		}
		profiles[name] = profile
	}

	settings := pipeline.DefaultSettings()
	if spec.Settings != nil {
		settings = mergeSettings(settings, *spec.Settings)
	}
	return Catalogue{byID: byID}, profiles, settings, nil
}

// mergeSettings overlays explicitly-set values on the defaults so a file
// only has to name the knobs it changes.
func mergeSettings(base, override pipeline.Settings) pipeline.Settings {
	out := base
	if override.Enabled != nil {
		out.Enabled = override.Enabled
	}
	if override.EmergencyHPThreshold > 0 {
		out.EmergencyHPThreshold = override.EmergencyHPThreshold
	}
	if override.SingleHealHPThreshold > 0 {
		out.SingleHealHPThreshold = override.SingleHealHPThreshold
	}
	if override.AreaHealHPThreshold > 0 {
		out.AreaHealHPThreshold = override.AreaHealHPThreshold
	}
	if override.MinAreaTargets > 0 {
		out.MinAreaTargets = override.MinAreaTargets
	}
	if override.UnderFireMinAllies > 0 {
		out.UnderFireMinAllies = override.UnderFireMinAllies
	}
	if override.ManaReserve > 0 {
		out.ManaReserve = override.ManaReserve
	}
	if override.PendingHealExpiry > 0 {
		out.PendingHealExpiry = override.PendingHealExpiry
	}
	return out
}
