package pipeline

import (
	"fmt"

	"wardmend/internal/app/ports"
	"wardmend/internal/domain/combat"
)

// ForProfile assembles the standard module table for one archetype and
// verifies every bound action identifier against the catalogue. Both
// failure modes here (duplicate priority, unregistered action) are
// configuration errors: fatal at startup, impossible at tick time.
func ForProfile(profile combat.ArchetypeProfile, catalogue ports.ActionCatalogue) (*Pipeline, error) {
	for _, id := range profile.BoundActions() {
		if _, err := catalogue.Resolve(id); err != nil {
			return nil, fmt.Errorf("archetype %s binds action %q: %w", profile.Name, id, err)
		}
	}
	return New(
		raiseModule(),
		gaugeModule(),
		emergencyModule(),
		buffModule(),
		mitigationModule(),
		freeSpendModule(),
		areaHealModule(),
		singleHealModule(),
		offenseModule(),
	)
}
