package staticfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"wardmend/internal/app/ports"
)

func writeCatalogue(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalogue.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

const validCatalogue = `
actions:
  - id: mend
    name: Mend
    potency: 450
    mana_cost: 500
    range: 30
    min_level: 2
  - id: quickmend
    name: Quickmend
    class: secondary
    potency: 500
    lock: 0.6
    recast: 1
    range: 30
    min_level: 35

archetypes:
  warden:
    heal_range: 30
    single_heal_action: mend
    free_spend_action: quickmend

settings:
  emergency_hp_threshold: 0.4
`

func TestLoad_ResolvesActionsAndDefaults(t *testing.T) {
	path := writeCatalogue(t, validCatalogue)
	catalogue, profiles, settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if catalogue.Len() != 2 {
		t.Fatalf("expected 2 actions, got=%d", catalogue.Len())
	}

	mend, err := catalogue.Resolve("mend")
	if err != nil {
		t.Fatalf("Resolve mend: %v", err)
	}
	// Class omitted in the file defaults to primary.
	if mend.IsSecondary() {
		t.Fatalf("expected mend to default to primary")
	}
	quick, err := catalogue.Resolve("quickmend")
	if err != nil || !quick.IsSecondary() {
		t.Fatalf("expected quickmend secondary, def=%+v err=%v", quick, err)
	}

	profile, ok := profiles["warden"]
	if !ok {
		t.Fatalf("expected warden profile")
	}
	if profile.Name != "warden" {
		t.Fatalf("expected profile name filled from the map key, got=%q", profile.Name)
	}
	if profile.Weights.MissingHealth == 0 {
		t.Fatalf("expected default triage weights for a profile without a weights block")
	}

	// Overridden knob applied, untouched knobs keep their defaults.
	if settings.EmergencyHPThreshold != 0.4 {
		t.Fatalf("expected overridden threshold 0.4, got=%v", settings.EmergencyHPThreshold)
	}
	if settings.MinAreaTargets != 3 || settings.PendingHealExpiry != 5.0 {
		t.Fatalf("expected untouched defaults, got=%+v", settings)
	}
}

func TestLoad_DuplicateActionID(t *testing.T) {
	path := writeCatalogue(t, `
actions:
  - id: mend
  - id: mend
`)
	if _, _, _, err := Load(path); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestLoad_EmptyActionID(t *testing.T) {
	path := writeCatalogue(t, `
actions:
  - name: Nameless
`)
	if _, _, _, err := Load(path); err == nil {
		t.Fatalf("expected empty id error")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, _, _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestResolve_UnknownAction(t *testing.T) {
	path := writeCatalogue(t, validCatalogue)
	catalogue, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := catalogue.Resolve("no_such"); !errors.Is(err, ports.ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got=%v", err)
	}
}
