package stateview

import "wardmend/internal/domain/combat"

// DefaultWindow is how many seconds of raw health history feed the
// incoming-damage estimates.
const DefaultWindow = 6.0

type hpSample struct {
	at float64
	hp int
}

// DamageEstimator derives per-entity incoming-damage rate and
// acceleration from successive raw health observations. Heals raise raw
// health and would read as negative damage, so only losses count.
type DamageEstimator struct {
	window  float64
	samples map[combat.EntityID][]hpSample
}

func NewDamageEstimator(window float64) *DamageEstimator {
	if window <= 0 {
		window = DefaultWindow
	}
	return &DamageEstimator{
		window:  window,
		samples: map[combat.EntityID][]hpSample{},
	}
}

// Observe appends this tick's raw health values and drops history outside
// the window. Entities absent from the snapshot set are forgotten.
func (d *DamageEstimator) Observe(now float64, entities []combat.EntitySnapshot) {
	seen := make(map[combat.EntityID]bool, len(entities))
	for _, e := range entities {
		seen[e.ID] = true
		if !e.Alive {
			delete(d.samples, e.ID)
			continue
		}
		history := append(d.samples[e.ID], hpSample{at: now, hp: e.HP})
		cutoff := now - d.window
		start := 0
		for start < len(history) && history[start].at < cutoff {
			start++
		}
		d.samples[e.ID] = history[start:]
	}
	for id := range d.samples {
		if !seen[id] {
			delete(d.samples, id)
		}
	}
}

// Rate returns HP lost per second over the full window, zero when the
// entity is net-healing or has no history.
func (d *DamageEstimator) Rate(id combat.EntityID) float64 {
	return lossRate(d.samples[id])
}

// Acceleration compares the loss rate of the newer half of the window
// against the older half. Positive values mean damage is ramping up.
func (d *DamageEstimator) Acceleration(id combat.EntityID) float64 {
	history := d.samples[id]
	if len(history) < 3 {
		return 0
	}
	mid := len(history) / 2
	older := lossRate(history[:mid+1])
	newer := lossRate(history[mid:])
	return newer - older
}

func lossRate(history []hpSample) float64 {
	if len(history) < 2 {
		return 0
	}
	first := history[0]
	last := history[len(history)-1]
	dt := last.at - first.at
	if dt <= 0 {
		return 0
	}
	lost := 0
	prev := first.hp
	for _, s := range history[1:] {
		if s.hp < prev {
			lost += prev - s.hp
		}
		prev = s.hp
	}
	if lost <= 0 {
		return 0
	}
	return float64(lost) / dt
}
