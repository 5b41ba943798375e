package combat

// AgentState is the per-agent mutable gauge/cooldown state shared by the
// decision modules. It is rebuilt or updated once per tick and handed to
// every module through its context, never read from a global.
type AgentState struct {
	AgentID     string
	Archetype   string
	Level       int
	Mana        int
	MaxMana     int
	GaugeStacks int
	MaxGauge    int

	// ComboStep indexes the next action of the archetype's combo chain.
	// Zero means no combo in progress; this is the only cross-tick memory
	// the decision pipeline keeps.
	ComboStep int

	// usedAt holds recent use times per action, newest last. A use's
	// charge is restored once its recast has elapsed.
	usedAt map[ActionID][]float64
}

func NewAgentState(agentID, archetype string, level, maxMana, maxGauge int) *AgentState {
	return &AgentState{
		AgentID:   agentID,
		Archetype: archetype,
		Level:     level,
		Mana:      maxMana,
		MaxMana:   maxMana,
		MaxGauge:  maxGauge,
		usedAt:    map[ActionID][]float64{},
	}
}

// ChargesAvailable reports how many charges of the action remain at the
// given encounter time. Actions without an explicit charge count behave as
// single-charge cooldowns.
func (s *AgentState) ChargesAvailable(def ActionDef, now float64) int {
	if def.Recast <= 0 {
		return def.MaxCharges()
	}
	spent := 0
	for _, at := range s.usedAt[def.ID] {
		if now-at < def.Recast {
			spent++
		}
	}
	available := def.MaxCharges() - spent
	if available < 0 {
		return 0
	}
	return available
}

func (s *AgentState) CooldownReady(def ActionDef, now float64) bool {
	return s.ChargesAvailable(def, now) >= 1
}

// NoteUsed records a successful use: spends a charge, deducts mana cost.
func (s *AgentState) NoteUsed(def ActionDef, now float64) {
	if s.usedAt == nil {
		s.usedAt = map[ActionID][]float64{}
	}
	uses := s.usedAt[def.ID]
	// Drop entries that have already recharged so the list stays small.
	kept := uses[:0]
	for _, at := range uses {
		if def.Recast > 0 && now-at < def.Recast {
			kept = append(kept, at)
		}
	}
	s.usedAt[def.ID] = append(kept, now)

	s.Mana -= def.ManaCost
	if s.Mana < 0 {
		s.Mana = 0
	}
}

func (s *AgentState) AddGauge(n int) {
	s.GaugeStacks += n
	if s.GaugeStacks > s.MaxGauge {
		s.GaugeStacks = s.MaxGauge
	}
	if s.GaugeStacks < 0 {
		s.GaugeStacks = 0
	}
}

func (s *AgentState) SpendGauge(n int) bool {
	if s.GaugeStacks < n {
		return false
	}
	s.GaugeStacks -= n
	return true
}

func (s *AgentState) ComboInProgress() bool {
	return s.ComboStep > 0
}

// AdvanceCombo moves to the next step of a chain of the given length,
// wrapping back to idle after the final step.
func (s *AgentState) AdvanceCombo(chainLen int) {
	if chainLen <= 0 {
		s.ComboStep = 0
		return
	}
	s.ComboStep++
	if s.ComboStep >= chainLen {
		s.ComboStep = 0
	}
}

func (s *AgentState) ResetCombo() {
	s.ComboStep = 0
}
