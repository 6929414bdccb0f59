package character

// Energy tuning for CLIZA's ambient systems.
const (
	EnergyMax = 100.0
	// energyDecayPerFrame drains roughly one point per second.
	energyDecayPerFrame = 1.0 / 60.0
	// ThoughtThreshold is the energy level that unlocks the thought bubble
	// cosmetic.
	ThoughtThreshold = 60.0
	DefaultBoost     = 15.0
)

// Cliza is the exploration AI. Her energy level decays passively and is
// restored by player interaction; it only gates cosmetics.
type Cliza struct {
	*Agent
	energy float64
}

// NewCliza builds the CLIZA singleton at full energy.
func NewCliza() *Cliza {
	return &Cliza{
		Agent: newAgent("CLIZA", map[Context][]string{
			ContextGreeting: {
				"Oh! A visitor! The spores said you'd come.",
				"Hello again! The jungle has been whispering about you.",
			},
			ContextPuzzleHint: {
				"Hmm... have you tried looking at it the way a raptor would?",
				"The old ones hid their answers in plain sight, you know.",
			},
			ContextSuccess: {
				"You did it! I knew the meatbrain rumors were exaggerated!",
				"Wonderful! The sequence practically sings now.",
			},
			ContextFailure: {
				"Oops. Well, extinction took a few tries too.",
				"Don't worry! Evolution is mostly failed attempts.",
			},
			ContextDefault: {
				"So many ferns, so little time.",
			},
		}),
		energy: EnergyMax,
	}
}

// Update drains energy one frame's worth. Called every tick while CLIZA is
// on screen.
func (c *Cliza) Update() {
	c.energy -= energyDecayPerFrame
	if c.energy < 0 {
		c.energy = 0
	}
}

// Boost restores energy from a player interaction, clamped to the maximum.
func (c *Cliza) Boost(amount float64) {
	if amount <= 0 {
		amount = DefaultBoost
	}
	c.energy += amount
	if c.energy > EnergyMax {
		c.energy = EnergyMax
	}
}

// Energy returns the current level.
func (c *Cliza) Energy() float64 { return c.energy }

// ThoughtBubblesActive reports whether the ambient cosmetic renders.
func (c *Cliza) ThoughtBubblesActive() bool {
	return c.energy >= ThoughtThreshold
}
