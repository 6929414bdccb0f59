package character

import "github.com/louisbranch/aikira.quest/internal/engine/clock"

// Suspicion tuning for BYTE.
const (
	SuspicionMax = 100
	// suspicionAlert is the level at which a bark reverts to alert instead
	// of idle.
	suspicionAlert = 50
	// suspicionAutoBark triggers the one-shot automatic bark when first
	// crossed.
	suspicionAutoBark = 75
	barkMillis        = 800
)

// Byte is the sentinel hound. Suspicion rises as the player stumbles and
// falls as they prove themselves; crossing the high-water mark triggers a
// single automatic bark per session.
type Byte struct {
	*Agent
	timers *clock.TimerSet

	suspicion  int
	autoBarked bool
	barkTimer  clock.Handle
}

// NewByte builds the BYTE singleton. The timer set schedules bark reverts
// and must be ticked by the owning scene.
func NewByte(timers *clock.TimerSet) *Byte {
	return &Byte{
		Agent: newAgent("BYTE", map[Context][]string{
			ContextGreeting: {
				"*sniffs* ...you smell of sequencing errors.",
				"*stares* State your business, meatbrain.",
			},
			ContextPuzzleHint: {
				"*low growl* The answer is obvious. To me.",
			},
			ContextSuccess: {
				"*reluctant tail wag* Adequate.",
				"*huffs* Even a meatbrain finds a bone sometimes.",
			},
			ContextFailure: {
				"*BARK* WRONG. SUSPICION RISING.",
				"*growls* That was deliberate sabotage. I am certain.",
			},
			ContextDefault: {
				"*watches silently*",
			},
		}),
		timers: timers,
	}
}

// IncreaseSuspicion raises suspicion, clamped to the maximum. The first
// crossing of the high-water mark triggers one automatic bark.
func (b *Byte) IncreaseSuspicion(amount int) {
	if amount <= 0 {
		return
	}
	b.suspicion += amount
	if b.suspicion > SuspicionMax {
		b.suspicion = SuspicionMax
	}
	if b.suspicion >= suspicionAutoBark && !b.autoBarked {
		b.autoBarked = true
		b.Bark()
	}
}

// DecreaseSuspicion lowers suspicion, clamped to zero.
func (b *Byte) DecreaseSuspicion(amount int) {
	if amount <= 0 {
		return
	}
	b.suspicion -= amount
	if b.suspicion < 0 {
		b.suspicion = 0
	}
}

// Suspicion returns the current level.
func (b *Byte) Suspicion() int { return b.suspicion }

// Bark plays the bark animation, then reverts to alert or idle depending on
// suspicion. A bark already in flight restarts its revert timer.
func (b *Byte) Bark() {
	b.SetAnimation(AnimBark)
	b.timers.Cancel(b.barkTimer)
	b.barkTimer = b.timers.After(clock.Millis(barkMillis), func() {
		if b.Animation() != AnimBark {
			return
		}
		if b.suspicion >= suspicionAlert {
			b.SetAnimation(AnimAlert)
		} else {
			b.SetAnimation(AnimIdle)
		}
	})
}

// Reset clears suspicion, the auto-bark latch, and any pending revert.
func (b *Byte) Reset() {
	b.timers.Cancel(b.barkTimer)
	b.suspicion = 0
	b.autoBarked = false
	b.SetAnimation(AnimIdle)
}

// Teardown cancels the pending bark revert without touching state.
func (b *Byte) Teardown() {
	b.timers.Cancel(b.barkTimer)
}
