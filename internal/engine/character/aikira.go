package character

// Aikira is the GENESIS protocol voice. She narrates chapter objectives and
// judges the player's progress.
type Aikira struct {
	*Agent
}

// NewAikira builds the AIKIRA singleton.
func NewAikira() *Aikira {
	return &Aikira{Agent: newAgent("AIKIRA", map[Context][]string{
		ContextGreeting: {
			"PROTOCOL INITIATED. HUMAN PRESENCE ACKNOWLEDGED.",
			"YOU RETURN. THE SEQUENCE REMEMBERS YOU.",
		},
		ContextPuzzleHint: {
			"OBSERVE THE PATTERN. THE ANSWER PRECEDES THE QUESTION.",
			"PRECISION IS REWARDED. HASTE IS LOGGED.",
		},
		ContextSuccess: {
			"ACCEPTABLE. THE PROTOCOL ADVANCES.",
			"CORRECT. YOUR COMPLIANCE IS NOTED.",
		},
		ContextFailure: {
			"INCORRECT. RECALIBRATE AND PROCEED.",
			"ERROR LOGGED. THE PROTOCOL IS PATIENT.",
		},
		ContextDefault: {
			"THE GENESIS PROTOCOL AWAITS.",
		},
	})}
}
