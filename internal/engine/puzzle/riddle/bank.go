package riddle

// Riddle is one entry in the fixed bank: a prompt, four options with exactly
// one correct index, a hint, and a post-answer explanation.
type Riddle struct {
	ID          string
	Prompt      string
	Options     [4]string
	Answer      int
	Hint        string
	Explanation string
}

// Bank returns the fixed five-riddle bank for chapter 3.
func Bank() []Riddle {
	return []Riddle{
		{
			ID:     "before-wolves",
			Prompt: "I ruled before the wolves, before the meatbrains walked. My reign ended in fire from the sky. What am I?",
			Options: [4]string{
				"A glacier",
				"A dinosaur",
				"A volcano",
				"A comet",
			},
			Answer:      1,
			Hint:        "CLIZA's archives date the answer to the Cretaceous.",
			Explanation: "The dinosaurs ruled for over 160 million years until the impact event ended their reign.",
		},
		{
			ID:     "double-helix",
			Prompt: "Two strands entwined, a ladder twisted through time. I carry the blueprint of every beast. What am I?",
			Options: [4]string{
				"A rope bridge",
				"A serpent pair",
				"A DNA helix",
				"A river delta",
			},
			Answer:      2,
			Hint:        "The genesis protocol is written in me.",
			Explanation: "DNA's double helix encodes the genetic instructions the protocol was built to recover.",
		},
		{
			ID:     "amber-clock",
			Prompt: "I am a stone that was never a rock, a golden tomb for the smallest guests. What am I?",
			Options: [4]string{
				"Amber",
				"Obsidian",
				"Quartz",
				"Coral",
			},
			Answer:      0,
			Hint:        "Sap hardens; time preserves.",
			Explanation: "Amber is fossilized tree resin, famous for preserving ancient insects intact.",
		},
		{
			ID:     "egg-riddle",
			Prompt: "A fortress with no door, life waits within. Break me from outside and the life ends; break me from inside and it begins.",
			Options: [4]string{
				"A seed vault",
				"A geode",
				"An egg",
				"A cocoon",
			},
			Answer:      2,
			Hint:        "Every sauropod started this way.",
			Explanation: "An egg hatches only from within; the oldest known dinosaur eggs are over 190 million years old.",
		},
		{
			ID:     "extinct-signal",
			Prompt: "I am a message sixty-five million years old, written in bone and read in stone. What am I?",
			Options: [4]string{
				"A fossil",
				"A radio wave",
				"A cave painting",
				"A tree ring",
			},
			Answer:      0,
			Hint:        "BYTE digs for these.",
			Explanation: "Fossils are the preserved record the protocol decodes to rebuild what was lost.",
		},
	}
}
