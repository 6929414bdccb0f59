package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeSessionNotFound        = "SESSION_NOT_FOUND"
	CodeSessionEmptySlot       = "SESSION_EMPTY_SLOT"
	CodeSessionAlreadyActive   = "SESSION_ALREADY_ACTIVE"
	CodeSceneUnknown           = "SCENE_UNKNOWN"
	CodeSceneTransitionInvalid = "SCENE_TRANSITION_INVALID"
	CodeChapterLocked          = "CHAPTER_LOCKED"
	CodePuzzleInactive         = "PUZZLE_INACTIVE"
	CodeSequenceInvalidLength  = "SEQUENCE_INVALID_LENGTH"
	CodeRiddleBankEmpty        = "RIDDLE_BANK_EMPTY"
	CodeGridInvalidSize        = "GRID_INVALID_SIZE"
	CodeGridPlacementFailed    = "GRID_PLACEMENT_FAILED"
	CodeCodeInvalidLength      = "CODE_INVALID_LENGTH"
	CodeDialogueMissing        = "DIALOGUE_MISSING"
	CodeNotFound               = "NOT_FOUND"
	CodeRewardNotEligible      = "REWARD_NOT_ELIGIBLE"
	CodeRewardGrantInvalid     = "REWARD_GRANT_INVALID"
	CodeRewardGrantExpired     = "REWARD_GRANT_EXPIRED"
	CodeRewardWalletMissing    = "REWARD_WALLET_MISSING"
	CodeRewardAlreadyClaimed   = "REWARD_ALREADY_CLAIMED"
	CodeSeedOutOfRange         = "SEED_OUT_OF_RANGE"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		// Session errors
		CodeSessionNotFound:      "Session {{.SessionID}} was not found",
		CodeSessionEmptySlot:     "Save slot name cannot be empty",
		CodeSessionAlreadyActive: "A session is already active for this slot",

		// Scene errors
		CodeSceneUnknown:           "Scene {{.Scene}} is not registered",
		CodeSceneTransitionInvalid: "The current scene does not allow that action",
		CodeChapterLocked:          "Chapter {{.Chapter}} is still locked",

		// Puzzle errors
		CodePuzzleInactive:        "No puzzle is active in the current scene",
		CodeSequenceInvalidLength: "Sequence length must be positive",
		CodeRiddleBankEmpty:       "The riddle bank has no entries",
		CodeGridInvalidSize:       "The requested grid size is not supported",
		CodeGridPlacementFailed:   "Could not place the layout on the generated grid",
		CodeCodeInvalidLength:     "Access codes must be exactly {{.Length}} characters",

		// Dialogue errors
		CodeDialogueMissing: "No dialogue registered for {{.Chapter}}/{{.Context}}",

		// Storage errors
		CodeNotFound: "The requested record was not found",

		// Reward errors
		CodeRewardNotEligible:    "Genesis NFT rewards require all five protocol fragments",
		CodeRewardGrantInvalid:   "The reward grant token is invalid",
		CodeRewardGrantExpired:   "The reward grant token has expired",
		CodeRewardWalletMissing:  "Connect a wallet before claiming the reward",
		CodeRewardAlreadyClaimed: "The reward for this save slot was already claimed",

		// Random/seed errors
		CodeSeedOutOfRange: "Seed value is out of range",
	},
}
