// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Session errors
	CodeSessionNotFound      Code = "SESSION_NOT_FOUND"
	CodeSessionEmptySlot     Code = "SESSION_EMPTY_SLOT"
	CodeSessionAlreadyActive Code = "SESSION_ALREADY_ACTIVE"

	// Scene errors
	CodeSceneUnknown           Code = "SCENE_UNKNOWN"
	CodeSceneTransitionInvalid Code = "SCENE_TRANSITION_INVALID"
	CodeChapterLocked          Code = "CHAPTER_LOCKED"

	// Puzzle errors
	CodePuzzleInactive        Code = "PUZZLE_INACTIVE"
	CodeSequenceInvalidLength Code = "SEQUENCE_INVALID_LENGTH"
	CodeRiddleBankEmpty       Code = "RIDDLE_BANK_EMPTY"
	CodeGridInvalidSize       Code = "GRID_INVALID_SIZE"
	CodeGridPlacementFailed   Code = "GRID_PLACEMENT_FAILED"
	CodeCodeInvalidLength     Code = "CODE_INVALID_LENGTH"

	// Dialogue errors
	CodeDialogueMissing Code = "DIALOGUE_MISSING"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"

	// Reward errors
	CodeRewardNotEligible    Code = "REWARD_NOT_ELIGIBLE"
	CodeRewardGrantInvalid   Code = "REWARD_GRANT_INVALID"
	CodeRewardGrantExpired   Code = "REWARD_GRANT_EXPIRED"
	CodeRewardWalletMissing  Code = "REWARD_WALLET_MISSING"
	CodeRewardAlreadyClaimed Code = "REWARD_ALREADY_CLAIMED"

	// Random/seed errors
	CodeSeedOutOfRange Code = "SEED_OUT_OF_RANGE"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	case CodeSessionNotFound, CodeSceneUnknown, CodeNotFound, CodeDialogueMissing:
		return codes.NotFound
	case CodeSessionEmptySlot, CodeSequenceInvalidLength, CodeGridInvalidSize,
		CodeCodeInvalidLength, CodeSeedOutOfRange, CodeRewardGrantInvalid:
		return codes.InvalidArgument
	case CodeSessionAlreadyActive, CodeRewardAlreadyClaimed:
		return codes.AlreadyExists
	case CodeSceneTransitionInvalid, CodeChapterLocked, CodePuzzleInactive,
		CodeRewardNotEligible, CodeRewardWalletMissing, CodeRewardGrantExpired:
		return codes.FailedPrecondition
	case CodeRiddleBankEmpty, CodeGridPlacementFailed:
		return codes.Internal
	default:
		return codes.Internal
	}
}
