// Package reward gates and performs the one-shot mint that proves a finished
// playthrough. The chain collaborators are interfaces; the engine never talks
// to a network itself.
package reward

import (
	"context"
	"strconv"

	"github.com/louisbranch/aikira.quest/internal/engine/progress"

	apperrors "github.com/louisbranch/aikira.quest/internal/platform/errors"
)

// Wallet reports the player's connected chain identity. The engine only
// reads it to gate the claim.
type Wallet interface {
	Connected() bool
	Address() string
}

// MintResult is the outcome of a mint request. Grant carries the signed
// claim grant when the minter issues one.
type MintResult struct {
	ID    string
	Grant string
	Error string
}

// Claim is a mint request: the session it belongs to, the wallet that
// receives the reward, and the progress snapshot that proves eligibility.
type Claim struct {
	SessionID string
	Wallet    string
	Snapshot  progress.Progress
}

// Minter performs the reward mint against the chain.
type Minter interface {
	MintReward(ctx context.Context, claim Claim) (MintResult, error)
}

// Claimer enforces the claim rules: a complete playthrough, a connected
// wallet, and at most one successful mint per session.
type Claimer struct {
	sessionID string
	wallet    Wallet
	minter    Minter
	claimed   bool
	result    MintResult
}

// NewClaimer wires the chain collaborators for one session.
func NewClaimer(sessionID string, wallet Wallet, minter Minter) *Claimer {
	return &Claimer{sessionID: sessionID, wallet: wallet, minter: minter}
}

// Claim mints the reward for a finished playthrough. Mint transport errors
// are returned to the caller for display; the claim stays open so the
// player can retry.
func (c *Claimer) Claim(ctx context.Context, snapshot progress.Progress) (MintResult, error) {
	if c.claimed {
		return MintResult{}, apperrors.New(apperrors.CodeRewardAlreadyClaimed, "reward already minted for this session")
	}
	if !snapshot.Complete() {
		return MintResult{}, apperrors.WithMetadata(
			apperrors.CodeRewardNotEligible,
			"all five trials must be solved before claiming",
			map[string]string{"Solved": strconv.Itoa(snapshot.SolvedCount())},
		)
	}
	if c.wallet == nil || !c.wallet.Connected() {
		return MintResult{}, apperrors.New(apperrors.CodeRewardWalletMissing, "no wallet connected")
	}

	result, err := c.minter.MintReward(ctx, Claim{
		SessionID: c.sessionID,
		Wallet:    c.wallet.Address(),
		Snapshot:  snapshot,
	})
	if err != nil {
		return MintResult{}, apperrors.Wrap(apperrors.CodeUnknown, "mint reward", err)
	}
	if result.Error != "" {
		return result, nil
	}
	c.claimed = true
	c.result = result
	return result, nil
}

// Claimed reports whether the mint already succeeded.
func (c *Claimer) Claimed() bool { return c.claimed }

// Result returns the successful mint outcome, if any.
func (c *Claimer) Result() MintResult { return c.result }

