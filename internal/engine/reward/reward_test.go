package reward

import (
	"context"
	"errors"
	"testing"

	"github.com/louisbranch/aikira.quest/internal/engine/progress"

	apperrors "github.com/louisbranch/aikira.quest/internal/platform/errors"
)

type fakeWallet struct {
	connected bool
	address   string
}

func (w fakeWallet) Connected() bool { return w.connected }
func (w fakeWallet) Address() string { return w.address }

type fakeMinter struct {
	result MintResult
	err    error
	calls  int
	last   Claim
}

func (m *fakeMinter) MintReward(_ context.Context, claim Claim) (MintResult, error) {
	m.calls++
	m.last = claim
	return m.result, m.err
}

func completeProgress() progress.Progress {
	p := progress.NewProgress()
	for i := range p.Solved {
		p.Solved[i] = true
	}
	p.Chapter = 6
	return p
}

func TestClaimMintsOnce(t *testing.T) {
	minter := &fakeMinter{result: MintResult{ID: "token-7"}}
	c := NewClaimer("sess-1", fakeWallet{connected: true, address: "0xabc"}, minter)

	result, err := c.Claim(context.Background(), completeProgress())
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if result.ID != "token-7" || !c.Claimed() {
		t.Fatalf("result = %+v claimed=%v", result, c.Claimed())
	}
	if minter.last.SessionID != "sess-1" || minter.last.Wallet != "0xabc" {
		t.Fatalf("claim = %+v, want session and wallet bound", minter.last)
	}

	_, err = c.Claim(context.Background(), completeProgress())
	if !apperrors.IsCode(err, apperrors.CodeRewardAlreadyClaimed) {
		t.Fatalf("second claim: %v", err)
	}
	if minter.calls != 1 {
		t.Fatalf("minter called %d times", minter.calls)
	}
}

func TestClaimRequiresCompletePlaythrough(t *testing.T) {
	c := NewClaimer("sess-1", fakeWallet{connected: true}, &fakeMinter{})
	partial := completeProgress()
	partial.Solved[4] = false

	_, err := c.Claim(context.Background(), partial)
	if !apperrors.IsCode(err, apperrors.CodeRewardNotEligible) {
		t.Fatalf("got %v, want REWARD_NOT_ELIGIBLE", err)
	}
}

func TestClaimRequiresWallet(t *testing.T) {
	c := NewClaimer("sess-1", fakeWallet{connected: false}, &fakeMinter{})
	_, err := c.Claim(context.Background(), completeProgress())
	if !apperrors.IsCode(err, apperrors.CodeRewardWalletMissing) {
		t.Fatalf("got %v, want REWARD_WALLET_MISSING", err)
	}
}

func TestClaimRetryableAfterMintFailure(t *testing.T) {
	minter := &fakeMinter{err: errors.New("rpc timeout")}
	c := NewClaimer("sess-1", fakeWallet{connected: true}, minter)

	if _, err := c.Claim(context.Background(), completeProgress()); err == nil {
		t.Fatal("transport failure did not surface")
	}
	if c.Claimed() {
		t.Fatal("failed mint marked the claim consumed")
	}

	minter.err = nil
	minter.result = MintResult{ID: "token-9"}
	result, err := c.Claim(context.Background(), completeProgress())
	if err != nil || result.ID != "token-9" {
		t.Fatalf("retry: %v %+v", err, result)
	}
}

func TestClaimChainRejectionStaysOpen(t *testing.T) {
	minter := &fakeMinter{result: MintResult{Error: "insufficient gas"}}
	c := NewClaimer("sess-1", fakeWallet{connected: true}, minter)

	result, err := c.Claim(context.Background(), completeProgress())
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if result.Error == "" || c.Claimed() {
		t.Fatalf("chain rejection result = %+v claimed=%v", result, c.Claimed())
	}
}
