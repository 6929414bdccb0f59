package reward

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/aikira.quest/internal/platform/id"
)

// StaticWallet is a fixed wallet identity supplied by configuration. It
// reports disconnected until an address is set.
type StaticWallet struct {
	Addr string
}

func (w StaticWallet) Connected() bool { return strings.TrimSpace(w.Addr) != "" }

func (w StaticWallet) Address() string { return w.Addr }

// GrantMinter fulfills mints by issuing a signed claim grant instead of
// talking to a chain directly. The external minting service validates the
// grant and performs the on-chain mint.
type GrantMinter struct {
	cfg GrantConfig
}

// NewGrantMinter builds a minter from a loaded grant configuration.
func NewGrantMinter(cfg GrantConfig) *GrantMinter {
	return &GrantMinter{cfg: cfg}
}

// MintReward signs a claim grant binding the session to the wallet. The
// returned ID identifies the grant for reconciliation with the mint service.
func (m *GrantMinter) MintReward(_ context.Context, claim Claim) (MintResult, error) {
	grant, err := IssueGrant(claim.SessionID, claim.Wallet, m.cfg)
	if err != nil {
		return MintResult{}, err
	}
	mintID, err := id.NewID()
	if err != nil {
		return MintResult{}, fmt.Errorf("generate mint id: %w", err)
	}
	return MintResult{ID: mintID, Grant: grant}, nil
}

// DisabledMinter rejects every mint with a chain-level error so the claim
// stays open. Used when the server runs without grant issuance configured.
type DisabledMinter struct{}

func (DisabledMinter) MintReward(context.Context, Claim) (MintResult, error) {
	return MintResult{Error: "reward minting is not configured"}, nil
}
