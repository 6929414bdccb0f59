package reward

import (
	"context"
	"testing"
	"time"
)

func TestStaticWalletConnection(t *testing.T) {
	if (StaticWallet{}).Connected() {
		t.Error("empty wallet reports connected")
	}
	if (StaticWallet{Addr: "  "}).Connected() {
		t.Error("blank wallet reports connected")
	}
	w := StaticWallet{Addr: "0xabc"}
	if !w.Connected() || w.Address() != "0xabc" {
		t.Errorf("wallet = %+v", w)
	}
}

func TestGrantMinterIssuesValidGrant(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cfg := testConfig(t, now)
	minter := NewGrantMinter(cfg)

	result, err := minter.MintReward(context.Background(), Claim{
		SessionID: "sess-1",
		Wallet:    "0xabc",
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if result.ID == "" || result.Grant == "" {
		t.Fatalf("result = %+v, want id and grant", result)
	}

	claims, err := ValidateGrant(result.Grant, "sess-1", "0xabc", cfg)
	if err != nil {
		t.Fatalf("validate issued grant: %v", err)
	}
	if claims.Session != "sess-1" || claims.Wallet != "0xabc" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestGrantMinterRequiresIssuerKey(t *testing.T) {
	minter := NewGrantMinter(GrantConfig{})
	if _, err := minter.MintReward(context.Background(), Claim{SessionID: "s", Wallet: "w"}); err == nil {
		t.Fatal("expected error without a private key")
	}
}
