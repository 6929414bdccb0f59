package reward

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/golang-jwt/jwt/v5"

	"github.com/louisbranch/aikira.quest/internal/platform/id"

	apperrors "github.com/louisbranch/aikira.quest/internal/platform/errors"
)

// grantEnv holds raw env values before post-parse validation.
type grantEnv struct {
	Issuer     string `env:"AIKIRA_QUEST_CLAIM_GRANT_ISSUER"`
	Audience   string `env:"AIKIRA_QUEST_CLAIM_GRANT_AUDIENCE"`
	PublicKey  string `env:"AIKIRA_QUEST_CLAIM_GRANT_PUBLIC_KEY"`
	PrivateKey string `env:"AIKIRA_QUEST_CLAIM_GRANT_PRIVATE_KEY"`
	TTL        string `env:"AIKIRA_QUEST_CLAIM_GRANT_TTL" envDefault:"15m"`
}

// GrantConfig defines how claim grants are issued and verified.
type GrantConfig struct {
	Issuer     string
	Audience   string
	PublicKey  ed25519.PublicKey
	PrivateKey ed25519.PrivateKey
	TTL        time.Duration
	Now        func() time.Time
}

// GrantClaims captures a validated claim grant.
type GrantClaims struct {
	Issuer    string
	Audience  []string
	ExpiresAt time.Time
	IssuedAt  time.Time
	JWTID     string
	Session   string
	Wallet    string
}

// grantClaims is the internal claims type used for JWT signing and parsing.
type grantClaims struct {
	jwt.RegisteredClaims
	Session string `json:"session_id"`
	Wallet  string `json:"wallet"`
}

// LoadGrantConfigFromEnv reads claim grant configuration. The private key is
// optional: verifiers run without it.
func LoadGrantConfigFromEnv(now func() time.Time) (GrantConfig, error) {
	var raw grantEnv
	if err := env.Parse(&raw); err != nil {
		return GrantConfig{}, fmt.Errorf("parse claim grant env: %w", err)
	}
	issuer := strings.TrimSpace(raw.Issuer)
	audience := strings.TrimSpace(raw.Audience)
	publicKey := strings.TrimSpace(raw.PublicKey)
	if issuer == "" {
		return GrantConfig{}, fmt.Errorf("AIKIRA_QUEST_CLAIM_GRANT_ISSUER is required")
	}
	if audience == "" {
		return GrantConfig{}, fmt.Errorf("AIKIRA_QUEST_CLAIM_GRANT_AUDIENCE is required")
	}
	if publicKey == "" {
		return GrantConfig{}, fmt.Errorf("AIKIRA_QUEST_CLAIM_GRANT_PUBLIC_KEY is required")
	}
	keyBytes, err := decodeBase64(publicKey)
	if err != nil {
		return GrantConfig{}, fmt.Errorf("decode claim grant public key: %w", err)
	}
	if len(keyBytes) != ed25519.PublicKeySize {
		return GrantConfig{}, fmt.Errorf("claim grant public key must be %d bytes", ed25519.PublicKeySize)
	}
	ttl, err := time.ParseDuration(strings.TrimSpace(raw.TTL))
	if err != nil {
		return GrantConfig{}, fmt.Errorf("parse claim grant ttl: %w", err)
	}
	cfg := GrantConfig{
		Issuer:    issuer,
		Audience:  audience,
		PublicKey: ed25519.PublicKey(keyBytes),
		TTL:       ttl,
		Now:       now,
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if privateKey := strings.TrimSpace(raw.PrivateKey); privateKey != "" {
		privBytes, err := decodeBase64(privateKey)
		if err != nil {
			return GrantConfig{}, fmt.Errorf("decode claim grant private key: %w", err)
		}
		if len(privBytes) != ed25519.PrivateKeySize {
			return GrantConfig{}, fmt.Errorf("claim grant private key must be %d bytes", ed25519.PrivateKeySize)
		}
		cfg.PrivateKey = ed25519.PrivateKey(privBytes)
	}
	return cfg, nil
}

// IssueGrant signs a claim grant binding a completed session to a wallet.
func IssueGrant(sessionID, wallet string, cfg GrantConfig) (string, error) {
	if len(cfg.PrivateKey) != ed25519.PrivateKeySize {
		return "", errors.New("claim grant issuer is not configured")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	grantID, err := id.NewID()
	if err != nil {
		return "", fmt.Errorf("generate grant id: %w", err)
	}
	now := cfg.Now().UTC()
	claims := grantClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Audience:  jwt.ClaimStrings{cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        grantID,
		},
		Session: sessionID,
		Wallet:  wallet,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	signed, err := token.SignedString(cfg.PrivateKey)
	if err != nil {
		return "", fmt.Errorf("sign claim grant: %w", err)
	}
	return signed, nil
}

// ValidateGrant verifies a claim grant token against the expected session
// and wallet.
func ValidateGrant(grant, sessionID, wallet string, cfg GrantConfig) (GrantClaims, error) {
	grant = strings.TrimSpace(grant)
	if grant == "" {
		return GrantClaims{}, apperrors.New(apperrors.CodeRewardGrantInvalid, "claim grant is required")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Issuer == "" || cfg.Audience == "" || len(cfg.PublicKey) != ed25519.PublicKeySize {
		return GrantClaims{}, errors.New("claim grant verifier is not configured")
	}

	var parsed grantClaims
	_, err := jwt.ParseWithClaims(grant, &parsed, func(token *jwt.Token) (any, error) {
		return cfg.PublicKey, nil
	},
		jwt.WithValidMethods([]string{"EdDSA"}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return GrantClaims{}, mapJWTError(err)
	}

	if parsed.Issuer == "" || parsed.Issuer != cfg.Issuer {
		return GrantClaims{}, apperrors.WithMetadata(
			apperrors.CodeRewardGrantInvalid,
			"claim grant issuer mismatch",
			map[string]string{"Field": "issuer"},
		)
	}
	if !audienceContains(parsed.Audience, cfg.Audience) {
		return GrantClaims{}, apperrors.WithMetadata(
			apperrors.CodeRewardGrantInvalid,
			"claim grant audience mismatch",
			map[string]string{"Field": "audience"},
		)
	}
	if parsed.ID == "" {
		return GrantClaims{}, apperrors.New(apperrors.CodeRewardGrantInvalid, "claim grant jti is required")
	}
	if parsed.ExpiresAt == nil {
		return GrantClaims{}, apperrors.New(apperrors.CodeRewardGrantInvalid, "claim grant exp is required")
	}

	now := cfg.Now().UTC()
	exp := parsed.ExpiresAt.Time.UTC()
	if !exp.After(now) {
		return GrantClaims{}, apperrors.New(apperrors.CodeRewardGrantExpired, "claim grant is expired")
	}

	if strings.TrimSpace(parsed.Session) == "" || parsed.Session != sessionID {
		return GrantClaims{}, apperrors.WithMetadata(
			apperrors.CodeRewardGrantInvalid,
			"claim grant session mismatch",
			map[string]string{"Field": "session_id"},
		)
	}
	if strings.TrimSpace(parsed.Wallet) == "" || parsed.Wallet != wallet {
		return GrantClaims{}, apperrors.WithMetadata(
			apperrors.CodeRewardGrantInvalid,
			"claim grant wallet mismatch",
			map[string]string{"Field": "wallet"},
		)
	}

	claims := GrantClaims{
		Issuer:    parsed.Issuer,
		Audience:  []string(parsed.Audience),
		ExpiresAt: exp,
		JWTID:     parsed.ID,
		Session:   parsed.Session,
		Wallet:    parsed.Wallet,
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time.UTC()
	}
	return claims, nil
}

// mapJWTError translates jwt library errors to application errors.
func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrEd25519Verification) {
		return apperrors.New(apperrors.CodeRewardGrantInvalid, "claim grant signature is invalid")
	}
	if errors.Is(err, jwt.ErrTokenUnverifiable) {
		return apperrors.New(apperrors.CodeRewardGrantInvalid, "claim grant alg is invalid")
	}
	return apperrors.New(apperrors.CodeRewardGrantInvalid, "claim grant is invalid")
}

// audienceContains reports whether the audience list contains the value.
func audienceContains(aud jwt.ClaimStrings, value string) bool {
	for _, item := range aud {
		if item == value {
			return true
		}
	}
	return false
}

func decodeBase64(value string) ([]byte, error) {
	if value == "" {
		return nil, errors.New("empty base64 value")
	}
	decoded, err := base64.RawStdEncoding.DecodeString(value)
	if err == nil {
		return decoded, nil
	}
	return base64.StdEncoding.DecodeString(value)
}
