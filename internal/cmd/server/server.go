// Package server parses game server configuration and runs the MCP
// transport over a SQLite-backed session registry.
package server

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/louisbranch/aikira.quest/internal/engine/reward"
	"github.com/louisbranch/aikira.quest/internal/engine/session"
	"github.com/louisbranch/aikira.quest/internal/mcp/service"
	platformcmd "github.com/louisbranch/aikira.quest/internal/platform/cmd"
	"github.com/louisbranch/aikira.quest/internal/storage/sqlite"
)

// Config holds server command configuration.
type Config struct {
	DBPath     string `env:"AIKIRA_QUEST_DB_PATH"           envDefault:"aikira.db"`
	HTTPAddr   string `env:"AIKIRA_QUEST_MCP_HTTP_ADDR"     envDefault:"localhost:8081"`
	Transport  string `env:"AIKIRA_QUEST_MCP_TRANSPORT"     envDefault:"stdio"`
	WalletAddr string `env:"AIKIRA_QUEST_WALLET_ADDRESS"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the SQLite save database")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.WalletAddr, "wallet", cfg.WalletAddr, "player wallet address for reward claims")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run opens storage, wires the session registry, and serves MCP until the
// context is cancelled.
func Run(ctx context.Context, cfg Config) error {
	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceServer, func(ctx context.Context) error {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		registry := session.NewRegistry(session.Config{
			Store:  store,
			Wallet: reward.StaticWallet{Addr: cfg.WalletAddr},
			Minter: newMinter(),
		})
		return service.New(registry).Run(ctx, service.Config{
			Transport: cfg.Transport,
			HTTPAddr:  cfg.HTTPAddr,
		})
	})
}

// newMinter issues signed claim grants when the grant env is configured and
// otherwise degrades to a minter that rejects claims.
func newMinter() reward.Minter {
	grantCfg, err := reward.LoadGrantConfigFromEnv(time.Now)
	if err != nil {
		log.Printf("claim grants disabled: %v", err)
		return reward.DisabledMinter{}
	}
	return reward.NewGrantMinter(grantCfg)
}
