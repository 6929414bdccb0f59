// Package scenario parses scenario runner flags and replays Lua playthrough
// scripts against an in-process game.
package scenario

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"

	"github.com/louisbranch/aikira.quest/internal/engine/reward"
	"github.com/louisbranch/aikira.quest/internal/engine/session"
	platformcmd "github.com/louisbranch/aikira.quest/internal/platform/cmd"
	"github.com/louisbranch/aikira.quest/internal/scenario"
	"github.com/louisbranch/aikira.quest/internal/storage/sqlite"
)

// Config holds scenario command configuration.
type Config struct {
	DBPath     string `env:"AIKIRA_QUEST_DB_PATH"        envDefault:"aikira.db"`
	Scenario   string `env:"AIKIRA_QUEST_SCENARIO_FILE"`
	WalletAddr string `env:"AIKIRA_QUEST_WALLET_ADDRESS"`
	Seed       int64  `env:"AIKIRA_QUEST_SCENARIO_SEED"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the SQLite save database")
	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "path to scenario lua file")
	fs.StringVar(&cfg.WalletAddr, "wallet", cfg.WalletAddr, "player wallet address for reward claims")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "fixed puzzle seed (0 uses random seeds)")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the scenario file against a fresh in-process game.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if cfg.Scenario == "" {
		return errors.New("scenario path is required")
	}

	loaded, err := scenario.LoadFile(cfg.Scenario)
	if err != nil {
		return err
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	sessionCfg := session.Config{
		Store:  store,
		Wallet: reward.StaticWallet{Addr: cfg.WalletAddr},
		Minter: reward.DisabledMinter{},
		Logger: log.New(errOut, "", 0),
	}
	if cfg.Seed != 0 {
		seed := cfg.Seed
		sessionCfg.NewSeed = func() int64 { return seed }
	}

	runner := scenario.NewRunner(session.NewRegistry(sessionCfg), log.New(errOut, "", 0))
	if err := runner.Run(ctx, loaded); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "scenario %q passed (%d steps)\n", loaded.Name, len(loaded.Steps)); err != nil {
		return err
	}
	return nil
}
