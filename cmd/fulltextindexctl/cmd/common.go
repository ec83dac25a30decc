package cmd

import (
	"fmt"

	"github.com/vippsas/fulltextindex"
	"github.com/vippsas/fulltextindex/config"
	"github.com/vippsas/fulltextindex/substrate"
	"github.com/vippsas/fulltextindex/substrate/memtree"
)

// openIndex loads the config at configPath (falling back to defaults if
// absent) and constructs an Index. Only the memory backend is wired up
// here -- substrate/sqlstore requires a live DSN and is exercised through
// its own DSN-gated integration test, not this CLI.
func openIndex() (*fulltextindex.Index, config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, config.Config{}, err
	}
	if cfg.Key == "" {
		cfg.Key = "text"
	}
	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = "en"
	}

	blacklist, err := config.LoadWordList(cfg.BlacklistFile)
	if err != nil {
		return nil, config.Config{}, err
	}
	whitelist, err := config.LoadWordList(cfg.WhitelistFile)
	if err != nil {
		return nil, config.Config{}, err
	}

	indexCfg := fulltextindex.Config{
		Key:                       cfg.Key,
		TextLocaleKey:             cfg.TextLocaleKey,
		DefaultLocale:             cfg.DefaultLocale,
		MinLength:                 cfg.MinLength,
		MaxLength:                 cfg.MaxLength,
		Blacklist:                 blacklist,
		Whitelist:                 whitelist,
		UseStoplist:               cfg.UseStoplist,
		MinimumWildcardWordLength: cfg.MinimumWildcardWordLength,
	}

	var tree substrate.Tree
	switch cfg.Backend {
	case "", config.BackendMemory:
		tree = memtree.New()
	default:
		return nil, config.Config{}, fmt.Errorf("fulltextindexctl: backend %q is not wired into this CLI; use --config to select memory, or drive substrate/sqlstore directly", cfg.Backend)
	}

	idx, err := fulltextindex.New(indexCfg, tree, log)
	if err != nil {
		return nil, config.Config{}, err
	}
	return idx, cfg, nil
}
