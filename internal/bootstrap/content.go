package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/KnightlyTreasures_Go/internal/config"
	"github.com/osse101/KnightlyTreasures_Go/internal/honor"
	"github.com/osse101/KnightlyTreasures_Go/internal/inventory"
	"github.com/osse101/KnightlyTreasures_Go/internal/item"
	"github.com/osse101/KnightlyTreasures_Go/internal/repository"
	"github.com/osse101/KnightlyTreasures_Go/internal/utils"
)

// Content is the static data loaded from disk at startup
type Content struct {
	World   *honor.World
	Catalog *item.Catalog
	Classes []string
}

// LoadContent reads the world file, then the item catalog validated
// against the world's party classes.
func LoadContent(cfg *config.Config) (*Content, error) {
	world, err := honor.LoadWorld(cfg.WorldPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadWorld, err)
	}
	slog.Info(LogMsgWorldLoaded, "path", cfg.WorldPath, "locations", len(world.Locations))

	classes := world.PartyClasses
	if len(classes) == 0 {
		classes = inventory.DefaultClasses
	}

	slog.Info(LogMsgLoadingCatalog, "path", cfg.CatalogPath)
	catalog, err := item.LoadCatalog(item.NewLoader(), cfg.CatalogPath, classes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}
	slog.Info(LogMsgCatalogLoaded, "items", catalog.Len())

	return &Content{World: world, Catalog: catalog, Classes: classes}, nil
}

// NewGenerator builds the cached weekly generator for the party's classes
func NewGenerator(cfg *config.Config, classes []string) *inventory.CachedGenerator {
	genCfg := inventory.DefaultConfig()
	genCfg.Classes = append([]string(nil), classes...)

	gen := inventory.NewGenerator(genCfg, utils.NewRandomSource(cfg.ShopRNG))
	return inventory.NewCachedGenerator(gen, cfg.SelectionCacheSize, cfg.SelectionCacheTTL)
}

// NewPricer builds the honor pricer from the world's modifiers and clan map
func NewPricer(world *honor.World) *honor.Pricer {
	return honor.NewPricer(world.Table(), world.ClanMap())
}

// SeedWorld writes the world file's starting honor into an empty store.
// Scores already in the store are left alone.
func SeedWorld(ctx context.Context, store repository.World, world *honor.World) error {
	current, err := store.GetHonor(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSeedWorld, err)
	}
	if len(current) > 0 || len(world.InitialHonor) == 0 {
		return nil
	}

	for clan, score := range world.InitialHonor {
		if err := store.SetHonor(ctx, clan, score); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedSeedWorld, err)
		}
	}
	slog.Info(LogMsgInitialHonorSeeded, "clans", len(world.InitialHonor))
	return nil
}
