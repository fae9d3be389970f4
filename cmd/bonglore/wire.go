package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/adapters/driven/ai"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/adapters/driven/config/file"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/adapters/driven/content"
	redislock "github.com/NevroHelios/Bong-Lore-Backend/internal/adapters/driven/lock/redis"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/adapters/driven/storage/memory"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/adapters/driven/storage/postgres"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/adapters/driven/storage/sqlite"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/adapters/driving/cli"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/ports/driven"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/services"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/logger"
)

// homeEnv overrides the ~/.bonglore directory.
const homeEnv = "BONGLORE_HOME"

// app is the wired application and the resources to release on exit.
type app struct {
	services cli.Services
	closers  []func()
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// subdir returns home/name, or "" so adapters pick their default.
func subdir(home, name string) string {
	if home == "" {
		return ""
	}
	return filepath.Join(home, name)
}

// wire builds every adapter and service from the config under home.
func wire(ctx context.Context, home string) (*app, error) {
	configStore, err := file.NewConfigStore(home)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := logger.Init(logger.Config{
		Level:  configStore.GetString("log.level"),
		Format: configStore.GetString("log.format"),
	}); err != nil {
		return nil, err
	}

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	a := &app{}

	mediaStore, tagStore, closeStore, err := openStorage(ctx, settings.Storage, subdir(home, "data"))
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closeStore)

	lock := openLock(ctx, settings.Lock)
	if closer, ok := lock.(interface{ Close() error }); ok {
		a.closers = append(a.closers, func() { _ = closer.Close() })
	}

	aiServices := ai.Initialise(ctx, *settings)
	a.closers = append(a.closers, aiServices.Close)

	prompts, err := file.NewPromptStore(subdir(home, "prompts"))
	if err != nil {
		a.close()
		return nil, fmt.Errorf("opening prompts: %w", err)
	}
	if err := prompts.Watch(ctx); err != nil {
		logger.Warn("prompt hot reload disabled: %v", err)
	}

	catalog := services.NewTagCatalog(nil)

	analyzer := services.NewContentAnalyzer(aiServices.Vision, services.AnalyzerConfig{
		Timeout: settings.Enrichment.AnalysisTimeout,
	})
	analyzer.SetPromptStore(prompts)

	embeddings := services.NewEmbeddingGenerator(
		aiServices.Embedding,
		aiServices.Cultural,
		aiServices.Multimodal,
		services.EmbeddingConfig{Timeout: settings.Enrichment.EmbeddingTimeout},
	)
	embeddings.SetPromptStore(prompts)

	a.services = cli.Services{
		Enrichment: services.NewEnrichmentOrchestrator(
			mediaStore,
			content.NewResolver(content.Config{}),
			lock,
			analyzer,
			embeddings,
			catalog,
		),
		Suggest:  services.NewTagSuggestionService(catalog, tagStore),
		Media:    services.NewMediaService(mediaStore, tagStore),
		Settings: settingsService,
	}

	return a, nil
}

// openStorage opens the media and tag stores selected by settings.
func openStorage(
	ctx context.Context,
	cfg domain.StorageSettings,
	dataDir string,
) (driven.MediaStore, driven.TagStore, func(), error) {
	switch cfg.Backend {
	case domain.StorageMemory:
		logger.Warn("using in-memory storage: media items are lost on exit")
		return memory.NewMediaStore(), memory.NewTagStore(), func() {}, nil

	case domain.StoragePostgres:
		store, err := postgres.NewStore(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening postgres store: %w", err)
		}
		return store.MediaStore(), store.TagStore(), func() { _ = store.Close() }, nil

	case domain.StorageSQLite, "":
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		logger.Debug("sqlite store at %s", store.Path())
		return store.MediaStore(), store.TagStore(), func() { _ = store.Close() }, nil

	default:
		return nil, nil, nil, fmt.Errorf("%w: storage backend %q", domain.ErrUnsupportedType, cfg.Backend)
	}
}

// openLock returns the cross-process enrichment marker, or nil when only
// the in-process marker is used. An unreachable Redis falls back to nil.
func openLock(ctx context.Context, cfg domain.LockSettings) driven.EnrichmentLock {
	if cfg.Backend != domain.LockRedis {
		return nil
	}

	lock, err := redislock.NewLock(ctx, redislock.Config{
		Addr: cfg.RedisAddr,
		TTL:  cfg.TTL,
	})
	if err != nil {
		logger.Warn("redis lock unavailable, enrichments are only serialised in this process: %v", err)
		return nil
	}
	return lock
}
