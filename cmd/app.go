package cmd

import (
	"context"
	"fmt"

	"mod-manager/core/catalog"
	"mod-manager/core/config"
	"mod-manager/core/database"
	"mod-manager/core/logger"
	"mod-manager/core/manifest"
	"mod-manager/core/modlist"
	"mod-manager/core/reconcile"
	"mod-manager/core/storage"
	"mod-manager/core/store"
	"mod-manager/feature/history"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// app bundles what every command needs: configuration, logger and state stores.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	backend store.Backend
	closers []func()
}

// bootstrap loads configuration from dir, builds the logger and the state backend.
// When object storage is enabled, state documents are mirrored to the bucket.
func bootstrap(ctx context.Context, dir string) (*app, error) {
	cfg, err := config.LoadConfig(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	a := &app{cfg: cfg, logger: l}
	a.closers = append(a.closers, func() { _ = l.Sync() })

	var backend store.Backend = store.NewFileBackend(afero.NewOsFs(), dir)
	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
		objects := store.NewObjectBackend(client, cfg.Storage.Bucket, cfg.Storage.Prefix)
		if err := objects.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		backend = store.NewMirror(backend, objects, l)
		l.Debug("Mirroring state to object storage", zap.String("bucket", cfg.Storage.Bucket))
	}
	a.backend = backend

	return a, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func (a *app) manifests() *manifest.Store {
	return manifest.NewStore(a.backend, a.cfg.Files.ManifestPath)
}

func (a *app) catalogs() *catalog.Store {
	return catalog.NewStore(a.backend, a.cfg.Files.CachePath)
}

func (a *app) stores() reconcile.Stores {
	return reconcile.Stores{
		Manifest: a.manifests(),
		ModList:  modlist.NewStore(a.backend, a.cfg.Files.ModListPath),
		Catalog:  a.catalogs(),
	}
}

// recorder connects to the history database and, when migrate is set, creates
// the history tables. It returns nil when history is disabled.
func (a *app) recorder(ctx context.Context, migrate bool) (*history.Recorder, error) {
	if !a.cfg.Database.Enabled {
		return nil, nil
	}

	db, err := database.Connect(a.cfg.Database)
	if err != nil {
		return nil, err
	}
	if sqlDB, err := db.DB(); err == nil {
		a.closers = append(a.closers, func() { _ = sqlDB.Close() })
	}

	rec := history.NewRecorder(db, a.logger)
	if !migrate {
		return rec, nil
	}
	if err := rec.Migrate(ctx); err != nil {
		return nil, err
	}
	return rec, nil
}
