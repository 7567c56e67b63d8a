package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mod-manager/core/catalog"
	"mod-manager/core/logger"
	"mod-manager/core/manifest"
	"mod-manager/core/similarity"
	"mod-manager/core/version"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine runs reconciliations. It holds no per-run state.
type Engine struct {
	source    Source
	installer Installer
	stores    Stores
	logger    *zap.Logger
	now       func() time.Time
}

// NewEngine creates an engine.
func NewEngine(source Source, installer Installer, stores Stores, logger *zap.Logger) *Engine {
	return &Engine{
		source:    source,
		installer: installer,
		stores:    stores,
		logger:    logger,
		now:       time.Now,
	}
}

// Run performs a full reconciliation: load, resolve, persist, evaluate.
func (e *Engine) Run(ctx context.Context, opts Options) (*Plan, error) {
	plan := &Plan{RunID: uuid.NewString(), StartedAt: e.now()}
	log := logger.WithRunID(e.logger, plan.RunID)

	session, err := e.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	plan.Target = session.Target.String()
	plan.CatalogSource = session.CatalogSource
	plan.CatalogDate = session.Catalog.Date

	log.Info("Reconciling",
		zap.String("target", plan.Target),
		zap.String("catalog", plan.CatalogSource),
		zap.Int("catalog_entries", session.Catalog.Len()),
		zap.Int("user_mods", session.List.Len()))

	changes, failures, err := e.Resolve(ctx, session, opts)
	if err != nil {
		return nil, err
	}
	plan.Resolution = changes
	plan.Failures = failures
	plan.Dirty = session.Dirty

	if err := e.Persist(ctx, session, opts); err != nil {
		return nil, err
	}

	results, err := e.Evaluate(ctx, session, opts)
	if err != nil {
		return nil, err
	}
	plan.add(results...)
	plan.FinishedAt = e.now()

	log.Info("Reconciliation finished",
		zap.Int("downloadable", plan.Summary.Downloadable),
		zap.Int("skipped", plan.Summary.Skipped),
		zap.Int("up_to_date", plan.Summary.UpToDate),
		zap.Int("failures", plan.Summary.Failures),
		zap.Bool("dirty", plan.Dirty))

	return plan, nil
}

// Load reads the manifest and user list, parses the target and obtains the catalog.
// A malformed target fails before the catalog is touched.
func (e *Engine) Load(ctx context.Context, opts Options) (*Session, error) {
	m, err := e.stores.Manifest.Load(ctx)
	if err != nil {
		return nil, err
	}

	target, err := version.ParseTarget(m.TargetSptVersion)
	if err != nil {
		return nil, fmt.Errorf("invalid manifest target: %w", err)
	}

	list, err := e.stores.ModList.Load(ctx)
	if err != nil {
		return nil, err
	}

	s := &Session{Manifest: m, List: list, Target: target}

	if opts.UseCache {
		c, err := e.stores.Catalog.Load(ctx)
		if err != nil {
			return nil, err
		}
		s.Catalog = c
		s.CatalogSource = CatalogFromCache
		return s, nil
	}

	c, err := e.source.FetchCatalog(ctx, m.URL, opts.Pages)
	if err != nil {
		return nil, fmt.Errorf("failed to scrape catalog from %s: %w", e.source.Name(), err)
	}
	s.Catalog = c
	s.CatalogSource = CatalogFromScrape
	return s, nil
}

// Resolve aligns user list names with catalog names and creates or refreshes
// hub manifest entries. It sets session.Dirty when persisted state changed.
// Per-mod fetch problems are returned as failures; only cancellation aborts.
func (e *Engine) Resolve(ctx context.Context, s *Session, opts Options) ([]Change, []Failure, error) {
	var (
		changes  []Change
		failures []Failure
	)

	record := func(c Change) {
		changes = append(changes, c)
		s.Dirty = true
		if opts.OnChange != nil {
			opts.OnChange(c)
		}
	}
	fail := func(name, stage string, err error) {
		e.logger.Warn("Failed to resolve mod", zap.String("mod", name), zap.String("stage", stage), zap.Error(err))
		failures = append(failures, Failure{Name: name, Stage: stage, Message: err.Error(), Err: err})
	}

	candidates := s.Catalog.Names()

	for i := 0; i < s.List.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return changes, failures, err
		}

		name := s.List.Name(i)
		match, ok := similarity.Resolve(name, candidates)
		if !ok {
			fail(name, "match", errors.New("catalog is empty"))
			continue
		}

		if !match.Exact(name) {
			s.List.Rename(i, match.Name)
			record(Change{Kind: ChangeRenamed, Name: match.Name, From: name, Score: match.Score})
		}

		existing, exists := s.Manifest.HubMods.Get(match.Name)
		if exists && !opts.Refresh {
			continue
		}

		listing, _ := s.Catalog.Get(match.Name)
		label, err := e.source.VersionLabel(listing.Content)
		if err != nil {
			fail(match.Name, "version", err)
			continue
		}

		download, err := e.download(ctx, listing)
		if err != nil {
			if ctx.Err() != nil {
				return changes, failures, ctx.Err()
			}
			fail(match.Name, "download", err)
			continue
		}

		if !exists {
			entry := manifest.NewEntry()
			entry.Version = label
			entry.Download = download
			s.Manifest.HubMods.Set(match.Name, entry)
			record(Change{Kind: ChangeCreated, Name: match.Name, Version: label, Download: download})
			continue
		}

		if existing.Version != label || existing.Download != download {
			existing.Version = label
			existing.Download = download
			record(Change{Kind: ChangeRefreshed, Name: match.Name, Version: label, Download: download})
		}
	}

	return changes, failures, nil
}

// download returns the cached download URL of a listing or resolves and caches it.
func (e *Engine) download(ctx context.Context, listing *catalog.Entry) (string, error) {
	if listing.Download != "" {
		return listing.Download, nil
	}
	url, err := e.source.ResolveDownload(ctx, listing.Content)
	if err != nil {
		return "", err
	}
	listing.Download = url
	return url, nil
}

// Persist writes the user list, manifest and catalog when the session is dirty.
// A clean session only writes a freshly scraped catalog, and only with SaveCache.
func (e *Engine) Persist(ctx context.Context, s *Session, opts Options) error {
	if !s.Dirty {
		if opts.SaveCache && s.Fresh() {
			return e.stores.Catalog.Save(ctx, s.Catalog)
		}
		return nil
	}

	if err := e.stores.ModList.Save(ctx, s.List); err != nil {
		return err
	}
	if err := e.stores.Manifest.Save(ctx, s.Manifest); err != nil {
		return err
	}
	if err := e.stores.Catalog.Save(ctx, s.Catalog); err != nil {
		return err
	}

	e.logger.Debug("Persisted reconciliation state")
	return nil
}

// Evaluate runs the status state machine over every manifest entry, hub
// section first. Unknown dependencies fail before any entry is evaluated.
func (e *Engine) Evaluate(ctx context.Context, s *Session, opts Options) ([]Result, error) {
	if err := ValidateDependencies(s.Manifest); err != nil {
		return nil, err
	}

	results := make([]Result, 0, s.Manifest.Len())
	for _, section := range s.Manifest.Sections() {
		for _, name := range section.Entries.Keys() {
			if err := ctx.Err(); err != nil {
				return results, err
			}

			entry, _ := section.Entries.Get(name)
			r := e.evaluate(s, section.Name, name, entry, opts)
			results = append(results, r)
			if opts.OnResult != nil {
				opts.OnResult(r)
			}
		}
	}
	return results, nil
}

func (e *Engine) evaluate(s *Session, section, name string, entry *manifest.Entry, opts Options) Result {
	r := Result{Section: section, Name: name, Version: entry.Version}

	if !opts.IncludeOutdated {
		for _, dep := range entry.Dependencies {
			depEntry, _ := s.Manifest.Lookup(dep)
			if !e.current(s.Target, dep, depEntry.Version) {
				r.State = StateSkipped
				r.Reason = ReasonOutdatedDependency
				r.Dependency = dep
				return r
			}
		}

		if !e.current(s.Target, name, entry.Version) {
			r.State = StateSkipped
			r.Reason = ReasonOutdatedSelf
			return r
		}
	}

	if e.installer.Installed(entry.Installation, s.Target) {
		r.State = StateUpToDate
		return r
	}

	r.State = StateNeedsDownload
	r.Download = entry.Download
	return r
}

// current treats malformed versions as not current.
func (e *Engine) current(target version.Target, name, v string) bool {
	ok, err := target.Satisfies(v)
	if err != nil {
		e.logger.Warn("Unparseable mod version", zap.String("mod", name), zap.String("version", v), zap.Error(err))
		return false
	}
	return ok
}

// ValidateDependencies checks that every declared dependency exists in the manifest.
func ValidateDependencies(m *manifest.Manifest) error {
	for _, section := range m.Sections() {
		var err error
		section.Entries.Each(func(name string, entry *manifest.Entry) bool {
			for _, dep := range entry.Dependencies {
				if _, ok := m.Lookup(dep); !ok {
					err = &UnknownDependencyError{Section: section.Name, Mod: name, Dependency: dep}
					return false
				}
			}
			return true
		})
		if err != nil {
			return err
		}
	}
	return nil
}
