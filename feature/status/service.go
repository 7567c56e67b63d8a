package status

import (
	"context"
	"errors"

	"mod-manager/core/catalog"
	"mod-manager/core/manifest"
	"mod-manager/core/similarity"
	"mod-manager/feature/history"

	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when no entry can be matched.
	ErrNotFound = errors.New("mod not found")
	// ErrHistoryDisabled is returned by run queries without a history database.
	ErrHistoryDisabled = errors.New("run history is disabled")
)

// Mod is a manifest entry with its location.
type Mod struct {
	Section string `json:"section"`
	Name    string `json:"name"`
	*manifest.Entry
}

// Hit is a fuzzy search hit.
type Hit struct {
	Section string `json:"section"`
	Name    string `json:"name"`
	Score   int    `json:"score"`
}

// SearchResult combines manifest and catalog lookups for a query.
type SearchResult struct {
	Query    string            `json:"query"`
	Manifest []Hit             `json:"manifest"`
	Catalog  *similarity.Match `json:"catalog,omitempty"`
}

// Service answers status queries.
type Service struct {
	manifests *manifest.Store
	catalogs  *catalog.Store
	history   *history.Recorder
	logger    *zap.Logger
}

// NewService creates a status service. catalogs and recorder may be nil.
func NewService(manifests *manifest.Store, catalogs *catalog.Store, recorder *history.Recorder, logger *zap.Logger) *Service {
	return &Service{manifests: manifests, catalogs: catalogs, history: recorder, logger: logger}
}

func (s *Service) mods(m *manifest.Manifest) []Mod {
	mods := make([]Mod, 0, m.Len())
	for _, section := range m.Sections() {
		section.Entries.Each(func(name string, e *manifest.Entry) bool {
			mods = append(mods, Mod{Section: section.Name, Name: name, Entry: e})
			return true
		})
	}
	return mods
}

// ListMods returns every entry, or the entries fuzzily matching query.
func (s *Service) ListMods(ctx context.Context, query string) ([]Mod, error) {
	m, err := s.manifests.Load(ctx)
	if err != nil {
		return nil, err
	}
	mods := s.mods(m)
	if query == "" {
		return mods, nil
	}

	names := make([]string, len(mods))
	for i, mod := range mods {
		names[i] = mod.Name
	}

	matches := fuzzy.Find(query, names)
	out := make([]Mod, len(matches))
	for i, match := range matches {
		out[i] = mods[match.Index]
	}
	return out, nil
}

// GetMod returns the entry named name, or the most similar one.
func (s *Service) GetMod(ctx context.Context, name string) (*Mod, float64, error) {
	m, err := s.manifests.Load(ctx)
	if err != nil {
		return nil, 0, err
	}

	mods := s.mods(m)
	names := make([]string, len(mods))
	for i, mod := range mods {
		if mod.Name == name {
			return &mods[i], 1, nil
		}
		names[i] = mod.Name
	}

	match, ok := similarity.Resolve(name, names)
	if !ok {
		return nil, 0, ErrNotFound
	}
	for i := range mods {
		if mods[i].Name == match.Name {
			return &mods[i], match.Score, nil
		}
	}
	return nil, 0, ErrNotFound
}

// Search looks query up in the manifest (fuzzy) and in the cached catalog (Dice).
func (s *Service) Search(ctx context.Context, query string) (*SearchResult, error) {
	m, err := s.manifests.Load(ctx)
	if err != nil {
		return nil, err
	}

	mods := s.mods(m)
	names := make([]string, len(mods))
	for i, mod := range mods {
		names[i] = mod.Name
	}

	result := &SearchResult{Query: query, Manifest: []Hit{}}
	for _, match := range fuzzy.Find(query, names) {
		mod := mods[match.Index]
		result.Manifest = append(result.Manifest, Hit{Section: mod.Section, Name: mod.Name, Score: match.Score})
	}

	if s.catalogs == nil {
		return result, nil
	}
	c, err := s.catalogs.Load(ctx)
	if errors.Is(err, catalog.ErrNoCache) {
		s.logger.Debug("No cached catalog to search")
		return result, nil
	}
	if err != nil {
		return nil, err
	}
	if match, ok := similarity.Resolve(query, c.Names()); ok {
		result.Catalog = &match
	}
	return result, nil
}

// Runs returns the most recent runs.
func (s *Service) Runs(ctx context.Context, limit int) ([]history.RunRecord, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	return s.history.Recent(ctx, limit)
}

// Run returns a single run with its entries.
func (s *Service) Run(ctx context.Context, runID string) (*history.RunRecord, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	return s.history.Get(ctx, runID)
}
