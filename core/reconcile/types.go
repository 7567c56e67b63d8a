package reconcile

import (
	"fmt"
	"time"
)

// State is the terminal status of an evaluated manifest entry.
type State string

const (
	// StateSkipped means the entry was held back by a currency gate.
	StateSkipped State = "skipped"
	// StateUpToDate means the entry is installed and current.
	StateUpToDate State = "up_to_date"
	// StateNeedsDownload means the entry should be downloaded.
	StateNeedsDownload State = "needs_download"
)

// Reason explains why an entry was skipped.
type Reason string

const (
	// ReasonOutdatedDependency marks an entry whose dependency is not current.
	ReasonOutdatedDependency Reason = "outdated-dependency"
	// ReasonOutdatedSelf marks an entry whose own version is not current.
	ReasonOutdatedSelf Reason = "outdated-self"
)

// Result is the evaluation outcome for a single manifest entry.
type Result struct {
	// Section is the manifest section the entry belongs to.
	Section string `json:"section" yaml:"section"`

	// Name is the canonical entry name.
	Name string `json:"name" yaml:"name"`

	// Version is the recorded version of the entry.
	Version string `json:"version" yaml:"version"`

	State State `json:"state" yaml:"state"`

	// Reason is set for skipped entries.
	Reason Reason `json:"reason,omitempty" yaml:"reason,omitempty"`

	// Dependency names the first outdated dependency for ReasonOutdatedDependency.
	Dependency string `json:"dependency,omitempty" yaml:"dependency,omitempty"`

	// Download is set for entries that need downloading.
	Download string `json:"download,omitempty" yaml:"download,omitempty"`
}

// ChangeKind classifies a mutation made by the resolution pass.
type ChangeKind string

const (
	// ChangeRenamed is a user list name corrected to the catalog name.
	ChangeRenamed ChangeKind = "renamed"
	// ChangeCreated is a new hub manifest entry.
	ChangeCreated ChangeKind = "created"
	// ChangeRefreshed is an existing hub entry whose version or download changed.
	ChangeRefreshed ChangeKind = "refreshed"
)

// Change records one state mutation of the resolution pass.
type Change struct {
	Kind ChangeKind `json:"kind" yaml:"kind"`

	// Name is the canonical (catalog) name.
	Name string `json:"name" yaml:"name"`

	// From is the user list name before a rename.
	From string `json:"from,omitempty" yaml:"from,omitempty"`

	// Score is the similarity of From to Name for renames.
	Score float64 `json:"score,omitempty" yaml:"score,omitempty"`

	Version  string `json:"version,omitempty" yaml:"version,omitempty"`
	Download string `json:"download,omitempty" yaml:"download,omitempty"`
}

// Failure is a per-mod problem that did not abort the run.
type Failure struct {
	Name string `json:"name" yaml:"name"`

	// Stage is "match", "version" or "download".
	Stage string `json:"stage" yaml:"stage"`

	Message string `json:"error" yaml:"error"`

	Err error `json:"-" yaml:"-"`
}

// Summary provides aggregate counts for a run.
type Summary struct {
	Total        int `json:"total" yaml:"total"`
	Downloadable int `json:"downloadable" yaml:"downloadable"`
	Skipped      int `json:"skipped" yaml:"skipped"`
	UpToDate     int `json:"up_to_date" yaml:"up_to_date"`
	Failures     int `json:"failures" yaml:"failures"`
	Renamed      int `json:"renamed" yaml:"renamed"`
	Created      int `json:"created" yaml:"created"`
	Refreshed    int `json:"refreshed" yaml:"refreshed"`
}

// Plan is the outcome of a reconciliation run.
type Plan struct {
	RunID  string `json:"run_id" yaml:"run_id"`
	Target string `json:"target" yaml:"target"`

	// CatalogSource is "cache" or "scrape".
	CatalogSource string `json:"catalog_source" yaml:"catalog_source"`
	CatalogDate   string `json:"catalog_date" yaml:"catalog_date"`

	// Results holds every evaluated entry in manifest order.
	Results []Result `json:"-" yaml:"-"`

	Downloadable []Result  `json:"downloadable" yaml:"downloadable"`
	Skipped      []Result  `json:"skipped" yaml:"skipped"`
	UpToDate     []Result  `json:"up_to_date" yaml:"up_to_date"`
	Failures     []Failure `json:"failures" yaml:"failures"`
	Resolution   []Change  `json:"resolution" yaml:"resolution"`
	Summary      Summary   `json:"summary" yaml:"summary"`

	// Dirty reports whether the resolution pass changed persisted state.
	Dirty bool `json:"dirty" yaml:"dirty"`

	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
}

// Options controls a reconciliation run.
type Options struct {
	// IncludeOutdated disables both currency gates.
	IncludeOutdated bool

	// UseCache reads the catalog from the cache instead of scraping.
	UseCache bool

	// Refresh re-reads version and download for every resolved hub entry.
	Refresh bool

	// SaveCache persists a freshly scraped catalog even when nothing else changed.
	SaveCache bool

	// Pages is the number of listing pages to scrape.
	Pages int

	// OnChange is called for each resolution change as it happens.
	OnChange func(Change)

	// OnResult is called for each evaluated entry, in manifest order.
	OnResult func(Result)
}

// UnknownDependencyError is returned when an entry depends on a name that is
// not in the manifest.
type UnknownDependencyError struct {
	Section    string
	Mod        string
	Dependency string
}

func (e *UnknownDependencyError) Error() string {
	return fmt.Sprintf("%s mod %q depends on unknown mod %q", e.Section, e.Mod, e.Dependency)
}
