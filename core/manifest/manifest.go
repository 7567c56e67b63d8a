package manifest

import (
	"fmt"

	"mod-manager/core/utils"
)

// Section names, as they appear in the manifest document.
const (
	SectionHub    = "hubMods"
	SectionCustom = "customMods"
)

// Installation is the on-disk footprint of an installed mod.
type Installation struct {
	// Primary lists plugin paths that only need to exist.
	Primary []string `json:"primary"`
	// Managed lists mod directories whose package metadata must also be current.
	Managed []string `json:"managed"`
}

// Empty reports whether no footprint is declared.
func (i Installation) Empty() bool {
	return len(i.Primary) == 0 && len(i.Managed) == 0
}

// Entry is a single mod record.
type Entry struct {
	Version      string       `json:"version"`
	Download     string       `json:"download"`
	Installation Installation `json:"installation"`
	Dependencies []string     `json:"dependencies"`
}

// NewEntry creates an entry with empty (non-null) footprint and dependency lists.
func NewEntry() *Entry {
	return &Entry{
		Installation: Installation{Primary: []string{}, Managed: []string{}},
		Dependencies: []string{},
	}
}

// Section is an ordered set of entries keyed by canonical mod name.
type Section = utils.OrderedMap[*Entry]

// Manifest is the persisted manifest document.
type Manifest struct {
	// URL is the hub listing page the catalog is scraped from.
	URL string `json:"url"`
	// TargetSptVersion is the platform baseline, e.g. "SPT 3.8.x".
	TargetSptVersion string `json:"targetSptVersion"`
	// HubMods are entries resolved against the hub catalog.
	HubMods *Section `json:"hubMods"`
	// CustomMods are hand-maintained entries.
	CustomMods *Section `json:"customMods"`
}

// New creates an empty manifest.
func New(url, target string) *Manifest {
	m := &Manifest{URL: url, TargetSptVersion: target}
	m.normalize()
	return m
}

func (m *Manifest) normalize() {
	if m.HubMods == nil {
		m.HubMods = utils.NewOrderedMap[*Entry]()
	}
	if m.CustomMods == nil {
		m.CustomMods = utils.NewOrderedMap[*Entry]()
	}
}

// validate rejects entries written as JSON null.
func (m *Manifest) validate() error {
	for _, section := range m.Sections() {
		for _, name := range section.Entries.Keys() {
			if entry, _ := section.Entries.Get(name); entry == nil {
				return fmt.Errorf("%s entry %q is null", section.Name, name)
			}
		}
	}
	return nil
}

// Sections returns the sections in evaluation order.
func (m *Manifest) Sections() []NamedSection {
	return []NamedSection{
		{Name: SectionHub, Entries: m.HubMods},
		{Name: SectionCustom, Entries: m.CustomMods},
	}
}

// NamedSection pairs a section with its document key.
type NamedSection struct {
	Name    string
	Entries *Section
}

// Lookup finds an entry by exact name, hub section first.
func (m *Manifest) Lookup(name string) (*Entry, bool) {
	if e, ok := m.HubMods.Get(name); ok {
		return e, true
	}
	if e, ok := m.CustomMods.Get(name); ok {
		return e, true
	}
	return nil, false
}

// Names returns every entry name, hub section first.
func (m *Manifest) Names() []string {
	names := m.HubMods.Keys()
	return append(names, m.CustomMods.Keys()...)
}

// Len returns the total number of entries.
func (m *Manifest) Len() int {
	return m.HubMods.Len() + m.CustomMods.Len()
}
