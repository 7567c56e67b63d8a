package catalog

import (
	"time"

	"mod-manager/core/utils"
)

// DateLayout is the layout of the cache date field.
const DateLayout = "2006-01-02"

// Entry is one scraped listing.
type Entry struct {
	// Content is the serialized HTML fragment of the listing card.
	Content string `json:"content"`
	// Download is the resolved download URL, once known.
	Download string `json:"download,omitempty"`
}

// Catalog is the scraped set of listings keyed by display name.
type Catalog struct {
	Date string                    `json:"date"`
	Tabs *utils.OrderedMap[*Entry] `json:"tabs"`
}

// New creates an empty catalog dated at the given time.
func New(at time.Time) *Catalog {
	return &Catalog{
		Date: at.Format(DateLayout),
		Tabs: utils.NewOrderedMap[*Entry](),
	}
}

// Add stores an entry. The first entry seen for a name wins.
func (c *Catalog) Add(name, content string) bool {
	if c.Tabs.Has(name) {
		return false
	}
	c.Tabs.Set(name, &Entry{Content: content})
	return true
}

// Get returns the entry for name.
func (c *Catalog) Get(name string) (*Entry, bool) {
	return c.Tabs.Get(name)
}

// Names returns the listing names in scrape order.
func (c *Catalog) Names() []string {
	return c.Tabs.Keys()
}

// Len returns the number of listings.
func (c *Catalog) Len() int {
	return c.Tabs.Len()
}

// Age returns how long ago the catalog was scraped, relative to now.
// An unparseable date reports ok=false.
func (c *Catalog) Age(now time.Time) (time.Duration, bool) {
	d, err := time.ParseInLocation(DateLayout, c.Date, now.Location())
	if err != nil {
		return 0, false
	}
	return now.Sub(d), true
}
