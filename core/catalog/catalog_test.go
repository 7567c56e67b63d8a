package catalog

import (
	"context"
	"testing"
	"time"

	"mod-manager/core/store"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_AddFirstWins(t *testing.T) {
	c := New(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-03-01", c.Date)

	assert.True(t, c.Add("SAIN", "<li>one</li>"))
	assert.True(t, c.Add("Looting Bots", "<li>two</li>"))
	assert.False(t, c.Add("SAIN", "<li>dup</li>"))

	e, ok := c.Get("SAIN")
	require.True(t, ok)
	assert.Equal(t, "<li>one</li>", e.Content)
	assert.Equal(t, []string{"SAIN", "Looting Bots"}, c.Names())
	assert.Equal(t, 2, c.Len())
}

func TestCatalog_Age(t *testing.T) {
	c := &Catalog{Date: "2024-03-01"}
	age, ok := c.Age(time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, 48*time.Hour, age)

	_, ok = (&Catalog{Date: "yesterday"}).Age(time.Now())
	assert.False(t, ok)
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewStore(store.NewFileBackend(afero.NewMemMapFs(), "/spt"), "cache.json")

	c := New(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	c.Add("Zeta", `<div class="card"><a href="/files/file/1-zeta/">Zeta</a></div>`)
	c.Add("Alpha", `<div>alpha</div>`)
	e, _ := c.Get("Alpha")
	e.Download = "https://example.com/alpha.7z"

	require.NoError(t, s.Save(ctx, c))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", loaded.Date)
	assert.Equal(t, []string{"Zeta", "Alpha"}, loaded.Names())

	zeta, _ := loaded.Get("Zeta")
	assert.Equal(t, `<div class="card"><a href="/files/file/1-zeta/">Zeta</a></div>`, zeta.Content)
	assert.Empty(t, zeta.Download)

	alpha, _ := loaded.Get("Alpha")
	assert.Equal(t, "https://example.com/alpha.7z", alpha.Download)
}

func TestStore_MissingAndClear(t *testing.T) {
	ctx := context.Background()
	s := NewStore(store.NewFileBackend(afero.NewMemMapFs(), "/spt"), "cache.json")

	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, ErrNoCache)

	require.NoError(t, s.Save(ctx, New(time.Now())))
	_, err = s.Load(ctx)
	require.NoError(t, err)

	require.NoError(t, s.Clear(ctx))
	_, err = s.Load(ctx)
	assert.ErrorIs(t, err, ErrNoCache)
}
