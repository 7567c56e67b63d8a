package hub

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() Config {
	return Config{
		TimeoutSeconds:   5,
		MaxRetries:       2,
		InitialBackoffMs: 1,
		MaxBackoffMs:     2,
		UserAgent:        "mod-manager-test",
	}
}

func card(name, href, label string) string {
	return fmt.Sprintf(`<li class="filebaseFileCard">
  <a href="%s" class="box128">
    <div class="filebaseFileSubject"><span> %s </span></div>
    <ul class="labelList"><li><span class="badge label green">%s</span></li></ul>
  </a>
</li>`, href, name, label)
}

// newHubServer serves two listing pages, detail pages and download pages.
func newHubServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/files/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get(PageParam) {
		case "1":
			fmt.Fprintf(w, `<html><body><ol>%s%s</ol></body></html>`,
				card("SAIN", "/files/file/1-sain/", "SPT 3.8.X"),
				card("BigBrain", "/files/file/2-bigbrain/", "SPT 3.8.0"))
		case "2":
			fmt.Fprintf(w, `<html><body><ol>%s%s</ol></body></html>`,
				card("SAIN", "/files/file/99-sain-fork/", "SPT 3.7.X"),
				card("Looting Bots", "/files/file/3-looting/", "SPT 3.8.0"))
		default:
			fmt.Fprint(w, `<html><body><ol></ol></body></html>`)
		}
	})
	mux.HandleFunc("/files/file/1-sain/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<a class="button filebaseDownloadButton" href="/files/file-download/1/">Download</a>`)
	})
	mux.HandleFunc("/files/file/2-bigbrain/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<a class="button" href="/files/file-download/2/">Download</a>`)
	})
	mux.HandleFunc("/files/file/3-looting/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<p>nothing to see</p>`)
	})
	mux.HandleFunc("/files/file-download/1/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<a class="externalURL" href="https://github.com/sain/releases/sain.7z">mirror</a>`)
	})
	mux.HandleFunc("/files/file-download/2/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><meta http-equiv="refresh" content="0; url='https://example.com/bigbrain.zip'"></head></html>`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestAdapter_FetchCatalog(t *testing.T) {
	srv := newHubServer(t)
	a := NewAdapter(NewClient(testConfig(), zap.NewNop()), zap.NewNop())
	a.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	c, err := a.FetchCatalog(context.Background(), srv.URL+"/files/", 5)
	require.NoError(t, err)

	assert.Equal(t, "2024-05-01", c.Date)
	assert.Equal(t, []string{"SAIN", "BigBrain", "Looting Bots"}, c.Names())

	// Duplicate names keep the first card.
	sain, _ := c.Get("SAIN")
	assert.Contains(t, sain.Content, srv.URL+"/files/file/1-sain/")

	label, err := a.VersionLabel(sain.Content)
	require.NoError(t, err)
	assert.Equal(t, "SPT 3.8.X", label)
}

func TestAdapter_ResolveDownload(t *testing.T) {
	srv := newHubServer(t)
	a := NewAdapter(NewClient(testConfig(), zap.NewNop()), zap.NewNop())
	ctx := context.Background()

	c, err := a.FetchCatalog(ctx, srv.URL+"/files/", 2)
	require.NoError(t, err)

	tests := []struct {
		name    string
		want    string
		wantErr error
	}{
		{"SAIN", "https://github.com/sain/releases/sain.7z", nil},
		{"BigBrain", "https://example.com/bigbrain.zip", nil},
		{"Looting Bots", "", ErrNoDownloadLink},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, ok := c.Get(tt.name)
			require.True(t, ok)

			got, err := a.ResolveDownload(ctx, entry.Content)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPageURL(t *testing.T) {
	got, err := PageURL("https://hub.sp-tarkov.com/files/?sortField=time", 3)
	require.NoError(t, err)
	assert.Equal(t, "https://hub.sp-tarkov.com/files/?pageNo=3&sortField=time", got)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "mod-manager-test", r.Header.Get("User-Agent"))
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, "ok")
	}))
	defer srv.Close()

	page, err := NewClient(testConfig(), zap.NewNop()).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(page.Body))
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_Exhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewClient(testConfig(), zap.NewNop()).Fetch(context.Background(), srv.URL)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 3, fe.Attempts)
	assert.Equal(t, srv.URL, fe.URL)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusTooManyRequests, se.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_NotFoundIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewClient(testConfig(), zap.NewNop()).Fetch(context.Background(), srv.URL)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 1, fe.Attempts)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(testConfig(), zap.NewNop()).Fetch(ctx, srv.URL)
	assert.ErrorIs(t, err, context.Canceled)
}

// countingFetcher returns a fresh page for every call.
type countingFetcher struct {
	calls atomic.Int32
	err   error
}

func (f *countingFetcher) Fetch(_ context.Context, url string) (*Page, error) {
	n := f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &Page{URL: url, Body: []byte(fmt.Sprintf("v%d", n))}, nil
}

func TestPageCache(t *testing.T) {
	next := &countingFetcher{}
	cache := NewPageCache(next, time.Minute)
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	p1, err := cache.Fetch(ctx, "https://hub/a")
	require.NoError(t, err)
	p2, err := cache.Fetch(ctx, "https://hub/a")
	require.NoError(t, err)
	assert.Same(t, p1, p2)
	assert.Equal(t, int32(1), next.calls.Load())
	assert.Equal(t, 1, cache.Len())

	now = now.Add(2 * time.Minute)
	p3, err := cache.Fetch(ctx, "https://hub/a")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(p3.Body))

	cache.Invalidate()
	assert.Equal(t, 0, cache.Len())
}

func TestPageCache_Disabled(t *testing.T) {
	next := &countingFetcher{}
	cache := NewPageCache(next, 0)
	ctx := context.Background()

	_, _ = cache.Fetch(ctx, "https://hub/a")
	_, _ = cache.Fetch(ctx, "https://hub/a")
	assert.Equal(t, int32(2), next.calls.Load())
	assert.Equal(t, 0, cache.Len())
}

func TestPageCache_ErrorsAreNotCached(t *testing.T) {
	next := &countingFetcher{err: errors.New("boom")}
	cache := NewPageCache(next, time.Minute)

	_, err := cache.Fetch(context.Background(), "https://hub/a")
	assert.EqualError(t, err, "boom")
	assert.Equal(t, 0, cache.Len())
}
