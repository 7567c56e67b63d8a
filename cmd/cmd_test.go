package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingCard = `<li class="filebaseFileCard">
  <a href="/files/file/2-bigbrain/">
    <div class="filebaseFileSubject"><span>BigBrain</span></div>
    <span class="badge label">SPT 3.8.X</span>
  </a>
</li>`

func newHub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/files/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("pageNo") == "1" {
			fmt.Fprintf(w, "<html><body><ol>%s</ol></body></html>", listingCard)
			return
		}
		fmt.Fprint(w, "<html><body><ol></ol></body></html>")
	})
	mux.HandleFunc("/files/file/2-bigbrain/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<a class="filebaseDownloadButton" href="/files/file-download/2/">Download</a>`)
	})
	mux.HandleFunc("/files/file-download/2/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<a class="externalURL" href="https://example.com/bigbrain.zip">mirror</a>`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func setupWorkDir(t *testing.T, hubURL string) (dir, spt string) {
	t.Helper()
	dir = t.TempDir()
	spt = filepath.Join(dir, "spt")
	require.NoError(t, os.MkdirAll(spt, 0o755))

	manifest := fmt.Sprintf(`{"url": %q, "targetSptVersion": "SPT 3.8.x", "hubMods": {}, "customMods": {}}`, hubURL+"/files/")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mods.json"), []byte(manifest), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hubMods.txt"), []byte("# wanted\nbig brain\n"), 0o644))
	return dir, spt
}

// resetFlags restores flag defaults; cobra keeps parsed values between executions.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(RootCmd)
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetIn(strings.NewReader(""))
	RootCmd.SetArgs(args)
	t.Cleanup(func() { RootCmd.SetArgs(nil) })
	err := RootCmd.Execute()
	return out.String(), err
}

func TestSync_EndToEnd(t *testing.T) {
	srv := newHub(t)
	dir, spt := setupWorkDir(t, srv.URL)
	planPath := filepath.Join(dir, "plan.json")

	out, err := execute(t, "--dir", dir, "sync", spt, "--no-prompt", "--pages", "2", "--output", planPath)
	require.NoError(t, err)

	assert.Contains(t, out, "BigBrain")
	assert.Contains(t, out, "https://example.com/bigbrain.zip")

	list, err := os.ReadFile(filepath.Join(dir, "hubMods.txt"))
	require.NoError(t, err)
	assert.Equal(t, "# wanted\nBigBrain\n", string(list))

	manifest, err := os.ReadFile(filepath.Join(dir, "mods.json"))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), `"BigBrain"`)
	assert.Contains(t, string(manifest), `"version": "SPT 3.8.X"`)

	raw, err := os.ReadFile(planPath)
	require.NoError(t, err)
	var plan struct {
		Downloadable []struct {
			Name     string `json:"name"`
			Download string `json:"download"`
		} `json:"downloadable"`
		Dirty bool `json:"dirty"`
	}
	require.NoError(t, json.Unmarshal(raw, &plan))
	require.Len(t, plan.Downloadable, 1)
	assert.Equal(t, "BigBrain", plan.Downloadable[0].Name)
	assert.Equal(t, "https://example.com/bigbrain.zip", plan.Downloadable[0].Download)
	assert.True(t, plan.Dirty)

	out, err = execute(t, "--dir", dir, "cache", "info")
	require.NoError(t, err)
	assert.Contains(t, out, "Listings: 1")
	assert.Contains(t, out, "Resolved downloads: 1")
}

func TestSync_MissingSptPath(t *testing.T) {
	dir, _ := setupWorkDir(t, "http://127.0.0.1:0")
	_, err := execute(t, "--dir", dir, "sync", filepath.Join(dir, "nope"), "--no-prompt")
	assert.ErrorContains(t, err, "is not a directory")
}

func TestCacheInfo_NoCache(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "--dir", dir, "cache", "info")
	require.NoError(t, err)
	assert.Contains(t, out, "No cached catalog.")
}
