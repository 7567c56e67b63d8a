package audit

import (
	"path/filepath"
	"testing"

	"mod-manager/core/manifest"
	"mod-manager/core/version"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const root = "/spt"

func setupFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()

	require.NoError(t, fs.MkdirAll(filepath.Join(root, PluginsDir, "SAIN"), 0o755))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(root, PluginsDir, "BigBrain.dll"), []byte{0}, 0o644))

	writeMeta := func(dir, body string) {
		require.NoError(t, fs.MkdirAll(filepath.Join(root, ModsDir, dir), 0o755))
		if body != "" {
			require.NoError(t, afero.WriteFile(fs, filepath.Join(root, ModsDir, dir, MetadataFile), []byte(body), 0o644))
		}
	}
	writeMeta("current", `{"name":"current","sptVersion":"~3.8.0"}`)
	writeMeta("legacy", `{"name":"legacy","akiVersion":">=3.8.1"}`)
	writeMeta("old", `{"name":"old","sptVersion":"3.7.4"}`)
	writeMeta("nometa", "")
	writeMeta("broken", `{not json`)
	writeMeta("noversion", `{"name":"noversion"}`)
	writeMeta("numeric", `{"name":"numeric","sptVersion":3.8}`)

	return fs
}

func TestInstalled(t *testing.T) {
	a := New(setupFs(t), root, zap.NewNop())
	target := version.MustParseTarget("SPT 3.8.0")

	tests := []struct {
		name string
		inst manifest.Installation
		want bool
	}{
		{"empty footprint", manifest.Installation{}, false},
		{"primary dir", manifest.Installation{Primary: []string{"SAIN"}}, true},
		{"primary file", manifest.Installation{Primary: []string{"BigBrain.dll"}}, true},
		{"primary missing", manifest.Installation{Primary: []string{"SAIN", "Waypoints.dll"}}, false},
		{"managed current", manifest.Installation{Managed: []string{"current"}}, true},
		{"managed aki fallback", manifest.Installation{Managed: []string{"legacy"}}, true},
		{"managed outdated", manifest.Installation{Managed: []string{"old"}}, false},
		{"managed missing dir", manifest.Installation{Managed: []string{"absent"}}, false},
		{"managed missing metadata", manifest.Installation{Managed: []string{"nometa"}}, false},
		{"managed invalid metadata", manifest.Installation{Managed: []string{"broken"}}, false},
		{"managed no version field", manifest.Installation{Managed: []string{"noversion"}}, false},
		{"managed numeric version", manifest.Installation{Managed: []string{"numeric"}}, true},
		{"all pass", manifest.Installation{Primary: []string{"SAIN"}, Managed: []string{"current", "legacy"}}, true},
		{"one managed fails", manifest.Installation{Primary: []string{"SAIN"}, Managed: []string{"current", "old"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Installed(tt.inst, target))
		})
	}
}

func TestInstalled_EmptyFootprintAnyTarget(t *testing.T) {
	a := New(setupFs(t), root, zap.NewNop())
	for _, target := range []string{"SPT 0.0.0", "SPT 3.8.0", "SPT 99.x"} {
		assert.False(t, a.Installed(manifest.Installation{Primary: []string{}, Managed: []string{}}, version.MustParseTarget(target)), target)
	}
}

func TestTrimRange(t *testing.T) {
	assert.Equal(t, "3.8.0", trimRange("~3.8.0"))
	assert.Equal(t, "3.8.0", trimRange("^3.8.0"))
	assert.Equal(t, "3.8.0", trimRange(">=3.8.0"))
	assert.Equal(t, "3.8.0", trimRange(" v3.8.0"))
	assert.Equal(t, "3.8.0", trimRange("3.8.0"))
}
