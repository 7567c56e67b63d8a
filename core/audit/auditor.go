package audit

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"mod-manager/core/manifest"
	"mod-manager/core/utils"
	"mod-manager/core/version"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	// PluginsDir holds primary (plugin) footprints, relative to the SPT root.
	PluginsDir = "BepInEx/plugins"
	// ModsDir holds managed (server mod) footprints, relative to the SPT root.
	ModsDir = "user/mods"
	// MetadataFile is the sidecar read from each managed mod directory.
	MetadataFile = "package.json"
)

// metadata is the subset of a server mod package.json the auditor reads.
// Some mods write the version as a bare number, so both fields stay untyped.
type metadata struct {
	SptVersion any `json:"sptVersion"`
	AkiVersion any `json:"akiVersion"`
}

func (m metadata) compatibility() string {
	if v := utils.ToString(m.SptVersion); v != "" {
		return v
	}
	return utils.ToString(m.AkiVersion)
}

// Auditor checks installation footprints under an SPT root.
type Auditor struct {
	fs     afero.Fs
	root   string
	logger *zap.Logger
}

// New creates an auditor rooted at the SPT installation directory.
func New(fs afero.Fs, root string, logger *zap.Logger) *Auditor {
	return &Auditor{fs: fs, root: root, logger: logger}
}

// Root returns the installation root.
func (a *Auditor) Root() string {
	return a.root
}

// Installed reports whether every footprint entry is present and current.
// An empty footprint is never installed.
func (a *Auditor) Installed(inst manifest.Installation, target version.Target) bool {
	if inst.Empty() {
		return false
	}

	for _, p := range inst.Primary {
		if !a.exists(filepath.Join(a.root, PluginsDir, p)) {
			a.logger.Debug("Primary footprint missing", zap.String("path", p))
			return false
		}
	}

	for _, p := range inst.Managed {
		if !a.managedCurrent(p, target) {
			return false
		}
	}

	return true
}

func (a *Auditor) managedCurrent(p string, target version.Target) bool {
	dir := filepath.Join(a.root, ModsDir, p)
	if !a.exists(dir) {
		a.logger.Debug("Managed footprint missing", zap.String("path", p))
		return false
	}

	data, err := afero.ReadFile(a.fs, filepath.Join(dir, MetadataFile))
	if err != nil {
		a.logger.Debug("Mod metadata unreadable", zap.String("path", p), zap.Error(err))
		return false
	}

	var meta metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		a.logger.Debug("Mod metadata is not valid JSON", zap.String("path", p), zap.Error(err))
		return false
	}

	compat := trimRange(meta.compatibility())
	ok, err := target.Satisfies(compat)
	if err != nil {
		a.logger.Debug("Mod metadata version malformed",
			zap.String("path", p),
			zap.String("version", compat),
			zap.Error(err))
		return false
	}
	return ok
}

func (a *Auditor) exists(path string) bool {
	ok, err := afero.Exists(a.fs, path)
	return err == nil && ok
}

// trimRange strips semver range operators such as "~3.8.0" or ">=3.8.0".
func trimRange(s string) string {
	return strings.TrimLeft(strings.TrimSpace(s), "~^>=v ")
}
