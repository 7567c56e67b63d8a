package reconcile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan_AddPartitions(t *testing.T) {
	p := &Plan{
		Failures: []Failure{{Name: "X", Stage: "download", Message: "timeout"}},
		Resolution: []Change{
			{Kind: ChangeRenamed, Name: "SAIN", From: "sain"},
			{Kind: ChangeCreated, Name: "SAIN"},
			{Kind: ChangeRefreshed, Name: "BigBrain"},
		},
	}

	p.add(
		Result{Name: "A", State: StateNeedsDownload, Download: "a"},
		Result{Name: "B", State: StateSkipped, Reason: ReasonOutdatedSelf},
		Result{Name: "C", State: StateUpToDate},
		Result{Name: "D", State: StateNeedsDownload, Download: "d"},
	)

	assert.Equal(t, []string{"A", "D"}, p.DownloadableNames())
	assert.Equal(t, []string{"B"}, p.SkippedNames())
	assert.Len(t, p.Results, 4)
	assert.Equal(t, Summary{
		Total:        4,
		Downloadable: 2,
		Skipped:      1,
		UpToDate:     1,
		Failures:     1,
		Renamed:      1,
		Created:      1,
		Refreshed:    1,
	}, p.Summary)
}

func TestPlan_JSONOmitsFullResults(t *testing.T) {
	p := &Plan{RunID: "r"}
	p.add(Result{Name: "A", State: StateSkipped, Reason: ReasonOutdatedDependency, Dependency: "B"})

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.NotContains(t, raw, "Results")
	assert.Contains(t, raw, "skipped")

	skipped := raw["skipped"].([]any)[0].(map[string]any)
	assert.Equal(t, "outdated-dependency", skipped["reason"])
	assert.Equal(t, "B", skipped["dependency"])
	assert.NotContains(t, skipped, "download")
}

func TestUnknownDependencyError(t *testing.T) {
	err := &UnknownDependencyError{Section: "customMods", Mod: "Realism", Dependency: "Ghost"}
	assert.Equal(t, `customMods mod "Realism" depends on unknown mod "Ghost"`, err.Error())
}
