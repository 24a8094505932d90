package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartolsthoorn/chipnet/internal/network"
)

const smallDirect = "../scenario/testdata/small-direct.yaml"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(storeEnv, "")

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "chipnet dev"), out)
}

func TestScenariosList(t *testing.T) {
	out, err := run(t, "scenarios")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3, out)
	assert.Equal(t, "NAME", strings.Fields(lines[0])[0])
	assert.Equal(t, []string{"bc-direct", "direct"}, strings.Fields(lines[1])[:2])
	assert.Equal(t, []string{"bc-distribution", "distribution"}, strings.Fields(lines[2])[:2])
}

func TestScenariosShow(t *testing.T) {
	out, err := run(t, "scenarios", "show", "bc-direct")
	require.NoError(t, err)
	assert.Contains(t, out, "kind: direct")

	_, err = run(t, "scenarios", "show", "nope")
	assert.Error(t, err)
}

func TestCollectScenariosDefaultsToBuiltins(t *testing.T) {
	got, err := collectScenarios(nil, nil)
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = collectScenarios(nil, []string{smallDirect})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "two sites", got[0].Name)
}

func TestSolvePlain(t *testing.T) {
	out, err := run(t, "solve", "--file", smallDirect, "--mip-gap", "0")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "Status: Optimal\n"), out)
	assert.Contains(t, out, "Open_B = 1.0\n")
	assert.Contains(t, out, "Ship_B_North_Regular = 8.0\n")
	assert.Contains(t, out, "Total cost: 34.0\n")
	assert.Contains(t, out, "===============================\nSites opened: 1.0\n")
}

func TestSolveRejectsBadFlags(t *testing.T) {
	_, err := run(t, "solve", smallDirect, "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")

	_, err = run(t, "solve", smallDirect, "--mip-gap", "1.5")
	assert.ErrorContains(t, err, "--mip-gap")

	_, err = run(t, "solve", smallDirect, "--plants", "Tucson")
	assert.ErrorContains(t, err, "--plants")

	_, err = run(t, "solve", smallDirect, "--presolve", "sometimes")
	assert.ErrorContains(t, err, "--presolve")

	_, err = run(t, "solve", smallDirect, "--option", "=3")
	assert.ErrorContains(t, err, "name=value")

	_, err = run(t, "solve", "--write-model", filepath.Join(t.TempDir(), "m.lp"))
	assert.ErrorContains(t, err, "exactly one scenario")
}

func TestSolveWritesModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.lp")
	_, err := run(t, "solve", smallDirect, "--write-model", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Ship_B_North_Regular")
}

func TestSolveRecordsHistoryAndMetrics(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "runs.db")
	metricsFile := filepath.Join(dir, "chipnet.prom")

	out, err := run(t, "solve", smallDirect, "--format", "json", "--store", store, "--metrics-file", metricsFile)
	require.NoError(t, err)

	var outcomes []network.Outcome
	require.NoError(t, json.Unmarshal([]byte(out), &outcomes))
	require.Len(t, outcomes, 1)
	id := outcomes[0].RunID
	require.NotEmpty(t, id)

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `chipnet_solves_total{scenario="two sites",status="Optimal"} 1`)

	out, err = run(t, "history", "--store", store)
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "two sites")

	out, err = run(t, "history", "show", id, "--store", store, "--format", "plain")
	require.NoError(t, err)
	assert.Contains(t, out, "Ship_B_North_Regular = 8.0")

	_, err = run(t, "history", "show", "missing", "--store", store)
	assert.ErrorContains(t, err, "run not found")
}

func TestHistoryNeedsStore(t *testing.T) {
	_, err := run(t, "history")
	assert.ErrorIs(t, err, errNoStore)
}

func TestChainPrintsDirectPlanOnError(t *testing.T) {
	out, err := run(t, "chain", "--direct-file", smallDirect)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no plant entry for B")
	assert.Contains(t, out, "Open_B = 1.0")
}

func TestParseOption(t *testing.T) {
	for _, kv := range []string{"mip_detect_symmetry=false", "random_seed=7", "mip_feasibility_tolerance=1e-7", "solver=choose"} {
		opt, err := parseOption(kv)
		require.NoError(t, err, kv)
		assert.NotNil(t, opt, kv)
	}
	_, err := parseOption("no-equals")
	assert.Error(t, err)
}

func TestSolveWithSolverOptions(t *testing.T) {
	out, err := run(t, "solve", smallDirect,
		"--presolve", "off", "--time-limit", "30s",
		"--option", "random_seed=7", "--option", "mip_feasibility_tolerance=1e-7")
	require.NoError(t, err)
	assert.Contains(t, out, "Total cost: 34.0")
}

func TestSolveTimeLimitIsPerScenario(t *testing.T) {
	out, err := run(t, "solve", "bc-direct", "bc-distribution", "--time-limit", "30s", "--parallel", "1")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "Status: Optimal\n"), out)
	assert.Contains(t, out, "Open_Tucson = 1.0")
	assert.Contains(t, out, "Build_Kingman = 1.0")
}
