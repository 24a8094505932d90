package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltins(t *testing.T) {
	assert.Equal(t, []string{"bc-direct", "bc-distribution"}, Builtins())
}

func TestBuiltinDirect(t *testing.T) {
	s, err := Builtin("bc-direct")
	require.NoError(t, err)

	assert.Equal(t, KindDirect, s.Kind)
	assert.Equal(t, "BC Transportation Problem", s.Name)
	require.NotNil(t, s.Direct)
	assert.Len(t, s.Direct.Sites, 8)
	assert.Len(t, s.Customers, 6)
	assert.Equal(t, 20000.0, s.Direct.SiteCapacity)
	assert.Equal(t, []string{"AZ", "CA", "NM", "NV", "UT"}, s.Direct.States())

	var total float64
	for _, c := range s.Customers {
		total += c.TotalDemand()
	}
	assert.Equal(t, 26700.0, total)
}

func TestBuiltinDistribution(t *testing.T) {
	s, err := Builtin("bc-distribution")
	require.NoError(t, err)

	assert.Equal(t, KindDistribution, s.Kind)
	require.NotNil(t, s.Distribution)
	assert.Len(t, s.Distribution.Plants, 8)
	assert.Len(t, s.Distribution.Centers, 4)

	var active []string
	for _, p := range s.Distribution.Active() {
		active = append(active, p.Name)
	}
	assert.Equal(t, []string{"Tucson", "Pomona"}, active)
	assert.Equal(t, 56.0, s.Distribution.Active()[1].Distances["Victorville"])
}

func TestBuiltinUnknown(t *testing.T) {
	_, err := Builtin("nope")
	require.ErrorIs(t, err, ErrUnknown)
	assert.Contains(t, err.Error(), "bc-direct")
}

func TestLoad(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "small-direct.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "two sites", s.Name)
	assert.Equal(t, 8.0, s.Customers[0].Demand["Regular"])
}

func TestLoadRejectsUnknownField(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "unknown-field.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "customer")
	assert.Contains(t, err.Error(), "unknown-field.yaml")
}

func TestParseEmptyDocument(t *testing.T) {
	_, err := Parse(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty document")
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	s, err := Builtin("bc-direct")
	require.NoError(t, err)

	s.Products = append(s.Products, "Regular")
	delete(s.Direct.Sites[0].Distances, "SLC")
	s.Direct.Recipes["PartyMix"]["Corn"] = 0.5
	s.Direct.Sites[1].FixedCost = -1
	s.Direct.SiteCapacity = 0

	err = s.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)

	want := []string{
		`products[3]: duplicate name "Regular"`,
		`direct.recipes.PartyMix: fractions sum to 1.3, want 1`,
		"direct.site_capacity: must be a finite positive number, got 0",
		`direct.sites[0].distances: missing entry for "SLC"`,
		"direct.sites[1].fixed_cost: must be a finite non-negative number, got -1",
	}
	for _, w := range want {
		assert.Contains(t, verr.Problems, w)
	}
	assert.Contains(t, err.Error(), `scenario "BC Transportation Problem"`)
}

func TestValidateDistribution(t *testing.T) {
	s, err := Builtin("bc-distribution")
	require.NoError(t, err)

	s.Distribution.Centers[0].MinThroughput = 50000
	s.Distribution.MaxCustomerShare = 1.5
	s.Distribution.ActivePlants = []string{"Tucson", "Atlantis"}
	s.Distribution.Plants[0].Distances["Nowhere"] = 1

	err = s.Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	want := []string{
		"distribution.max_customer_share: must be in (0, 1], got 1.5",
		"distribution.centers[0]: min_throughput 50000 exceeds max_throughput 15000",
		`distribution.plants[0].distances: unknown key "Nowhere"`,
		`distribution.active_plants: unknown plant "Atlantis"`,
	}
	if diff := cmp.Diff(want, verr.Problems); diff != "" {
		t.Errorf("problems mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateKind(t *testing.T) {
	s := &Scenario{
		Name:      "k",
		Kind:      "hub",
		Products:  []string{"p"},
		Customers: []Customer{{Name: "c", Demand: map[string]float64{"p": 1}}},
	}
	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `kind: must be "direct" or "distribution", got "hub"`)
}

func TestLoadSetsPathOnValidationError(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("testdata", "small-direct.yaml"))
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "broken.yaml")
	broken := append([]byte{}, src...)
	broken = append(broken, []byte("    - name: A\n      state: Z\n      fixed_cost: 1\n      material_costs: {Corn: 0}\n      distances: {North: 1}\n")...)
	require.NoError(t, os.WriteFile(file, broken, 0o600))

	_, err = Load(file)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, file, verr.Path)
	assert.Equal(t, []string{`direct.sites[2]: duplicate name "A"`}, verr.Problems)
}

func TestWithActivePlants(t *testing.T) {
	s, err := Builtin("bc-distribution")
	require.NoError(t, err)

	chained, err := s.WithActivePlants([]string{"StGeorge", "Yuma"})
	require.NoError(t, err)
	assert.Equal(t, []string{"StGeorge", "Yuma"}, chained.Distribution.ActivePlants)
	assert.Equal(t, []string{"Tucson", "Pomona"}, s.Distribution.ActivePlants)

	_, err = s.WithActivePlants([]string{"Gotham"})
	require.Error(t, err)

	direct, err := Builtin("bc-direct")
	require.NoError(t, err)
	_, err = direct.WithActivePlants([]string{"Yuma"})
	require.Error(t, err)
}

func TestResolve(t *testing.T) {
	s, err := Resolve("bc-direct")
	require.NoError(t, err)
	assert.Equal(t, KindDirect, s.Kind)

	s, err = Resolve(filepath.Join("testdata", "small-direct.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "two sites", s.Name)

	_, err = Resolve("missing.yaml")
	require.Error(t, err)
}
