//go:build cgo

package highs

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

// TestLP solves
//
//	Min    f  =  x_0 +  x_1 + 3
//	s.t.                x_1 <= 7
//	       5 <=  x_0 + 2x_1 <= 15
//	       6 <= 3x_0 + 2x_1
//	0 <= x_0 <= 4; 1 <= x_1
func TestLP(t *testing.T) {
	model := Model{
		Offset:   3.0,
		ColCosts: []float64{1.0, 1.0},
		ColLower: []float64{0.0, 1.0},
		ColUpper: []float64{4.0, Inf()},
		ConstMatrix: []Nonzero{
			{0, 1, 1.0},
			{1, 0, 1.0},
			{1, 1, 2.0},
			{2, 0, 3.0},
			{2, 1, 2.0},
		},
		RowLower: []float64{NegInf(), 5.0, 6.0},
		RowUpper: []float64{7.0, 15.0, Inf()},
	}

	sol, err := model.Solve(WithOutput(false))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !sol.IsOptimal() {
		t.Fatalf("Expected optimal, got %s", sol.Status)
	}
	if !almostEqual(sol.ColValues[0], 0.5, 0.01) {
		t.Errorf("x0 = %f, expected 0.5", sol.ColValues[0])
	}
	if !almostEqual(sol.ColValues[1], 2.25, 0.01) {
		t.Errorf("x1 = %f, expected 2.25", sol.ColValues[1])
	}
	if !almostEqual(sol.Objective, 5.75, 0.01) {
		t.Errorf("Objective = %f, expected 5.75", sol.Objective)
	}
}

func TestMIP(t *testing.T) {
	model := Model{
		Maximize: true,
		Offset:   3.0,
		ColCosts: []float64{1.0, 1.0},
		ColLower: []float64{0.0, 1.0},
		ColUpper: []float64{4.0, Inf()},
		ConstMatrix: []Nonzero{
			{0, 1, 1.0},
			{1, 0, 1.0},
			{1, 1, 2.0},
			{2, 0, 3.0},
			{2, 1, 2.0},
		},
		RowLower: []float64{NegInf(), 5.0, 6.0},
		RowUpper: []float64{7.0, 15.0, Inf()},
		VarTypes: []VariableType{Integer, Integer},
	}

	sol, err := model.Solve(WithOutput(false))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !sol.IsOptimal() {
		t.Fatalf("Expected optimal, got %s", sol.Status)
	}
	if !almostEqual(sol.ColValues[0], 4.0, 0.01) {
		t.Errorf("x0 = %f, expected 4.0", sol.ColValues[0])
	}
	if !almostEqual(sol.ColValues[1], 5.0, 0.01) {
		t.Errorf("x1 = %f, expected 5.0", sol.ColValues[1])
	}
	if !almostEqual(sol.Objective, 12.0, 0.01) {
		t.Errorf("Objective = %f, expected 12.0", sol.Objective)
	}
}

// TestFacilityChoice opens the cheaper of two capacitated sites.
//
//	min 2a + 3b + 100ya + 10yb
//	a + b >= 8, a <= 10ya, b <= 10yb
func TestFacilityChoice(t *testing.T) {
	model := Model{
		ColCosts: []float64{2, 3, 100, 10},
		ColLower: []float64{0, 0, 0, 0},
		ColUpper: []float64{Inf(), Inf(), 1, 1},
		VarTypes: []VariableType{Integer, Integer, Integer, Integer},
		ColNames: []string{"a", "b", "ya", "yb"},
	}
	model.AddSparseRow(8, []int{0, 1}, []float64{1, 1}, Inf())
	model.AddSparseRow(NegInf(), []int{0, 2}, []float64{1, -10}, 0)
	model.AddSparseRow(NegInf(), []int{1, 3}, []float64{1, -10}, 0)

	sol, err := model.Solve(WithOutput(false), WithMIPRelGap(0))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !sol.IsOptimal() {
		t.Fatalf("Expected optimal, got %s", sol.Status)
	}
	// b=8 with yb costs 34, a=8 with ya costs 116.
	if !almostEqual(sol.Objective, 34, 1e-6) {
		t.Errorf("Objective = %f, expected 34", sol.Objective)
	}
	if !almostEqual(sol.Value(3), 1, 1e-6) || !almostEqual(sol.Value(2), 0, 1e-6) {
		t.Errorf("site choice = %v", sol.ColValues)
	}
}

func TestDuplicateEntriesAreSummed(t *testing.T) {
	// x + x >= 4 must read as 2x >= 4.
	model := Model{
		ColCosts: []float64{1},
		ColLower: []float64{0},
		ColUpper: []float64{10},
		ConstMatrix: []Nonzero{
			{0, 0, 1},
			{0, 0, 1},
		},
		RowLower: []float64{4},
		RowUpper: []float64{Inf()},
	}

	sol, err := model.Solve(WithOutput(false))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !almostEqual(sol.Value(0), 2, 1e-6) {
		t.Errorf("x = %f, expected 2", sol.Value(0))
	}
}

func TestEmptyModel(t *testing.T) {
	model := Model{Offset: 7}

	sol, err := model.Solve(WithOutput(false))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !sol.IsOptimal() {
		t.Fatalf("Expected optimal for empty model, got %s", sol.Status)
	}
	if sol.Objective != 7 {
		t.Errorf("Objective = %f, expected the offset", sol.Objective)
	}
}

func TestEmptyModelRowBounds(t *testing.T) {
	// With no columns every row evaluates to 0.
	model := Model{
		Offset:   2,
		RowLower: []float64{NegInf(), 5},
		RowUpper: []float64{3, Inf()},
	}

	sol, err := model.Solve(WithOutput(false))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !sol.IsInfeasible() {
		t.Errorf("Expected infeasible for 0 >= 5, got %s", sol.Status)
	}

	model.RowLower[1] = -1
	sol, err = model.Solve(WithOutput(false))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !sol.IsOptimal() {
		t.Fatalf("Expected optimal, got %s", sol.Status)
	}
	if sol.Objective != 2 || len(sol.RowValues) != 2 {
		t.Errorf("Objective = %f, RowValues = %v", sol.Objective, sol.RowValues)
	}
}

func TestInfeasible(t *testing.T) {
	model := Model{
		ColCosts: []float64{1.0},
		ColLower: []float64{0.0},
		ColUpper: []float64{10.0},
	}
	model.AddSparseRow(5.0, []int{0}, []float64{1.0}, Inf())
	model.AddSparseRow(NegInf(), []int{0}, []float64{1.0}, 3.0)

	sol, err := model.Solve(WithOutput(false))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !sol.IsInfeasible() {
		t.Errorf("Expected infeasible, got %s", sol.Status)
	}
	if sol.HasSolution() {
		t.Errorf("infeasible model should not report a solution")
	}
}

func TestWriteModelFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.lp")
	model := Model{
		ColCosts: []float64{1, 2},
		ColLower: []float64{0, 0},
		ColUpper: []float64{Inf(), Inf()},
		ColNames: []string{"Ship_A", "Ship_B"},
		RowNames: []string{"demand"},
	}
	model.AddSparseRow(3, []int{0, 1}, []float64{1, 1}, Inf())

	if _, err := model.Solve(WithOutput(false), WithModelFile(path)); err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("model file not written: %v", err)
	}
	for _, want := range []string{"Ship_A", "Ship_B", "demand"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("model file missing %q:\n%s", want, data)
		}
	}
}

func TestNamesLengthMismatch(t *testing.T) {
	model := Model{
		ColCosts: []float64{1, 1},
		ColNames: []string{"only_one"},
	}
	// ColNames is shorter than the other column data, so NumVars is 2.
	if _, err := model.Solve(WithOutput(false)); err == nil {
		t.Fatal("expected an error for a short ColNames slice")
	}
}

func TestNonzerosToCSRKeepsEmptyRows(t *testing.T) {
	start, index, value, err := nonzerosToCSR([]Nonzero{
		{2, 1, 4},
		{0, 0, 1},
		{2, 1, -4},
		{2, 0, 5},
	}, 4)
	if err != nil {
		t.Fatalf("nonzerosToCSR: %v", err)
	}

	wantStart := []int{0, 1, 1, 2}
	wantIndex := []int{0, 0}
	wantValue := []float64{1, 5}
	for i := range wantStart {
		if start[i] != wantStart[i] {
			t.Fatalf("start = %v, expected %v", start, wantStart)
		}
	}
	if len(index) != len(wantIndex) || len(value) != len(wantValue) {
		t.Fatalf("index = %v value = %v", index, value)
	}
	for i := range wantIndex {
		if index[i] != wantIndex[i] || value[i] != wantValue[i] {
			t.Errorf("entry %d = (%d, %f), expected (%d, %f)", i, index[i], value[i], wantIndex[i], wantValue[i])
		}
	}
}

func TestNonzerosToCSRRejectsBadRows(t *testing.T) {
	if _, _, _, err := nonzerosToCSR([]Nonzero{{3, 0, 1}}, 2); err == nil {
		t.Error("expected an error for a row past numRow")
	}
	if _, _, _, err := nonzerosToCSR([]Nonzero{{0, -1, 1}}, 2); err == nil {
		t.Error("expected an error for a negative column")
	}
}

func TestSolverInfinity(t *testing.T) {
	solver, err := NewSolver()
	if err != nil {
		t.Fatalf("NewSolver failed: %v", err)
	}
	defer solver.Close()

	inf := solver.Infinity()
	if inf <= 0 || math.IsNaN(inf) {
		t.Errorf("Invalid infinity value: %f", inf)
	}
}

func BenchmarkMIPSolve(b *testing.B) {
	model := Model{
		ColCosts: []float64{2, 3, 100, 10},
		ColLower: []float64{0, 0, 0, 0},
		ColUpper: []float64{Inf(), Inf(), 1, 1},
		VarTypes: []VariableType{Integer, Integer, Integer, Integer},
	}
	model.AddSparseRow(8, []int{0, 1}, []float64{1, 1}, Inf())
	model.AddSparseRow(NegInf(), []int{0, 2}, []float64{1, -10}, 0)
	model.AddSparseRow(NegInf(), []int{1, 3}, []float64{1, -10}, 0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := model.Solve(WithOutput(false)); err != nil {
			b.Fatal(err)
		}
	}
}
