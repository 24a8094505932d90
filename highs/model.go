//go:build cgo

package highs

import "math"

// Model is a complete linear or mixed-integer problem:
//
//	Minimize (or Maximize): ColCosts · x + Offset
//	Subject to:             RowLower ≤ A·x ≤ RowUpper
//	And:                    ColLower ≤ x ≤ ColUpper
//
// A is given as a list of nonzero entries in ConstMatrix.
type Model struct {
	Maximize bool
	Offset   float64

	// ColCosts are the objective coefficients.
	ColCosts []float64

	// ColLower and ColUpper default to -∞ and +∞ when left empty.
	ColLower []float64
	ColUpper []float64

	// RowLower and RowUpper default to -∞ and +∞ when left empty.
	RowLower []float64
	RowUpper []float64

	// ConstMatrix lists the nonzero coefficients of A. Entries repeating the
	// same (row, col) are summed.
	ConstMatrix []Nonzero

	// VarTypes marks integer columns. Empty means all continuous.
	VarTypes []VariableType

	// ColNames and RowNames are optional. When set they must cover every
	// column or row.
	ColNames []string
	RowNames []string
}

// Nonzero is one coefficient of the constraint matrix. Row and Col are
// zero-indexed.
type Nonzero struct {
	Row int
	Col int
	Val float64
}

// AddSparseRow appends the row lower ≤ Σ vals[i]·x[cols[i]] ≤ upper.
// Zero coefficients are dropped.
func (m *Model) AddSparseRow(lower float64, cols []int, vals []float64, upper float64) {
	row := len(m.RowLower)
	m.RowLower = append(m.RowLower, lower)
	m.RowUpper = append(m.RowUpper, upper)

	for i, col := range cols {
		if vals[i] != 0.0 {
			m.ConstMatrix = append(m.ConstMatrix, Nonzero{Row: row, Col: col, Val: vals[i]})
		}
	}
}

// NumVars returns the number of columns implied by the model data.
func (m *Model) NumVars() int {
	_, maxCol := maxRowCol(m.ConstMatrix)
	n := maxCol + 1
	for _, l := range []int{len(m.ColCosts), len(m.ColLower), len(m.ColUpper), len(m.VarTypes), len(m.ColNames)} {
		if l > n {
			n = l
		}
	}
	return n
}

// NumConstraints returns the number of rows implied by the model data.
func (m *Model) NumConstraints() int {
	maxRow, _ := maxRowCol(m.ConstMatrix)
	n := maxRow + 1
	for _, l := range []int{len(m.RowLower), len(m.RowUpper), len(m.RowNames)} {
		if l > n {
			n = l
		}
	}
	return n
}

// Solve loads the model into a fresh solver and runs it.
//
//	solution, err := model.Solve(
//		highs.WithTimeLimit(60),
//		highs.WithMIPRelGap(0.01),
//		highs.WithOutput(false),
//	)
func (m *Model) Solve(opts ...SolveOption) (*Solution, error) {
	cfg := defaultSolveConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	numCol := m.NumVars()
	numRow := m.NumConstraints()
	if numCol == 0 {
		return m.solveEmpty(cfg, numRow)
	}

	colCosts, err := expandSlice(numCol, m.ColCosts, 0.0)
	if err != nil {
		return nil, newErrorMsg("Solve", "inconsistent ColCosts length")
	}
	colLower, err := expandSlice(numCol, m.ColLower, math.Inf(-1))
	if err != nil {
		return nil, newErrorMsg("Solve", "inconsistent ColLower length")
	}
	colUpper, err := expandSlice(numCol, m.ColUpper, math.Inf(1))
	if err != nil {
		return nil, newErrorMsg("Solve", "inconsistent ColUpper length")
	}
	rowLower, err := expandSlice(numRow, m.RowLower, math.Inf(-1))
	if err != nil {
		return nil, newErrorMsg("Solve", "inconsistent RowLower length")
	}
	rowUpper, err := expandSlice(numRow, m.RowUpper, math.Inf(1))
	if err != nil {
		return nil, newErrorMsg("Solve", "inconsistent RowUpper length")
	}
	if len(m.ColNames) != 0 && len(m.ColNames) != numCol {
		return nil, newErrorMsg("Solve", "inconsistent ColNames length")
	}
	if len(m.RowNames) != 0 && len(m.RowNames) != numRow {
		return nil, newErrorMsg("Solve", "inconsistent RowNames length")
	}

	aStart, aIndex, aValue, err := nonzerosToCSR(m.ConstMatrix, numRow)
	if err != nil {
		return nil, err
	}

	varTypes := m.VarTypes
	if len(varTypes) > 0 && len(varTypes) != numCol {
		expanded := make([]VariableType, numCol)
		copy(expanded, varTypes)
		varTypes = expanded
	}

	solver, err := NewSolver()
	if err != nil {
		return nil, err
	}
	defer solver.Close()

	if err := cfg.apply(solver); err != nil {
		return nil, err
	}

	err = solver.PassModel(
		numCol, numRow,
		colCosts, colLower, colUpper,
		rowLower, rowUpper,
		aStart, aIndex, aValue,
		varTypes,
		m.Maximize,
		m.Offset,
	)
	if err != nil {
		return nil, err
	}

	for i, name := range m.ColNames {
		if err := solver.PassColName(i, name); err != nil {
			return nil, err
		}
	}
	for i, name := range m.RowNames {
		if err := solver.PassRowName(i, name); err != nil {
			return nil, err
		}
	}

	if cfg.modelFile != "" {
		if err := solver.WriteModel(cfg.modelFile); err != nil {
			return nil, err
		}
	}

	return solver.Run()
}

// solveEmpty settles a model without columns: every row reads 0, so the
// model is feasible exactly when each row's bounds admit 0.
func (m *Model) solveEmpty(cfg *solveConfig, numRow int) (*Solution, error) {
	rowLower, err := expandSlice(numRow, m.RowLower, math.Inf(-1))
	if err != nil {
		return nil, newErrorMsg("Solve", "inconsistent RowLower length")
	}
	rowUpper, err := expandSlice(numRow, m.RowUpper, math.Inf(1))
	if err != nil {
		return nil, newErrorMsg("Solve", "inconsistent RowUpper length")
	}

	if cfg.modelFile != "" {
		solver, err := NewSolver()
		if err != nil {
			return nil, err
		}
		defer solver.Close()
		if err := solver.PassModel(0, numRow, nil, nil, nil, rowLower, rowUpper,
			make([]int, numRow), nil, nil, nil, m.Maximize, m.Offset); err != nil {
			return nil, err
		}
		for i, name := range m.RowNames {
			if err := solver.PassRowName(i, name); err != nil {
				return nil, err
			}
		}
		if err := solver.WriteModel(cfg.modelFile); err != nil {
			return nil, err
		}
	}

	sol := &Solution{Status: ModelStatusOptimal, Objective: m.Offset, RowValues: make([]float64, numRow)}
	for i := range numRow {
		if rowLower[i] > 0 || rowUpper[i] < 0 {
			return &Solution{Status: ModelStatusInfeasible}, nil
		}
	}
	return sol, nil
}
