//go:build cgo

package highs

// Solution holds the primal result of a solve.
type Solution struct {
	Status ModelStatus

	// ColValues holds one value per column. Empty when the solver produced
	// no primal solution.
	ColValues []float64

	// RowValues holds the activity A·x of each row.
	RowValues []float64

	Objective float64

	// MIPGap is the relative gap reported for integer models.
	MIPGap float64
}

// IsOptimal reports whether the solve proved optimality.
func (s *Solution) IsOptimal() bool {
	return s.Status == ModelStatusOptimal
}

// IsInfeasible reports whether the model has no feasible point, including
// the ambiguous unbounded-or-infeasible status.
func (s *Solution) IsInfeasible() bool {
	return s.Status == ModelStatusInfeasible ||
		s.Status == ModelStatusUnboundedOrInfeasible
}

// IsUnbounded reports whether the objective is unbounded, including the
// ambiguous unbounded-or-infeasible status.
func (s *Solution) IsUnbounded() bool {
	return s.Status == ModelStatusUnbounded ||
		s.Status == ModelStatusUnboundedOrInfeasible
}

// HasSolution reports whether ColValues holds a usable primal solution.
func (s *Solution) HasSolution() bool {
	return s.Status.HasSolution()
}

// Value returns the value of column index, or 0 when out of range.
func (s *Solution) Value(index int) float64 {
	if index < 0 || index >= len(s.ColValues) {
		return 0
	}
	return s.ColValues[index]
}
