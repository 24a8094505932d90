//go:build cgo

package highs

/*
#include "interfaces/highs_c_api.h"
*/
import "C"

// VariableType specifies whether a column is continuous or integer.
type VariableType int

const (
	// Continuous is the default column type.
	Continuous VariableType = iota
	// Integer restricts a column to integer values within its bounds.
	Integer
)

func (v VariableType) String() string {
	switch v {
	case Continuous:
		return "Continuous"
	case Integer:
		return "Integer"
	default:
		return "Unknown"
	}
}

func (v VariableType) toC() C.HighsInt {
	if v == Integer {
		return C.kHighsVarTypeInteger
	}
	return C.kHighsVarTypeContinuous
}

// Status is the return code of a HiGHS call.
type Status int

const (
	StatusError   Status = -1
	StatusOK      Status = 0
	StatusWarning Status = 1
)

func (s Status) String() string {
	switch s {
	case StatusError:
		return "Error"
	case StatusOK:
		return "OK"
	case StatusWarning:
		return "Warning"
	default:
		return "Unknown"
	}
}

// ModelStatus reports what the solver concluded about a model.
type ModelStatus int

const (
	ModelStatusNotSet ModelStatus = iota
	ModelStatusLoadError
	ModelStatusModelError
	ModelStatusPresolveError
	ModelStatusSolveError
	ModelStatusPostsolveError
	ModelStatusModelEmpty
	ModelStatusOptimal
	ModelStatusInfeasible
	ModelStatusUnboundedOrInfeasible
	ModelStatusUnbounded
	ModelStatusObjectiveBound
	ModelStatusObjectiveTarget
	ModelStatusTimeLimit
	ModelStatusIterationLimit
	ModelStatusUnknown
)

var modelStatusNames = [...]string{
	"NotSet", "LoadError", "ModelError", "PresolveError",
	"SolveError", "PostsolveError", "ModelEmpty", "Optimal",
	"Infeasible", "UnboundedOrInfeasible", "Unbounded",
	"ObjectiveBound", "ObjectiveTarget", "TimeLimit",
	"IterationLimit", "Unknown",
}

func (s ModelStatus) String() string {
	if int(s) >= 0 && int(s) < len(modelStatusNames) {
		return modelStatusNames[s]
	}
	return "Unknown"
}

// HasSolution reports whether primal values are available. A time or
// iteration limit still leaves the incumbent in place.
func (s ModelStatus) HasSolution() bool {
	switch s {
	case ModelStatusOptimal, ModelStatusObjectiveBound, ModelStatusObjectiveTarget,
		ModelStatusTimeLimit, ModelStatusIterationLimit:
		return true
	}
	return false
}

func modelStatusFromC(status C.HighsInt) ModelStatus {
	switch status {
	case C.kHighsModelStatusNotset:
		return ModelStatusNotSet
	case C.kHighsModelStatusLoadError:
		return ModelStatusLoadError
	case C.kHighsModelStatusModelError:
		return ModelStatusModelError
	case C.kHighsModelStatusPresolveError:
		return ModelStatusPresolveError
	case C.kHighsModelStatusSolveError:
		return ModelStatusSolveError
	case C.kHighsModelStatusPostsolveError:
		return ModelStatusPostsolveError
	case C.kHighsModelStatusModelEmpty:
		return ModelStatusModelEmpty
	case C.kHighsModelStatusOptimal:
		return ModelStatusOptimal
	case C.kHighsModelStatusInfeasible:
		return ModelStatusInfeasible
	case C.kHighsModelStatusUnboundedOrInfeasible:
		return ModelStatusUnboundedOrInfeasible
	case C.kHighsModelStatusUnbounded:
		return ModelStatusUnbounded
	case C.kHighsModelStatusObjectiveBound:
		return ModelStatusObjectiveBound
	case C.kHighsModelStatusObjectiveTarget:
		return ModelStatusObjectiveTarget
	case C.kHighsModelStatusTimeLimit:
		return ModelStatusTimeLimit
	case C.kHighsModelStatusIterationLimit:
		return ModelStatusIterationLimit
	default:
		return ModelStatusUnknown
	}
}
