//go:build cgo

// Package highs binds the HiGHS linear optimization solver.
//
// Only the part of the C API needed to pass a complete mixed-integer model,
// name its rows and columns, solve it and read the primal solution back is
// wrapped. The package links against a system-installed HiGHS located with
// pkg-config, so `pkg-config --libs highs` must succeed at build time.
//
// # Example
//
//	model := highs.Model{
//		ColCosts: []float64{1.0, 1.0},
//		ColLower: []float64{0.0, 0.0},
//		ColUpper: []float64{10.0, 10.0},
//		VarTypes: []highs.VariableType{highs.Integer, highs.Integer},
//	}
//	model.AddSparseRow(1.5, []int{0, 1}, []float64{1.0, 1.0}, highs.Inf())
//
//	solution, err := model.Solve(highs.WithOutput(false))
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(solution.Status, solution.ColValues)
package highs

/*
#cgo pkg-config: highs

#include <stdlib.h>
#include "interfaces/highs_c_api.h"
*/
import "C"
import (
	"runtime"
	"unsafe"
)

// Solver is a single native HiGHS instance.
//
// A Solver is not safe for concurrent use. Independent solvers may run in
// parallel.
type Solver struct {
	ptr unsafe.Pointer
}

// NewSolver creates a HiGHS instance. Close must be called to release it.
func NewSolver() (*Solver, error) {
	ptr := C.Highs_create()
	if ptr == nil {
		return nil, newErrorMsg("NewSolver", "failed to create HiGHS instance")
	}

	s := &Solver{ptr: ptr}
	runtime.SetFinalizer(s, (*Solver).Close)
	return s, nil
}

// Close releases the native instance. It is safe to call more than once.
func (s *Solver) Close() {
	if s.ptr != nil {
		C.Highs_destroy(s.ptr)
		s.ptr = nil
	}
}

// Infinity returns the value HiGHS treats as an infinite bound.
func (s *Solver) Infinity() float64 {
	return float64(C.Highs_getInfinity(s.ptr))
}

// NumCol returns the number of columns in the loaded model.
func (s *Solver) NumCol() int {
	return int(C.Highs_getNumCol(s.ptr))
}

// NumRow returns the number of rows in the loaded model.
func (s *Solver) NumRow() int {
	return int(C.Highs_getNumRow(s.ptr))
}

// SetBoolOption sets a boolean option.
func (s *Solver) SetBoolOption(name string, value bool) error {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	var cVal C.HighsInt
	if value {
		cVal = 1
	}
	return newError("SetBoolOption", Status(C.Highs_setBoolOptionValue(s.ptr, cName, cVal)))
}

// SetIntOption sets an integer option.
func (s *Solver) SetIntOption(name string, value int) error {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	return newError("SetIntOption", Status(C.Highs_setIntOptionValue(s.ptr, cName, C.HighsInt(value))))
}

// SetFloatOption sets a floating-point option.
func (s *Solver) SetFloatOption(name string, value float64) error {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	return newError("SetFloatOption", Status(C.Highs_setDoubleOptionValue(s.ptr, cName, C.double(value))))
}

// SetStringOption sets a string option.
func (s *Solver) SetStringOption(name, value string) error {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	cVal := C.CString(value)
	defer C.free(unsafe.Pointer(cVal))

	return newError("SetStringOption", Status(C.Highs_setStringOptionValue(s.ptr, cName, cVal)))
}

// PassModel loads a complete model with a row-wise constraint matrix.
// integrality may be empty for a pure LP.
func (s *Solver) PassModel(
	numCol, numRow int,
	colCost, colLower, colUpper []float64,
	rowLower, rowUpper []float64,
	aStart, aIndex []int,
	aValue []float64,
	integrality []VariableType,
	maximize bool,
	offset float64,
) error {
	sense := C.kHighsObjSenseMinimize
	if maximize {
		sense = C.kHighsObjSenseMaximize
	}

	cAStart := toHighsInts(aStart)
	cAIndex := toHighsInts(aIndex)

	var cIntegrality []C.HighsInt
	if len(integrality) > 0 {
		cIntegrality = make([]C.HighsInt, len(integrality))
		for i, vt := range integrality {
			cIntegrality[i] = vt.toC()
		}
	}

	status := Status(C.Highs_passModel(s.ptr,
		C.HighsInt(numCol), C.HighsInt(numRow),
		C.HighsInt(len(aValue)), 0,
		C.kHighsMatrixFormatRowwise, C.kHighsHessianFormatTriangular,
		C.HighsInt(sense), C.double(offset),
		doublePtr(colCost), doublePtr(colLower), doublePtr(colUpper),
		doublePtr(rowLower), doublePtr(rowUpper),
		intPtr(cAStart), intPtr(cAIndex), doublePtr(aValue),
		nil, nil, nil,
		intPtr(cIntegrality)))
	return newError("PassModel", status)
}

// PassColName names a column. Names appear in written model files.
func (s *Solver) PassColName(col int, name string) error {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	return newError("PassColName", Status(C.Highs_passColName(s.ptr, C.HighsInt(col), cName)))
}

// PassRowName names a row.
func (s *Solver) PassRowName(row int, name string) error {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	return newError("PassRowName", Status(C.Highs_passRowName(s.ptr, C.HighsInt(row), cName)))
}

// WriteModel writes the loaded model to filename. The format follows the
// extension (.lp or .mps).
func (s *Solver) WriteModel(filename string) error {
	cFilename := C.CString(filename)
	defer C.free(unsafe.Pointer(cFilename))

	return newError("WriteModel", Status(C.Highs_writeModel(s.ptr, cFilename)))
}

// GetFloatInfo returns a floating-point info value such as "mip_gap".
func (s *Solver) GetFloatInfo(name string) (float64, error) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	var val C.double
	if err := newError("GetFloatInfo", Status(C.Highs_getDoubleInfoValue(s.ptr, cName, &val))); err != nil {
		return 0, err
	}
	return float64(val), nil
}

// Run solves the loaded model. A model that is infeasible or unbounded is
// not an error; inspect Solution.Status.
func (s *Solver) Run() (*Solution, error) {
	if status := Status(C.Highs_run(s.ptr)); status == StatusError {
		return nil, newError("Run", status)
	}

	sol := &Solution{
		Status:    modelStatusFromC(C.Highs_getModelStatus(s.ptr)),
		Objective: float64(C.Highs_getObjectiveValue(s.ptr)),
	}

	numCol := s.NumCol()
	numRow := s.NumRow()
	sol.ColValues = make([]float64, numCol)
	sol.RowValues = make([]float64, numRow)

	// Duals are fetched only because the C call fills all four arrays.
	colDual := make([]float64, numCol)
	rowDual := make([]float64, numRow)
	C.Highs_getSolution(s.ptr,
		doublePtr(sol.ColValues), doublePtr(colDual),
		doublePtr(sol.RowValues), doublePtr(rowDual))

	if gap, err := s.GetFloatInfo("mip_gap"); err == nil {
		sol.MIPGap = gap
	}
	return sol, nil
}

func toHighsInts(v []int) []C.HighsInt {
	out := make([]C.HighsInt, len(v))
	for i, x := range v {
		out[i] = C.HighsInt(x)
	}
	return out
}

func doublePtr(v []float64) *C.double {
	if len(v) == 0 {
		return nil
	}
	return (*C.double)(&v[0])
}

func intPtr(v []C.HighsInt) *C.HighsInt {
	if len(v) == 0 {
		return nil
	}
	return &v[0]
}
