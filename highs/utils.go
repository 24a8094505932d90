//go:build cgo

package highs

import (
	"math"
	"sort"
)

// Inf returns positive infinity, for rows or columns without an upper bound.
func Inf() float64 {
	return math.Inf(1)
}

// NegInf returns negative infinity, for rows or columns without a lower bound.
func NegInf() float64 {
	return math.Inf(-1)
}

// nonzerosToCSR converts nonzeros to compressed sparse row format with one
// start per row, so rows without entries keep their position. Duplicate
// (row, col) entries are summed and entries that cancel out are dropped.
func nonzerosToCSR(nz []Nonzero, numRow int) (start, index []int, value []float64, err error) {
	if numRow == 0 {
		return nil, nil, nil, nil
	}

	sorted := make([]Nonzero, len(nz))
	copy(sorted, nz)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Row != sorted[j].Row {
			return sorted[i].Row < sorted[j].Row
		}
		return sorted[i].Col < sorted[j].Col
	})

	merged := make([]Nonzero, 0, len(sorted))
	for _, n := range sorted {
		if n.Row < 0 || n.Col < 0 {
			return nil, nil, nil, newErrorMsg("nonzerosToCSR", "negative row or column index")
		}
		if n.Row >= numRow {
			return nil, nil, nil, newErrorMsg("nonzerosToCSR", "row index out of range")
		}
		if last := len(merged) - 1; last >= 0 && merged[last].Row == n.Row && merged[last].Col == n.Col {
			merged[last].Val += n.Val
			continue
		}
		merged = append(merged, n)
	}

	start = make([]int, numRow)
	index = make([]int, 0, len(merged))
	value = make([]float64, 0, len(merged))

	row := 0
	for _, n := range merged {
		if n.Val == 0 {
			continue
		}
		for row <= n.Row {
			start[row] = len(index)
			row++
		}
		index = append(index, n.Col)
		value = append(value, n.Val)
	}
	for ; row < numRow; row++ {
		start[row] = len(index)
	}

	return start, index, value, nil
}

// expandSlice returns slice if it has length n, or a new slice of length n
// filled with fillValue if slice is empty.
func expandSlice(n int, slice []float64, fillValue float64) ([]float64, error) {
	if len(slice) == n {
		return slice, nil
	}
	if len(slice) == 0 {
		result := make([]float64, n)
		for i := range result {
			result[i] = fillValue
		}
		return result, nil
	}
	return nil, newErrorMsg("expandSlice", "inconsistent slice length")
}

func maxRowCol(nz []Nonzero) (maxRow, maxCol int) {
	maxRow, maxCol = -1, -1
	for _, n := range nz {
		if n.Row > maxRow {
			maxRow = n.Row
		}
		if n.Col > maxCol {
			maxCol = n.Col
		}
	}
	return maxRow, maxCol
}
