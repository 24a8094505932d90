package network

import "github.com/bartolsthoorn/chipnet/internal/milp"

// grid holds one variable per (a, b, c) index triple.
type grid [][][]*milp.Var

func newGrid(prefix string, a, b, c []string, mk func(name string) *milp.Var) grid {
	g := make(grid, len(a))
	for i := range a {
		g[i] = make([][]*milp.Var, len(b))
		for j := range b {
			g[i][j] = make([]*milp.Var, len(c))
			for k := range c {
				g[i][j][k] = mk(milp.Name(prefix, a[i], b[j], c[k]))
			}
		}
	}
	return g
}

func (g grid) all() []*milp.Var {
	var out []*milp.Var
	for i := range g {
		for j := range g[i] {
			out = append(out, g[i][j]...)
		}
	}
	return out
}

// first returns g[i][*][*].
func (g grid) first(i int) []*milp.Var {
	var out []*milp.Var
	for j := range g[i] {
		out = append(out, g[i][j]...)
	}
	return out
}

// second returns g[*][j][*].
func (g grid) second(j int) []*milp.Var {
	var out []*milp.Var
	for i := range g {
		out = append(out, g[i][j]...)
	}
	return out
}

// pair returns g[i][j][*].
func (g grid) pair(i, j int) []*milp.Var {
	return g[i][j]
}

// across returns g[*][j][k].
func (g grid) across(j, k int) []*milp.Var {
	out := make([]*milp.Var, len(g))
	for i := range g {
		out[i] = g[i][j][k]
	}
	return out
}
