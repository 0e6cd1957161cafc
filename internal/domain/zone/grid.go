package zone

import "gonum.org/v1/gonum/floats"

// Grid holds one value per zone in row-major order.
type Grid [Count]float64

// Slice returns the values as a flat slice, order preserved.
func (g Grid) Slice() []float64 {
	out := make([]float64, Count)
	copy(out, g[:])
	return out
}

// Rows reshapes the grid to 3x3 with row 0 at the top.
func (g Grid) Rows() [3][3]float64 {
	var out [3][3]float64
	for i, v := range g {
		out[i/3][i%3] = v
	}
	return out
}

// ArgMax returns the zone holding the largest value, first on ties.
func (g Grid) ArgMax() Index {
	best := 0
	for i := 1; i < Count; i++ {
		if g[i] > g[best] {
			best = i
		}
	}
	return Index(best)
}

// ArgMin returns the zone holding the smallest value, first on ties.
func (g Grid) ArgMin() Index {
	worst := 0
	for i := 1; i < Count; i++ {
		if g[i] < g[worst] {
			worst = i
		}
	}
	return Index(worst)
}

// Sum returns the total of all cells.
func (g Grid) Sum() float64 { return floats.Sum(g[:]) }

// Min returns the smallest cell value.
func (g Grid) Min() float64 { return g[g.ArgMin()] }

// Max returns the largest cell value.
func (g Grid) Max() float64 { return g[g.ArgMax()] }
