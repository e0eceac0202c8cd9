// Package hungarian solves the minimum-cost bipartite assignment
// problem on a square cost matrix.
package hungarian

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Solve returns the permutation perm minimizing the total cost
// sum_i cost(i, perm[i]). The permutation is always a bijection on
// {0..n-1}. It runs the O(n^3) potential/augmenting-path form of the
// Hungarian algorithm. A non-square or empty cost matrix is a
// precondition violation and panics.
func Solve(cost mat.Matrix) []int {
	n, m := cost.Dims()
	if n != m {
		panic("hungarian: cost matrix is not square")
	}
	if n == 0 {
		panic("hungarian: empty cost matrix")
	}

	// u, v are the row and column potentials, p[j] is the row matched
	// to column j. Index 0 is a virtual column used to start each
	// augmenting search.
	u := make([]float64, n+1)
	v := make([]float64, n+1)
	p := make([]int, n+1)
	way := make([]int, n+1)
	minv := make([]float64, n+1)
	used := make([]bool, n+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		for j := range minv {
			minv[j] = math.Inf(1)
			used[j] = false
		}
		for {
			used[j0] = true
			i0 := p[j0]
			delta := math.Inf(1)
			j1 := 0
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := cost.At(i0-1, j-1) - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}
		// augment along the alternating path back to the virtual column
		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	perm := make([]int, n)
	for j := 1; j <= n; j++ {
		perm[p[j]-1] = j - 1
	}
	return perm
}
