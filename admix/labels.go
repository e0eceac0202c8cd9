package admix

import (
	"github.com/thierrygosselin/MavericK/hungarian"
)

// alignLabels fixes label switching by the relabeling method of
// Stephens (2000): it builds the divergence of every current-iteration
// deme against every running-reference deme, solves the minimum-cost
// assignment over the K×K matrix, and permutes all per-deme state to
// the resolved labels. With K=1 the permutation is trivially the
// identity.
func (c *Chain) alignLabels() {
	for k1 := 0; k1 < c.K; k1++ {
		for k2 := 0; k2 < c.K; k2++ {
			cost := 0.0
			for g := range c.qNew {
				cost += c.qNew[g][k1] * (c.logQNew[g][k1] - c.logQRunning[g][k2])
			}
			c.costMat.Set(k1, k2, cost)
		}
	}

	perm := hungarian.Solve(c.costMat)
	identity := true
	for k, pk := range perm {
		if pk != k {
			identity = false
			break
		}
	}
	if identity {
		return
	}

	// Counts and assignments move to the new labels; so do the rows of
	// the unaligned log-posterior, so the accumulators receive aligned
	// values. The linear posterior is left alone since it is rebuilt
	// before its next use.
	c.relabel(perm)
	for g := range c.logQNew {
		row := c.logQNew[g]
		for k, pk := range perm {
			c.permScratch[pk] = row[k]
		}
		copy(row, c.permScratch)
	}
}
