package admix

import "golang.org/x/exp/rand"

// updateGroups resamples the deme assignment of every gene copy from
// its exact conditional posterior, visiting gene copies in the fixed
// individual, locus, ploidy-slot order. Each gene copy is first
// removed from the count tables (when non-missing), scored against
// every deme with the allele frequencies integrated out, redrawn, and
// re-added under its new assignment.
func (c *Chain) updateGroups() {
	g := -1
	for i := 0; i < c.data.NInd(); i++ {
		for l := 0; l < c.data.NLoci(); l++ {
			for p := 0; p < c.data.Ploidy[i]; p++ {
				g++
				a := c.data.Genotypes[i][l][p]
				if a != 0 {
					c.remove(i, l, a-1, c.group[g])
				}

				sum := c.condWeights(i, l, a, c.alpha, c.cfg.Beta, c.probVec)
				c.group[g] = sampleCategorical(c.rnd, c.probVec, sum)

				if a != 0 {
					c.add(i, l, a-1, c.group[g])
				}
			}
		}
	}
}

// sampleCategorical draws an index with probability proportional to
// the given weights; sum must equal their total. The weights need not
// be normalized.
func sampleCategorical(rnd *rand.Rand, w []float64, sum float64) int {
	r := rnd.Float64() * sum
	for k, wk := range w {
		r -= wk
		if r < 0 {
			return k
		}
	}
	return len(w) - 1
}
