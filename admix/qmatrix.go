package admix

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// produceQmatrix recomputes the current iteration's gene-copy
// posterior assignment matrix from the count tables, in both log and
// linear form. The weights match the Gibbs conditional except that no
// temperature exponent is applied. The allele-factor logs go through
// the lookup table.
func (c *Chain) produceQmatrix() {
	g := -1
	for i := 0; i < c.data.NInd(); i++ {
		for l := 0; l < c.data.NLoci(); l++ {
			jl := c.data.J[l]
			for p := 0; p < c.data.Ploidy[i]; p++ {
				g++
				a := c.data.Genotypes[i][l][p]
				lw := c.logQNew[g]
				for k := 0; k < c.K; k++ {
					w := math.Log(float64(c.admixCounts[i][k]) + c.alpha)
					if a != 0 {
						w += c.lookup.log(c.alleleCounts[k][l][a-1], 1) -
							c.lookup.log(c.alleleCountsTotals[k][l], jl)
					}
					lw[k] = w
				}
				norm := floats.LogSumExp(lw)
				for k := range lw {
					lw[k] -= norm
					c.qNew[g][k] = math.Exp(lw[k])
				}
			}
		}
	}
}

// updateQmatrix folds the aligned log-posterior of this iteration
// into the running reference the next iteration's label alignment
// compares against.
func (c *Chain) updateQmatrix() {
	for g := range c.logQRunning {
		for k := range c.logQRunning[g] {
			c.logQRunning[g][k] = logSum(c.logQRunning[g][k], c.logQNew[g][k])
		}
	}
}

// storeQmatrix folds the aligned log-posterior into the reported
// accumulator. Only post-burn-in iterations reach here, so the
// accumulator holds exactly the retained sample mass.
func (c *Chain) storeQmatrix() {
	for g := range c.logQGene {
		for k := range c.logQGene[g] {
			c.logQGene[g][k] = logSum(c.logQGene[g][k], c.logQNew[g][k])
		}
	}
}

// finalizeQmatrices converts the accumulated log-posterior into the
// reported probability matrices: gene-copy level by normalizing with
// the sample count, individual level by averaging a person's gene
// copies, population level by averaging a population's individuals.
func (c *Chain) finalizeQmatrices() {
	logSamples := math.Log(float64(c.cfg.Samples))
	for g := range c.qGene {
		for k := range c.qGene[g] {
			c.qGene[g][k] = math.Exp(c.logQGene[g][k] - logSamples)
		}
	}

	g := -1
	for i := 0; i < c.data.NInd(); i++ {
		row := c.qInd[i]
		for k := range row {
			row[k] = 0
		}
		for l := 0; l < c.data.NLoci(); l++ {
			for p := 0; p < c.data.Ploidy[i]; p++ {
				g++
				floats.Add(row, c.qGene[g])
			}
		}
		floats.Scale(1/float64(c.data.Ploidy[i]*c.data.NLoci()), row)
	}

	if c.qPop != nil {
		fillMatrix(c.qPop, 0)
		for i := 0; i < c.data.NInd(); i++ {
			floats.Add(c.qPop[c.data.PopIndex(i)], c.qInd[i])
		}
		for pi, cnt := range c.data.PopCounts() {
			floats.Scale(1/float64(cnt), c.qPop[pi])
		}
	}
}
