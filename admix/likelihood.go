package admix

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// calcLogLikeGroup computes the Dirichlet-multinomial marginal
// log-likelihood of the data given only the current assignment, with
// the allele frequencies integrated out. It is recomputed in full
// each iteration since relabeling moves counts non-locally.
func (c *Chain) calcLogLikeGroup() {
	lgLambda := lgamma(c.lambda)
	ll := 0.0
	for k := 0; k < c.K; k++ {
		for l := 0; l < c.data.NLoci(); l++ {
			for _, cnt := range c.alleleCounts[k][l] {
				ll += lgamma(c.lambda+float64(cnt)) - lgLambda
			}
			jLambda := float64(c.data.J[l]) * c.lambda
			ll += lgamma(jLambda) - lgamma(jLambda+float64(c.alleleCountsTotals[k][l]))
		}
	}
	c.logLikeGroup = ll
}

// drawFreqs draws allele frequencies and admixture proportions from
// their conditional Dirichlet posteriors, as normalized Gamma draws.
func (c *Chain) drawFreqs() {
	for k := 0; k < c.K; k++ {
		for l := 0; l < c.data.NLoci(); l++ {
			row := c.alleleFreqs[k][l]
			for j := range row {
				shape := float64(c.alleleCounts[k][l][j]) + c.lambda
				row[j] = distuv.Gamma{Alpha: shape, Beta: 1, Src: c.rnd}.Rand()
			}
			floats.Scale(1/floats.Sum(row), row)
		}
	}

	for i := 0; i < c.data.NInd(); i++ {
		row := c.admixFreqs[i]
		for k := range row {
			shape := float64(c.admixCounts[i][k]) + c.alpha
			row[k] = distuv.Gamma{Alpha: shape, Beta: 1, Src: c.rnd}.Rand()
		}
		floats.Scale(1/floats.Sum(row), row)
	}
}

// calcLogLikeJoint computes the log-likelihood of the data given the
// drawn allele frequencies and admixture proportions. Missing gene
// copies contribute nothing.
func (c *Chain) calcLogLikeJoint() {
	ll := 0.0
	for i := 0; i < c.data.NInd(); i++ {
		for l := 0; l < c.data.NLoci(); l++ {
			for p := 0; p < c.data.Ploidy[i]; p++ {
				a := c.data.Genotypes[i][l][p]
				if a == 0 {
					continue
				}
				sum := 0.0
				for k := 0; k < c.K; k++ {
					sum += c.admixFreqs[i][k] * c.alleleFreqs[k][l][a-1]
				}
				ll += math.Log(sum)
			}
		}
	}
	c.logLikeJoint = ll
}

// AlleleFreqs returns the most recently drawn allele frequencies, or
// nil when frequency drawing is disabled.
func (c *Chain) AlleleFreqs() [][][]float64 { return c.alleleFreqs }

// AdmixFreqs returns the most recently drawn admixture proportions,
// or nil when frequency drawing is disabled.
func (c *Chain) AdmixFreqs() [][]float64 { return c.admixFreqs }
