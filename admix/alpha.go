package admix

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Bounds of the concentration-parameter support; proposals are
// reflected back into [0, alphaMax].
const alphaMax = 10

// alphaFloor replaces a proposal reflected exactly onto 0, keeping
// the log-gamma evaluations finite.
const alphaFloor = 1e-300

// updateAlpha performs one Metropolis update of the concentration
// parameter of the admixture-proportion prior. The acceptance ratio
// derives from the Dirichlet-multinomial marginal of the admixture
// count table alone; allele frequencies play no part.
func (c *Chain) updateAlpha() {
	prop := reflectAlpha(distuv.Normal{Mu: c.alpha, Sigma: c.cfg.AlphaPropSD, Src: c.rnd}.Rand())

	k := float64(c.K)
	lgOld := lgamma(c.alpha)
	lgNew := lgamma(prop)
	lgKOld := lgamma(k * c.alpha)
	lgKNew := lgamma(k * prop)

	var logProbOld, logProbNew float64
	for i := 0; i < c.data.NInd(); i++ {
		total := float64(c.admixCountsTotals[i])
		logProbOld += lgKOld - lgamma(total+k*c.alpha)
		logProbNew += lgKNew - lgamma(total+k*prop)
		for _, cnt := range c.admixCounts[i] {
			logProbOld += lgamma(float64(cnt)+c.alpha) - lgOld
			logProbNew += lgamma(float64(cnt)+prop) - lgNew
		}
	}

	u := distuv.Uniform{Min: 0, Max: 1, Src: c.rnd}.Rand()
	if u < math.Exp(logProbNew-logProbOld) {
		c.alpha = prop
	}
}

// reflectAlpha folds a proposal back into [0, alphaMax]: repeated
// shifts bring it into [-alphaMax, 2*alphaMax], one more reflection
// across each boundary lands it in the support. An exact zero is
// replaced by a strictly positive floor.
func reflectAlpha(a float64) float64 {
	if a < 0 || a > alphaMax {
		for a < -alphaMax {
			a += 2 * alphaMax
		}
		for a > 2*alphaMax {
			a -= 2 * alphaMax
		}
		if a < 0 {
			a = -a
		}
		if a > alphaMax {
			a = 2*alphaMax - a
		}
	}
	if a == 0 {
		a = alphaFloor
	}
	return a
}
