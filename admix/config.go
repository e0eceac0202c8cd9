package admix

import "fmt"

// Config collects the parameters of one admixture MCMC chain at a
// fixed number of demes.
type Config struct {
	// K is the number of demes.
	K int
	// Lambda is the Dirichlet pseudocount of the allele-frequency prior.
	Lambda float64
	// Alpha is the admixture concentration parameter. When FixAlpha is
	// false it is only the starting value of the Metropolis chain.
	Alpha float64
	// FixAlpha disables the Metropolis update of Alpha.
	FixAlpha bool
	// AlphaPropSD is the standard deviation of the Alpha proposal.
	AlphaPropSD float64
	// Beta is the thermodynamic temperature exponent applied to the
	// allele-frequency likelihood term. Ordinary runs use 1.
	Beta float64

	// BurnIn, Samples and Thinning control the iteration schedule.
	BurnIn   int
	Samples  int
	Thinning int

	// FixLabels enables the label-switching correction and with it all
	// Q-matrix accumulation.
	FixLabels bool
	// DrawFreqs enables drawing allele frequencies and admixture
	// proportions and scoring the joint likelihood.
	DrawFreqs bool
	// StoreLogLike keeps the per-sample marginal log-likelihood values.
	StoreLogLike bool
	// PopQmatrix enables the population-level Q-matrix aggregation.
	PopQmatrix bool
}

// SetDefaults fills the fields an ordinary single-temperature run
// leaves unset.
func (c *Config) SetDefaults() {
	if c.Lambda == 0 {
		c.Lambda = 1
	}
	if c.Alpha == 0 {
		c.Alpha = 1
	}
	if c.AlphaPropSD == 0 {
		c.AlphaPropSD = 0.1
	}
	if c.Beta == 0 {
		c.Beta = 1
	}
	if c.Thinning == 0 {
		c.Thinning = 1
	}
}

// Check validates the configuration.
func (c *Config) Check() error {
	if c.K < 1 {
		return fmt.Errorf("K=%d, want at least 1", c.K)
	}
	if c.Lambda <= 0 {
		return fmt.Errorf("lambda=%v, want positive", c.Lambda)
	}
	if c.Alpha <= 0 {
		return fmt.Errorf("alpha=%v, want positive", c.Alpha)
	}
	if !c.FixAlpha && c.AlphaPropSD <= 0 {
		return fmt.Errorf("alpha proposal SD=%v, want positive", c.AlphaPropSD)
	}
	if c.Beta <= 0 {
		return fmt.Errorf("beta=%v, want positive", c.Beta)
	}
	if c.BurnIn < 0 || c.Samples < 1 || c.Thinning < 1 {
		return fmt.Errorf("bad iteration schedule: burn-in=%d samples=%d thinning=%d", c.BurnIn, c.Samples, c.Thinning)
	}
	return nil
}
