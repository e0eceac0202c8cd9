package admix

import (
	"errors"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/thierrygosselin/MavericK/checkpoint"
	"github.com/thierrygosselin/MavericK/geno"
)

// errNoPops reports a population-level aggregation request against a
// dataset without population labels.
var errNoPops = errors.New("population-level Q-matrix requested but data has no population labels")

// Sample is the per-iteration observable record of a chain.
type Sample struct {
	// K is the number of demes of the chain.
	K int
	// Rep is the chain repeat index supplied to Run.
	Rep int
	// Iter is the 1-based sampling iteration; burn-in iterations carry
	// non-positive values.
	Iter int

	LogLikeGroup float64
	LogLikeJoint float64
	Alpha        float64

	// Group is a copy of the gene-copy assignment vector.
	Group []int
}

// Observer receives one Sample per MCMC iteration.
type Observer interface {
	Sample(*Sample)
}

// Chain runs the admixture MCMC at a fixed number of demes. The
// per-iteration sequence is strictly ordered: the Gibbs sweep and the
// alpha Metropolis step mutate the model, the fresh posterior matrix
// is produced and aligned against the running reference, the aligned
// posterior is folded into the accumulators, and the iteration is
// scored.
type Chain struct {
	*Model
	data *geno.Data
	cfg  Config

	rnd   *rand.Rand
	alpha float64

	probVec []float64

	// qNew and logQNew hold the current iteration's unaligned
	// gene-copy posterior in linear and log form. logQRunning is the
	// accumulated reference the label alignment compares against, and
	// logQGene the post-burn-in accumulator behind the reported
	// Q-matrices.
	qNew        [][]float64
	logQNew     [][]float64
	logQRunning [][]float64
	logQGene    [][]float64

	qGene [][]float64
	qInd  [][]float64
	qPop  [][]float64

	alleleFreqs [][][]float64
	admixFreqs  [][]float64

	logLikeGroup      float64
	logLikeGroupSum   float64
	logLikeGroupSumSq float64
	logLikeJoint      float64
	logLikeJointSum   float64
	logLikeJointSumSq float64
	logLikeStore      []float64
	harmonic          float64

	costMat     *mat.Dense
	permScratch []float64

	obs  Observer
	ckpt *checkpoint.CheckpointIO
}

// New creates a chain for the dataset and draws its initial state
// from the given generator.
func New(data *geno.Data, cfg Config, rnd *rand.Rand) (*Chain, error) {
	cfg.SetDefaults()
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	if cfg.PopQmatrix && data.NPops() == 0 {
		return nil, errNoPops
	}

	c := &Chain{
		Model:   newModel(data, cfg.K, cfg.Lambda),
		data:    data,
		cfg:     cfg,
		rnd:     rnd,
		alpha:   cfg.Alpha,
		probVec: make([]float64, cfg.K),
		costMat: mat.NewDense(cfg.K, cfg.K, nil),
	}

	gc := data.GeneCopies()
	c.qNew = newMatrix(gc, cfg.K)
	c.logQNew = newMatrix(gc, cfg.K)
	c.logQRunning = newMatrix(gc, cfg.K)
	c.logQGene = newMatrix(gc, cfg.K)
	c.qGene = newMatrix(gc, cfg.K)
	c.qInd = newMatrix(data.NInd(), cfg.K)
	if cfg.PopQmatrix {
		c.qPop = newMatrix(data.NPops(), cfg.K)
	}
	c.permScratch = make([]float64, cfg.K)

	if cfg.DrawFreqs {
		c.alleleFreqs = make([][][]float64, cfg.K)
		for k := range c.alleleFreqs {
			c.alleleFreqs[k] = make([][]float64, data.NLoci())
			for l := range c.alleleFreqs[k] {
				c.alleleFreqs[k][l] = make([]float64, data.J[l])
			}
		}
		c.admixFreqs = newMatrix(data.NInd(), cfg.K)
	}

	c.Reset(true)
	return c, nil
}

// SetObserver installs the per-iteration observer.
func (c *Chain) SetObserver(obs Observer) { c.obs = obs }

// SetCheckpointIO installs an optional checkpoint sink.
func (c *Chain) SetCheckpointIO(ckpt *checkpoint.CheckpointIO) { c.ckpt = ckpt }

// Reset reinitializes the chain: a fresh random assignment, rebuilt
// count tables and zeroed accumulators. The running reference used
// for label alignment is reset to the uniform distribution only when
// resetRunning is set, so repeated runs can stay label-consistent.
func (c *Chain) Reset(resetRunning bool) {
	c.alpha = c.cfg.Alpha
	c.Model.reset(c.rnd)

	c.logLikeGroup = 0
	c.logLikeGroupSum = 0
	c.logLikeGroupSumSq = 0
	c.logLikeJoint = 0
	c.logLikeJointSum = 0
	c.logLikeJointSumSq = 0
	c.harmonic = math.Inf(-1)
	if c.cfg.StoreLogLike {
		c.logLikeStore = make([]float64, c.cfg.Samples)
	}

	fillMatrix(c.qNew, 0)
	fillMatrix(c.logQNew, 0)
	fillMatrix(c.logQGene, math.Inf(-1))
	fillMatrix(c.qGene, 0)
	fillMatrix(c.qInd, 0)
	if c.qPop != nil {
		fillMatrix(c.qPop, 0)
	}
	if resetRunning {
		fillMatrix(c.logQRunning, -math.Log(float64(c.cfg.K)))
	}
}

// Run performs the full burn-in plus thinned sampling loop. The rep
// argument only tags the emitted samples with a repeat index.
func (c *Chain) Run(rep int) {
	log.Infof("Running admixture MCMC: K=%d, burn-in=%d, samples=%d, thinning=%d, beta=%g",
		c.cfg.K, c.cfg.BurnIn, c.cfg.Samples, c.cfg.Thinning, c.cfg.Beta)

	thin := 1
	for it := 0; it < c.cfg.BurnIn+c.cfg.Samples; it++ {
		for t := 0; t < thin; t++ {
			c.updateGroups()
			if !c.cfg.FixAlpha {
				c.updateAlpha()
			}
		}
		if it == c.cfg.BurnIn {
			thin = c.cfg.Thinning
		}

		if c.cfg.FixLabels {
			c.produceQmatrix()
			c.alignLabels()
			c.updateQmatrix()
			if it >= c.cfg.BurnIn {
				c.storeQmatrix()
			}
		}

		c.calcLogLikeGroup()
		if c.cfg.DrawFreqs {
			c.drawFreqs()
			c.calcLogLikeJoint()
		}

		if it >= c.cfg.BurnIn {
			c.logLikeGroupSum += c.logLikeGroup
			c.logLikeGroupSumSq += c.logLikeGroup * c.logLikeGroup
			if c.cfg.StoreLogLike {
				c.logLikeStore[it-c.cfg.BurnIn] = c.logLikeGroup
			}
			c.harmonic = logSum(c.harmonic, -c.logLikeGroup)
			if c.cfg.DrawFreqs {
				c.logLikeJointSum += c.logLikeJoint
				c.logLikeJointSumSq += c.logLikeJoint * c.logLikeJoint
			}
		}

		if c.obs != nil {
			c.obs.Sample(&Sample{
				K:            c.cfg.K,
				Rep:          rep,
				Iter:         it - c.cfg.BurnIn + 1,
				LogLikeGroup: c.logLikeGroup,
				LogLikeJoint: c.logLikeJoint,
				Alpha:        c.alpha,
				Group:        append([]int(nil), c.group...),
			})
		}

		if c.ckpt != nil && c.ckpt.Old() {
			c.saveCheckpoint(it, false)
		}
	}

	if c.cfg.FixLabels {
		c.finalizeQmatrices()
	}
	c.harmonic = math.Log(float64(c.cfg.Samples)) - c.harmonic
	if c.ckpt != nil {
		c.saveCheckpoint(c.cfg.BurnIn+c.cfg.Samples, true)
	}
	log.Infof("Finished MCMC: mean logLike=%f, harmonic-mean logEvidence=%f",
		c.LogLikeGroupMean(), c.harmonic)
}

func (c *Chain) saveCheckpoint(iter int, final bool) {
	err := c.ckpt.Save(&checkpoint.CheckpointData{
		Alpha:   c.alpha,
		LogLike: c.logLikeGroup,
		Iter:    iter,
		Final:   final,
	})
	if err != nil {
		log.Errorf("Error saving checkpoint: %v", err)
	}
}

// Alpha returns the current concentration-parameter value.
func (c *Chain) Alpha() float64 { return c.alpha }

// Harmonic returns the harmonic-mean log-evidence estimate. It is
// only meaningful after Run.
func (c *Chain) Harmonic() float64 { return c.harmonic }

// LogLikeGroupMean returns the post-burn-in mean of the marginal
// log-likelihood.
func (c *Chain) LogLikeGroupMean() float64 {
	return c.logLikeGroupSum / float64(c.cfg.Samples)
}

// LogLikeGroupSums returns the post-burn-in running sum and sum of
// squares of the marginal log-likelihood.
func (c *Chain) LogLikeGroupSums() (sum, sumSq float64) {
	return c.logLikeGroupSum, c.logLikeGroupSumSq
}

// LogLikeJointSums returns the post-burn-in running sum and sum of
// squares of the joint log-likelihood.
func (c *Chain) LogLikeJointSums() (sum, sumSq float64) {
	return c.logLikeJointSum, c.logLikeJointSumSq
}

// LogLikeStore returns the stored per-sample marginal log-likelihood
// values, or nil when storing is disabled.
func (c *Chain) LogLikeStore() []float64 { return c.logLikeStore }

// QmatrixGene returns the finalized gene-copy-level Q-matrix.
func (c *Chain) QmatrixGene() [][]float64 { return c.qGene }

// QmatrixInd returns the finalized individual-level Q-matrix.
func (c *Chain) QmatrixInd() [][]float64 { return c.qInd }

// QmatrixPop returns the finalized population-level Q-matrix, or nil
// when population aggregation is disabled.
func (c *Chain) QmatrixPop() [][]float64 { return c.qPop }

func newMatrix(rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}

func fillMatrix(m [][]float64, v float64) {
	for i := range m {
		for j := range m[i] {
			m[i][j] = v
		}
	}
}
