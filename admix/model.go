package admix

import (
	"math"

	"golang.org/x/exp/rand"

	"github.com/thierrygosselin/MavericK/geno"
)

// Model owns the mutable sufficient statistics of the admixture
// mixture model: the deme assignment of every gene copy and the
// allele and admixture count tables derived from it.
type Model struct {
	data   *geno.Data
	K      int
	lambda float64

	// group is the deme assignment of every gene copy, one label in
	// [0,K) per flattened gene-copy index. Missing-data gene copies
	// carry a label too; they are simply absent from the count tables.
	group []int

	// alleleCounts[k][l][j] counts the gene copies assigned to deme k
	// carrying allele j at locus l; alleleCountsTotals[k][l] is the
	// row sum over alleles.
	alleleCounts       [][][]int
	alleleCountsTotals [][]int

	// admixCounts[i][k] counts individual i's non-missing gene copies
	// assigned to deme k; admixCountsTotals[i] is i's non-missing
	// gene-copy total and stays constant for the whole chain.
	admixCounts       [][]int
	admixCountsTotals []int

	lookup *logLookup
}

func newModel(data *geno.Data, k int, lambda float64) *Model {
	m := &Model{
		data:   data,
		K:      k,
		lambda: lambda,
		group:  make([]int, data.GeneCopies()),
		lookup: newLogLookup(lambda, data.MaxJ()),
	}
	m.alleleCounts = make([][][]int, k)
	m.alleleCountsTotals = make([][]int, k)
	for d := 0; d < k; d++ {
		m.alleleCounts[d] = make([][]int, data.NLoci())
		for l := 0; l < data.NLoci(); l++ {
			m.alleleCounts[d][l] = make([]int, data.J[l])
		}
		m.alleleCountsTotals[d] = make([]int, data.NLoci())
	}
	m.admixCounts = make([][]int, data.NInd())
	for i := range m.admixCounts {
		m.admixCounts[i] = make([]int, k)
	}
	m.admixCountsTotals = make([]int, data.NInd())
	return m
}

// reset draws a uniformly random assignment for every gene copy and
// rebuilds all count tables from scratch by replaying the assignment
// against the genotype tensor.
func (m *Model) reset(rnd *rand.Rand) {
	for d := 0; d < m.K; d++ {
		for l := range m.alleleCounts[d] {
			for j := range m.alleleCounts[d][l] {
				m.alleleCounts[d][l][j] = 0
			}
			m.alleleCountsTotals[d][l] = 0
		}
	}
	for i := range m.admixCounts {
		for k := range m.admixCounts[i] {
			m.admixCounts[i][k] = 0
		}
		m.admixCountsTotals[i] = 0
	}

	g := -1
	for i := 0; i < m.data.NInd(); i++ {
		for l := 0; l < m.data.NLoci(); l++ {
			for p := 0; p < m.data.Ploidy[i]; p++ {
				g++
				k := rnd.Intn(m.K)
				m.group[g] = k
				if a := m.data.Genotypes[i][l][p]; a != 0 {
					m.add(i, l, a-1, k)
				}
			}
		}
	}
}

// add folds one non-missing gene copy into the count tables. The
// allele argument is 0-based.
func (m *Model) add(ind, locus, allele, k int) {
	m.alleleCounts[k][locus][allele]++
	m.alleleCountsTotals[k][locus]++
	m.admixCounts[ind][k]++
	m.admixCountsTotals[ind]++
}

// remove undoes add.
func (m *Model) remove(ind, locus, allele, k int) {
	m.alleleCounts[k][locus][allele]--
	m.alleleCountsTotals[k][locus]--
	m.admixCounts[ind][k]--
	m.admixCountsTotals[ind]--
}

// condWeights fills w with the unnormalized conditional posterior
// weight of every deme for the gene copy (ind, locus) carrying the
// 1-based allele a (0 meaning missing), and returns the weight sum.
// The allele-likelihood factor is raised to the temperature exponent
// beta; the common denominator of the admixture factor is identical
// across demes and is omitted.
func (m *Model) condWeights(ind, locus, a int, alpha, beta float64, w []float64) float64 {
	sum := 0.0
	for k := 0; k < m.K; k++ {
		wk := 1.0
		if a != 0 {
			wk = (float64(m.alleleCounts[k][locus][a-1]) + m.lambda) /
				(float64(m.alleleCountsTotals[k][locus]) + float64(m.data.J[locus])*m.lambda)
			if beta != 1 {
				wk = math.Pow(wk, beta)
			}
		}
		wk *= float64(m.admixCounts[ind][k]) + alpha
		w[k] = wk
		sum += wk
	}
	return sum
}

// relabel permutes deme identities: label k becomes perm[k]. The
// assignment vector and the per-deme rows and columns of the count
// tables are reindexed through the permutation.
func (m *Model) relabel(perm []int) {
	ac := make([][][]int, m.K)
	act := make([][]int, m.K)
	for k := 0; k < m.K; k++ {
		ac[perm[k]] = m.alleleCounts[k]
		act[perm[k]] = m.alleleCountsTotals[k]
	}
	m.alleleCounts = ac
	m.alleleCountsTotals = act

	for i := range m.admixCounts {
		row := make([]int, m.K)
		for k, c := range m.admixCounts[i] {
			row[perm[k]] = c
		}
		m.admixCounts[i] = row
	}

	for g, k := range m.group {
		m.group[g] = perm[k]
	}
}

// Group returns the current deme assignment of every gene copy.
func (m *Model) Group() []int { return m.group }

// AdmixCounts returns the admixture count row of an individual.
func (m *Model) AdmixCounts(i int) []int { return m.admixCounts[i] }
