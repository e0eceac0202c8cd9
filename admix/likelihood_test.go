package admix

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"

	"github.com/thierrygosselin/MavericK/geno"
)

// one diploid individual, one locus, two alleles
func heterozygote(t *testing.T) *geno.Data {
	t.Helper()
	d, err := geno.NewData([][][]int{{{1, 2}}}, []int{2}, nil, nil)
	if err != nil {
		t.Fatal("Error: ", err)
	}
	return d
}

func TestLogLikeGroupClosedForm(t *testing.T) {
	d := heterozygote(t)
	c, err := New(d, Config{K: 2, Lambda: 1, Alpha: 1, BurnIn: 0, Samples: 1}, rand.New(rand.NewSource(17)))
	if err != nil {
		t.Fatal("Error: ", err)
	}

	// force both gene copies into deme 0
	for g := 0; g < 2; g++ {
		a := d.Genotypes[0][0][g]
		c.remove(0, 0, a-1, c.group[g])
		c.group[g] = 0
		c.add(0, 0, a-1, 0)
	}
	c.calcLogLikeGroup()

	// with lambda=1 the marginal of one copy of each allele in the same
	// deme is (1/2)*(1/3) = 1/6
	want := -math.Log(6)
	if math.Abs(c.logLikeGroup-want) > 1e-12 {
		t.Errorf("logLikeGroup=%v, want %v", c.logLikeGroup, want)
	}

	// split across demes: each deme sees a single copy, (1/2)*(1/2)
	c.remove(0, 0, 1, 0)
	c.group[1] = 1
	c.add(0, 0, 1, 1)
	c.calcLogLikeGroup()
	want = -math.Log(4)
	if math.Abs(c.logLikeGroup-want) > 1e-12 {
		t.Errorf("split logLikeGroup=%v, want %v", c.logLikeGroup, want)
	}
}

func TestLogLikeGroupRelabelInvariant(t *testing.T) {
	c := newTestChain(t, Config{K: 3, BurnIn: 0, Samples: 1}, 18)
	for sweep := 0; sweep < 5; sweep++ {
		c.updateGroups()
	}
	c.calcLogLikeGroup()
	before := c.logLikeGroup
	c.relabel([]int{2, 0, 1})
	c.calcLogLikeGroup()
	if math.Abs(c.logLikeGroup-before) > 1e-9 {
		t.Errorf("logLikeGroup changed under relabeling: %v -> %v", before, c.logLikeGroup)
	}
}

func TestLogLikeJointKnownFreqs(t *testing.T) {
	d := heterozygote(t)
	c, err := New(d, Config{K: 2, DrawFreqs: true, BurnIn: 0, Samples: 1}, rand.New(rand.NewSource(19)))
	if err != nil {
		t.Fatal("Error: ", err)
	}
	c.admixFreqs[0][0] = 0.5
	c.admixFreqs[0][1] = 0.5
	c.alleleFreqs[0][0][0] = 0.8
	c.alleleFreqs[0][0][1] = 0.2
	c.alleleFreqs[1][0][0] = 0.4
	c.alleleFreqs[1][0][1] = 0.6
	c.calcLogLikeJoint()

	want := math.Log(0.5*0.8+0.5*0.4) + math.Log(0.5*0.2+0.5*0.6)
	if math.Abs(c.logLikeJoint-want) > 1e-12 {
		t.Errorf("logLikeJoint=%v, want %v", c.logLikeJoint, want)
	}
}

func TestDrawFreqsSimplex(t *testing.T) {
	c := newTestChain(t, Config{K: 3, DrawFreqs: true, BurnIn: 0, Samples: 1}, 20)
	c.drawFreqs()
	for k := 0; k < c.K; k++ {
		for l := 0; l < c.data.NLoci(); l++ {
			sum := 0.0
			for _, f := range c.alleleFreqs[k][l] {
				if f < 0 {
					t.Fatal("negative allele frequency")
				}
				sum += f
			}
			if math.Abs(sum-1) > smallDiff {
				t.Fatalf("allele frequencies of deme %d locus %d sum to %v", k, l, sum)
			}
		}
	}
	for i := range c.admixFreqs {
		sum := 0.0
		for _, f := range c.admixFreqs[i] {
			if f < 0 {
				t.Fatal("negative admixture proportion")
			}
			sum += f
		}
		if math.Abs(sum-1) > smallDiff {
			t.Fatalf("admixture proportions of individual %d sum to %v", i, sum)
		}
	}
}

func TestHarmonicFinite(t *testing.T) {
	c := newTestChain(t, Config{K: 2, BurnIn: 5, Samples: 40, FixLabels: true}, 21)
	c.Run(0)
	h := c.Harmonic()
	if math.IsNaN(h) || math.IsInf(h, 0) {
		t.Errorf("harmonic-mean log-evidence is %v", h)
	}
	// the evidence estimate cannot exceed the best observed likelihood
	sum, _ := c.LogLikeGroupSums()
	mean := sum / 40
	if h > mean+100 {
		t.Errorf("harmonic estimate %v implausibly above mean logLike %v", h, mean)
	}
}
