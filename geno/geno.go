// Package geno stores multi-locus genotype data for population
// structure inference.
package geno

import (
	"fmt"

	"github.com/op/go-logging"
)

// log is a global logging variable.
var log = logging.MustGetLogger("geno")

// Data stores a multi-locus genotype dataset.
type Data struct {
	// Genotypes is indexed by individual, locus and ploidy slot.
	// Zero means missing data, allele identities are 1-based.
	Genotypes [][][]int
	// Ploidy is the number of gene copies per locus for every individual.
	Ploidy []int
	// J is the number of allele states at every locus.
	J []int
	// Labels are individual identifiers.
	Labels []string
	// Pops are population labels, one per individual (may be empty).
	Pops []string

	popIndex  []int
	popNames  []string
	popCounts []int

	loci       int
	geneCopies int
	index      *CopyIndex
}

// NewData creates a Data from an in-memory genotype tensor. The number
// of allele states per locus is derived from the observed alleles.
func NewData(genotypes [][][]int, ploidy []int, labels, pops []string) (*Data, error) {
	n := len(genotypes)
	if n == 0 {
		return nil, fmt.Errorf("empty genotype tensor")
	}
	if len(ploidy) != n {
		return nil, fmt.Errorf("ploidy vector length %d, want %d", len(ploidy), n)
	}
	loci := len(genotypes[0])
	if loci == 0 {
		return nil, fmt.Errorf("zero loci")
	}

	d := &Data{
		Genotypes: genotypes,
		Ploidy:    ploidy,
		J:         make([]int, loci),
		Labels:    labels,
		Pops:      pops,
		loci:      loci,
	}

	for i := 0; i < n; i++ {
		if len(genotypes[i]) != loci {
			return nil, fmt.Errorf("individual %d has %d loci, want %d", i, len(genotypes[i]), loci)
		}
		if ploidy[i] < 1 {
			return nil, fmt.Errorf("individual %d has ploidy %d", i, ploidy[i])
		}
		for l := 0; l < loci; l++ {
			if len(genotypes[i][l]) != ploidy[i] {
				return nil, fmt.Errorf("individual %d locus %d has %d slots, want ploidy %d", i, l, len(genotypes[i][l]), ploidy[i])
			}
			for _, a := range genotypes[i][l] {
				if a < 0 {
					return nil, fmt.Errorf("individual %d locus %d: negative allele %d", i, l, a)
				}
				if a > d.J[l] {
					d.J[l] = a
				}
			}
		}
		d.geneCopies += loci * ploidy[i]
	}
	for l, j := range d.J {
		if j == 0 {
			return nil, fmt.Errorf("locus %d has no observed alleles", l)
		}
	}

	if err := d.indexPops(); err != nil {
		return nil, err
	}
	d.index = newCopyIndex(ploidy, loci)

	log.Infof("Read genotypes of %d individuals, %d loci, %d gene copies", n, loci, d.geneCopies)
	return d, nil
}

// indexPops assigns a dense index to every distinct population label.
func (d *Data) indexPops() error {
	if len(d.Pops) == 0 {
		return nil
	}
	if len(d.Pops) != len(d.Genotypes) {
		return fmt.Errorf("population vector length %d, want %d", len(d.Pops), len(d.Genotypes))
	}
	seen := make(map[string]int)
	d.popIndex = make([]int, len(d.Pops))
	for i, p := range d.Pops {
		j, ok := seen[p]
		if !ok {
			j = len(d.popNames)
			seen[p] = j
			d.popNames = append(d.popNames, p)
			d.popCounts = append(d.popCounts, 0)
		}
		d.popIndex[i] = j
		d.popCounts[j]++
	}
	return nil
}

// NInd returns the number of individuals.
func (d *Data) NInd() int { return len(d.Genotypes) }

// NLoci returns the number of loci.
func (d *Data) NLoci() int { return d.loci }

// GeneCopies returns the total number of gene copies (observed or
// missing) over all individuals, loci and ploidy slots.
func (d *Data) GeneCopies() int { return d.geneCopies }

// MaxJ returns the largest per-locus number of allele states.
func (d *Data) MaxJ() int {
	m := 0
	for _, j := range d.J {
		if j > m {
			m = j
		}
	}
	return m
}

// Missing reports whether the gene copy at (individual, locus, slot)
// is missing data.
func (d *Data) Missing(i, l, p int) bool { return d.Genotypes[i][l][p] == 0 }

// Index returns the gene-copy index of the dataset.
func (d *Data) Index() *CopyIndex { return d.index }

// NPops returns the number of distinct population labels.
func (d *Data) NPops() int { return len(d.popNames) }

// PopIndex returns the dense population index of an individual.
func (d *Data) PopIndex(i int) int { return d.popIndex[i] }

// PopNames returns the distinct population labels in order of first
// appearance.
func (d *Data) PopNames() []string { return d.popNames }

// PopCounts returns the number of individuals per population, indexed
// like PopNames.
func (d *Data) PopCounts() []int { return d.popCounts }

// CopyIndex maps between (individual, locus, ploidy slot) positions
// and the flattened gene-copy index. The flattened order is
// individual, then locus, then ploidy slot.
type CopyIndex struct {
	offset [][]int
	ind    []int
	locus  []int
	slot   []int
}

func newCopyIndex(ploidy []int, loci int) *CopyIndex {
	x := &CopyIndex{offset: make([][]int, len(ploidy))}
	g := 0
	for i, pl := range ploidy {
		x.offset[i] = make([]int, loci)
		for l := 0; l < loci; l++ {
			x.offset[i][l] = g
			for p := 0; p < pl; p++ {
				x.ind = append(x.ind, i)
				x.locus = append(x.locus, l)
				x.slot = append(x.slot, p)
				g++
			}
		}
	}
	return x
}

// Len returns the total number of gene copies.
func (x *CopyIndex) Len() int { return len(x.ind) }

// At returns the flattened index of the gene copy at (individual,
// locus, ploidy slot).
func (x *CopyIndex) At(i, l, p int) int { return x.offset[i][l] + p }

// Pos returns the (individual, locus, ploidy slot) position of a
// flattened gene-copy index.
func (x *CopyIndex) Pos(g int) (i, l, p int) {
	return x.ind[g], x.locus[g], x.slot[g]
}
