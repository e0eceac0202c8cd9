package geno

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse reads a genotype table. Every line describes one ploidy row of
// one individual: an individual label, a population label and one
// allele per locus. Consecutive lines sharing a label belong to the
// same individual, so a diploid individual occupies two lines.
// Non-positive allele values denote missing data.
func Parse(rd io.Reader) (*Data, error) {
	var (
		genotypes [][][]int
		ploidy    []int
		labels    []string
		pops      []string
		loci      = -1
	)

	scanner := bufio.NewScanner(rd)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if len(fields) < 3 {
			return nil, fmt.Errorf("line %d: need label, population and at least one locus", lineNo)
		}
		label, pop := fields[0], fields[1]
		alleles := fields[2:]
		if loci < 0 {
			loci = len(alleles)
		} else if len(alleles) != loci {
			return nil, fmt.Errorf("line %d: %d loci, want %d", lineNo, len(alleles), loci)
		}

		row := make([]int, loci)
		for l, f := range alleles {
			a, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad allele %q: %v", lineNo, f, err)
			}
			if a < 0 {
				// missing-data codes such as -9
				a = 0
			}
			row[l] = a
		}

		i := len(labels) - 1
		if i < 0 || labels[i] != label {
			// first row of a new individual
			labels = append(labels, label)
			pops = append(pops, pop)
			ploidy = append(ploidy, 0)
			genotypes = append(genotypes, make([][]int, loci))
			i++
		}
		ploidy[i]++
		for l := 0; l < loci; l++ {
			genotypes[i][l] = append(genotypes[i][l], row[l])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(genotypes) == 0 {
		return nil, fmt.Errorf("no genotype rows")
	}

	return NewData(genotypes, ploidy, labels, pops)
}
