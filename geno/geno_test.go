package geno

import (
	"strings"
	"testing"
)

// two diploid individuals, one haploid, three loci
func testTensor() ([][][]int, []int, []string, []string) {
	genotypes := [][][]int{
		{{1, 2}, {1, 1}, {3, 0}},
		{{2, 2}, {0, 0}, {1, 2}},
		{{1}, {2}, {2}},
	}
	ploidy := []int{2, 2, 1}
	labels := []string{"ind1", "ind2", "ind3"}
	pops := []string{"popA", "popB", "popA"}
	return genotypes, ploidy, labels, pops
}

func TestNewData(t *testing.T) {
	genotypes, ploidy, labels, pops := testTensor()
	d, err := NewData(genotypes, ploidy, labels, pops)
	if err != nil {
		t.Fatal("Error: ", err)
	}
	if d.NInd() != 3 || d.NLoci() != 3 {
		t.Errorf("got %d individuals, %d loci", d.NInd(), d.NLoci())
	}
	if d.GeneCopies() != 2*3+2*3+1*3 {
		t.Errorf("got %d gene copies, want 15", d.GeneCopies())
	}
	wantJ := []int{2, 2, 3}
	for l, j := range wantJ {
		if d.J[l] != j {
			t.Errorf("J[%d]=%d, want %d", l, d.J[l], j)
		}
	}
	if d.MaxJ() != 3 {
		t.Errorf("MaxJ=%d, want 3", d.MaxJ())
	}
	if !d.Missing(0, 2, 1) || d.Missing(0, 2, 0) {
		t.Error("missing-data detection wrong")
	}
}

func TestPops(t *testing.T) {
	genotypes, ploidy, labels, pops := testTensor()
	d, err := NewData(genotypes, ploidy, labels, pops)
	if err != nil {
		t.Fatal("Error: ", err)
	}
	if d.NPops() != 2 {
		t.Fatalf("NPops=%d, want 2", d.NPops())
	}
	if d.PopIndex(0) != 0 || d.PopIndex(1) != 1 || d.PopIndex(2) != 0 {
		t.Error("population indices wrong")
	}
	counts := d.PopCounts()
	if counts[0] != 2 || counts[1] != 1 {
		t.Errorf("population counts %v, want [2 1]", counts)
	}
}

func TestCopyIndexRoundtrip(t *testing.T) {
	genotypes, ploidy, labels, pops := testTensor()
	d, err := NewData(genotypes, ploidy, labels, pops)
	if err != nil {
		t.Fatal("Error: ", err)
	}
	x := d.Index()
	if x.Len() != d.GeneCopies() {
		t.Fatalf("index covers %d gene copies, want %d", x.Len(), d.GeneCopies())
	}
	g := 0
	for i := 0; i < d.NInd(); i++ {
		for l := 0; l < d.NLoci(); l++ {
			for p := 0; p < d.Ploidy[i]; p++ {
				if x.At(i, l, p) != g {
					t.Fatalf("At(%d,%d,%d)=%d, want %d", i, l, p, x.At(i, l, p), g)
				}
				gi, gl, gp := x.Pos(g)
				if gi != i || gl != l || gp != p {
					t.Fatalf("Pos(%d)=(%d,%d,%d), want (%d,%d,%d)", g, gi, gl, gp, i, l, p)
				}
				g++
			}
		}
	}
}

func TestNewDataErrors(t *testing.T) {
	if _, err := NewData(nil, nil, nil, nil); err == nil {
		t.Error("no error on empty tensor")
	}
	// ragged loci
	bad := [][][]int{{{1, 1}}, {{1, 1}, {2, 2}}}
	if _, err := NewData(bad, []int{2, 2}, nil, nil); err == nil {
		t.Error("no error on ragged tensor")
	}
	// ploidy mismatch
	if _, err := NewData([][][]int{{{1, 1}}}, []int{1}, nil, nil); err == nil {
		t.Error("no error on slot/ploidy mismatch")
	}
}

func TestParse(t *testing.T) {
	table := `
# label pop loci...
ind1 popA 1 1 3
ind1 popA 2 1 -9
ind2 popB 2 -9 1
ind2 popB 2 -9 2
ind3 popA 1 2 2
`
	d, err := Parse(strings.NewReader(table))
	if err != nil {
		t.Fatal("Error: ", err)
	}
	if d.NInd() != 3 {
		t.Fatalf("NInd=%d, want 3", d.NInd())
	}
	if d.Ploidy[0] != 2 || d.Ploidy[1] != 2 || d.Ploidy[2] != 1 {
		t.Errorf("ploidy %v, want [2 2 1]", d.Ploidy)
	}
	if !d.Missing(0, 2, 1) || !d.Missing(1, 1, 0) {
		t.Error("missing-data codes not recognized")
	}
	if d.Genotypes[1][0][0] != 2 || d.Genotypes[2][1][0] != 2 {
		t.Error("alleles misread")
	}
	if d.NPops() != 2 {
		t.Errorf("NPops=%d, want 2", d.NPops())
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse(strings.NewReader("")); err == nil {
		t.Error("no error on empty input")
	}
	if _, err := Parse(strings.NewReader("ind1 popA 1 2\nind2 popB 1\n")); err == nil {
		t.Error("no error on ragged rows")
	}
	if _, err := Parse(strings.NewReader("ind1 popA x\n")); err == nil {
		t.Error("no error on non-numeric allele")
	}
}
