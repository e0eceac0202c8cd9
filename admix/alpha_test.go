package admix

import (
	"math"
	"testing"
)

func TestReflectAlpha(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{3, 3},
		{0.001, 0.001},
		{10, 10},
		{-1, 1},
		{11, 9},
		{25, 5},
		{-12, 8},
		{47, 7},  // 47 -> 27 -> 7
		{-33, 7}, // -33 -> -13 -> 7
	}
	for _, c := range cases {
		if got := reflectAlpha(c.in); math.Abs(got-c.want) > 1e-12 {
			t.Errorf("reflectAlpha(%v)=%v, want %v", c.in, got, c.want)
		}
	}
}

func TestReflectAlphaZeroFloor(t *testing.T) {
	for _, in := range []float64{0, 20, -20, 40} {
		got := reflectAlpha(in)
		if got <= 0 {
			t.Errorf("reflectAlpha(%v)=%v, want strictly positive", in, got)
		}
	}
}

func TestAlphaStaysInSupport(t *testing.T) {
	c := newTestChain(t, Config{K: 3, AlphaPropSD: 4, BurnIn: 0, Samples: 1}, 9)
	for i := 0; i < 2000; i++ {
		c.updateGroups()
		c.updateAlpha()
		a := c.Alpha()
		if math.IsNaN(a) || math.IsInf(a, 0) || a <= 0 || a > alphaMax {
			t.Fatalf("alpha left the support: %v at iteration %d", a, i)
		}
	}
}

func TestFixedAlphaUntouched(t *testing.T) {
	c := newTestChain(t, Config{K: 3, Alpha: 2.5, FixAlpha: true, BurnIn: 2, Samples: 10}, 10)
	c.Run(0)
	if c.Alpha() != 2.5 {
		t.Errorf("fixed alpha changed to %v", c.Alpha())
	}
}
