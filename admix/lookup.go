package admix

import "math"

// logLookupSize bounds the cached count range. Counts at or above the
// bound fall back to math.Log.
const logLookupSize = 1000

// logLookup caches log(count + mult*lambda) for small integer counts
// and lambda multiples up to the largest per-locus number of allele
// states. The allele factor of the conditional posterior evaluates
// this expression once per deme per gene copy per iteration, which
// makes it the hottest log call in the sampler.
type logLookup struct {
	lambda float64
	table  [][]float64
}

func newLogLookup(lambda float64, maxMult int) *logLookup {
	t := &logLookup{
		lambda: lambda,
		table:  make([][]float64, logLookupSize),
	}
	for i := range t.table {
		t.table[i] = make([]float64, maxMult+1)
		for j := range t.table[i] {
			t.table[i][j] = math.Log(float64(i) + float64(j)*lambda)
		}
	}
	return t
}

// log returns log(count + mult*lambda).
func (t *logLookup) log(count, mult int) float64 {
	if count < logLookupSize && mult < len(t.table[count]) {
		return t.table[count][mult]
	}
	return math.Log(float64(count) + float64(mult)*t.lambda)
}
