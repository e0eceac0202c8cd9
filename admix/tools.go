package admix

import (
	"math"

	"github.com/op/go-logging"
)

// log is a global logging variable.
var log = logging.MustGetLogger("admix")

// lgamma returns the natural logarithm of the absolute value of the
// gamma function. Every argument in this package is positive, so the
// sign is discarded.
func lgamma(x float64) float64 {
	v, _ := math.Lgamma(x)
	return v
}

// logSum returns log(exp(a)+exp(b)) without leaving the log domain.
// Either argument may be -Inf (the log of zero).
func logSum(a, b float64) float64 {
	if a < b {
		a, b = b, a
	}
	if math.IsInf(a, -1) {
		return a
	}
	return a + math.Log1p(math.Exp(b-a))
}
