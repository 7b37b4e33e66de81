package pricing

import "math"

// normCDF computes the cumulative distribution function of the standard normal
// distribution for a given value x using the error function.
// It returns a value between 0 and 1 representing the probability that a standard
// normal random variable is less than or equal to x.
//
// The erf-based form is accurate to better than 1e-9 absolute error across
// [-10, 10], which covers every d1/d2 a valid valuation can produce.
func normCDF(x float64) float64 {
	return 0.5 * (1.0 + math.Erf(x/math.Sqrt2))
}
