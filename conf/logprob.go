package conf

import "math"

// LogGammaNominator returns logGamma(n+1), the constant term shared by
// every configuration's log-probability for an element with n atoms.
func LogGammaNominator(n int) float64 {
	lg, _ := math.Lgamma(float64(n) + 1)
	return lg
}

// UnnormalizedLogProb computes Σ_i c[i]·logProbs[i] − Σ_i logGamma(c[i]+1),
// the multinomial-kernel term of a configuration's log-probability
// (spec.md §4.2), excluding the shared logGamma(N+1) nominator.
func UnnormalizedLogProb(c Conf, logProbs []float64) float64 {
	var acc float64
	for i, cnt := range c {
		if cnt == 0 {
			continue
		}
		lg, _ := math.Lgamma(float64(cnt) + 1)
		acc += float64(cnt)*logProbs[i] - lg
	}
	return acc
}

// LogProb computes the full log-probability of configuration c given the
// shared logGamma(N+1) nominator and the per-isotope log-probabilities.
func LogProb(c Conf, logGammaN1 float64, logProbs []float64) float64 {
	return logGammaN1 + UnnormalizedLogProb(c, logProbs)
}

// Mass computes Σ_i c[i]·masses[i].
func Mass(c Conf, masses []float64) float64 {
	var acc float64
	for i, cnt := range c {
		acc += float64(cnt) * masses[i]
	}
	return acc
}
