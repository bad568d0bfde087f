package tracker

import "math"

// pointBand computes the half-widths of the (1-alpha) credible interval
// around rho for a single window state and returns the clamped bounds.
//
// Two concentration regimes are combined conservatively with max:
//   - Gaussian-like tail, driven by the variance proxy Sigma2;
//   - sub-Exponential tail, driven by Omega (zero for dense sketches,
//     which collapses the interval to the Gaussian term alone).
func pointBand(lambda int, rho, iota float64, se SEConstants, alpha float64) (lower, upper float64) {
	lf := float64(lambda)
	logTerm := 2 * math.Log(2/alpha) * (1 + math.Log(lf))

	gaussW := math.Sqrt(logTerm * se.Sigma2 * iota / (se.Eta * lf))
	expW := logTerm * se.Omega * math.Sqrt(iota) / (se.Eta * lf)

	half := math.Max(gaussW, expW)
	lower = rho - half
	if lower < 0 {
		lower = 0
	}
	upper = rho + half

	return lower, upper
}

// uncertainty maps a recorded trajectory to per-record bands.
func uncertainty(h MAHistory, se SEConstants, alpha float64) ([]Band, error) {
	if alpha <= 0 || alpha >= 1 {
		return nil, ErrBadAlpha
	}

	bands := make([]Band, len(h.Rhos))
	for i := range h.Rhos {
		lo, up := pointBand(h.Widths[i], h.Rhos[i], h.Iotas[i], se, alpha)
		bands[i] = Band{Rho: h.Rhos[i], Lower: lo, Upper: up}
	}

	return bands, nil
}

// Uncertainty computes (1-alpha) credible bands for an arbitrary recorded
// trajectory using the sub-Exponential constants registered for the given
// sketch metadata.
//
// Errors: ErrBadAlpha.
func Uncertainty(h MAHistory, m Meta, alpha float64) ([]Band, error) {
	return uncertainty(h, lookupSE(m), alpha)
}
