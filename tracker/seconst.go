// Package tracker - sub-Exponential constants registry.
//
// The credible-band machinery needs, per sketch kind, the constants of the
// sub-Exponential tail bound the sketched residual obeys:
//
//	Sigma2  — sub-Gaussian variance proxy of one sketched observation
//	Omega   — heavier-tail (exponential-branch) constant; 0 when the
//	          Gaussian branch alone applies
//	Eta     — effective-sample-size factor in the denominator
//	Scaling — multiplier making E[scaled sketched residual²] equal the
//	          true squared residual (1 for every built-in kind: the
//	          operators in the sketch package are expectation-correct by
//	          construction)
//
// The registry is keyed by sketch.Kind and populated at package
// initialization; callers may overwrite entries or add their own via
// RegisterSEConstants (do so during program init — the registry is a
// plain map and is not synchronized). Looking up an unregistered kind
// logs a warning and degrades to a conservative default instead of
// failing: a tight statistical guarantee is best-effort, never
// correctness-critical.
package tracker

import (
	"log/slog"

	"github.com/katalvlaran/randla/sketch"
)

// SEConstants parametrizes the sub-Exponential tail bound of one sketched
// residual observation for a given sketch kind.
type SEConstants struct {
	Sigma2  float64
	Omega   float64
	Eta     float64
	Scaling float64
}

// conservativeSE is the default-and-warn fallback for unknown kinds.
var conservativeSE = SEConstants{Sigma2: 1, Omega: 0, Eta: 1, Scaling: 1}

// seRegistry maps sketch kinds to their tail constants. Gaussian-flavored
// operators carry no exponential branch; the discrete/sampling operators
// get Omega=1 to widen their bands against heavy-tailed single draws.
var seRegistry = map[sketch.Kind]SEConstants{
	sketch.KindGaussian:    {Sigma2: 1, Omega: 0, Eta: 1, Scaling: 1},
	sketch.KindFJLT:        {Sigma2: 1, Omega: 0, Eta: 1, Scaling: 1},
	sketch.KindSRHT:        {Sigma2: 1, Omega: 0, Eta: 1, Scaling: 1},
	sketch.KindSparseSign:  {Sigma2: 1, Omega: 1, Eta: 1, Scaling: 1},
	sketch.KindCountSketch: {Sigma2: 1, Omega: 1, Eta: 1, Scaling: 1},
	sketch.KindSubSample:   {Sigma2: 1, Omega: 1, Eta: 1, Scaling: 1},
	sketch.KindIdentity:    {Sigma2: 1, Omega: 0, Eta: 1, Scaling: 1},
}

// warnLog is the destination for the single warning path this package
// has. Overridable for embedding applications; nil silences nothing —
// use a discarding handler for that.
var warnLog = slog.Default()

// SetLogger redirects the package's warnings. Call during program init.
func SetLogger(l *slog.Logger) {
	if l != nil {
		warnLog = l
	}
}

// RegisterSEConstants installs or overwrites the constants for a kind.
// Call during program init; the registry is not synchronized.
func RegisterSEConstants(k sketch.Kind, c SEConstants) {
	seRegistry[k] = c
}

// lookupSE resolves the effective constants for a completed tracker:
// the registered Sigma2 shrinks with the sampler's block size (averaging
// s independently sketched rows divides the variance proxy by s).
func lookupSE(m Meta) SEConstants {
	c, ok := seRegistry[m.Kind]
	if !ok {
		warnLog.Warn("tracker: no sub-Exponential constants registered, using conservative defaults",
			"kind", m.Kind.String())
		c = conservativeSE
	}
	if m.BlockSize > 1 {
		c.Sigma2 /= float64(m.BlockSize)
	}

	return c
}
