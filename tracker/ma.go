// Package tracker - adaptive dual-window moving-average tracker.
//
// Phase behavior (the heart of the estimator):
//   - fast phase: the effective window is Lambda1 wide (default 1), so the
//     reported mean tracks the newest observation. The solver is assumed
//     to be in its monotone early descent.
//   - the phase flips to slow exactly once, at the first iteration whose
//     (scaled, squared) sketched residual fails to decrease — the point
//     where observation noise starts dominating true progress.
//   - slow phase: the window widens to the full Lambda2 ring, trading
//     responsiveness for variance reduction; the mean rho and the
//     second-moment proxy iota feed the credible-band machinery.
package tracker

// MA configures the moving-average tracker (the sketched-residual
// convergence estimator). Zero values resolve to the documented defaults.
type MA struct {
	// Lambda1 is the fast-phase window width (default DefaultLambda1).
	Lambda1 int

	// Lambda2 is the slow-phase window width and ring-buffer length
	// (default DefaultLambda2).
	Lambda2 int

	// CollectionRate appends every k-th record to the histories.
	CollectionRate int

	// Alpha is the credibility level used for the band the stop criterion
	// sees (default DefaultAlpha).
	Alpha float64

	// Stop decides termination from (rho, band); nil never fires, leaving
	// termination to the solver's iteration budget.
	Stop StopCriterion
}

// MAHistory is the recorded estimator trajectory: for every collected
// iteration, the effective window width, the moving average rho and the
// second-moment proxy iota.
type MAHistory struct {
	Widths []int
	Rhos   []float64
	Iotas  []float64
}

// MATracker is the realized moving-average tracker. Solvers drive it
// through the Tracker interface; the extra methods (MAHistory, Rho,
// Uncertainty) are reachable via AsMA.
type MATracker struct {
	lam1, lam2 int
	rate       int
	alpha      float64
	stop       StopCriterion
	se         SEConstants

	window   []float64 // ring buffer, len lam2
	idx      int       // cursor: most recently written slot
	filled   int
	slow     bool
	prev     float64
	havePrev bool

	lambda int // current effective width
	rho    float64
	iota   float64

	hist   []float64 // raw estimates at the collection rate
	maHist MAHistory
	conv   bool
}

var _ Tracker = (*MATracker)(nil)

// Complete realizes the config against the solver's sketch metadata,
// resolving the sub-Exponential constants once.
//
// Errors: ErrWindowWidths, ErrCollectionRate, ErrBadAlpha.
func (m MA) Complete(meta Meta) (Tracker, error) {
	lam1, lam2 := m.Lambda1, m.Lambda2
	if lam1 == 0 {
		lam1 = DefaultLambda1
	}
	if lam2 == 0 {
		lam2 = DefaultLambda2
	}
	if lam1 < 1 || lam2 < lam1 {
		return nil, ErrWindowWidths
	}
	rate := m.CollectionRate
	if rate == 0 {
		rate = DefaultCollectionRate
	}
	if rate < 1 {
		return nil, ErrCollectionRate
	}
	alpha := m.Alpha
	if alpha == 0 {
		alpha = DefaultAlpha
	}
	if alpha <= 0 || alpha >= 1 {
		return nil, ErrBadAlpha
	}

	return &MATracker{
		lam1:   lam1,
		lam2:   lam2,
		rate:   rate,
		alpha:  alpha,
		stop:   m.Stop,
		se:     lookupSE(meta),
		window: make([]float64, lam2),
		idx:    -1,
	}, nil
}

// Update consumes the iteration's error estimate: squares and scales it,
// pushes it into the ring, runs the phase logic and recomputes rho/iota
// over the effective window. O(lambda2), zero allocations in steady state
// (histories grow amortized).
func (t *MATracker) Update(iter int, est float64) {
	res := est * est * t.se.Scaling

	// Ring push: idx always points at the most recent slot.
	t.idx = (t.idx + 1) % t.lam2
	t.window[t.idx] = res
	if t.filled < t.lam2 {
		t.filled++
	}

	// Phase flip: exactly once, at the first non-decrease.
	if !t.slow && t.havePrev && res > t.prev {
		t.slow = true
	}
	t.prev, t.havePrev = res, true

	// Effective width and window statistics.
	t.lambda = t.lam1
	if t.slow {
		t.lambda = t.lam2
	}
	if t.lambda > t.filled {
		t.lambda = t.filled
	}
	var rho, iota float64
	for k := 0; k < t.lambda; k++ {
		v := t.window[(t.idx-k+t.lam2)%t.lam2]
		rho += v
		iota += v * v
	}
	t.rho = rho / float64(t.lambda)
	t.iota = iota / float64(t.lambda)

	if iter%t.rate == 0 {
		t.hist = append(t.hist, est)
		t.maHist.Widths = append(t.maHist.Widths, t.lambda)
		t.maHist.Rhos = append(t.maHist.Rhos, t.rho)
		t.maHist.Iotas = append(t.maHist.Iotas, t.iota)
	}

	if t.stop == nil {
		return
	}
	lo, up := pointBand(t.lambda, t.rho, t.iota, t.se, t.alpha)
	t.conv = t.stop.Done(State{
		Iteration: iter,
		Estimate:  est,
		Rho:       t.rho,
		Lower:     lo,
		Upper:     up,
	})
}

func (t *MATracker) Converged() bool    { return t.conv }
func (t *MATracker) History() []float64 { return t.hist }

// MAHistory returns the recorded (width, rho, iota) trajectory.
func (t *MATracker) MAHistory() MAHistory { return t.maHist }

// Rho returns the current moving average of the scaled squared sketched
// residual.
func (t *MATracker) Rho() float64 { return t.rho }

// Slow reports whether the tracker has entered the slow (wide-window)
// phase.
func (t *MATracker) Slow() bool { return t.slow }

// Uncertainty converts the recorded trajectory into (1-alpha) credible
// bands on the true squared residual.
//
// Errors: ErrBadAlpha.
func (t *MATracker) Uncertainty(alpha float64) ([]Band, error) {
	return uncertainty(t.maHist, t.se, alpha)
}

// AsMA exposes the concrete tracker behind the interface for callers that
// need the moving-average surface (history export, band computation).
func AsMA(tr Tracker) (*MATracker, bool) {
	t, ok := tr.(*MATracker)

	return t, ok
}
