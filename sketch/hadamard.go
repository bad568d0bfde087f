// Package sketch - shared Hadamard machinery for FJLT and SRHT.
//
// Both transforms share the skeleton S = K·H·D (Left) or D·H·K (Right):
// a random ±1 diagonal D, an implicit Hadamard transform H applied via the
// in-place fast Walsh–Hadamard algorithm on a buffer padded to the next
// power of two, and a kind-specific compression component K (sparse
// Gaussian for FJLT, uniform index selection for SRHT).
//
// Application streams the target through a fixed-size padded block buffer
// (BlockSize columns at a time) to bound memory: the block is loaded with
// the D signs applied, transformed column-by-column, normalized by 1/√p,
// and then pushed through K. The reverse direction runs Kᵀ, H, D.
//
// The transform here is orthonormal (1/√p normalization), so the K-side
// scale factors alone make every operator expectation-correct:
// E‖S·x‖² = ‖x‖².
package sketch

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// fwht applies the unnormalized fast Walsh–Hadamard transform in place.
// len(v) must be a power of two. O(p log p).
func fwht(v []float64) {
	for h := 1; h < len(v); h <<= 1 {
		for i := 0; i < len(v); i += h << 1 {
			for j := i; j < i+h; j++ {
				x, y := v[j], v[j+h]
				v[j], v[j+h] = x+y, x-y
			}
		}
	}
}

// nextPow2 returns the smallest power of two >= n (n >= 1).
func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}

// hadamardCore holds the pieces common to FJLT and SRHT recipes: the sign
// diagonal, the padded block buffer and the shape bookkeeping.
type hadamardCore struct {
	card  Cardinality
	dim   int // compression dimension s
	n     int // initial (uncompressed) dimension
	p     int // padded power of two >= n
	block int // streaming block width

	signs []float64   // D diagonal, len n, entries ±1
	pad   [][]float64 // block buffers, block × p
	src   *rand.Rand
}

func newHadamardCore(card Cardinality, dim, n, block int, src *rand.Rand) *hadamardCore {
	h := &hadamardCore{
		card:  card,
		dim:   dim,
		n:     n,
		p:     nextPow2(n),
		block: block,
		signs: make([]float64, n),
		pad:   make([][]float64, block),
		src:   src,
	}
	for i := range h.pad {
		h.pad[i] = make([]float64, h.p)
	}

	return h
}

func (h *hadamardCore) dims() (int, int) {
	if h.card == Right {
		return h.n, h.dim
	}

	return h.dim, h.n
}

// resampleSigns redraws the ±1 diagonal in place.
func (h *hadamardCore) resampleSigns() {
	for i := range h.signs {
		if h.src.Float64() < 0.5 {
			h.signs[i] = 1
		} else {
			h.signs[i] = -1
		}
	}
}

// loadPad fills nb block columns with D·src(:, off..off+nb) zero-padded.
func (h *hadamardCore) loadPad(src view, off, nb int) {
	for c := 0; c < nb; c++ {
		buf := h.pad[c]
		for r := 0; r < h.n; r++ {
			buf[r] = h.signs[r] * src.at(r, off+c)
		}
		for r := h.n; r < h.p; r++ {
			buf[r] = 0
		}
	}
}

// zeroPad clears nb block columns.
func (h *hadamardCore) zeroPad(nb int) {
	for c := 0; c < nb; c++ {
		buf := h.pad[c]
		for r := range buf {
			buf[r] = 0
		}
	}
}

// fwhtPad applies the orthonormal transform to nb loaded columns.
func (h *hadamardCore) fwhtPad(nb int) {
	inv := 1 / math.Sqrt(float64(h.p))
	for c := 0; c < nb; c++ {
		buf := h.pad[c]
		fwht(buf)
		for r := range buf {
			buf[r] *= inv
		}
	}
}

// storePad accumulates alpha*D·pad into dst rows 0..n (reverse direction).
func (h *hadamardCore) storePad(dst view, off, nb int, alpha float64) {
	for c := 0; c < nb; c++ {
		buf := h.pad[c]
		for r := 0; r < h.n; r++ {
			dst.add(r, off+c, alpha*h.signs[r]*buf[r])
		}
	}
}

// hadamardKind is implemented by the FJLT and SRHT recipes: the two
// directions of the K component over a transformed block.
type hadamardKind interface {
	// pushK accumulates alpha*K·pad into dst(:, off..off+nb).
	pushK(dst view, off, nb int, alpha float64, pad [][]float64)
	// pullK accumulates Kᵀ·src(:, off..off+nb) into the zeroed pad block.
	pullK(src view, off, nb int, pad [][]float64)
}

// hadamardApply routes the full multiply protocol for a Hadamard-skeleton
// recipe. The effective direction is "toS" (n→s, K·H·D) for a Left recipe
// applied plainly or a Right recipe applied transposed, and "fromS"
// (s→n, D·H·Kᵀ) otherwise; right-side products run on transposed views.
func (h *hadamardCore) hadamardApply(k hadamardKind, dst *mat.Dense, src mat.Matrix, alpha, beta float64, s side, trans bool) error {
	prescale(dst, beta)
	dv := view{g: dst.RawMatrix()}
	sv := view{g: generalOf(src)}
	eff := trans
	if s == sideRight {
		dv.t, sv.t = true, true
		eff = !eff
	}
	toS := (h.card == Left) != eff

	cols := sv.cols()
	for off := 0; off < cols; off += h.block {
		nb := h.block
		if cols-off < nb {
			nb = cols - off
		}
		if toS {
			h.loadPad(sv, off, nb)
			h.fwhtPad(nb)
			k.pushK(dv, off, nb, alpha, h.pad)
			continue
		}
		h.zeroPad(nb)
		k.pullK(sv, off, nb, h.pad)
		h.fwhtPad(nb)
		h.storePad(dv, off, nb, alpha)
	}

	return nil
}
