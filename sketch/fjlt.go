// Package sketch - Fast Johnson–Lindenstrauss Transform.
package sketch

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// FJLT configures S = K·H·D (Left) or D·H·K (Right): a random ±1 diagonal
// D, an implicit orthonormal Hadamard transform H over a power-of-two
// padded buffer, and a sparse Gaussian K whose entries appear with
// probability Sparsity and are drawn N(0, 1/Sparsity). A 1/√Dim factor on
// K makes the operator expectation-correct.
//
// Defaults: Dim=DefaultDim, BlockSize=DefaultBlockSize, Sparsity=0 ⇒
// min(1, 0.25·log²(n)/Dim) where n is the initial target dimension.
type FJLT struct {
	Cardinality Cardinality

	// Dim is the compression dimension s.
	Dim int

	// Sparsity is the entry probability of the sparse Gaussian component;
	// must lie in (0, 1]. Zero resolves to the dimension-driven default.
	Sparsity float64

	// BlockSize bounds the padded buffer: targets are streamed through it
	// BlockSize columns (rows for Right products) at a time.
	BlockSize int

	Src *rand.Rand
}

type fjltRecipe struct {
	*hadamardCore

	sparsity float64
	kscale   float64 // 1/√dim
	kstd     float64 // 1/√sparsity

	// Sparse Gaussian K in coordinate form; slices are reused across
	// Update calls (length varies within capacity, amortized no-alloc).
	kIn  []int // p-side index
	kOut []int // s-side index
	kVal []float64
}

var _ Recipe = (*fjltRecipe)(nil)

func (f FJLT) complete(rows, cols int, _ mat.Matrix) (Recipe, error) {
	dim, err := effectiveDim(f.Dim)
	if err != nil {
		return nil, err
	}
	block, err := effectiveBlock(f.BlockSize)
	if err != nil {
		return nil, err
	}

	_, _, n := realizedShape(f.Cardinality, dim, rows, cols)
	q := f.Sparsity
	if q == 0 {
		lg := math.Log(float64(n))
		q = 0.25 * lg * lg / float64(dim)
		if q > 1 {
			q = 1
		}
	}
	if q <= 0 || q > 1 {
		return nil, ErrSparsityRange
	}

	rec := &fjltRecipe{
		hadamardCore: newHadamardCore(f.Cardinality, dim, n, block, ensureSrc(f.Src)),
		sparsity:     q,
		kscale:       1 / math.Sqrt(float64(dim)),
		kstd:         1 / math.Sqrt(q),
	}
	// Pre-size the coordinate slices to the expected count plus slack.
	exp := int(float64(dim*rec.p)*q) + 16
	rec.kIn = make([]int, 0, exp)
	rec.kOut = make([]int, 0, exp)
	rec.kVal = make([]float64, 0, exp)
	if err = rec.Update(); err != nil {
		return nil, err
	}

	return rec, nil
}

func (f *fjltRecipe) Dims() (int, int) { return f.dims() }
func (f *fjltRecipe) Kind() Kind       { return KindFJLT }

// Update resamples the sign diagonal and the sparse Gaussian component in
// place, reusing the coordinate slices' capacity. O(dim*p).
func (f *fjltRecipe) Update() error {
	f.resampleSigns()
	f.kIn = f.kIn[:0]
	f.kOut = f.kOut[:0]
	f.kVal = f.kVal[:0]
	for i := 0; i < f.dim; i++ {
		for j := 0; j < f.p; j++ {
			if f.src.Float64() >= f.sparsity {
				continue
			}
			f.kOut = append(f.kOut, i)
			f.kIn = append(f.kIn, j)
			f.kVal = append(f.kVal, f.src.NormFloat64()*f.kstd)
		}
	}

	return nil
}

func (f *fjltRecipe) pushK(dst view, off, nb int, alpha float64, pad [][]float64) {
	a := alpha * f.kscale
	for e := range f.kVal {
		av := a * f.kVal[e]
		in, out := f.kIn[e], f.kOut[e]
		for c := 0; c < nb; c++ {
			dst.add(out, off+c, av*pad[c][in])
		}
	}
}

func (f *fjltRecipe) pullK(src view, off, nb int, pad [][]float64) {
	for e := range f.kVal {
		v := f.kscale * f.kVal[e]
		in, out := f.kIn[e], f.kOut[e]
		for c := 0; c < nb; c++ {
			pad[c][in] += v * src.at(out, off+c)
		}
	}
}

func (f *fjltRecipe) apply(dst *mat.Dense, src mat.Matrix, alpha, beta float64, s side, trans bool) error {
	return f.hadamardApply(f, dst, src, alpha, beta, s, trans)
}
