package randomize

import "math/rand/v2"

// Source yields uniform values in [0, 1).
type Source interface {
	Float64() float64
}

// NewSource returns an unseeded generator.
func NewSource() Source {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// index draws a uniform index in [0, n).
func index(src Source, n int) int {
	i := int(src.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
