// SPDX-License-Identifier: MIT

package dense

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/blocksparse/numeric"
)

// FromGonum copies any gonum matrix into a float64 Dense.
// Errors: ErrInvalidDimensions for empty matrices.
// Complexity: O(r*c).
func FromGonum(src mat.Matrix) (*Dense[float64], error) {
	r, c := src.Dims()
	out, err := New[float64](r, c)
	if err != nil {
		return nil, err
	}
	// *mat.Dense exposes its raw storage; copy row by row honoring the stride.
	if d, ok := src.(*mat.Dense); ok {
		raw := d.RawMatrix()
		for i := 0; i < r; i++ {
			copy(out.data[i*c:(i+1)*c], raw.Data[i*raw.Stride:i*raw.Stride+c])
		}

		return out, nil
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.data[i*c+j] = src.At(i, j)
		}
	}

	return out, nil
}

// ToGonum copies d into a new *mat.Dense, widening elements to float64.
// Integers beyond 2^53 lose precision, as with any float64 conversion.
// Complexity: O(r*c).
func ToGonum[T numeric.Scalar](d *Dense[T]) *mat.Dense {
	buf := make([]float64, len(d.data))
	for i, v := range d.data {
		buf[i] = float64(v)
	}

	return mat.NewDense(d.r, d.c, buf)
}
