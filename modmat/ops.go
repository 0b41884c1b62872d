// The MIT License (MIT)
//
// # Copyright (c) 2016 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package modmat

import "github.com/pkg/errors"

// accFlush is the number of residue products an int64 accumulator can hold
// before it must be reduced: each product is below MaxModulus², i.e. 2^48.
const accFlush = 1 << 14

func sameModulus(op string, a, b *Matrix) error {
	if a.modulus != b.modulus {
		return errors.Wrapf(ErrInvalidArgument, "%s: moduli %d and %d differ", op, a.modulus, b.modulus)
	}
	return nil
}

// Mul returns the matrix product m·o. Each dot product is accumulated in an
// int64 and reduced once at the end.
// It fails with ErrDimensionMismatch when m.Cols() != o.Rows() and with
// ErrInvalidArgument when the moduli differ.
func (m *Matrix) Mul(o *Matrix) (*Matrix, error) {
	if m.cols != o.rows {
		return nil, errors.Wrapf(ErrDimensionMismatch, "%s: %dx%d by %dx%d", opMul, m.rows, m.cols, o.rows, o.cols)
	}
	if err := sameModulus(opMul, m, o); err != nil {
		return nil, err
	}

	res := newUnchecked(m.rows, o.cols, m.modulus)
	for i := 0; i < m.rows; i++ {
		row := m.data[i*m.cols : (i+1)*m.cols]
		for j := 0; j < o.cols; j++ {
			var sum int64
			for k, a := range row {
				sum += a * o.data[k*o.cols+j]
				if k%accFlush == accFlush-1 {
					sum %= m.modulus
				}
			}
			res.data[i*o.cols+j] = sum % m.modulus
		}
	}
	return res, nil
}

// MulVec returns m·v for a column vector v of length Cols(). Entries of v are
// canonicalized before use; the result has length Rows() and lies in [0, M).
func (m *Matrix) MulVec(v []int64) ([]int64, error) {
	out := make([]int64, m.rows)
	if err := m.MulVecTo(out, v); err != nil {
		return nil, err
	}
	return out, nil
}

// MulVecTo is MulVec writing into out, which must have length Rows().
// out must not alias v.
func (m *Matrix) MulVecTo(out, v []int64) error {
	if len(v) != m.cols || len(out) != m.rows {
		return errors.Wrapf(ErrDimensionMismatch, "%s: %dx%d by vector of %d", opMulVec, m.rows, m.cols, len(v))
	}
	for i := 0; i < m.rows; i++ {
		var sum int64
		base := i * m.cols
		for k, x := range v {
			sum += m.data[base+k] * Canonical(x, m.modulus)
			if k%accFlush == accFlush-1 {
				sum %= m.modulus
			}
		}
		out[i] = sum % m.modulus
	}
	return nil
}

// Scale returns s·m with every entry reduced. s may be negative.
func (m *Matrix) Scale(s int64) *Matrix {
	s = Canonical(s, m.modulus)
	res := newUnchecked(m.rows, m.cols, m.modulus)
	for i, v := range m.data {
		res.data[i] = v * s % m.modulus
	}
	return res
}

// Transpose returns mᵀ.
func (m *Matrix) Transpose() *Matrix {
	res := newUnchecked(m.cols, m.rows, m.modulus)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			res.data[j*m.rows+i] = m.data[i*m.cols+j]
		}
	}
	return res
}

// Minor returns the (n-1)×(n-1) matrix obtained by deleting row r and
// column c, keeping the relative order of the remaining rows and columns.
func (m *Matrix) Minor(r, c int) (*Matrix, error) {
	if !m.IsSquare() {
		return nil, errors.Wrapf(ErrNonSquare, "%s(%d,%d) on %dx%d", opMinor, r, c, m.rows, m.cols)
	}
	if _, err := m.indexOf(r, c); err != nil {
		return nil, errors.Wrapf(err, "%s(%d,%d) on %dx%d", opMinor, r, c, m.rows, m.cols)
	}
	if m.rows == 1 {
		return nil, errors.Wrapf(ErrInvalidArgument, "%s(%d,%d): 1x1 matrix has no minor", opMinor, r, c)
	}
	return m.minor(r, c), nil
}

// minor assumes a square matrix of size >= 2 and valid indices.
func (m *Matrix) minor(r, c int) *Matrix {
	n := m.rows - 1
	res := newUnchecked(n, n, m.modulus)
	dst := 0
	for i := 0; i < m.rows; i++ {
		if i == r {
			continue
		}
		base := i * m.cols
		for j := 0; j < m.cols; j++ {
			if j == c {
				continue
			}
			res.data[dst] = m.data[base+j]
			dst++
		}
	}
	return res
}
