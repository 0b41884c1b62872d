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

// Inversion is the result of Invert: the inverse matrix together with the two
// intermediate values it was derived from.
type Inversion struct {
	Inverse     *Matrix
	Determinant int64 // det(m) mod M
	DetInverse  int64 // det(m)⁻¹ mod M
}

// Determinant returns det(m) mod M by cofactor expansion along row 0.
//
// The expansion is recursive and costs O(n!) time; keys are at most a few
// rows wide. Elimination is not used because division by a non-unit pivot
// is undefined when M is not prime.
func (m *Matrix) Determinant() (int64, error) {
	if !m.IsSquare() {
		return 0, errors.Wrapf(ErrNonSquare, "%s on %dx%d", opDet, m.rows, m.cols)
	}
	return m.det(), nil
}

func (m *Matrix) det() int64 {
	switch m.rows {
	case 1:
		return m.data[0]
	case 2:
		return Canonical(m.data[0]*m.data[3]-m.data[1]*m.data[2], m.modulus)
	}

	var det int64
	for j := 0; j < m.cols; j++ {
		term := m.data[j] * m.minor(0, j).det()
		if j%2 == 1 {
			term = -term
		}
		// keep the running sum in [0, M)
		det = Canonical(det+term, m.modulus)
	}
	return det
}

// Adjugate returns the transpose of the cofactor matrix, so that
// m·adj(m) = det(m)·I. The adjugate of a 1×1 matrix is [1] whatever its entry.
func (m *Matrix) Adjugate() (*Matrix, error) {
	if !m.IsSquare() {
		return nil, errors.Wrapf(ErrNonSquare, "%s on %dx%d", opAdjugate, m.rows, m.cols)
	}
	return m.adjugate(), nil
}

func (m *Matrix) adjugate() *Matrix {
	n := m.rows
	adj := newUnchecked(n, n, m.modulus)
	if n == 1 {
		adj.data[0] = 1
		return adj
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			cof := m.minor(i, j).det()
			if (i+j)%2 == 1 {
				cof = -cof
			}
			adj.data[j*n+i] = Canonical(cof, m.modulus) // transposed
		}
	}
	return adj
}

// Inverse returns m⁻¹ mod M using ModInverse. It fails with ErrNonSquare or
// ErrNotInvertible.
func (m *Matrix) Inverse() (*Matrix, error) {
	inv, err := m.Invert(ModInverse)
	if err != nil {
		return nil, err
	}
	return inv.Inverse, nil
}

// Invert computes m⁻¹ = det⁻¹·adj(m) with the supplied modular-inverse
// primitive (ModInverse when nil) and reports the determinant and its inverse
// alongside the result.
//
// A primitive reporting "no inverse", or returning a value that is not an
// inverse, yields ErrNotInvertible; its output is never used as a residue
// unchecked.
func (m *Matrix) Invert(modinv InverseFunc) (*Inversion, error) {
	if !m.IsSquare() {
		return nil, errors.Wrapf(ErrNonSquare, "%s on %dx%d", opInverse, m.rows, m.cols)
	}
	if modinv == nil {
		modinv = ModInverse
	}

	d := m.det()
	x, ok := modinv(d, m.modulus)
	if !ok {
		return nil, errors.Wrapf(ErrNotInvertible, "%s: determinant %d has no inverse mod %d", opInverse, d, m.modulus)
	}
	if x < 0 || x >= m.modulus || d*x%m.modulus != 1 {
		return nil, errors.Wrapf(ErrNotInvertible, "%s: %d is not an inverse of %d mod %d", opInverse, x, d, m.modulus)
	}

	return &Inversion{
		Inverse:     m.adjugate().Scale(x),
		Determinant: d,
		DetInverse:  x,
	}, nil
}
