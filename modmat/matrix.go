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

// Package modmat implements dense matrices over the ring Z/MZ.
//
// Every stored entry is a canonical residue in [0, M). Constructors and Set
// reduce their input, and every matrix-producing operation returns a freshly
// allocated Matrix, so results never alias their operands.
//
// The package is the linear-algebra core of the Hill cipher in package std:
// determinant by cofactor expansion, adjugate, and inversion through a
// modular-inverse primitive (see ModInverse).
package modmat

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// MaxModulus bounds the modulus so that the product of two residues, and
// short sums of such products, fit in an int64 before reduction.
const MaxModulus = 1 << 24

// Matrix is a rows×cols matrix of residues modulo a fixed modulus,
// stored row-major in a flat slice (offset = r*cols + c).
type Matrix struct {
	rows, cols int
	modulus    int64
	data       []int64
}

// Canonical returns the representative of x in [0, m).
// It is valid for negative x. m must be positive.
func Canonical(x, m int64) int64 {
	return (x%m + m) % m
}

func validateShape(rows, cols int, modulus int64) error {
	if rows <= 0 || cols <= 0 {
		return errors.Wrapf(ErrInvalidArgument, "%s: shape %dx%d", opNew, rows, cols)
	}
	if modulus < 2 || modulus > MaxModulus {
		return errors.Wrapf(ErrInvalidArgument, "%s: modulus %d outside [2, %d]", opNew, modulus, MaxModulus)
	}
	return nil
}

// New returns a rows×cols zero matrix modulo modulus.
func New(rows, cols int, modulus int64) (*Matrix, error) {
	if err := validateShape(rows, cols, modulus); err != nil {
		return nil, err
	}
	return newUnchecked(rows, cols, modulus), nil
}

// newUnchecked allocates without validation; callers derive the shape from an
// already valid matrix.
func newUnchecked(rows, cols int, modulus int64) *Matrix {
	return &Matrix{rows: rows, cols: cols, modulus: modulus, data: make([]int64, rows*cols)}
}

// NewFromSlice returns a rows×cols matrix filled from values in row-major
// order. Each value is canonicalized on insert; values is not retained.
// A slice whose length is not rows*cols is rejected rather than truncated
// or padded.
func NewFromSlice(rows, cols int, modulus int64, values []int64) (*Matrix, error) {
	if err := validateShape(rows, cols, modulus); err != nil {
		return nil, err
	}
	if len(values) != rows*cols {
		return nil, errors.Wrapf(ErrInvalidArgument, "%s: %d values for a %dx%d matrix", opNew, len(values), rows, cols)
	}
	m := newUnchecked(rows, cols, modulus)
	for i, v := range values {
		m.data[i] = Canonical(v, modulus)
	}
	return m, nil
}

// Identity returns the n×n identity matrix modulo modulus.
func Identity(n int, modulus int64) (*Matrix, error) {
	m, err := New(n, n, modulus)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m, nil
}

// Diagonal returns the square matrix with diag on its main diagonal.
func Diagonal(modulus int64, diag ...int64) (*Matrix, error) {
	n := len(diag)
	m, err := New(n, n, modulus)
	if err != nil {
		return nil, err
	}
	for i, v := range diag {
		m.data[i*n+i] = Canonical(v, modulus)
	}
	return m, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// Shape returns rows and cols together.
func (m *Matrix) Shape() (rows, cols int) { return m.rows, m.cols }

// Modulus returns the ring size M.
func (m *Matrix) Modulus() int64 { return m.modulus }

// IsSquare reports whether Rows() == Cols().
func (m *Matrix) IsSquare() bool { return m.rows == m.cols }

func (m *Matrix) indexOf(r, c int) (int, error) {
	if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		return 0, ErrOutOfRange
	}
	return r*m.cols + c, nil
}

// At returns the residue at (r, c) or ErrOutOfRange.
func (m *Matrix) At(r, c int) (int64, error) {
	off, err := m.indexOf(r, c)
	if err != nil {
		return 0, errors.Wrapf(err, "%s(%d,%d) on %dx%d", opAt, r, c, m.rows, m.cols)
	}
	return m.data[off], nil
}

// Set stores the canonical residue of v at (r, c).
// It is the only in-place mutation a Matrix supports.
func (m *Matrix) Set(r, c int, v int64) error {
	off, err := m.indexOf(r, c)
	if err != nil {
		return errors.Wrapf(err, "%s(%d,%d) on %dx%d", opSet, r, c, m.rows, m.cols)
	}
	m.data[off] = Canonical(v, m.modulus)
	return nil
}

// Values returns a copy of the entries in row-major order.
func (m *Matrix) Values() []int64 {
	out := make([]int64, len(m.data))
	copy(out, m.data)
	return out
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	cp := newUnchecked(m.rows, m.cols, m.modulus)
	copy(cp.data, m.data)
	return cp
}

// Equal reports whether m and o have the same shape, modulus and entries.
func (m *Matrix) Equal(o *Matrix) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.rows != o.rows || m.cols != o.cols || m.modulus != o.modulus {
		return false
	}
	for i := range m.data {
		if m.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// String renders one bracketed row per line, values right-aligned.
func (m *Matrix) String() string {
	width := len(fmt.Sprint(m.modulus - 1))
	var b strings.Builder
	for i := 0; i < m.rows; i++ {
		b.WriteString("[ ")
		for j := 0; j < m.cols; j++ {
			fmt.Fprintf(&b, "%*d ", width, m.data[i*m.cols+j])
		}
		b.WriteString("]\n")
	}
	return b.String()
}
