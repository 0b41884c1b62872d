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

// Sentinel errors returned by this package. Operations wrap them with
// context (errors.Wrapf), callers match them with errors.Is.
var (
	// ErrOutOfRange is returned when a row or column index is outside the matrix.
	ErrOutOfRange = errors.New("modmat: index out of range")

	// ErrNonSquare is returned by square-only operations (Minor, Determinant,
	// Adjugate, Inverse) on a non-square matrix.
	ErrNonSquare = errors.New("modmat: matrix is not square")

	// ErrDimensionMismatch is returned when operand shapes are incompatible,
	// e.g. Mul where a.Cols() != b.Rows().
	ErrDimensionMismatch = errors.New("modmat: dimension mismatch")

	// ErrInvalidArgument covers malformed construction input: non-positive
	// dimensions, a modulus outside [2, MaxModulus], a value slice of the
	// wrong length, or operands with different moduli.
	ErrInvalidArgument = errors.New("modmat: invalid argument")

	// ErrNotInvertible is returned when the determinant has no multiplicative
	// inverse modulo the matrix modulus.
	ErrNotInvertible = errors.New("modmat: matrix is not invertible")
)

// IsShape reports whether err is one of the shape errors (ErrNonSquare or
// ErrDimensionMismatch).
func IsShape(err error) bool {
	return errors.Is(err, ErrNonSquare) || errors.Is(err, ErrDimensionMismatch)
}

// operation tags used when wrapping sentinels
const (
	opNew      = "New"
	opAt       = "At"
	opSet      = "Set"
	opMul      = "Mul"
	opMulVec   = "MulVec"
	opMinor    = "Minor"
	opDet      = "Determinant"
	opAdjugate = "Adjugate"
	opInverse  = "Inverse"
)
