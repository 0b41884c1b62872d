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

package std

import (
	"crypto/sha1"
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/crypto/pbkdf2"

	"github.com/xtaci/hillcrypt/modmat"
)

const (
	// SALT is the PBKDF2 salt for passphrase-derived keys.
	SALT = "hillcrypt"
	// deriveIterations is the PBKDF2 iteration count.
	deriveIterations = 4096
	// maxDeriveAttempts bounds the search for an invertible derived key.
	maxDeriveAttempts = 64
)

// DeriveKeyMatrix stretches pass with PBKDF2-SHA1 into an invertible n×n key
// modulo modulus, one derived byte per entry.
//
// Not every byte matrix is invertible (about 70% of 4x4 keys modulo 256 are
// not), so a rejected candidate is re-derived with the attempt number
// appended to the salt. The result is deterministic for a given pass, n and
// modulus.
func DeriveKeyMatrix(pass []byte, n int, modulus int64) (*modmat.Matrix, error) {
	if n < 1 || modulus < 2 || modulus > MaxCipherModulus {
		return nil, errors.Wrapf(modmat.ErrInvalidArgument, "DeriveKeyMatrix: %dx%d mod %d", n, n, modulus)
	}

	values := make([]int64, n*n)
	for attempt := 0; attempt < maxDeriveAttempts; attempt++ {
		salt := SALT
		if attempt > 0 {
			salt = fmt.Sprintf("%s#%d", SALT, attempt)
		}
		raw := pbkdf2.Key(pass, []byte(salt), deriveIterations, n*n, sha1.New)
		for i, b := range raw {
			values[i] = int64(b)
		}

		key, err := modmat.NewFromSlice(n, n, modulus, values)
		if err != nil {
			return nil, err
		}
		det, err := key.Determinant()
		if err != nil {
			return nil, err
		}
		if _, ok := modmat.ModInverse(det, modulus); ok {
			return key, nil
		}
		log.Debugf("derived key attempt %d has det %d mod %d, retrying", attempt, det, modulus)
	}
	return nil, errors.Wrapf(modmat.ErrNotInvertible, "DeriveKeyMatrix: no invertible key in %d attempts", maxDeriveAttempts)
}
