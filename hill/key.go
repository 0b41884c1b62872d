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

package main

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/xtaci/hillcrypt/modmat"
	"github.com/xtaci/hillcrypt/std"
)

// textKey is the 3x3 key of the text demo, invertible modulo 127.
var textKey = []int64{
	6, 24, 1,
	13, 16, 10,
	20, 17, 15,
}

// parseMatrix reads a comma or space separated list of row-major entries.
func parseMatrix(s string) ([]int64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == ';' })
	values := make([]int64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(modmat.ErrInvalidArgument, "matrix entry %q", f)
		}
		values = append(values, v)
	}
	return values, nil
}

// resolveKey picks the key matrix: an explicit matrix first, then one
// derived from the passphrase, then the built-in key for the configured
// shape.
func resolveKey(config *Config) (*modmat.Matrix, error) {
	switch {
	case len(config.Matrix) > 0:
		return modmat.NewFromSlice(config.Dim, config.Dim, config.Modulus, config.Matrix)
	case config.Key != "":
		return std.DeriveKeyMatrix([]byte(config.Key), config.Dim, config.Modulus)
	case config.Dim == 4 && config.Modulus == 256:
		return modmat.Diagonal(256, 3, 3, 3, 3)
	case config.Dim == 3 && config.Modulus == 127:
		return modmat.NewFromSlice(3, 3, 127, textKey)
	}
	return nil, errors.Errorf("no built-in key for %dx%d mod %d, use --matrix or --key", config.Dim, config.Dim, config.Modulus)
}

// newCipher builds the cipher described by config.
func newCipher(config *Config) (*std.Cipher, error) {
	key, err := resolveKey(config)
	if err != nil {
		return nil, err
	}
	impl, err := std.NewTransformer(config.Impl)
	if err != nil {
		return nil, err
	}
	return std.NewCipher(key, std.WithTransformer(impl))
}
