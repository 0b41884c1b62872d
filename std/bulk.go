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
	"sort"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/xtaci/hillcrypt/modmat"
)

// ByteMatrix4 is a 4x4 key modulo 256 in row-major order.
type ByteMatrix4 [16]byte

// ToByteMatrix4 narrows a 4x4 matrix modulo 256 to its byte form.
func ToByteMatrix4(m *modmat.Matrix) (*ByteMatrix4, error) {
	if rows, cols := m.Shape(); rows != 4 || cols != 4 {
		return nil, errors.Wrapf(modmat.ErrDimensionMismatch, "ToByteMatrix4: %dx%d", rows, cols)
	}
	if m.Modulus() != 256 {
		return nil, errors.Wrapf(modmat.ErrInvalidArgument, "ToByteMatrix4: modulus %d", m.Modulus())
	}
	var k ByteMatrix4
	for i, v := range m.Values() {
		k[i] = byte(v)
	}
	return &k, nil
}

// BlockTransformer applies a 4x4 byte matrix to every 4-byte block of src,
// writing c = K·v mod 256 to the same offset in dst.
//
// len(src) must be a multiple of 4 and dst at least as long. dst may alias
// src exactly. Each output block depends only on its own input block, so
// disjoint ranges can be transformed independently.
type BlockTransformer interface {
	Name() string
	TransformBlocks(dst, src []byte, k *ByteMatrix4) error
}

func checkBlocks(name string, dst, src []byte) error {
	if len(src)%4 != 0 {
		return errors.Wrapf(modmat.ErrInvalidArgument, "%s: %d bytes is not a whole number of blocks", name, len(src))
	}
	if len(dst) < len(src) {
		return errors.Wrapf(modmat.ErrInvalidArgument, "%s: dst holds %d of %d bytes", name, len(dst), len(src))
	}
	return nil
}

// ScalarTransformer is the reference implementation: four multiply-adds per
// output byte, relying on uint8 wrap-around for the reduction.
type ScalarTransformer struct{}

func (ScalarTransformer) Name() string { return "scalar" }

func (ScalarTransformer) TransformBlocks(dst, src []byte, k *ByteMatrix4) error {
	if err := checkBlocks("scalar", dst, src); err != nil {
		return err
	}
	for off := 0; off < len(src); off += 4 {
		s0, s1, s2, s3 := src[off], src[off+1], src[off+2], src[off+3]
		dst[off] = k[0]*s0 + k[1]*s1 + k[2]*s2 + k[3]*s3
		dst[off+1] = k[4]*s0 + k[5]*s1 + k[6]*s2 + k[7]*s3
		dst[off+2] = k[8]*s0 + k[9]*s1 + k[10]*s2 + k[11]*s3
		dst[off+3] = k[12]*s0 + k[13]*s1 + k[14]*s2 + k[15]*s3
	}
	return nil
}

// productTable holds k[e]·x mod 256 for every key entry e and byte x (4 KiB).
type productTable struct {
	key ByteMatrix4
	tab [16][256]byte
}

func newProductTable(k *ByteMatrix4) *productTable {
	t := &productTable{key: *k}
	for e := range k {
		var acc byte
		for x := 0; x < 256; x++ {
			t.tab[e][x] = acc
			acc += k[e]
		}
	}
	return t
}

// Preparer is implemented by transformers that precompute per-key state.
// Prepare returns a transform bound to k that skips the setup on every call.
type Preparer interface {
	Prepare(k *ByteMatrix4) BlockFunc
}

// BindTransformer returns impl bound to k, prepared when impl supports it.
func BindTransformer(impl BlockTransformer, k *ByteMatrix4) BlockFunc {
	if p, ok := impl.(Preparer); ok {
		return p.Prepare(k)
	}
	return func(dst, src []byte) error { return impl.TransformBlocks(dst, src, k) }
}

func (p *productTable) transform(dst, src []byte) error {
	if err := checkBlocks("table", dst, src); err != nil {
		return err
	}
	tab := &p.tab
	for off := 0; off < len(src); off += 4 {
		s0, s1, s2, s3 := src[off], src[off+1], src[off+2], src[off+3]
		dst[off] = tab[0][s0] + tab[1][s1] + tab[2][s2] + tab[3][s3]
		dst[off+1] = tab[4][s0] + tab[5][s1] + tab[6][s2] + tab[7][s3]
		dst[off+2] = tab[8][s0] + tab[9][s1] + tab[10][s2] + tab[11][s3]
		dst[off+3] = tab[12][s0] + tab[13][s1] + tab[14][s2] + tab[15][s3]
	}
	return nil
}

// TableTransformer replaces the multiplications with lookups into per-key
// product tables. TransformBlocks caches the tables of the most recent key
// only; callers that alternate keys should Prepare each one instead.
// It is safe for concurrent use.
type TableTransformer struct {
	last atomic.Pointer[productTable]
}

// NewTableTransformer returns a TableTransformer with an empty cache.
func NewTableTransformer() *TableTransformer { return new(TableTransformer) }

func (*TableTransformer) Name() string { return "table" }

func (t *TableTransformer) tables(k *ByteMatrix4) *productTable {
	if p := t.last.Load(); p != nil && p.key == *k {
		return p
	}
	p := newProductTable(k)
	t.last.Store(p)
	return p
}

func (t *TableTransformer) TransformBlocks(dst, src []byte, k *ByteMatrix4) error {
	return t.tables(k).transform(dst, src)
}

// Prepare builds the product tables for k once and returns a transform that
// owns them. It does not touch the TransformBlocks cache.
func (*TableTransformer) Prepare(k *ByteMatrix4) BlockFunc {
	return newProductTable(k).transform
}

// transformers maps implementation names to constructors.
var transformers = map[string]func() BlockTransformer{
	"scalar": func() BlockTransformer { return ScalarTransformer{} },
	"table":  func() BlockTransformer { return NewTableTransformer() },
}

// Transformers lists the registered BlockTransformer names in sorted order.
func Transformers() []string {
	names := make([]string, 0, len(transformers))
	for name := range transformers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewTransformer returns a fresh instance of the named implementation.
// An empty name or "auto" selects DefaultTransformer.
func NewTransformer(name string) (BlockTransformer, error) {
	if name == "" || name == "auto" {
		return DefaultTransformer(), nil
	}
	build, ok := transformers[name]
	if !ok {
		return nil, errors.Wrapf(modmat.ErrInvalidArgument, "unknown transformer %q", name)
	}
	return build(), nil
}
