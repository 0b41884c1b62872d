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
	"github.com/pkg/errors"
	kcp "github.com/xtaci/kcp-go/v5"

	"github.com/xtaci/hillcrypt/modmat"
)

var _ kcp.BlockCrypt = (*HillBlockCrypt)(nil)

// HillBlockCrypt exposes a 4x4 Hill cipher modulo 256 as a kcp.BlockCrypt.
// Packets are transformed four bytes at a time; a trailing partial block of
// len%4 bytes is copied through unchanged.
type HillBlockCrypt struct {
	c *Cipher
}

// NewHillBlockCrypt derives a 4x4 key from key with DeriveKeyMatrix and
// builds the block crypt on top of it.
func NewHillBlockCrypt(key []byte, opts ...Option) (*HillBlockCrypt, error) {
	m, err := DeriveKeyMatrix(key, 4, 256)
	if err != nil {
		return nil, err
	}
	c, err := NewCipher(m, opts...)
	if err != nil {
		return nil, err
	}
	return WrapBlockCrypt(c)
}

// WrapBlockCrypt adapts an existing cipher, which must use a 4x4 key modulo
// 256.
func WrapBlockCrypt(c *Cipher) (*HillBlockCrypt, error) {
	if c.BlockSize() != 4 || c.Modulus() != 256 {
		return nil, errors.Wrapf(modmat.ErrInvalidArgument, "WrapBlockCrypt: %dx%d mod %d key", c.BlockSize(), c.BlockSize(), c.Modulus())
	}
	return &HillBlockCrypt{c: c}, nil
}

// Cipher returns the underlying cipher.
func (h *HillBlockCrypt) Cipher() *Cipher { return h.c }

// Encrypt implements kcp.BlockCrypt.
func (h *HillBlockCrypt) Encrypt(dst, src []byte) {
	n := len(src) &^ 3
	if err := h.c.EncryptBlocks(dst[:n], src[:n]); err != nil {
		panic(err)
	}
	copy(dst[n:len(src)], src[n:])
}

// Decrypt implements kcp.BlockCrypt.
func (h *HillBlockCrypt) Decrypt(dst, src []byte) {
	n := len(src) &^ 3
	if err := h.c.DecryptBlocks(dst[:n], src[:n]); err != nil {
		panic(err)
	}
	copy(dst[n:len(src)], src[n:])
}
