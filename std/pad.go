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
	"bytes"

	"github.com/pkg/errors"

	"github.com/xtaci/hillcrypt/modmat"
)

// PadLen returns how many zero bytes bring a buffer of length l up to a
// multiple of n. n must be positive.
func PadLen(l, n int) int {
	return (n - l%n) % n
}

// Pad returns a fresh copy of buf followed by PadLen(len(buf), n) zero bytes.
// buf itself is never modified.
func Pad(buf []byte, n int) []byte {
	out := make([]byte, len(buf)+PadLen(len(buf), n))
	copy(out, buf)
	return out
}

// Chunk splits an aligned buffer into consecutive n-byte views, in order.
// The views share storage with buf and are capped at n bytes, so an append
// on one chunk never spills into the next.
func Chunk(buf []byte, n int) ([][]byte, error) {
	if n < 1 || len(buf)%n != 0 {
		return nil, errors.Wrapf(modmat.ErrInvalidArgument, "Chunk: %d bytes into blocks of %d", len(buf), n)
	}
	chunks := make([][]byte, 0, len(buf)/n)
	for off := 0; off < len(buf); off += n {
		chunks = append(chunks, buf[off:off+n:off+n])
	}
	return chunks, nil
}

// TrimText cuts buf at its first zero byte. It is meant for displaying
// decrypted text and must not be used on binary payloads, which may contain
// zeros of their own.
func TrimText(buf []byte) []byte {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		return buf[:i]
	}
	return buf
}
