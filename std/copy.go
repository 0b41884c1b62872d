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
	"io"

	"github.com/pkg/errors"

	"github.com/xtaci/hillcrypt/modmat"
)

const bufSize = 4096

// BlockFunc transforms an aligned buffer; dst and src may be the same slice.
// Cipher.EncryptBlocks and Cipher.DecryptBlocks satisfy it.
type BlockFunc func(dst, src []byte) error

// TransformCopy streams src through fn into dst in block-aligned chunks and
// returns the number of bytes written. A final partial block is zero-padded
// before it is transformed, so the output is always a whole number of blocks.
func TransformCopy(dst io.Writer, src io.Reader, blockSize int, fn BlockFunc) (written int64, err error) {
	if blockSize < 1 {
		return 0, errors.Wrapf(modmat.ErrInvalidArgument, "TransformCopy: block size %d", blockSize)
	}
	size := bufSize - bufSize%blockSize
	if size == 0 {
		size = blockSize
	}
	buf := make([]byte, size)

	for {
		nr, er := io.ReadFull(src, buf)
		if nr > 0 {
			n := nr + PadLen(nr, blockSize)
			for i := nr; i < n; i++ {
				buf[i] = 0
			}
			if err := fn(buf[:n], buf[:n]); err != nil {
				return written, err
			}
			nw, ew := dst.Write(buf[:n])
			written += int64(nw)
			if ew != nil {
				return written, ew
			}
			if nw != n {
				return written, io.ErrShortWrite
			}
		}
		switch er {
		case nil:
		case io.EOF, io.ErrUnexpectedEOF:
			return written, nil
		default:
			return written, er
		}
	}
}
