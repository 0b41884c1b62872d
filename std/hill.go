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
	logging "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"

	"github.com/xtaci/hillcrypt/modmat"
)

var log = logging.Logger("hill")

// MaxCipherModulus is the largest alphabet a byte stream can carry.
const MaxCipherModulus = 256

// Option configures a Cipher.
type Option func(*Cipher)

// WithTransformer selects the bulk implementation used when the key is 4x4
// modulo 256. A nil transformer keeps the default.
func WithTransformer(t BlockTransformer) Option {
	return func(c *Cipher) {
		if t != nil {
			c.impl = t
		}
	}
}

// WithModInverse replaces the modular-inverse primitive used to invert the
// key.
func WithModInverse(fn modmat.InverseFunc) Option {
	return func(c *Cipher) { c.modinv = fn }
}

// Cipher is a Hill cipher over Z/MZ with an n×n key. Each n-byte block v of
// the input becomes K·v mod M on encryption and K⁻¹·v mod M on decryption.
//
// Both matrices are fixed at construction, so a Cipher may be shared by
// concurrent callers.
type Cipher struct {
	key, inv *modmat.Matrix
	n        int
	modulus  int64
	det      int64
	detInv   int64
	modinv   modmat.InverseFunc

	// bulk path, only for n == 4 and modulus == 256
	impl     BlockTransformer
	enc, dec BlockFunc
}

// NewCipher validates key, computes its inverse once and returns the cipher.
//
// The key must be square (modmat.ErrNonSquare) with a modulus of at most 256
// (modmat.ErrInvalidArgument). A key whose determinant is not a unit fails
// with modmat.ErrNotInvertible.
func NewCipher(key *modmat.Matrix, opts ...Option) (*Cipher, error) {
	if key == nil {
		return nil, errors.Wrap(modmat.ErrInvalidArgument, "NewCipher: nil key")
	}
	if !key.IsSquare() {
		return nil, errors.Wrapf(modmat.ErrNonSquare, "NewCipher: %dx%d key", key.Rows(), key.Cols())
	}
	if key.Modulus() > MaxCipherModulus {
		return nil, errors.Wrapf(modmat.ErrInvalidArgument, "NewCipher: modulus %d does not fit in a byte", key.Modulus())
	}

	c := &Cipher{key: key.Clone(), n: key.Rows(), modulus: key.Modulus()}
	for _, opt := range opts {
		opt(c)
	}

	inv, err := c.key.Invert(c.modinv)
	if err != nil {
		return nil, errors.Wrap(err, "NewCipher")
	}
	c.inv, c.det, c.detInv = inv.Inverse, inv.Determinant, inv.DetInverse
	log.Debugf("key %dx%d mod %d: det=%d det^-1=%d", c.n, c.n, c.modulus, c.det, c.detInv)

	if c.n == 4 && c.modulus == 256 {
		if c.impl == nil {
			c.impl = DefaultTransformer()
		}
		// both conversions cannot fail: the shape and modulus were checked above
		fwd, _ := ToByteMatrix4(c.key)
		rev, _ := ToByteMatrix4(c.inv)
		c.enc = BindTransformer(c.impl, fwd)
		c.dec = BindTransformer(c.impl, rev)
		log.Debugf("bulk transform: %s", c.impl.Name())
	} else {
		c.impl = nil
	}
	return c, nil
}

// BlockSize returns the key dimension n.
func (c *Cipher) BlockSize() int { return c.n }

// Modulus returns the alphabet size M.
func (c *Cipher) Modulus() int64 { return c.modulus }

// Key returns a copy of the forward key.
func (c *Cipher) Key() *modmat.Matrix { return c.key.Clone() }

// InverseKey returns a copy of K⁻¹.
func (c *Cipher) InverseKey() *modmat.Matrix { return c.inv.Clone() }

// Determinant returns det(K) mod M and its inverse.
func (c *Cipher) Determinant() (det, detInv int64) { return c.det, c.detInv }

// Transformer returns the bulk implementation in use, or nil when the key is
// not 4x4 modulo 256.
func (c *Cipher) Transformer() BlockTransformer { return c.impl }

// OutOfAlphabet counts the bytes of buf that are not residues modulo M.
// Those bytes are reduced on encryption and cannot be recovered.
func (c *Cipher) OutOfAlphabet(buf []byte) int {
	if c.modulus >= MaxCipherModulus {
		return 0
	}
	var count int
	for _, b := range buf {
		if int64(b) >= c.modulus {
			count++
		}
	}
	return count
}

// EncryptBlocks encrypts the aligned buffer src into dst. dst may alias src.
func (c *Cipher) EncryptBlocks(dst, src []byte) error {
	return c.transform("Cipher.EncryptBlocks", dst, src, c.key, c.enc)
}

// DecryptBlocks decrypts the aligned buffer src into dst. dst may alias src.
func (c *Cipher) DecryptBlocks(dst, src []byte) error {
	return c.transform("Cipher.DecryptBlocks", dst, src, c.inv, c.dec)
}

func (c *Cipher) transform(op string, dst, src []byte, k *modmat.Matrix, bulk BlockFunc) error {
	if len(src)%c.n != 0 {
		return errors.Wrapf(modmat.ErrInvalidArgument, "%s: %d bytes is not a multiple of the block size %d", op, len(src), c.n)
	}
	if len(dst) < len(src) {
		return errors.Wrapf(modmat.ErrInvalidArgument, "%s: dst holds %d of %d bytes", op, len(dst), len(src))
	}
	if bulk != nil {
		return errors.Wrap(bulk(dst, src), op)
	}

	v := make([]int64, c.n)
	out := make([]int64, c.n)
	for off := 0; off < len(src); off += c.n {
		for i := range v {
			v[i] = int64(src[off+i])
		}
		if err := k.MulVecTo(out, v); err != nil {
			return errors.Wrap(err, op)
		}
		for i, x := range out {
			dst[off+i] = byte(x)
		}
	}
	return nil
}

// Encrypt zero-pads plain to a multiple of the block size and encrypts it.
// The result is a new buffer of length len(plain)+PadLen(len(plain), n).
func (c *Cipher) Encrypt(plain []byte) ([]byte, error) {
	buf := Pad(plain, c.n)
	if err := c.EncryptBlocks(buf, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Decrypt decrypts an aligned ciphertext. The result keeps the padding, so
// Decrypt(Encrypt(m)) equals Pad(m, n); use TrimText to display text.
func (c *Cipher) Decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext)%c.n != 0 {
		return nil, errors.Wrapf(modmat.ErrInvalidArgument, "Cipher.Decrypt: %d bytes is not a multiple of the block size %d", len(ciphertext), c.n)
	}
	out := make([]byte, len(ciphertext))
	if err := c.DecryptBlocks(out, ciphertext); err != nil {
		return nil, err
	}
	return out, nil
}
