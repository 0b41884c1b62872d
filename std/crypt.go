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

	"github.com/pkg/errors"
	kcp "github.com/xtaci/kcp-go/v5"

	"github.com/xtaci/hillcrypt/modmat"
)

// cryptMethod maps cipher names to their constructor functions and required key sizes.
type cryptMethod struct {
	keySize int // required key size (0 means use full key)
	build   func(key []byte) (kcp.BlockCrypt, error)
}

// cryptMethods is a lookup table for the block crypts the bench command
// compares. The hill entries derive their matrix from the key.
var cryptMethods = map[string]cryptMethod{
	"null":     {0, func(key []byte) (kcp.BlockCrypt, error) { return nil, nil }},
	"sm4":      {16, func(key []byte) (kcp.BlockCrypt, error) { return kcp.NewSM4BlockCrypt(key) }},
	"tea":      {16, func(key []byte) (kcp.BlockCrypt, error) { return kcp.NewTEABlockCrypt(key) }},
	"xor":      {0, func(key []byte) (kcp.BlockCrypt, error) { return kcp.NewSimpleXORBlockCrypt(key) }},
	"none":     {0, func(key []byte) (kcp.BlockCrypt, error) { return kcp.NewNoneBlockCrypt(key) }},
	"aes":      {0, func(key []byte) (kcp.BlockCrypt, error) { return kcp.NewAESBlockCrypt(key) }},
	"aes-128":  {16, func(key []byte) (kcp.BlockCrypt, error) { return kcp.NewAESBlockCrypt(key) }},
	"aes-192":  {24, func(key []byte) (kcp.BlockCrypt, error) { return kcp.NewAESBlockCrypt(key) }},
	"blowfish": {0, func(key []byte) (kcp.BlockCrypt, error) { return kcp.NewBlowfishBlockCrypt(key) }},
	"twofish":  {0, func(key []byte) (kcp.BlockCrypt, error) { return kcp.NewTwofishBlockCrypt(key) }},
	"cast5":    {16, func(key []byte) (kcp.BlockCrypt, error) { return kcp.NewCast5BlockCrypt(key) }},
	"3des":     {24, func(key []byte) (kcp.BlockCrypt, error) { return kcp.NewTripleDESBlockCrypt(key) }},
	"xtea":     {16, func(key []byte) (kcp.BlockCrypt, error) { return kcp.NewXTEABlockCrypt(key) }},
	"salsa20":  {0, func(key []byte) (kcp.BlockCrypt, error) { return kcp.NewSalsa20BlockCrypt(key) }},
	"hill": {0, func(key []byte) (kcp.BlockCrypt, error) {
		return NewHillBlockCrypt(key)
	}},
	"hill-purego": {0, func(key []byte) (kcp.BlockCrypt, error) {
		return NewHillBlockCrypt(key, WithTransformer(ScalarTransformer{}))
	}},
}

// CryptMethods lists the registered cipher names in sorted order.
func CryptMethods() []string {
	names := make([]string, 0, len(cryptMethods))
	for name := range cryptMethods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewBlockCrypt builds the named block crypt from pass, trimming pass to the
// key size the method requires. An unknown method is an ErrInvalidArgument.
func NewBlockCrypt(method string, pass []byte) (kcp.BlockCrypt, error) {
	m, ok := cryptMethods[method]
	if !ok {
		return nil, errors.Wrapf(modmat.ErrInvalidArgument, "unknown crypt %q", method)
	}
	key := pass
	if m.keySize > 0 && len(pass) >= m.keySize {
		key = pass[:m.keySize]
	}
	block, err := m.build(key)
	return block, errors.Wrap(err, method)
}

// SelectBlockCrypt is NewBlockCrypt with a fallback to aes. It returns the
// name of the crypt actually built. Hill crypts log their bulk transformer
// and key determinant, since two hill crypts only interoperate when their
// derived keys match.
func SelectBlockCrypt(method string, pass []byte) (kcp.BlockCrypt, string) {
	block, err := NewBlockCrypt(method, pass)
	if err != nil {
		log.Warnf("crypt: %v, using aes", err)
		if block, err = kcp.NewAESBlockCrypt(pass); err != nil {
			log.Errorf("crypt: aes: %v", err)
		}
		return block, "aes"
	}
	if h, ok := block.(*HillBlockCrypt); ok {
		det, detInv := h.Cipher().Determinant()
		log.Debugf("crypt: %s via %s, det %d inverse %d", method, h.Cipher().Transformer().Name(), det, detInv)
	}
	return block, method
}
