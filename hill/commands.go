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
	"crypto/sha1"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"golang.org/x/crypto/pbkdf2"

	"github.com/xtaci/hillcrypt/modmat"
	"github.com/xtaci/hillcrypt/std"
)

// mibps converts a byte count and a duration into MiB per second.
func mibps(n int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / (1 << 20) / d.Seconds()
}

func warnOutOfAlphabet(c *std.Cipher, count int) {
	if count > 0 {
		color.Red("WARNING: %d bytes are not residues modulo %d and were reduced, they will not decrypt to their original value.", count, c.Modulus())
	}
}

// processFile reads in, zero-pads it to the block size, transforms it in
// memory and writes the whole padded buffer to out.
func processFile(w io.Writer, in, out, mode string, blockSize int, fn std.BlockFunc) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return errors.Wrapf(err, "could not open input file %s", in)
	}
	buf := std.Pad(data, blockSize)

	fmt.Fprintf(w, "[%s] Processing %d bytes... ", mode, len(buf))
	start := time.Now()
	if err := fn(buf, buf); err != nil {
		fmt.Fprintln(w)
		return errors.Wrapf(err, "%s %s", mode, in)
	}
	elapsed := time.Since(start)
	fmt.Fprintf(w, "Done in %.4f sec (%.2f MB/s)\n", elapsed.Seconds(), mibps(len(buf), elapsed))
	std.DefaultStats.Add(len(data), len(buf), len(buf)/blockSize, elapsed)

	if err := os.WriteFile(out, buf, 0644); err != nil {
		return errors.Wrapf(err, "could not open output file %s", out)
	}
	return nil
}

// runRoundTrip encrypts config.Input to <input>_encrypted and decrypts that
// file to <input>_decrypted.bin.
func runRoundTrip(w io.Writer, config *Config) error {
	c, err := newCipher(config)
	if err != nil {
		return err
	}

	encName := config.Input + "_encrypted"
	decName := config.Input + "_decrypted.bin"

	var lossy int
	encrypt := func(dst, src []byte) error {
		lossy += c.OutOfAlphabet(src)
		return c.EncryptBlocks(dst, src)
	}
	if err := processFile(w, config.Input, encName, "ENCRYPT", c.BlockSize(), encrypt); err != nil {
		return err
	}
	warnOutOfAlphabet(c, lossy)

	if err := processFile(w, encName, decName, "DECRYPT", c.BlockSize(), c.DecryptBlocks); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nSuccess! Files generated:\n - %s\n - %s\n", encName, decName)
	return nil
}

// streamFile pipes in through fn into out with std.TransformCopy.
func streamFile(w io.Writer, in, out, mode string, blockSize int, fn std.BlockFunc) error {
	src, err := os.Open(in)
	if err != nil {
		return errors.Wrapf(err, "could not open input file %s", in)
	}
	defer src.Close()

	dst, err := os.Create(out)
	if err != nil {
		return errors.Wrapf(err, "could not open output file %s", out)
	}
	defer dst.Close()

	start := time.Now()
	written, err := std.TransformCopy(dst, src, blockSize, fn)
	if err != nil {
		return errors.Wrapf(err, "%s %s", mode, in)
	}
	elapsed := time.Since(start)
	fmt.Fprintf(w, "[%s] %s -> %s: %d bytes in %.4f sec (%.2f MB/s)\n", mode, in, out, written, elapsed.Seconds(), mibps(int(written), elapsed))
	std.DefaultStats.Add(int(written), int(written), int(written)/blockSize, elapsed)
	return dst.Close()
}

func defaultOutput(config *Config, suffix string) string {
	if config.Output != "" {
		return config.Output
	}
	return config.Input + suffix
}

// runEncrypt streams config.Input into config.Output, zero-padding the tail.
func runEncrypt(w io.Writer, config *Config) error {
	c, err := newCipher(config)
	if err != nil {
		return err
	}

	var lossy int
	encrypt := func(dst, src []byte) error {
		lossy += c.OutOfAlphabet(src)
		return c.EncryptBlocks(dst, src)
	}
	if err := streamFile(w, config.Input, defaultOutput(config, "_encrypted"), "ENCRYPT", c.BlockSize(), encrypt); err != nil {
		return err
	}
	warnOutOfAlphabet(c, lossy)
	return nil
}

// runDecrypt streams config.Input into config.Output. The input must be a
// whole number of blocks.
func runDecrypt(w io.Writer, config *Config) error {
	c, err := newCipher(config)
	if err != nil {
		return err
	}

	fi, err := os.Stat(config.Input)
	if err != nil {
		return errors.Wrapf(err, "could not open input file %s", config.Input)
	}
	if fi.Size()%int64(c.BlockSize()) != 0 {
		return errors.Wrapf(modmat.ErrInvalidArgument, "%s: %d bytes is not a multiple of the block size %d", config.Input, fi.Size(), c.BlockSize())
	}
	return streamFile(w, config.Input, defaultOutput(config, "_decrypted.bin"), "DECRYPT", c.BlockSize(), c.DecryptBlocks)
}

// printBlocks shows buf as a matrix with one block per row.
func printBlocks(w io.Writer, label string, buf []byte, n int, modulus int64) error {
	values := make([]int64, len(buf))
	for i, b := range buf {
		values[i] = int64(b)
	}
	m, err := modmat.NewFromSlice(len(buf)/n, n, modulus, values)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s:\n%s\n", label, m)
	return nil
}

// runText walks a short message through padding, encryption, key inversion
// and decryption, printing every intermediate matrix.
func runText(w io.Writer, config *Config) error {
	if config.Message == "" {
		return errors.Wrap(modmat.ErrInvalidArgument, "empty message")
	}
	c, err := newCipher(config)
	if err != nil {
		return err
	}
	n := c.BlockSize()
	message := []byte(config.Message)

	fmt.Fprintln(w, "=== PHASE 1: PREPARATION ===")
	fmt.Fprintf(w, "Original Text: %q\n", config.Message)
	fmt.Fprintf(w, "Padding added: %d bytes\n", std.PadLen(len(message), n))
	warnOutOfAlphabet(c, c.OutOfAlphabet(message))
	if err := printBlocks(w, "Plaintext Values (one block per row)", std.Pad(message, n), n, c.Modulus()); err != nil {
		return err
	}
	fmt.Fprintf(w, "Encryption Key Matrix:\n%s\n", c.Key())

	fmt.Fprintln(w, "=== PHASE 2: ENCRYPTION ===")
	ct, err := c.Encrypt(message)
	if err != nil {
		return err
	}
	if err := printBlocks(w, "Ciphertext Matrix (Encrypted Values)", ct, n, c.Modulus()); err != nil {
		return err
	}

	fmt.Fprintln(w, "=== PHASE 3: KEY INVERSION ===")
	det, detInv := c.Determinant()
	fmt.Fprintf(w, ">> Determinant: %d\n", det)
	fmt.Fprintf(w, ">> Modular Inverse: %d\n\n", detInv)
	fmt.Fprintf(w, "Decryption Key Matrix (Calculated):\n%s\n", c.InverseKey())

	fmt.Fprintln(w, "=== PHASE 4: DECRYPTION ===")
	pt, err := c.Decrypt(ct)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Decrypted Message: %s\n", std.TrimText(pt))
	return nil
}

// benchResult is one line of the bench report.
type benchResult struct {
	name    string
	elapsed time.Duration
	size    int
}

func timeBlocks(name string, buf []byte, fn func([]byte) error) (benchResult, error) {
	start := time.Now()
	if err := fn(buf); err != nil {
		return benchResult{}, errors.Wrap(err, name)
	}
	return benchResult{name: name, elapsed: time.Since(start), size: len(buf)}, nil
}

// runBench measures in-memory throughput of every bulk transformer and of
// the registered block crypts over one buffer of config.BenchSize bytes.
func runBench(w io.Writer, config *Config) error {
	if config.BenchSize <= 0 {
		return errors.Wrapf(modmat.ErrInvalidArgument, "bench size %d", config.BenchSize)
	}
	key, err := resolveKey(config)
	if err != nil {
		return err
	}

	var results []benchResult
	buf := std.Pad(make([]byte, config.BenchSize), key.Rows())

	if key.Rows() == 4 && key.Modulus() == 256 {
		for _, name := range std.Transformers() {
			impl, err := std.NewTransformer(name)
			if err != nil {
				return err
			}
			c, err := std.NewCipher(key, std.WithTransformer(impl))
			if err != nil {
				return err
			}
			r, err := timeBlocks("hill/"+name, buf, func(b []byte) error { return c.EncryptBlocks(b, b) })
			if err != nil {
				return err
			}
			results = append(results, r)
		}
	} else {
		c, err := std.NewCipher(key)
		if err != nil {
			return err
		}
		r, err := timeBlocks("hill/generic", buf, func(b []byte) error { return c.EncryptBlocks(b, b) })
		if err != nil {
			return err
		}
		results = append(results, r)
	}

	methods := std.CryptMethods()
	if config.Crypt != "all" {
		methods = []string{config.Crypt}
	}
	pass := pbkdf2.Key([]byte(config.Key), []byte(std.SALT), 4096, 32, sha1.New)
	for _, method := range methods {
		block, name := std.SelectBlockCrypt(method, pass)
		if name != method {
			color.Red("WARNING: crypt %q is unavailable, measuring %q instead.", method, name)
		}
		if block == nil {
			continue
		}
		label := "crypt/" + name
		if h, ok := block.(*std.HillBlockCrypt); ok {
			label += "(" + h.Cipher().Transformer().Name() + ")"
		}
		r, err := timeBlocks(label, buf, func(b []byte) error {
			block.Encrypt(b, b)
			return nil
		})
		if err != nil {
			return err
		}
		results = append(results, r)
	}

	fmt.Fprintf(w, "%-20s %12s %12s\n", "IMPL", "SECONDS", "MB/s")
	for _, r := range results {
		fmt.Fprintf(w, "%-20s %12.4f %12.2f\n", r.name, r.elapsed.Seconds(), mibps(r.size, r.elapsed))
		std.DefaultStats.Add(r.size, r.size, r.size/key.Rows(), r.elapsed)
	}
	return nil
}
