package main

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"

	"github.com/xtaci/hillcrypt/modmat"
	"github.com/xtaci/hillcrypt/std"
)

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func randomBytes(n, limit int) []byte {
	rng := rand.New(rand.NewSource(int64(n)))
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(rng.Intn(limit))
	}
	return buf
}

func TestRoundTripFiles(t *testing.T) {
	data := randomBytes(1001, 256)
	input := writeTempFile(t, "test.bin", data)

	config := defaultConfig()
	config.Input = input
	var out bytes.Buffer
	require.NoError(t, runRoundTrip(&out, &config))

	enc, err := os.ReadFile(input + "_encrypted")
	require.NoError(t, err)
	require.Len(t, enc, 1004)
	assert.NotEqual(t, std.Pad(data, 4), enc)

	dec, err := os.ReadFile(input + "_decrypted.bin")
	require.NoError(t, err)
	assert.Equal(t, std.Pad(data, 4), dec)

	assert.Contains(t, out.String(), "[ENCRYPT] Processing 1004 bytes... Done in ")
	assert.Contains(t, out.String(), "[DECRYPT] Processing 1004 bytes... Done in ")
	assert.Contains(t, out.String(), "Success! Files generated:")
}

func TestRoundTripMissingInput(t *testing.T) {
	config := defaultConfig()
	config.Input = filepath.Join(t.TempDir(), "absent.bin")

	err := runRoundTrip(new(bytes.Buffer), &config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not open input file")
}

func TestRoundTripNotInvertible(t *testing.T) {
	config := defaultConfig()
	config.Input = writeTempFile(t, "test.bin", []byte("data"))
	config.Matrix = []int64{4, 0, 0, 0, 0, 4, 0, 0, 0, 0, 4, 0, 0, 0, 0, 4}

	err := runRoundTrip(new(bytes.Buffer), &config)
	require.ErrorIs(t, err, modmat.ErrNotInvertible)

	_, statErr := os.Stat(config.Input + "_encrypted")
	assert.True(t, os.IsNotExist(statErr), "nothing is written for a bad key")
}

func TestEncryptDecryptStream(t *testing.T) {
	data := randomBytes(10000, 127)
	config := textConfig()
	config.Input = writeTempFile(t, "plain.txt", data)
	config.Output = config.Input + ".hill"

	var out bytes.Buffer
	require.NoError(t, runEncrypt(&out, &config))

	config.Input, config.Output = config.Output, config.Input+".out"
	require.NoError(t, runDecrypt(&out, &config))

	dec, err := os.ReadFile(config.Output)
	require.NoError(t, err)
	assert.Equal(t, std.Pad(data, 3), dec)
	assert.Contains(t, out.String(), "[ENCRYPT]")
	assert.Contains(t, out.String(), "[DECRYPT]")
}

func TestEncryptDefaultOutput(t *testing.T) {
	config := defaultConfig()
	config.Input = writeTempFile(t, "test.bin", []byte("hello"))

	require.NoError(t, runEncrypt(new(bytes.Buffer), &config))
	enc, err := os.ReadFile(config.Input + "_encrypted")
	require.NoError(t, err)
	assert.Len(t, enc, 8)
}

func TestDecryptMisaligned(t *testing.T) {
	config := defaultConfig()
	config.Input = writeTempFile(t, "cipher.bin", []byte("12345"))

	err := runDecrypt(new(bytes.Buffer), &config)
	require.ErrorIs(t, err, modmat.ErrInvalidArgument)
}

func TestTextDemo(t *testing.T) {
	config := textConfig()
	var out bytes.Buffer
	require.NoError(t, runText(&out, &config))

	s := out.String()
	assert.Contains(t, s, `Original Text: "HybridProject"`)
	assert.Contains(t, s, "Padding added: 2 bytes")
	assert.Contains(t, s, "[   5  42  14 ]")
	assert.Contains(t, s, ">> Determinant: 60")
	assert.Contains(t, s, ">> Modular Inverse: 36")
	assert.Contains(t, s, "[ 107  98  63 ]")
	assert.Contains(t, s, "Decrypted Message: HybridProject\n")
}

func TestTextEmptyMessage(t *testing.T) {
	config := textConfig()
	config.Message = ""
	err := runText(new(bytes.Buffer), &config)
	require.ErrorIs(t, err, modmat.ErrInvalidArgument)
}

func TestBench(t *testing.T) {
	config := defaultConfig()
	config.BenchSize = 4096
	config.Crypt = "xor"

	var out bytes.Buffer
	require.NoError(t, runBench(&out, &config))
	assert.Contains(t, out.String(), "hill/scalar")
	assert.Contains(t, out.String(), "hill/table")
	assert.Contains(t, out.String(), "crypt/xor")

	text := textConfig()
	text.BenchSize = 999
	text.Crypt = "hill"
	out.Reset()
	require.NoError(t, runBench(&out, &text))
	assert.Contains(t, out.String(), "hill/generic")
	assert.Contains(t, out.String(), "crypt/hill("+std.DefaultTransformer().Name()+")")

	text.BenchSize = 0
	require.ErrorIs(t, runBench(&out, &text), modmat.ErrInvalidArgument)
}

func TestTimeBlocksReportsError(t *testing.T) {
	text := textConfig()
	key, err := resolveKey(&text)
	require.NoError(t, err)
	c, err := std.NewCipher(key)
	require.NoError(t, err)

	// 4 bytes is not a whole number of 3-byte blocks
	_, err = timeBlocks("hill/generic", make([]byte, 4), func(b []byte) error { return c.EncryptBlocks(b, b) })
	require.ErrorIs(t, err, modmat.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "hill/generic")

	r, err := timeBlocks("hill/generic", make([]byte, 6), func(b []byte) error { return c.EncryptBlocks(b, b) })
	require.NoError(t, err)
	assert.Equal(t, 6, r.size)
}

func TestResolveKey(t *testing.T) {
	config := defaultConfig()
	key, err := resolveKey(&config)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 0, 0, 0, 0, 3, 0, 0, 0, 0, 3, 0, 0, 0, 0, 3}, key.Values())

	text := textConfig()
	key, err = resolveKey(&text)
	require.NoError(t, err)
	assert.Equal(t, textKey, key.Values())

	text.Key = "passphrase"
	key, err = resolveKey(&text)
	require.NoError(t, err)
	want, err := std.DeriveKeyMatrix([]byte("passphrase"), 3, 127)
	require.NoError(t, err)
	assert.True(t, want.Equal(key))

	// an explicit matrix wins over the passphrase
	text.Matrix = []int64{1, 0, 0, 0, 1, 0, 0, 0, 1}
	key, err = resolveKey(&text)
	require.NoError(t, err)
	assert.Equal(t, text.Matrix, key.Values())

	text.Matrix = []int64{1, 2, 3}
	_, err = resolveKey(&text)
	require.ErrorIs(t, err, modmat.ErrInvalidArgument)

	odd := defaultConfig()
	odd.Dim, odd.Modulus = 2, 26
	_, err = resolveKey(&odd)
	require.Error(t, err)
}

func TestParseMatrix(t *testing.T) {
	values, err := parseMatrix("6,24, 1;13")
	require.NoError(t, err)
	assert.Equal(t, []int64{6, 24, 1, 13}, values)

	values, err = parseMatrix("-1 2")
	require.NoError(t, err)
	assert.Equal(t, []int64{-1, 2}, values)

	_, err = parseMatrix("1,two")
	require.ErrorIs(t, err, modmat.ErrInvalidArgument)
}

func TestLoadConfigFlags(t *testing.T) {
	var got Config
	app := cli.NewApp()
	app.Flags = globalFlags
	app.Commands = []cli.Command{{
		Name:  "text",
		Flags: []cli.Flag{cli.StringFlag{Name: "message", Value: "HybridProject"}},
		Action: func(c *cli.Context) error {
			got = textConfig()
			return loadConfig(c, &got)
		},
	}}

	path := writeTempConfig(t, `{"impl":"scalar"}`)
	err := app.Run([]string{"hill", "--dim", "2", "--modulus", "26", "--matrix", "3,3,2,5", "-c", path, "text", "--message", "Hi"})
	require.NoError(t, err)

	assert.Equal(t, 2, got.Dim)
	assert.Equal(t, int64(26), got.Modulus)
	assert.Equal(t, []int64{3, 3, 2, 5}, got.Matrix)
	assert.Equal(t, "Hi", got.Message)
	assert.Equal(t, "scalar", got.Impl, "json overrides flags")
	assert.Equal(t, "test.bin", got.Input)
}
