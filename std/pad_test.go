package std

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtaci/hillcrypt/modmat"
)

func TestPadLen(t *testing.T) {
	cases := []struct{ l, n, want int }{
		{0, 3, 0},
		{1, 3, 2},
		{13, 3, 2},
		{15, 3, 0},
		{5, 4, 3},
		{8, 4, 0},
		{7, 1, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, PadLen(tc.l, tc.n), "PadLen(%d, %d)", tc.l, tc.n)
	}
}

func TestPadReturnsFreshBuffer(t *testing.T) {
	in := []byte("HybridProject")
	out := Pad(in, 3)

	require.Len(t, out, 15)
	assert.Equal(t, append([]byte("HybridProject"), 0, 0), out)

	out[0] = 'X'
	assert.Equal(t, byte('H'), in[0])

	assert.Empty(t, Pad(nil, 4))
}

func TestChunk(t *testing.T) {
	buf := []byte("abcdefghi")
	chunks, err := Chunk(buf, 3)
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	assert.Equal(t, []byte("abc"), chunks[0])
	assert.Equal(t, []byte("def"), chunks[1])
	assert.Equal(t, []byte("ghi"), chunks[2])

	// views share storage with the buffer
	chunks[1][0] = 'D'
	assert.Equal(t, byte('D'), buf[3])

	// but appending to one chunk never overwrites the next
	_ = append(chunks[0], 'Z')
	assert.Equal(t, byte('D'), buf[3])

	empty, err := Chunk(nil, 4)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestChunkMisaligned(t *testing.T) {
	_, err := Chunk([]byte("abcd"), 3)
	require.ErrorIs(t, err, modmat.ErrInvalidArgument)

	_, err = Chunk([]byte("abcd"), 0)
	require.ErrorIs(t, err, modmat.ErrInvalidArgument)
}

func TestTrimText(t *testing.T) {
	assert.Equal(t, []byte("HybridProject"), TrimText(append([]byte("HybridProject"), 0, 0)))
	assert.Equal(t, []byte("abc"), TrimText([]byte("abc")))
	assert.Empty(t, TrimText([]byte{0, 'a'}))
}
