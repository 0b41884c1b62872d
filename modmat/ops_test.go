package modmat_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtaci/hillcrypt/modmat"
)

func randomMatrix(rng *rand.Rand, rows, cols int, modulus int64) []int64 {
	values := make([]int64, rows*cols)
	for i := range values {
		// include negative and oversized inputs to exercise canonicalization
		values[i] = rng.Int63n(4*modulus) - 2*modulus
	}
	return values
}

func TestMulKnownProduct(t *testing.T) {
	a := mustMatrix(t, 2, 3, 10, 1, 2, 3, 4, 5, 6)
	b := mustMatrix(t, 3, 2, 10, 7, 8, 9, 10, 11, 12)

	c, err := a.Mul(b)
	require.NoError(t, err)
	// [58 64; 139 154] mod 10
	assert.Equal(t, []int64{8, 4, 9, 4}, c.Values())
	rows, cols := c.Shape()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 2, cols)
}

func TestMulIdentity(t *testing.T) {
	a := mustMatrix(t, 3, 3, 127, 6, 24, 1, 13, 16, 10, 20, 17, 15)
	id, err := modmat.Identity(3, 127)
	require.NoError(t, err)

	left, err := id.Mul(a)
	require.NoError(t, err)
	right, err := a.Mul(id)
	require.NoError(t, err)

	assert.True(t, left.Equal(a))
	assert.True(t, right.Equal(a))
}

func TestMulDimensionMismatch(t *testing.T) {
	a := mustMatrix(t, 2, 3, 7, 1, 2, 3, 4, 5, 6)
	b := mustMatrix(t, 2, 2, 7, 1, 2, 3, 4)

	_, err := a.Mul(b)
	require.ErrorIs(t, err, modmat.ErrDimensionMismatch)
	assert.True(t, modmat.IsShape(err))
}

func TestMulModulusMismatch(t *testing.T) {
	a := mustMatrix(t, 2, 2, 7, 1, 2, 3, 4)
	b := mustMatrix(t, 2, 2, 11, 1, 2, 3, 4)

	_, err := a.Mul(b)
	require.ErrorIs(t, err, modmat.ErrInvalidArgument)
	assert.False(t, modmat.IsShape(err))
}

func TestMulEntriesInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for iter := 0; iter < 200; iter++ {
		modulus := 2 + rng.Int63n(1000)
		r, k, c := 1+rng.Intn(5), 1+rng.Intn(5), 1+rng.Intn(5)
		a := mustMatrix(t, r, k, modulus, randomMatrix(rng, r, k, modulus)...)
		b := mustMatrix(t, k, c, modulus, randomMatrix(rng, k, c, modulus)...)

		p, err := a.Mul(b)
		require.NoError(t, err)
		for _, v := range p.Values() {
			require.GreaterOrEqual(t, v, int64(0))
			require.Less(t, v, modulus)
		}
	}
}

func TestMulDoesNotAlias(t *testing.T) {
	a := mustMatrix(t, 2, 2, 7, 1, 2, 3, 4)
	id, err := modmat.Identity(2, 7)
	require.NoError(t, err)

	p, err := a.Mul(id)
	require.NoError(t, err)
	require.NoError(t, p.Set(0, 0, 6))

	v, err := a.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestMulVec(t *testing.T) {
	key := mustMatrix(t, 3, 3, 127, 6, 24, 1, 13, 16, 10, 20, 17, 15)

	out, err := key.MulVec([]int64{'H', 'y', 'b'})
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 42, 14}, out)

	_, err = key.MulVec([]int64{1, 2})
	require.ErrorIs(t, err, modmat.ErrDimensionMismatch)
}

func TestScale(t *testing.T) {
	a := mustMatrix(t, 2, 2, 256, 1, 0, 0, 3)

	assert.Equal(t, []int64{171, 0, 0, 1}, a.Scale(171).Values())
	assert.Equal(t, []int64{255, 0, 0, 253}, a.Scale(-1).Values())
	// the receiver is untouched
	assert.Equal(t, []int64{1, 0, 0, 3}, a.Values())
}

func TestTranspose(t *testing.T) {
	a := mustMatrix(t, 2, 3, 10, 1, 2, 3, 4, 5, 6)
	tr := a.Transpose()

	rows, cols := tr.Shape()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 2, cols)
	assert.Equal(t, []int64{1, 4, 2, 5, 3, 6}, tr.Values())
	assert.True(t, tr.Transpose().Equal(a))
}

func TestMinor(t *testing.T) {
	a := mustMatrix(t, 3, 3, 100, 1, 2, 3, 4, 5, 6, 7, 8, 9)

	m, err := a.Minor(0, 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 6, 8, 9}, m.Values())

	m, err = a.Minor(1, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 7, 8}, m.Values())

	m, err = a.Minor(2, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3, 4, 6}, m.Values())
}

func TestMinorErrors(t *testing.T) {
	rect := mustMatrix(t, 2, 3, 7, 1, 2, 3, 4, 5, 6)
	_, err := rect.Minor(0, 0)
	require.ErrorIs(t, err, modmat.ErrNonSquare)

	sq := mustMatrix(t, 2, 2, 7, 1, 2, 3, 4)
	_, err = sq.Minor(2, 0)
	require.ErrorIs(t, err, modmat.ErrOutOfRange)

	one := mustMatrix(t, 1, 1, 7, 3)
	_, err = one.Minor(0, 0)
	require.ErrorIs(t, err, modmat.ErrInvalidArgument)
}
