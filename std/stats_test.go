package std

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsAddCopyReset(t *testing.T) {
	s := new(Stats)
	assert.Zero(t, s.MBps())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add(131072, 131076, 32768, time.Second/8)
		}()
	}
	wg.Wait()

	snap := s.Copy()
	assert.Equal(t, uint64(1<<20), snap.BytesIn)
	assert.Equal(t, uint64(1048608), snap.BytesOut)
	assert.Equal(t, uint64(262144), snap.Blocks)
	assert.Equal(t, uint64(time.Second), snap.Nanos)
	assert.InDelta(t, 1.0, snap.MBps(), 1e-9)

	assert.Equal(t, []string{"1048576", "1048608", "262144", "1000000000", "1.00"}, s.ToSlice())
	assert.Len(t, s.Header(), len(s.ToSlice()))

	s.Reset()
	assert.Equal(t, Stats{}, *s.Copy())
	// the snapshot is independent
	assert.Equal(t, uint64(1<<20), snap.BytesIn)
}

func TestAppendStatsCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hill.csv")

	s := new(Stats)
	s.Add(10, 12, 4, time.Second)
	require.NoError(t, AppendStatsCSV(path, s))
	require.NoError(t, AppendStatsCSV(path, s))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 3, "one header and two rows")
	assert.Equal(t, append([]string{"Unix"}, s.Header()...), records[0])
	assert.Equal(t, s.ToSlice(), records[1][1:])
	assert.Equal(t, records[1][1:], records[2][1:])
}

func TestAppendStatsCSVTimeLayout(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, AppendStatsCSV(filepath.Join(dir, "hill-20060102.csv"), new(Stats)))

	matches, err := filepath.Glob(filepath.Join(dir, "hill-*.csv"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.NotContains(t, matches[0], "20060102")
}

func TestAppendStatsCSVDisabled(t *testing.T) {
	require.NoError(t, AppendStatsCSV("", new(Stats)))
}
