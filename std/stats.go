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
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

// Stats counts the work done by cipher runs. All fields are updated
// atomically, so one Stats may be shared across goroutines.
type Stats struct {
	BytesIn  uint64 // plaintext or ciphertext bytes read
	BytesOut uint64 // bytes written, padding included
	Blocks   uint64 // blocks transformed
	Nanos    uint64 // time spent transforming
}

// DefaultStats is the process-wide counter set used by the hill command.
var DefaultStats = new(Stats)

// Add records one transform of in bytes into out bytes taking d.
func (s *Stats) Add(in, out, blocks int, d time.Duration) {
	atomic.AddUint64(&s.BytesIn, uint64(in))
	atomic.AddUint64(&s.BytesOut, uint64(out))
	atomic.AddUint64(&s.Blocks, uint64(blocks))
	atomic.AddUint64(&s.Nanos, uint64(d.Nanoseconds()))
}

// Header returns the CSV column names matching ToSlice.
func (s *Stats) Header() []string {
	return []string{"BytesIn", "BytesOut", "Blocks", "Nanos", "MBps"}
}

// ToSlice returns the counters as strings in Header order.
func (s *Stats) ToSlice() []string {
	snap := s.Copy()
	return []string{
		fmt.Sprint(snap.BytesIn),
		fmt.Sprint(snap.BytesOut),
		fmt.Sprint(snap.Blocks),
		fmt.Sprint(snap.Nanos),
		fmt.Sprintf("%.2f", snap.MBps()),
	}
}

// MBps is the input throughput in MiB per second, 0 before any work.
func (s *Stats) MBps() float64 {
	nanos := atomic.LoadUint64(&s.Nanos)
	if nanos == 0 {
		return 0
	}
	return float64(atomic.LoadUint64(&s.BytesIn)) / (1 << 20) / (float64(nanos) / 1e9)
}

// Copy returns a snapshot of s. Counters are loaded one at a time.
func (s *Stats) Copy() *Stats {
	d := new(Stats)
	d.BytesIn = atomic.LoadUint64(&s.BytesIn)
	d.BytesOut = atomic.LoadUint64(&s.BytesOut)
	d.Blocks = atomic.LoadUint64(&s.Blocks)
	d.Nanos = atomic.LoadUint64(&s.Nanos)
	return d
}

// Reset zeroes every counter.
func (s *Stats) Reset() {
	atomic.StoreUint64(&s.BytesIn, 0)
	atomic.StoreUint64(&s.BytesOut, 0)
	atomic.StoreUint64(&s.Blocks, 0)
	atomic.StoreUint64(&s.Nanos, 0)
}

// AppendStatsCSV appends one row for s to the CSV file at path. The file
// name part of path is a Go time layout, like ./hill-20060102.csv, so runs
// roll over to a new file each day. A header is written into empty files.
func AppendStatsCSV(path string, s *Stats) error {
	if path == "" {
		return nil
	}
	// split path into dirname and filename
	logdir, logfile := filepath.Split(path)
	// only format logfile
	f, err := os.OpenFile(logdir+time.Now().Format(logfile), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return errors.Wrap(err, "AppendStatsCSV")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	// write header in empty file
	if stat, err := f.Stat(); err == nil && stat.Size() == 0 {
		if err := w.Write(append([]string{"Unix"}, s.Header()...)); err != nil {
			return errors.Wrap(err, "AppendStatsCSV")
		}
	}
	if err := w.Write(append([]string{fmt.Sprint(time.Now().Unix())}, s.ToSlice()...)); err != nil {
		return errors.Wrap(err, "AppendStatsCSV")
	}
	w.Flush()
	return errors.Wrap(w.Error(), "AppendStatsCSV")
}
