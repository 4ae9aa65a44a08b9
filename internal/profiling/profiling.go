package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Lightweight timing tracker for grid operations, reset per frame (or per
// batch) by the caller.

type entry struct {
	total time.Duration
	calls int
}

var (
	mu      sync.Mutex
	entries = make(map[string]*entry)
)

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("pkg.Operation")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		e := entries[name]
		if e == nil {
			e = &entry{}
			entries[name] = e
		}
		e.total += d
		e.calls++
		mu.Unlock()
	}
}

// ResetFrame clears all recorded totals.
func ResetFrame() {
	mu.Lock()
	clear(entries)
	mu.Unlock()
}

// Snapshot returns a copy of the recorded totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(entries))
	for k, e := range entries {
		out[k] = e.total
	}
	return out
}

// Calls returns how many times name was tracked since the last reset.
func Calls(name string) int {
	mu.Lock()
	defer mu.Unlock()
	if e := entries[name]; e != nil {
		return e.calls
	}
	return 0
}

// SumWithPrefix totals every entry whose name starts with prefix, e.g. "world.".
func SumWithPrefix(prefix string) time.Duration {
	mu.Lock()
	defer mu.Unlock()
	var sum time.Duration
	for k, e := range entries {
		if strings.HasPrefix(k, prefix) {
			sum += e.total
		}
	}
	return sum
}

// TopN formats the n slowest entries.
// Example: "physics.Raycast:4.2ms(120), world.AddChunk:0.3ms(64)"
func TopN(n int) string {
	mu.Lock()
	type row struct {
		name  string
		total time.Duration
		calls int
	}
	rows := make([]row, 0, len(entries))
	for k, e := range entries {
		rows = append(rows, row{k, e.total, e.calls})
	}
	mu.Unlock()

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].total != rows[j].total {
			return rows[i].total > rows[j].total
		}
		return rows[i].name < rows[j].name
	})
	n = min(n, len(rows))
	parts := make([]string, 0, n)
	for _, r := range rows[:n] {
		ms := float64(r.total.Microseconds()) / 1000.0
		parts = append(parts, r.name+":"+strconv.FormatFloat(ms, 'f', 1, 64)+"ms("+strconv.Itoa(r.calls)+")")
	}
	return strings.Join(parts, ", ")
}
