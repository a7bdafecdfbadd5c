//go:build test

package autocomplete

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"testing"

	"golang.org/x/sync/errgroup"
)

var longPatterns = [][]string{
	{"a", "ab", "abc", "abcd", "abcde"},
	{"b", "ba", "bad", "bade"},
	{"c", "ce", "cea", "ceab", "ceabd"},
	{"d", "dd", "ddd", "dddd"},
	{"e", "ea", "eab", "eabc", "eabcd", "eabcde"},
}

func heapAlloc() int64 {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	return int64(m.Alloc)
}

func memIndexes(t *testing.T) map[Kind]Autocompletor {
	t.Helper()
	words, weights := randomVocabulary(rand.New(rand.NewSource(3)), 50_000)
	return buildAll(t, words, weights)
}

func TestMemoryLeakBasic(t *testing.T) {
	for kind, ac := range memIndexes(t) {
		for _, iterations := range []int{100, 1000} {
			t.Run(fmt.Sprintf("%s_iterations_%d", kind, iterations), func(t *testing.T) {
				baseline := heapAlloc()
				baselineGoroutines := runtime.NumGoroutine()

				ops := 0
				for i := 0; i < iterations; i++ {
					for _, pattern := range longPatterns {
						for _, prefix := range pattern {
							if _, err := ac.TopMatches(prefix, 10); err != nil {
								t.Fatal(err)
							}
							ops++
						}
					}
				}

				memDelta := heapAlloc() - baseline
				goroutineDelta := runtime.NumGoroutine() - baselineGoroutines
				memPerOp := float64(memDelta) / float64(ops)
				t.Logf("ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d", ops, memDelta, memPerOp, goroutineDelta)

				if memPerOp > 100 {
					t.Errorf("retained memory per operation: %.2f bytes", memPerOp)
				}
				if goroutineDelta > 2 {
					t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
				}
			})
		}
	}
}

func TestMemoryLeakConcurrent(t *testing.T) {
	indexes := memIndexes(t)
	profile := filepath.Join(t.TempDir(), "concurrent_memory.prof")

	for kind, ac := range indexes {
		for _, workers := range []int{1, 4, 8} {
			t.Run(fmt.Sprintf("%s_workers_%d", kind, workers), func(t *testing.T) {
				baseline := heapAlloc()
				baselineGoroutines := runtime.NumGoroutine()

				var g errgroup.Group
				for w := 0; w < workers; w++ {
					g.Go(func() error {
						for i := 0; i < 1000/workers; i++ {
							for _, pattern := range longPatterns {
								for _, prefix := range pattern {
									if _, err := ac.TopMatches(prefix, 10); err != nil {
										return err
									}
								}
							}
						}
						return nil
					})
				}
				if err := g.Wait(); err != nil {
					t.Fatal(err)
				}

				memDelta := heapAlloc() - baseline
				goroutineDelta := runtime.NumGoroutine() - baselineGoroutines
				t.Logf("mem_delta=%d bytes goroutine_delta=%d", memDelta, goroutineDelta)

				f, err := os.Create(profile)
				if err != nil {
					t.Fatalf("profile file creation failed: %v", err)
				}
				defer f.Close()
				if err := pprof.WriteHeapProfile(f); err != nil {
					t.Errorf("heap profile write failed: %v", err)
				}

				if memDelta > 1<<20 {
					t.Errorf("retained %d bytes after concurrent queries", memDelta)
				}
				if goroutineDelta > 3 {
					t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
				}
			})
		}
	}
}
