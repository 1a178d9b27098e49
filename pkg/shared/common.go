package shared

import "sync"

// ForEveryIndexWithBoundedGoroutines runs f(0..n-1) across goroutines with
// at most limit running at once. Each index gets exactly one call; the
// function returns after all calls complete. Callers keep determinism by
// writing results into per-index slots and merging after the wait.
func ForEveryIndexWithBoundedGoroutines(limit, n int, f func(i int)) {
	if limit < 1 {
		limit = 1
	}
	guard := make(chan struct{}, limit)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		guard <- struct{}{} // would block if guard channel is already filled
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f(i)
			<-guard
		}(i)
	}
	wg.Wait()
}
