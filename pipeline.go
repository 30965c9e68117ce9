package feather2d

import "sync"

// task splits data in workersCount contiguous chunks and calls fn on every
// element, one goroutine per chunk.
func task[T any](workersCount int, data []T, fn func(data T)) {
	var wg sync.WaitGroup
	dataSize := len(data)
	if dataSize == 0 {
		return
	}
	chunkSize := (dataSize + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		start := workerID * chunkSize
		if start >= dataSize {
			break
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(data[i])
			}
		}(start, min((workerID+1)*chunkSize, dataSize))
	}
	wg.Wait()
}
