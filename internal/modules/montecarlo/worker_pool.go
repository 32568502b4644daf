package montecarlo

import (
	"context"
	"sync"
)

// runFunc simulates one resolved request
type runFunc func(ctx context.Context, req PortfolioRequest) (RiskReport, error)

// WorkerPool runs batches of simulations on a fixed number of goroutines
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a new worker pool with the specified number of workers
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = 10
	}
	return &WorkerPool{
		numWorkers: numWorkers,
	}
}

// Workers returns the pool size
func (wp *WorkerPool) Workers() int {
	return wp.numWorkers
}

// RunBatch simulates every request and returns the outcomes in input order.
// A failed request does not stop the others.
func (wp *WorkerPool) RunBatch(ctx context.Context, requests []PortfolioRequest, run runFunc) []batchOutcome {
	numRequests := len(requests)
	if numRequests == 0 {
		return []batchOutcome{}
	}

	jobs := make(chan jobItem, numRequests)
	results := make(chan batchOutcome, numRequests)

	var wg sync.WaitGroup
	numActualWorkers := wp.numWorkers
	if numRequests < numActualWorkers {
		numActualWorkers = numRequests
	}

	for i := 0; i < numActualWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(ctx, jobs, results, run)
		}()
	}

	for idx, req := range requests {
		jobs <- jobItem{index: idx, request: req}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	outcomes := make([]batchOutcome, numRequests)
	for result := range results {
		outcomes[result.index] = result
	}

	return outcomes
}

type jobItem struct {
	index   int
	request PortfolioRequest
}

type batchOutcome struct {
	index  int
	report RiskReport
	err    error
}

func worker(ctx context.Context, jobs <-chan jobItem, results chan<- batchOutcome, run runFunc) {
	for job := range jobs {
		report, err := run(ctx, job.request)
		results <- batchOutcome{
			index:  job.index,
			report: report,
			err:    err,
		}
	}
}
