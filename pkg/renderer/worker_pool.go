package renderer

import (
	"context"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RowTask represents one image row to render for the worker pool
type RowTask struct {
	Row     int        // camera row, 0 at the bottom of the image
	Samples int        // estimates to add to every pixel of the row
	Random  *rand.Rand // generator owned by this row; never shared between tasks in flight
}

// RowFunc renders a single row task
type RowFunc func(task RowTask) error

// WorkerPool manages parallel row rendering
type WorkerPool struct {
	numWorkers int
}

// Worker pulls row tasks until the queue is drained or the render is cancelled
type Worker struct {
	ID        int
	taskQueue <-chan RowTask
	render    RowFunc
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run renders every task and returns once all of them have finished, the
// first task fails, or ctx is cancelled
func (wp *WorkerPool) Run(ctx context.Context, tasks []RowTask, render RowFunc) error {
	g, ctx := errgroup.WithContext(ctx)
	taskQueue := make(chan RowTask)

	g.Go(func() error {
		defer close(taskQueue)
		for _, task := range tasks {
			select {
			case taskQueue <- task:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < min(wp.numWorkers, max(len(tasks), 1)); i++ {
		worker := &Worker{ID: i, taskQueue: taskQueue, render: render}
		g.Go(func() error {
			return worker.run(ctx)
		})
	}

	return g.Wait()
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context) error {
	for task := range w.taskQueue {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.render(task); err != nil {
			return err
		}
	}
	return nil
}
