package renderer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestWorkerPool_RunsEveryTaskOnce(t *testing.T) {
	for _, workers := range []int{1, 3, 8, 50} {
		pool := NewWorkerPool(workers)

		const rows = 37
		tasks := make([]RowTask, rows)
		for i := range tasks {
			tasks[i] = RowTask{Row: i, Samples: 1}
		}

		var counts [rows]int32
		err := pool.Run(context.Background(), tasks, func(task RowTask) error {
			atomic.AddInt32(&counts[task.Row], 1)
			return nil
		})
		if err != nil {
			t.Fatalf("%d workers: Run failed: %v", workers, err)
		}

		for row, count := range counts {
			if count != 1 {
				t.Errorf("%d workers: row %d rendered %d times", workers, row, count)
			}
		}
	}
}

func TestWorkerPool_StopsOnError(t *testing.T) {
	pool := NewWorkerPool(2)
	failure := errors.New("row failed")

	tasks := make([]RowTask, 100)
	for i := range tasks {
		tasks[i] = RowTask{Row: i}
	}

	var rendered int32
	err := pool.Run(context.Background(), tasks, func(task RowTask) error {
		atomic.AddInt32(&rendered, 1)
		if task.Row == 3 {
			return failure
		}
		return nil
	})

	if !errors.Is(err, failure) {
		t.Errorf("Expected row failure, got %v", err)
	}
	if atomic.LoadInt32(&rendered) == int32(len(tasks)) {
		t.Error("Expected remaining rows to be skipped after the failure")
	}
}

func TestWorkerPool_EmptyTasks(t *testing.T) {
	pool := NewWorkerPool(4)
	err := pool.Run(context.Background(), nil, func(RowTask) error {
		t.Error("render called without tasks")
		return nil
	})
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestNewWorkerPool_DefaultsToCPUCount(t *testing.T) {
	if pool := NewWorkerPool(0); pool.GetNumWorkers() < 1 {
		t.Errorf("Expected at least one worker, got %d", pool.GetNumWorkers())
	}
	if pool := NewWorkerPool(3); pool.GetNumWorkers() != 3 {
		t.Errorf("Expected 3 workers, got %d", pool.GetNumWorkers())
	}
}
