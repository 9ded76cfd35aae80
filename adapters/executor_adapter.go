// File: adapters/executor_adapter.go
// Package adapters provides glue between core/concurrency and api.Executor.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// ExecutorAdapter implements the api.Executor interface by delegating to
// core/concurrency.Executor. It provides asynchronous task submission and
// dynamic resizing, while preserving lock-free execution semantics.

package adapters

import (
	"github.com/momentics/stagepipe/api"
	"github.com/momentics/stagepipe/core/concurrency"
)

// ExecutorAdapter wraps a core/concurrency.Executor to satisfy the api.Executor contract.
type ExecutorAdapter struct {
	exec *concurrency.Executor
}

// NewExecutorAdapter constructs an api.Executor with the given number of worker goroutines.
// When numaNode is non-negative each worker pins its OS thread to CPU
// (worker id mod NumCPU); numaNode itself selects no node, and a negative
// value disables pinning.
func NewExecutorAdapter(workers int, numaNode int) api.Executor {
	// Create a new Executor: lock-free local queues + global fallback queue.
	e := concurrency.NewExecutor(workers, numaNode)
	return &ExecutorAdapter{exec: e}
}

// Submit dispatches a task function to be executed asynchronously.
// Returns an error if the executor has been closed.
func (ea *ExecutorAdapter) Submit(task func()) error {
	// Delegates to Executor.Submit, which enqueues in a lock-free queue.
	return ea.exec.Submit(task)
}

// NumWorkers returns the current number of active worker goroutines.
// Under the hood, this reads the length of the worker slice managed by the internal Executor.
func (ea *ExecutorAdapter) NumWorkers() int {
	return ea.exec.NumWorkers()
}

// Resize dynamically adjusts the size of the worker pool.
// New workers added by expanding the pool are pinned the same way as the
// initial ones.
func (ea *ExecutorAdapter) Resize(newCount int) {
	ea.exec.Resize(newCount)
}

// Close shuts down the executor, signaling all workers to exit and waiting for completion.
// This method ensures a graceful teardown: all submitted tasks are either executed or discarded safely.
func (ea *ExecutorAdapter) Close() {
	ea.exec.Close()
}

// Shutdown satisfies api.GracefulShutdown, so a caller that only holds the
// narrower api.Executor reference can still drain and stop the pool through
// the library-wide shutdown contract instead of a pool-specific Close.
func (ea *ExecutorAdapter) Shutdown() error {
	ea.exec.Close()
	return nil
}
