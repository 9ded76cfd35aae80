// File: core/pipeline/pipeline.go
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pipeline wires N stages together with N-1 SPSC queues: stage n's outbound
// queue is stage n+1's inbound queue. Each stage runs on its own goroutine,
// gated at start by a BinarySemaphore, and keeps calling its stage function
// until the function returns false or the pipeline is stopped.

package pipeline

import (
	"sync"

	"github.com/momentics/stagepipe/api"
	"github.com/momentics/stagepipe/core/concurrency"
)

// Buffer is the tagging interface every value passed between stages must
// implement. It carries no behavior; it exists so a Pipeline's queues can
// be typed without constraining what a stage actually produces.
type Buffer interface {
	isPipelineBuffer()
}

// BufferBase gives concrete buffer types isPipelineBuffer() for free via
// embedding.
type BufferBase struct{}

func (BufferBase) isPipelineBuffer() {}

// Inbound is the read-side queue handle passed into a stage function. The
// first stage of a pipeline receives a nil Inbound.
type Inbound = *concurrency.ConsumerFace[Buffer]

// Outbound is the write-side queue handle passed into a stage function. The
// last stage of a pipeline receives a nil Outbound.
type Outbound = *concurrency.ProducerFace[Buffer]

// Stage is the callable contract for a single pipeline stage. It is
// invoked repeatedly for as long as it returns true and the pipeline is
// running; returning false ends that stage (and, if every stage returns
// false or the pipeline is stopped, the pipeline as a whole).
type Stage func(in Inbound, out Outbound) bool

// Pipeline runs a fixed sequence of stages, each on its own goroutine,
// connected by blocking-read/non-blocking-write SPSC queues.
type Pipeline struct {
	stages []*stageExecEnv
	rings  []*concurrency.SPSCRing[Buffer]
	status api.PipelineStatus
	mu     sync.Mutex
}

// New constructs a Pipeline from the given stages, each pair of adjacent
// stages connected by a queue of the given capacity. Readers block when a
// queue is empty; writers never block, and instead drop (the queue's
// dropped counter increments) when a queue is full — this keeps a slow
// downstream stage from stalling real-time producers like an SDR source.
func New(stages []Stage, queueCapacity int) *Pipeline {
	n := len(stages)
	p := &Pipeline{
		stages: make([]*stageExecEnv, n),
		status: api.PipelineIdle,
	}

	if n > 1 {
		p.rings = make([]*concurrency.SPSCRing[Buffer], n-1)
		for i := range p.rings {
			p.rings[i] = concurrency.NewSPSCRing[Buffer](uint64(queueCapacity), concurrency.FlagNonblockingWrite)
		}
	}

	for i, fn := range stages {
		var in Inbound
		var out Outbound
		if n > 1 {
			if i > 0 {
				in = p.rings[i-1].Consumer()
			}
			if i < n-1 {
				out = p.rings[i].Producer()
			}
		}
		p.stages[i] = newStageExecEnv(p, fn, in, out)
	}

	return p
}

// Start releases every stage's start gate. The stage goroutines themselves
// were already created and blocked on that gate back in New; Start is
// idempotent once the pipeline is running.
func (p *Pipeline) Start() {
	p.mu.Lock()
	if p.status == api.PipelineRunning {
		p.mu.Unlock()
		return
	}
	p.status = api.PipelineRunning
	p.mu.Unlock()

	for _, s := range p.stages {
		s.release()
	}
}

// Stop asks every stage to wind down: the running flag is cleared so each
// stage's loop exits after its current call, and every queue's consumer
// side is cancelled so any stage blocked waiting for input wakes up
// immediately instead of waiting for upstream data that will never arrive.
func (p *Pipeline) Stop() {
	p.mu.Lock()
	if p.status != api.PipelineRunning {
		p.mu.Unlock()
		return
	}
	p.status = api.PipelineStopping
	p.mu.Unlock()

	for _, r := range p.rings {
		r.Cancel(concurrency.RoleConsumer)
	}
}

// Join blocks until every stage goroutine has exited.
func (p *Pipeline) Join() {
	for _, s := range p.stages {
		s.join()
	}

	p.mu.Lock()
	p.status = api.PipelineStopped
	p.mu.Unlock()
}

// Status reports the pipeline's current lifecycle state.
func (p *Pipeline) Status() api.PipelineStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Len returns the number of stages in the pipeline.
func (p *Pipeline) Len() int { return len(p.stages) }

// isRunning is polled by each stage's run loop before every call of the
// stage function. It reads the status under the pipeline's mutex, so every
// iteration of every stage takes that mutex; there is no lock-free run flag.
func (p *Pipeline) isRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status == api.PipelineRunning
}

type stageExecEnv struct {
	pipeline  *Pipeline
	fn        Stage
	in        Inbound
	out       Outbound
	semaphore *concurrency.BinarySemaphore
	done      chan struct{}
}

// newStageExecEnv constructs a stage's execution environment and
// immediately launches its goroutine; the goroutine blocks on the start
// gate before calling fn, so every stage is live (but idle) as soon as
// Pipeline construction returns.
func newStageExecEnv(p *Pipeline, fn Stage, in Inbound, out Outbound) *stageExecEnv {
	s := &stageExecEnv{
		pipeline:  p,
		fn:        fn,
		in:        in,
		out:       out,
		semaphore: concurrency.NewBinarySemaphore(false),
		done:      make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *stageExecEnv) release() {
	s.semaphore.Post()
}

func (s *stageExecEnv) join() {
	<-s.done
}

func (s *stageExecEnv) run() {
	defer close(s.done)

	s.semaphore.Wait()
	for s.pipeline.isRunning() {
		if !s.fn(s.in, s.out) {
			return
		}
	}
}
