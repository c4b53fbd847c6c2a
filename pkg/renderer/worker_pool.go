package renderer

import (
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/dfaivre/go-hybrid-tracer/pkg/integrator"
)

// ChunkTask represents one contiguous run of pixels for the worker pool.
// Chunks never overlap, so workers write to the shared buffers without
// coordination.
type ChunkTask struct {
	TaskID      int
	PixelOffset int // index of the chunk's first pixel in the frame
	Pixels      []byte
	Integrator  integrator.Integrator
	Camera      *Camera
	Random      *rand.Rand
}

// ChunkResult contains the result from rendering a chunk
type ChunkResult struct {
	TaskID  int
	Pixels  int
	Elapsed time.Duration
}

// WorkerPool manages parallel chunk rendering for a single frame
type WorkerPool struct {
	taskQueue   chan ChunkTask
	resultQueue chan ChunkResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual chunk rendering tasks
type Worker struct {
	ID          int
	renderer    *Renderer
	taskQueue   chan ChunkTask
	resultQueue chan ChunkResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// Zero or negative means one worker per CPU.
func NewWorkerPool(renderer *Renderer, maxChunks, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if maxChunks < 1 {
		maxChunks = 1
	}

	wp := &WorkerPool{
		taskQueue:   make(chan ChunkTask, maxChunks),
		resultQueue: make(chan ChunkResult, maxChunks),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			renderer:    renderer,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a chunk task to the worker pool
func (wp *WorkerPool) SubmitTask(task ChunkTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed chunk result
func (wp *WorkerPool) GetResult() (ChunkResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		start := time.Now()

		// Each chunk owns a disjoint pixel range of the accumulation and
		// output buffers, so this is thread-safe
		pixels := w.renderer.renderChunk(task)

		w.resultQueue <- ChunkResult{
			TaskID:  task.TaskID,
			Pixels:  pixels,
			Elapsed: time.Since(start),
		}
	}
}
