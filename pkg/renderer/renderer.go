package renderer

import (
	"math/rand"
	"time"

	"github.com/dfaivre/go-hybrid-tracer/pkg/core"
	"github.com/dfaivre/go-hybrid-tracer/pkg/integrator"
	"github.com/dfaivre/go-hybrid-tracer/pkg/log"
	"github.com/dfaivre/go-hybrid-tracer/pkg/scene"
)

// Renderer accumulates frames progressively into a floating point buffer and
// resolves each pass into 8-bit RGBA. Pixels are split into contiguous chunks
// that render in parallel on a worker pool.
type Renderer struct {
	NumChunks  int
	NumWorkers int

	// FrameIndex counts passes since the last camera or scene change,
	// starting at 1. The accumulation average divides by it.
	FrameIndex int

	accumulated        []core.Vec3
	enableAccumulation bool
	maxFrames          int
	logger             log.Logger
}

// NewRenderer creates a renderer that splits each frame into numChunks pixel
// runs. Worker count zero means one per CPU.
func NewRenderer(numChunks, numWorkers int) *Renderer {
	if numChunks < 1 {
		numChunks = 1
	}
	return &Renderer{
		NumChunks:  numChunks,
		NumWorkers: numWorkers,
		FrameIndex: 1,
		logger:     log.New("renderer"),
	}
}

// Render traces one pass of the scene through the camera into img, a
// width*height*4 RGBA buffer. Set updated when the camera moved, the scene
// changed or the buffer was reallocated; accumulation restarts from frame 1.
// Returns false without touching img when the pass is skipped, either because
// the frame budget is spent or because accumulation is off, the scene is not
// in diffuse mode and a still frame has already been rendered.
func (r *Renderer) Render(s *scene.Scene, camera *Camera, img []byte, updated bool) (RenderStats, bool) {
	pixelCount := camera.Width * camera.Height
	if len(img) != pixelCount*4 {
		r.logger.Errorf("buffer is %d bytes, want %d for %dx%d", len(img), pixelCount*4, camera.Width, camera.Height)
		return RenderStats{}, false
	}

	if updated || len(r.accumulated) != pixelCount {
		r.accumulated = make([]core.Vec3, pixelCount)
		r.FrameIndex = 1
	}
	r.enableAccumulation = s.EnableAccumulation
	r.maxFrames = s.MaxFrames

	if r.FrameIndex > r.maxFrames || (r.FrameIndex > 1 && !r.enableAccumulation && !s.Diffuse) {
		return RenderStats{}, false
	}

	var integ integrator.Integrator
	if s.RayMarching {
		integ = integrator.NewRayMarcher(s)
	} else {
		integ = integrator.NewRayTracer(s)
	}

	start := time.Now()
	chunks := r.splitChunks(img)

	pool := NewWorkerPool(r, len(chunks), r.NumWorkers)
	pool.Start()
	for i, chunk := range chunks {
		pool.SubmitTask(ChunkTask{
			TaskID:      i,
			PixelOffset: chunk.pixelOffset,
			Pixels:      chunk.pixels,
			Integrator:  integ,
			Camera:      camera,
			Random:      rand.New(rand.NewSource(int64(r.FrameIndex)*int64(len(chunks)) + int64(i))),
		})
	}

	stats := RenderStats{
		Frame:      r.FrameIndex,
		Width:      camera.Width,
		Height:     camera.Height,
		Chunks:     len(chunks),
		Workers:    pool.GetNumWorkers(),
		ChunkTimes: make([]time.Duration, len(chunks)),
	}
	for range chunks {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.ChunkTimes[result.TaskID] = result.Elapsed
	}
	pool.Stop()

	stats.Elapsed = time.Since(start)
	r.logger.Debugf("frame %d rendered in %s (%d chunks, %d workers)",
		r.FrameIndex, stats.Elapsed, stats.Chunks, stats.Workers)

	r.FrameIndex++
	return stats, true
}

type pixelChunk struct {
	pixelOffset int
	pixels      []byte
}

// splitChunks carves img into NumChunks contiguous byte runs. The chunk size
// rounds down to whole pixels; the trailing remainder becomes its own chunk.
func (r *Renderer) splitChunks(img []byte) []pixelChunk {
	chunkBytes := (len(img) / (r.NumChunks * 4)) * 4
	if chunkBytes < 4 {
		chunkBytes = 4
	}

	var chunks []pixelChunk
	for offset := 0; offset < len(img); offset += chunkBytes {
		end := offset + chunkBytes
		if end > len(img) {
			end = len(img)
		}
		chunks = append(chunks, pixelChunk{
			pixelOffset: offset / 4,
			pixels:      img[offset:end],
		})
	}
	return chunks
}

// renderChunk traces every pixel of one chunk and resolves the running
// average into RGBA. Called from pool workers; the chunk's pixel range is
// disjoint from every other chunk's.
func (r *Renderer) renderChunk(task ChunkTask) int {
	count := len(task.Pixels) / 4
	for pos := 0; pos < count; pos++ {
		pixel := task.PixelOffset + pos
		ray := core.Ray{
			Origin:    task.Camera.Position,
			Direction: task.Camera.RayDirections[pixel],
		}
		sample := task.Integrator.Albedo(ray, task.Random)

		var resolved core.Vec3
		if r.enableAccumulation {
			r.accumulated[pixel] = r.accumulated[pixel].Add(sample)
			resolved = r.accumulated[pixel].Multiply(1 / float64(r.FrameIndex)).Clamp(0, 1)
		} else {
			r.accumulated[pixel] = sample.Clamp(0, 1)
			resolved = r.accumulated[pixel]
		}

		task.Pixels[pos*4] = byte(resolved.X * 255)
		task.Pixels[pos*4+1] = byte(resolved.Y * 255)
		task.Pixels[pos*4+2] = byte(resolved.Z * 255)
		task.Pixels[pos*4+3] = 255
	}
	return count
}
