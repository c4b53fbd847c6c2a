package renderer

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
)

// RenderStats describes one completed render pass.
type RenderStats struct {
	Frame      int
	Width      int
	Height     int
	Chunks     int
	Workers    int
	Elapsed    time.Duration
	ChunkTimes []time.Duration
}

// MinChunkTime returns the fastest chunk of the pass.
func (s RenderStats) MinChunkTime() time.Duration {
	if len(s.ChunkTimes) == 0 {
		return 0
	}
	min := s.ChunkTimes[0]
	for _, t := range s.ChunkTimes[1:] {
		if t < min {
			min = t
		}
	}
	return min
}

// MaxChunkTime returns the slowest chunk of the pass.
func (s RenderStats) MaxChunkTime() time.Duration {
	var max time.Duration
	for _, t := range s.ChunkTimes {
		if t > max {
			max = t
		}
	}
	return max
}

// AvgChunkTime returns the mean chunk render time of the pass.
func (s RenderStats) AvgChunkTime() time.Duration {
	if len(s.ChunkTimes) == 0 {
		return 0
	}
	var sum time.Duration
	for _, t := range s.ChunkTimes {
		sum += t
	}
	return sum / time.Duration(len(s.ChunkTimes))
}

// WriteTable renders the pass statistics as an aligned table.
func (s RenderStats) WriteTable(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Frame", "Resolution", "Chunks", "Workers", "Chunk min/avg/max", "Render time"})
	table.Append([]string{
		fmt.Sprintf("%d", s.Frame),
		fmt.Sprintf("%dx%d", s.Width, s.Height),
		fmt.Sprintf("%d", s.Chunks),
		fmt.Sprintf("%d", s.Workers),
		fmt.Sprintf("%s / %s / %s", s.MinChunkTime(), s.AvgChunkTime(), s.MaxChunkTime()),
		s.Elapsed.String(),
	})
	table.Render()
}
