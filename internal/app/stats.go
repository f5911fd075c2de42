package app

import (
	"fmt"
	"time"
)

// FrameStats averages frame times over one-second windows for the window
// title.
type FrameStats struct {
	Title   string
	frames  int
	elapsed time.Duration
}

// Tick adds one frame of duration dt. When a full second has passed it
// returns the new window title and true.
func (s *FrameStats) Tick(dt time.Duration) (string, bool) {
	s.frames++
	s.elapsed += dt
	if s.elapsed < time.Second {
		return "", false
	}

	fps := float64(s.frames) / s.elapsed.Seconds()
	mspf := 1000 / fps
	s.frames = 0
	s.elapsed = 0
	return fmt.Sprintf("%s    fps: %.0f   mspf: %.3f", s.Title, fps, mspf), true
}
