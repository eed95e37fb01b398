package metrics

// FPSCounter counts frames and publishes how many were rendered in each
// elapsed second. Times are in seconds, as returned by glfw.GetTime.
type FPSCounter struct {
	frames   int
	lastTime float64
	current  int
	started  bool
}

// Start resets the counter at time now.
func (f *FPSCounter) Start(now float64) {
	f.frames = 0
	f.current = 0
	f.lastTime = now
	f.started = true
}

// FrameEnd registers a finished frame at time now and returns true when a
// new per-second value was published.
func (f *FPSCounter) FrameEnd(now float64) bool {
	if !f.started {
		f.Start(now)
	}
	f.frames++
	FramesRendered.Inc()
	if now-f.lastTime < 1.0 {
		return false
	}
	f.current = f.frames
	f.frames = 0
	f.lastTime += 1.0
	// a stall longer than a second must not replay every missed tick
	if now-f.lastTime >= 1.0 {
		f.lastTime = now
	}
	FramesPerSecond.Set(float64(f.current))
	return true
}

// FPS returns the frames counted during the last full second.
func (f *FPSCounter) FPS() int {
	return f.current
}
