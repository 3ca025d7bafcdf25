package sprite

// Animation cycles through sheet indices at a fixed rate.
type Animation struct {
	Frames []int
	FPS    float32
	Loop   bool
}

// Frame returns the sheet index shown after elapsed seconds. A non-looping
// animation holds its last frame.
func (a Animation) Frame(elapsed float32) int {
	if len(a.Frames) == 0 {
		return 0
	}
	if a.FPS <= 0 || elapsed <= 0 {
		return a.Frames[0]
	}
	n := int(elapsed * a.FPS)
	if a.Loop {
		return a.Frames[n%len(a.Frames)]
	}
	return a.Frames[min(n, len(a.Frames)-1)]
}

// Duration returns the length of one pass in seconds.
func (a Animation) Duration() float32 {
	if a.FPS <= 0 {
		return 0
	}
	return float32(len(a.Frames)) / a.FPS
}
