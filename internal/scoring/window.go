package scoring

// WindowSize is the number of recent reps the rolling average covers.
const WindowSize = 5

// Window is a fixed-size circular buffer of rep records. Pushing beyond
// capacity evicts the oldest entry, so the buffer never exceeds WindowSize.
// Not goroutine-safe: all mutation happens on the frame-processing path.
type Window struct {
	buf   []Record
	size  int
	head  int // next write position
	count int // valid entries (0..size)
}

// NewWindow creates a rolling window with the given capacity.
func NewWindow(size int) *Window {
	if size <= 0 {
		size = WindowSize
	}
	return &Window{
		buf:  make([]Record, size),
		size: size,
	}
}

// Push records a scored rep, evicting the oldest beyond capacity.
func (w *Window) Push(r Record) {
	w.buf[w.head] = r
	w.head = (w.head + 1) % w.size
	if w.count < w.size {
		w.count++
	}
}

// Average returns the arithmetic mean of the buffered scores, or a neutral
// 100 when empty. Never NaN.
func (w *Window) Average() float64 {
	if w.count == 0 {
		return 100
	}
	sum := 0
	for i := 0; i < w.count; i++ {
		sum += w.buf[i].Score
	}
	return float64(sum) / float64(w.count)
}

// Len returns the number of buffered records.
func (w *Window) Len() int {
	return w.count
}

// Records returns the buffered records in chronological order, oldest
// first. The returned slice is a copy.
func (w *Window) Records() []Record {
	if w.count == 0 {
		return nil
	}
	out := make([]Record, w.count)
	if w.count < w.size {
		copy(out, w.buf[:w.count])
	} else {
		n := copy(out, w.buf[w.head:])
		copy(out[n:], w.buf[:w.head])
	}
	return out
}
