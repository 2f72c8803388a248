package estimators

import "slices"

// MedianWindow is a fixed-capacity rolling window with a median query.
// Values overwrite oldest-first; the median is recomputed from a sorted
// copy on each query. Not concurrency safe.
type MedianWindow struct {
	values []float64
	sorted []float64
	idx    int
	count  int
}

// NewMedianWindow returns a window holding up to size values.
// size must be at least 1.
func NewMedianWindow(size int) *MedianWindow {
	if size < 1 {
		size = 1
	}
	return &MedianWindow{
		values: make([]float64, size),
		sorted: make([]float64, size),
	}
}

// Push adds a value, evicting the oldest once the window is full.
func (w *MedianWindow) Push(v float64) {
	w.values[w.idx] = v
	w.idx = (w.idx + 1) % len(w.values)
	if w.count < len(w.values) {
		w.count++
	}
}

// Median returns the median of the values currently held, or 0 when empty.
// An even count averages the two middle values.
func (w *MedianWindow) Median() float64 {
	if w.count == 0 {
		return 0
	}
	s := w.sorted[:0]
	if w.count < len(w.values) {
		s = append(s, w.values[:w.count]...)
	} else {
		s = append(s, w.values...)
	}
	slices.Sort(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return 0.5 * (s[mid-1] + s[mid])
}

// Len returns how many values the window currently holds.
func (w *MedianWindow) Len() int { return w.count }

// Reset empties the window.
func (w *MedianWindow) Reset() {
	w.idx = 0
	w.count = 0
}
