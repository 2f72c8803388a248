package estimators

// sampleRing is a fixed-capacity ring of recent samples shared by the
// windowed estimators. Writes overwrite oldest-first.
type sampleRing struct {
	buf   []float64
	idx   int
	count int
}

func newSampleRing(capacity int) *sampleRing {
	return &sampleRing{buf: make([]float64, capacity)}
}

func (r *sampleRing) push(v float64) {
	r.buf[r.idx] = v
	r.idx = (r.idx + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

// at returns the sample `ago` bars back; at(0) is the newest. The caller
// keeps ago < len().
func (r *sampleRing) at(ago int) float64 {
	i := r.idx - 1 - ago
	if i < 0 {
		i += len(r.buf)
	}
	return r.buf[i]
}

func (r *sampleRing) len() int { return r.count }

// fill copies the most recent len(dst) samples into dst, oldest first.
func (r *sampleRing) fill(dst []float64) {
	n := len(dst)
	for i := 0; i < n; i++ {
		dst[i] = r.at(n - 1 - i)
	}
}

func (r *sampleRing) reset() {
	r.idx = 0
	r.count = 0
}
