package estimators

import "math"

// Bandwidth schedule for the band-pass bank: wide while there is little
// history, narrowing as bars accumulate, floored at deltaFloor.
const (
	deltaStart = 0.5
	deltaDecay = 0.015
	deltaFloor = 0.15
)

// BandpassBank runs one resonant two-pole band-pass filter per candidate
// period N in [minPeriod, maxPeriod]. Each hypothesis keeps its own
// two-sample in-phase and quadrature histories; Update advances every
// hypothesis once and exposes the squared amplitude per period.
type BandpassBank struct {
	minPeriod int
	maxPeriod int

	sPrev float64
	steps int

	// Indexed directly by candidate period; [0, minPeriod) unused.
	real1, real2 []float64
	imag1, imag2 []float64
	ampl         []float64
}

// NewBandpassBank sizes the hypothesis slots once; they are reused on every
// call with no further allocation.
func NewBandpassBank(minPeriod, maxPeriod int) *BandpassBank {
	n := maxPeriod + 1
	return &BandpassBank{
		minPeriod: minPeriod,
		maxPeriod: maxPeriod,
		real1:     make([]float64, n),
		real2:     make([]float64, n),
		imag1:     make([]float64, n),
		imag2:     make([]float64, n),
		ampl:      make([]float64, n),
	}
}

// MinPeriod returns the smallest candidate period in the bank.
func (b *BandpassBank) MinPeriod() int { return b.minPeriod }

// MaxPeriod returns the largest candidate period in the bank.
func (b *BandpassBank) MaxPeriod() int { return b.maxPeriod }

// delta returns the current bandwidth parameter.
func (b *BandpassBank) delta() float64 {
	d := deltaStart - deltaDecay*float64(b.steps)
	if d < deltaFloor {
		d = deltaFloor
	}
	return d
}

// Update feeds one detrended sample through every hypothesis filter and
// returns the squared amplitude profile indexed by candidate period. The
// returned slice is owned by the bank and overwritten on the next call.
func (b *BandpassBank) Update(s float64) []float64 {
	delta := b.delta()
	diff := s - b.sPrev

	for n := b.minPeriod; n <= b.maxPeriod; n++ {
		period := float64(n)
		beta := math.Cos(2 * math.Pi / period)
		gamma := 1.0
		if c := math.Cos(720 * delta * math.Pi / (180 * period)); math.Abs(c) > epsilon {
			gamma = 1 / c
		}
		alpha := gamma
		if gg := gamma*gamma - 1; gg > 0 {
			alpha = gamma - math.Sqrt(gg)
		}
		alpha = Clamp(alpha, 0, 1)

		q := period / (2 * math.Pi) * diff

		re := 0.5*(1-alpha)*diff + beta*(1+alpha)*b.real1[n] - alpha*b.real2[n]
		im := 0.5*(1-alpha)*q + beta*(1+alpha)*b.imag1[n] - alpha*b.imag2[n]
		if !IsValid(re) {
			re = 0
		}
		if !IsValid(im) {
			im = 0
		}

		// Histories were read above; rotate for the next bar.
		b.real2[n] = b.real1[n]
		b.real1[n] = re
		b.imag2[n] = b.imag1[n]
		b.imag1[n] = im

		b.ampl[n] = re*re + im*im
	}

	b.sPrev = s
	b.steps++
	return b.ampl
}

// Reset clears all hypothesis histories and the bandwidth schedule.
func (b *BandpassBank) Reset() {
	for i := range b.real1 {
		b.real1[i] = 0
		b.real2[i] = 0
		b.imag1[i] = 0
		b.imag2[i] = 0
		b.ampl[i] = 0
	}
	b.sPrev = 0
	b.steps = 0
}
