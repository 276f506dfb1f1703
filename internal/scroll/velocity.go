package scroll

import "time"

const (
	trackerCapacity = 20
	trackerHorizon  = 100 * time.Millisecond
	// A gap this long between samples means the pointer stopped.
	trackerStopGap = 40 * time.Millisecond
)

type sample struct {
	x, y float64
	t    time.Time
}

// VelocityTracker estimates pointer velocity with a least-squares line
// through the most recent samples.
type VelocityTracker struct {
	samples [trackerCapacity]sample
	head    int
	count   int
}

func (v *VelocityTracker) Reset() {
	v.head = 0
	v.count = 0
}

func (v *VelocityTracker) Add(ev TouchEvent) {
	v.samples[v.head] = sample{x: ev.X, y: ev.Y, t: ev.Time}
	v.head = (v.head + 1) % trackerCapacity
	if v.count < trackerCapacity {
		v.count++
	}
}

// Velocity returns units per second along each axis.
func (v *VelocityTracker) Velocity() (vx, vy float64) {
	if v.count < 2 {
		return 0, 0
	}
	newest := v.at(0)
	var window []sample
	prev := newest
	for i := 0; i < v.count; i++ {
		s := v.at(i)
		if newest.t.Sub(s.t) > trackerHorizon || prev.t.Sub(s.t) > trackerStopGap {
			break
		}
		window = append(window, s)
		prev = s
	}
	if len(window) < 2 {
		return 0, 0
	}
	return slope(window, newest.t, func(s sample) float64 { return s.x }),
		slope(window, newest.t, func(s sample) float64 { return s.y })
}

// at returns the i-th newest sample.
func (v *VelocityTracker) at(i int) sample {
	idx := (v.head - 1 - i + 2*trackerCapacity) % trackerCapacity
	return v.samples[idx]
}

func slope(window []sample, ref time.Time, pick func(sample) float64) float64 {
	n := float64(len(window))
	var meanT, meanP float64
	for _, s := range window {
		meanT += s.t.Sub(ref).Seconds()
		meanP += pick(s)
	}
	meanT /= n
	meanP /= n
	var num, den float64
	for _, s := range window {
		dt := s.t.Sub(ref).Seconds() - meanT
		num += dt * (pick(s) - meanP)
		den += dt * dt
	}
	if den == 0 {
		return 0
	}
	return num / den
}
