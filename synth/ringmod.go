package synth

import(
  "math"
)

// RingOscillator is the secondary carrier the partial sum is multiplied by.
type RingOscillator struct {
  Phase float64
  Frequency float64
  sampleRate float64
}

func NewRingOscillator(frequency float64, sampleRate int) *RingOscillator {
  return &RingOscillator{
    Frequency: frequency,
    sampleRate: float64(sampleRate),
  }
}

// Modulate scales sample by 1 + depth*carrier and advances the carrier one
// sample. A depth of 0 leaves the sample untouched.
func (r *RingOscillator) Modulate(sample, depth float64) float64 {
  carrier := math.Sin(twoPi * r.Phase)
  r.Phase = wrap(r.Phase + r.Frequency / r.sampleRate)

  if depth == 0 {
    return sample
  }
  return sample * (1.0 + clamp(depth, -1, 1) * carrier)
}
