package synth

import(
  "math"
)

// ScaleTable is an ordered, strictly increasing set of frequencies in Hz,
// indexed by scale degree.
type ScaleTable []float64

func NewScaleTable(freqs []float64) ScaleTable {
  return ScaleTable(append([]float64(nil), freqs...))
}

// Index maps a pitch angle in [-AngleRange, AngleRange] linearly onto a
// degree in [0, N-1]. Out of range input saturates at either end.
func (s ScaleTable) Index(pitch float64) int {
  norm := clamp((pitch + AngleRange) / (2 * AngleRange), 0, 1)
  if math.IsNaN(norm) {
    return 0
  }
  return int(math.Floor(norm * float64(len(s) - 1)))
}

// Freq returns the frequency of degree clamped into the table.
func (s ScaleTable) Freq(degree int) float64 {
  return s[clampInt(degree, 0, len(s) - 1)]
}

func (s ScaleTable) Len() int {
  return len(s)
}

func clamp(v, low, high float64) float64 {
  if v < low {
    return low
  }
  if v > high {
    return high
  }
  return v
}

func clampInt(v, low, high int) int {
  if v < low {
    return low
  }
  if v > high {
    return high
  }
  return v
}

// wrap reduces a phase into [0, 1)
func wrap(phase float64) float64 {
  return phase - math.Floor(phase)
}

func centsToRatio(cents float64) float64 {
  return math.Exp2(cents / 1200.0)
}
