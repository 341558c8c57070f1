package analysis

import(
  "fmt"
  "math"
)

// frames longer than this are analyzed in consecutive blocks
const MaxPoints = 4096

type Summary struct {
  Frames int
  SampleRate int
  Peak float64
  RMS float64
  DominantHz float64
}

func (s Summary) String() string {
  return fmt.Sprintf(
    "%d frames, peak %.3f (%.1f dBFS), rms %.3f, dominant %.1f Hz",
    s.Frames,
    s.Peak,
    Decibels(s.Peak),
    s.RMS,
    s.DominantHz,
  )
}

func Decibels(amplitude float64) float64 {
  if amplitude <= 0 {
    return math.Inf(-1)
  }
  return 20 * math.Log10(amplitude)
}

// Levels returns the absolute peak and the root mean square of samples.
func Levels(samples []float64) (peak, rms float64) {
  if len(samples) == 0 {
    return 0, 0
  }

  sum := 0.0
  for _, sample := range samples {
    magnitude := math.Abs(sample)
    if magnitude > peak {
      peak = magnitude
    }
    sum += sample * sample
  }

  return peak, math.Sqrt(sum / float64(len(samples)))
}

// points is the largest power of two not above len(samples), capped at MaxPoints
func pointsFor(numSamples int) int {
  points := 1
  for points * 2 <= numSamples && points * 2 <= MaxPoints {
    points *= 2
  }
  return points
}

// DominantFrequency averages the magnitude spectrum of consecutive windowed
// blocks and returns the center frequency of the loudest non-DC bin.
func DominantFrequency(samples []float64, sampleRate int, windowName string) (float64, error) {
  makeWindow, ok := WindowFunctions[windowName]
  if !ok {
    return 0, fmt.Errorf("Unknown window %q, expected one of %s", windowName, WindowNamesString())
  }

  points := pointsFor(len(samples))
  if points < 4 {
    return 0, nil
  }

  window := makeWindow(points)
  spectrum := make([]float64, points)
  magnitudes := make([]float64, points / 2)

  for start := 0; start + points <= len(samples); start += points {
    for i := 0; i < points; i++ {
      spectrum[i] = samples[start + i] * window[i]
    }

    RealFFT(spectrum, Time2Freq)

    for bin := 1; bin < points / 2; bin++ {
      re := spectrum[bin * 2]
      im := spectrum[bin * 2 + 1]
      magnitudes[bin] += math.Sqrt(re * re + im * im)
    }
  }

  loudest := 0
  for bin := 1; bin < len(magnitudes); bin++ {
    if magnitudes[bin] > magnitudes[loudest] {
      loudest = bin
    }
  }

  return float64(loudest) * float64(sampleRate) / float64(points), nil
}

func Analyze(samples []float64, sampleRate int) (Summary, error) {
  summary := Summary{
    Frames: len(samples),
    SampleRate: sampleRate,
  }

  summary.Peak, summary.RMS = Levels(samples)

  dominant, err := DominantFrequency(samples, sampleRate, "vonhann")
  if err != nil {
    return summary, err
  }
  summary.DominantHz = dominant

  return summary, nil
}
