package analysis

import(
  "math"
  "sort"
  "strings"
)

type windowFunction func (int) []float64

var WindowFunctions = map[string]windowFunction {
  "hamming": HammingWindow,
  "vonhann": VonHannWindow,
  "rectangle": RectangleWindow,
}

func WindowNamesString() string {
  names := make([]string, 0, len(WindowFunctions))

  for name := range WindowFunctions {
    names = append(names, name)
  }
  sort.Strings(names)

  return strings.Join(names, ", ")
}

// raised cosine: a - (1 - a) * cos(2 pi i / (N - 1))
func raisedCosine(windowSize int, a float64) []float64 {
  window := make([]float64, windowSize)

  if windowSize == 1 {
    window[0] = 1
    return window
  }

  b := 1 - a
  for i := 0; i < windowSize; i++ {
    window[i] = a - b * math.Cos((twoPi * float64(i)) / float64(windowSize - 1))
  }

  return window
}

func HammingWindow(windowSize int) []float64 {
  return raisedCosine(windowSize, 0.54)
}

func VonHannWindow(windowSize int) []float64 {
  return raisedCosine(windowSize, 0.5)
}

func RectangleWindow(windowSize int) []float64 {
  window := make([]float64, windowSize)

  for i := range window {
    window[i] = 1.0
  }

  return window
}
