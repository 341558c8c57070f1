package analysis

import(
  "math"
)

// FFT directions
const Time2Freq = 1
const Freq2Time = 2

const twoPi float64 = math.Pi * 2
const pi float64 = math.Pi

var omegaPiImag []float64 = make([]float64, 31)
var omegaPiReal []float64 = make([]float64, 31)

func init() {
  var N uint32 = 2

  for i := 0; i < 31; i++ {
    NFloat := float64(N)
    omegaPiImag[i] = math.Sin(twoPi / NFloat)
    omegaPiReal[i] = -2 * math.Sin(pi / NFloat) * math.Sin(pi / NFloat)

    N <<= 1
  }
}

// rearranges interleaved (real, imag) pairs into bit-reversal order in-place
// [0, 1, 2, 3, 4, 5, 6, 7] <- array data
//  ____  ____  ____  ____
//   0     1     2     3    <- indexes to bit reverse
func bitReverse(data []float64) {
  var m int

  for i, j := 0, 0; i < len(data); i, j = i + 2, j + m {
    if j > i {
      data[i], data[j] = data[j], data[i]
      data[i + 1], data[j + 1] = data[j + 1], data[i + 1]
    }

    for m = len(data) / 2; m >= 2 && j >= m; m /= 2 {
      j -= m
    }
  }
}

// FFT is an in-place complex transform of len(data)/2 interleaved points.
// len(data) must be a power of two.
func FFT(data []float64, direction int) {
  bitReverse(data)

  numberData := len(data)
  halfPoints := numberData / 2

  var twoMMax int
  n := 0
  for mMax := 2; mMax < numberData; mMax = twoMMax {
    twoMMax = mMax * 2
    stepReal := omegaPiReal[n]

    stepImag := omegaPiImag[n]
    if direction == Freq2Time {
      stepImag = -stepImag
    }
    n++

    omegaReal := 1.0
    omegaImag := 0.0

    for m := 0; m < mMax; m += 2 {
      var imagTemp, realTemp float64
      for i := m; i < numberData; i += twoMMax {
        j := i + mMax
        realTemp = omegaReal * data[j] - omegaImag * data[j + 1]
        imagTemp = omegaReal * data[j + 1] + omegaImag * data[j]
        data[j] = data[i] - realTemp
        data[j + 1] = data[i + 1] - imagTemp
        data[i] += realTemp
        data[i + 1] += imagTemp
      }
      realTemp = omegaReal
      omegaReal = omegaReal * stepReal - omegaImag * stepImag + omegaReal
      omegaImag = omegaImag * stepReal + realTemp * stepImag + omegaImag
    }
  }

  if direction == Freq2Time {
    scale := 1.0 / float64(halfPoints)

    for i := 0; i < numberData; i++ {
      data[i] *= scale
    }
  }
}

// RealFFT transforms len(data) real samples into len(data)/2 positive
// frequency bins in-place. data[0] holds the DC term and data[1] the
// Nyquist term, bin k lives at data[2k], data[2k+1].
func RealFFT(data []float64, direction int) {
  points := len(data)
  halfPoints := points / 2

  twoPiOmmax := pi / float64(halfPoints)
  omegaReal := 1.0
  omegaImag := 0.0
  c1 := 0.5

  var c2, xr, xi float64

  if direction == Time2Freq {
    c2 = -0.5
    FFT(data, direction)
    xr = data[0]
    xi = data[1]
  } else {
    c2 = 0.5
    twoPiOmmax = -twoPiOmmax
    xr = data[1]
    xi = 0.0
    data[1] = 0.0
  }

  temp := math.Sin(0.5 * twoPiOmmax)
  stepReal := -2.0 * temp * temp
  stepImag := math.Sin(twoPiOmmax)
  N2p1 := points + 1

  for i := 0; i <= halfPoints / 2; i++ {
    i1 := i * 2
    i2 := i1 + 1
    i3 := N2p1 - i2
    i4 := i3 + 1

    if i == 0 {
      h1r :=  c1 * (data[i1] + xr)
      h1i :=  c1 * (data[i2] - xi)
      h2r := -c2 * (data[i2] + xi)
      h2i :=  c2 * (data[i1] - xr)
      data[i1] = h1r + omegaReal * h2r - omegaImag * h2i
      data[i2] = h1i + omegaReal * h2i + omegaImag * h2r
      xr =  h1r - omegaReal * h2r + omegaImag * h2i
      xi = -h1i + omegaReal * h2i + omegaImag * h2r
    } else {
      h1r :=  c1 * (data[i1] + data[i3])
      h1i :=  c1 * (data[i2] - data[i4])
      h2r := -c2 * (data[i2] + data[i4])
      h2i :=  c2 * (data[i1] - data[i3])
      data[i1] =  h1r + omegaReal * h2r - omegaImag * h2i
      data[i2] =  h1i + omegaReal * h2i + omegaImag * h2r
      data[i3] =  h1r - omegaReal * h2r + omegaImag * h2i
      data[i4] = -h1i + omegaReal * h2i + omegaImag * h2r
    }
    temp = omegaReal
    omegaReal = omegaReal * stepReal - omegaImag * stepImag + omegaReal
    omegaImag = omegaImag * stepReal + temp * stepImag + omegaImag
  }

  if direction == Time2Freq {
    data[1] = xr
  } else {
    FFT(data, direction)
  }
}
