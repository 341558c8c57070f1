package charter

import (
  "fmt"
  "io"
  "os"
  "github.com/go-echarts/go-echarts/v2/charts"
  "github.com/go-echarts/go-echarts/v2/opts"
  "github.com/go-echarts/go-echarts/v2/types"
)

// waveforms longer than this are reduced to a min/max envelope
const MaxPoints = 2000

// Envelope reduces samples to at most points buckets, keeping the extremes of
// each bucket so transients stay visible. starts holds each bucket's first
// sample index.
func Envelope(samples []float64, points int) (mins, maxs []float64, starts []int) {
  if points < 1 || len(samples) == 0 {
    return nil, nil, nil
  }

  bucket := (len(samples) + points - 1) / points

  for start := 0; start < len(samples); start += bucket {
    end := start + bucket
    if end > len(samples) {
      end = len(samples)
    }

    low, high := samples[start], samples[start]
    for _, sample := range samples[start + 1:end] {
      if sample < low {
        low = sample
      }
      if sample > high {
        high = sample
      }
    }

    mins = append(mins, low)
    maxs = append(maxs, high)
    starts = append(starts, start)
  }

  return mins, maxs, starts
}

func lineItems(data []float64) []opts.LineData {
  items := make([]opts.LineData, len(data))

  for i := 0; i < len(data); i++ {
    items[i] = opts.LineData{
      Value: data[i],
    }
  }

  return items
}

func WaveformChart(title, subtitle string, samples []float64, sampleRate int) *charts.Line {
  mins, maxs, starts := Envelope(samples, MaxPoints)

  xLabels := make([]string, len(starts))
  for i, start := range starts {
    xLabels[i] = fmt.Sprintf("%.3f", float64(start) / float64(sampleRate))
  }

  line := charts.NewLine()
  line.SetGlobalOptions(
    charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
    charts.WithTitleOpts(opts.Title{
      Title:    title,
      Subtitle: subtitle,
    }),
  )

  line.SetXAxis(xLabels).
    AddSeries("max", lineItems(maxs)).
    AddSeries("min", lineItems(mins)).
    SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: false}))

  return line
}

func RenderWaveform(w io.Writer, title, subtitle string, samples []float64, sampleRate int) error {
  return WaveformChart(title, subtitle, samples, sampleRate).Render(w)
}

// WriteWaveform renders the chart into an html file at path
func WriteWaveform(path, title, subtitle string, samples []float64, sampleRate int) error {
  f, err := os.Create(path)

  if err != nil {
    return err
  }

  if err = RenderWaveform(f, title, subtitle, samples, sampleRate); err != nil {
    f.Close()
    return err
  }

  return f.Close()
}
