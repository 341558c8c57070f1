package main

import (
  "fmt"
  "path/filepath"
  "strings"
  "wandsynth/analysis"
  "wandsynth/audioio"
  "wandsynth/charter"
  "wandsynth/cli"
  "wandsynth/transport"
)

func inspect(parsedArgs *cli.Arguments) error {
  samples, sampleRate, err := audioio.ReadChannel(parsedArgs.InputPath, 0)
  if err != nil {
    return fmt.Errorf("reading %s: %w", parsedArgs.InputPath, err)
  }

  summary, err := analysis.Analyze(samples, sampleRate)
  if err != nil {
    return err
  }

  fmt.Printf("%24s   %s\n", "File:", parsedArgs.InputPath)
  fmt.Printf("%24s   %d\n", "Sample Rate:", sampleRate)
  fmt.Printf("%24s   %.2f s\n", "Duration:", float64(summary.Frames) / float64(sampleRate))
  fmt.Printf("%24s   %.3f (%.1f dBFS)\n", "Peak:", summary.Peak, analysis.Decibels(summary.Peak))
  fmt.Printf("%24s   %.3f (%.1f dBFS)\n", "RMS:", summary.RMS, analysis.Decibels(summary.RMS))
  fmt.Printf("%24s   %.1f Hz\n", "Dominant Frequency:", summary.DominantHz)

  if parsedArgs.Chart {
    chartPath := strings.TrimSuffix(parsedArgs.InputPath, filepath.Ext(parsedArgs.InputPath)) + ".html"
    title := filepath.Base(parsedArgs.InputPath)

    if err = charter.WriteWaveform(chartPath, title, summary.String(), samples, sampleRate); err != nil {
      return err
    }
    fmt.Printf("%24s   %s\n", "Chart:", chartPath)
  }

  return nil
}

func listPorts() error {
  ports, err := transport.ListPorts()
  if err != nil {
    return err
  }

  if len(ports) == 0 {
    fmt.Println("No serial ports found")
    return nil
  }

  for _, port := range ports {
    fmt.Println(port)
  }

  return nil
}
