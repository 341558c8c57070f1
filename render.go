package main

import (
  "fmt"
  "wandsynth/cli"
  "wandsynth/transport"
)

// render drives the engine straight from a file of control lines, rendering
// a fixed number of blocks after each line in place of the audio device.
func render(parsedArgs *cli.Arguments) error {
  input, err := transport.Open(parsedArgs.InputPath)
  if err != nil {
    return err
  }
  defer input.Close()

  r, err := newRig(parsedArgs)
  if err != nil {
    return err
  }

  printSettings(parsedArgs, map[string]string{
    "Input": parsedArgs.InputPath,
    "Blocks per Line": fmt.Sprint(parsedArgs.BlocksPerLine),
    "Output": fmt.Sprintf("%s/%s-NNN", parsedArgs.OutputDir, parsedArgs.OutputBase),
  }, []string{"Input", "Blocks per Line", "Output"})

  block := make([]float32, parsedArgs.FramesPerBuffer * 2)
  r.interpreter.AfterLine = func() {
    for i := 0; i < parsedArgs.BlocksPerLine; i++ {
      r.engine.Process(block)
    }
  }

  err = r.interpreter.Run(input)
  r.finish()

  return err
}
