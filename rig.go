package main

import (
  "fmt"
  "wandsynth/cli"
  "wandsynth/control"
  "wandsynth/export"
  "wandsynth/synth"
)

// rig wires the shared control state, the engine and the export drain
type rig struct {
  target *synth.Target
  flags *synth.SessionFlags
  engine *synth.Engine
  interpreter *control.Interpreter
  drained chan struct{}
  sessions int
  exported int
  failed int
}

func newExporter(parsedArgs *cli.Arguments) *export.FileExporter {
  exporter := export.NewFileExporter(parsedArgs.OutputDir, parsedArgs.OutputBase, logger)
  exporter.Gain = parsedArgs.Gain
  exporter.Container = parsedArgs.Container
  exporter.Encoder = parsedArgs.Encoder
  exporter.Chart = parsedArgs.Chart
  exporter.Quiet = parsedArgs.Quiet

  return exporter
}

func newRig(parsedArgs *cli.Arguments) (*rig, error) {
  r := &rig{
    target: synth.NewTarget(),
    flags: &synth.SessionFlags{},
    drained: make(chan struct{}),
  }

  engine, err := synth.NewEngine(parsedArgs.Config, r.target, r.flags)
  if err != nil {
    return nil, err
  }
  r.engine = engine
  r.interpreter = control.NewInterpreter(r.target, r.flags, logger)
  r.interpreter.OnCommand = func(c control.Command) {
    if c == control.CommandStart {
      r.sessions++
    }
  }

  exporter := newExporter(parsedArgs)

  go func() {
    r.exported, r.failed = export.Drain(engine.Captures(), exporter, logger, engine.Recycle)
    close(r.drained)
  }()

  return r, nil
}

// finish must run after the audio backend stopped calling the engine and
// the interpreter returned
func (r *rig) finish() {
  r.flags.Stop()
  r.engine.Close()
  <-r.drained

  logger.Info(
    "session summary",
    "sessions", r.sessions,
    "exported", r.exported,
    "failed", r.failed,
    "rendered", fmt.Sprintf("%.2f s", float64(r.engine.Frames()) / float64(r.engine.SampleRate())),
  )
}

func printSettings(parsedArgs *cli.Arguments, extra map[string]string, order []string) {
  if parsedArgs.Quiet {
    return
  }

  fmt.Print(parsedArgs.Config.String())
  for _, key := range order {
    fmt.Printf("%24s   %s\n", key + ":", extra[key])
  }
  fmt.Println()
}
