package main

import (
  "fmt"
  "os"
  "os/signal"
  "syscall"
  "wandsynth/cli"
  "wandsynth/output"
  "wandsynth/transport"
)

func live(parsedArgs *cli.Arguments) error {
  port, err := transport.OpenSerial(parsedArgs.Port, parsedArgs.BaudRate, transport.DefaultReadTimeout)
  if err != nil {
    return err
  }

  r, err := newRig(parsedArgs)
  if err != nil {
    port.Close()
    return err
  }

  backend, err := output.New(parsedArgs.Backend, r.engine, output.Options{
    SampleRate: parsedArgs.Config.SampleRate,
    FramesPerBuffer: parsedArgs.FramesPerBuffer,
    Logger: logger,
  })

  if err != nil {
    port.Close()
    r.finish()
    return err
  }

  printSettings(parsedArgs, map[string]string{
    "Serial Port": port.String(),
    "Audio Backend": backend.Name(),
    "Output": fmt.Sprintf("%s/%s-NNN", parsedArgs.OutputDir, parsedArgs.OutputBase),
  }, []string{"Serial Port", "Audio Backend", "Output"})

  if err = backend.Start(); err != nil {
    port.Close()
    backend.Close()
    r.finish()
    return err
  }

  signals := make(chan os.Signal, 1)
  signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
  defer signal.Stop(signals)

  transportDone := make(chan error, 1)
  go func() {
    transportDone <- r.interpreter.Run(port)
  }()

  logger.Info("listening for controller", "port", port.String(), "backend", backend.Name())

  // wait for messages
  var transportErr error
  select {
  case sig := <-signals:
    logger.Info("exiting", "signal", sig.String())
    port.Close()
    transportErr = <-transportDone
  case transportErr = <-transportDone:
    if transportErr != nil {
      logger.Error("transport failed", "err", transportErr)
    } else {
      logger.Info("transport closed")
    }
    port.Close()
  }

  r.flags.Stop()

  if err = backend.Close(); err != nil {
    logger.Warn("closing audio backend", "err", err)
  }

  r.finish()

  return transportErr
}
