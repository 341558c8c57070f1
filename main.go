package main

import (
  "errors"
  "flag"
  "fmt"
  "log/slog"
  "os"
  "wandsynth/cli"
)

var Version = ""

var logger = slog.Default()

func initLogger(debug bool) {
  level := slog.LevelInfo
  if debug {
    level = slog.LevelDebug
  }

  logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
  slog.SetDefault(logger)
}

func main() {
  // parse cli flags/arguments
  parsedArgs, err := cli.ParseFlags(os.Args)

  if errors.Is(err, flag.ErrHelp) {
    os.Exit(0)
  }

  if err != nil {
    fmt.Fprintln(os.Stderr, err)
    os.Exit(1)
  }

  initLogger(parsedArgs.Verbose)

  switch parsedArgs.Command {
  case cli.CommandVersion:
    fmt.Println("wandsynth", Version)
  case cli.CommandPorts:
    err = listPorts()
  case cli.CommandInspect:
    err = inspect(parsedArgs)
  case cli.CommandRender:
    err = render(parsedArgs)
  case cli.CommandLive:
    err = live(parsedArgs)
  }

  if err != nil {
    fmt.Fprintln(os.Stderr, "\n >>>", err, "<<<")
    os.Exit(1)
  }
}
