package cli

import(
  "errors"
  "flag"
  "io"
  "os"
  "path/filepath"
  "testing"
  "wandsynth/output"
  "wandsynth/synth"
  . "wandsynth/testing_utilities"
)

func TestParseOutputPath(t *testing.T) {
  root := t.TempDir()
  Ok(t, os.Mkdir(filepath.Join(root, "tmp"), 0755))

  tests := map[string]struct{
    outputPath string
    parsedArgs *Arguments
    expectedDir string
    expectedBase string
    hasError bool
  }{
    "file path in existing directory": {
      outputPath: filepath.Join(root, "tmp", "jam.mp3"),
      parsedArgs: &Arguments{Command: CommandLive},
      expectedDir: filepath.Join(root, "tmp"),
      expectedBase: "jam",
    },
    "file path without extension": {
      outputPath: filepath.Join(root, "tmp", "jam"),
      parsedArgs: &Arguments{Command: CommandLive},
      expectedDir: filepath.Join(root, "tmp"),
      expectedBase: "jam",
    },
    "file path but directory does not exist": {
      outputPath: filepath.Join(root, "tmpz", "jam.mp3"),
      parsedArgs: &Arguments{Command: CommandLive},
      hasError: true,
    },
    "directory, live": {
      outputPath: filepath.Join(root, "tmp"),
      parsedArgs: &Arguments{Command: CommandLive},
      expectedDir: filepath.Join(root, "tmp"),
      expectedBase: DefaultBaseName,
    },
    "directory, render named after input": {
      outputPath: filepath.Join(root, "tmp"),
      parsedArgs: &Arguments{Command: CommandRender, InputPath: "/data/sweep.txt"},
      expectedDir: filepath.Join(root, "tmp"),
      expectedBase: "sweep",
    },
    "directory, render from stdin": {
      outputPath: filepath.Join(root, "tmp"),
      parsedArgs: &Arguments{Command: CommandRender, InputPath: "-"},
      expectedDir: filepath.Join(root, "tmp"),
      expectedBase: DefaultBaseName,
    },
  }

  for name, test := range tests {
    t.Run(name, func(t *testing.T){
      dir, base, err := parseOutputPath(test.outputPath, test.parsedArgs)

      if test.hasError {
        Assert(t, err != nil, "err should not be nil")
        return
      }

      Ok(t, err)
      Equals(t, test.expectedDir, dir)
      Equals(t, test.expectedBase, base)
    })
  }
}

func TestParseFlagsLive(t *testing.T) {
  dir := t.TempDir()

  parsedArgs, err := parseFlags([]string{
    "wandsynth", "live",
    "-port", "/dev/ttyACM0",
    "-o", dir,
    "-seed", "42",
    "-gain", "0.25",
    "-container", "aif",
    "-encoder", "",
    "-v",
  }, io.Discard)
  Ok(t, err)

  Equals(t, CommandLive, parsedArgs.Command)
  Equals(t, "/dev/ttyACM0", parsedArgs.Port)
  Equals(t, 115200, parsedArgs.BaudRate)
  Equals(t, output.Default(), parsedArgs.Backend)
  Equals(t, output.DefaultFramesPerBuffer, parsedArgs.FramesPerBuffer)
  Equals(t, int64(42), parsedArgs.Config.Seed)
  Equals(t, 44100, parsedArgs.Config.SampleRate)
  Equals(t, 0.25, parsedArgs.Gain)
  Equals(t, ".aif", parsedArgs.Container)
  Equals(t, "", parsedArgs.Encoder)
  Equals(t, dir, parsedArgs.OutputDir)
  Equals(t, DefaultBaseName, parsedArgs.OutputBase)
  Equals(t, true, parsedArgs.Verbose)
  Equals(t, false, parsedArgs.Quiet)
}

func TestParseFlagsRender(t *testing.T) {
  dir := t.TempDir()

  parsedArgs, err := parseFlags([]string{
    "wandsynth", "render",
    "-i", "-",
    "-blocks", "5",
    "-o", filepath.Join(dir, "demo.mp3"),
    "-q",
  }, io.Discard)
  Ok(t, err)

  Equals(t, CommandRender, parsedArgs.Command)
  Equals(t, "-", parsedArgs.InputPath)
  Equals(t, 5, parsedArgs.BlocksPerLine)
  Equals(t, output.BackendNull, parsedArgs.Backend)
  Equals(t, "ffmpeg", parsedArgs.Encoder)
  Equals(t, ".wav", parsedArgs.Container)
  Equals(t, 0.5, parsedArgs.Gain)
  Equals(t, dir, parsedArgs.OutputDir)
  Equals(t, "demo", parsedArgs.OutputBase)
  Equals(t, true, parsedArgs.Quiet)
}

func TestParseFlagsPreset(t *testing.T) {
  dir := t.TempDir()
  preset := filepath.Join(dir, "slow.json")
  Ok(t, os.WriteFile(preset, []byte(`{"vibratoRate": 2.5, "seed": 9}`), 0644))

  parsedArgs, err := parseFlags([]string{"wandsynth", "render", "-i", "lines.txt", "-o", dir, "-preset", preset}, io.Discard)
  Ok(t, err)
  Equals(t, 2.5, parsedArgs.Config.VibratoRate)
  Equals(t, int64(9), parsedArgs.Config.Seed)
  Equals(t, synth.DefaultConfig().RingModFreq, parsedArgs.Config.RingModFreq)

  parsedArgs, err = parseFlags([]string{"wandsynth", "render", "-i", "lines.txt", "-o", dir, "-preset", preset, "-seed", "3"}, io.Discard)
  Ok(t, err)
  Equals(t, int64(3), parsedArgs.Config.Seed)

  bad := filepath.Join(dir, "bad.json")
  Ok(t, os.WriteFile(bad, []byte(`{"reverbFeedback": 1.5}`), 0644))
  _, err = parseFlags([]string{"wandsynth", "render", "-i", "lines.txt", "-o", dir, "-preset", bad}, io.Discard)
  Assert(t, err != nil, "expected invalid preset error")
}

func TestParseFlagsErrors(t *testing.T) {
  dir := t.TempDir()

  tests := map[string][]string{
    "no command": {"wandsynth"},
    "unknown command": {"wandsynth", "stretch"},
    "live without port": {"wandsynth", "live", "-o", dir},
    "live bad baud": {"wandsynth", "live", "-port", "x", "-baud", "0", "-o", dir},
    "render without input": {"wandsynth", "render", "-o", dir},
    "render zero blocks": {"wandsynth", "render", "-i", "x", "-blocks", "0", "-o", dir},
    "bad container": {"wandsynth", "render", "-i", "x", "-container", "flac", "-o", dir},
    "bad gain": {"wandsynth", "render", "-i", "x", "-gain", "-1", "-o", dir},
    "bad frames": {"wandsynth", "render", "-i", "x", "-frames", "0", "-o", dir},
    "missing output dir": {"wandsynth", "render", "-i", "x", "-o", filepath.Join(dir, "nope", "take")},
    "unknown flag": {"wandsynth", "render", "-i", "x", "-bands", "4096"},
    "inspect without input": {"wandsynth", "inspect"},
  }

  for name, args := range tests {
    t.Run(name, func(t *testing.T) {
      parsedArgs, err := parseFlags(args, io.Discard)
      Assert(t, err != nil, "expected error for %v", args)
      Assert(t, parsedArgs == nil, "expected no arguments for %v", args)
    })
  }
}

func TestParseFlagsHelp(t *testing.T) {
  _, err := parseFlags([]string{"wandsynth", "live", "-h"}, io.Discard)
  Assert(t, errors.Is(err, flag.ErrHelp), "expected flag.ErrHelp, got %v", err)
}

func TestParseFlagsSimpleCommands(t *testing.T) {
  parsedArgs, err := parseFlags([]string{"wandsynth", "ports"}, io.Discard)
  Ok(t, err)
  Equals(t, CommandPorts, parsedArgs.Command)

  parsedArgs, err = parseFlags([]string{"wandsynth", "--version"}, io.Discard)
  Ok(t, err)
  Equals(t, CommandVersion, parsedArgs.Command)

  parsedArgs, err = parseFlags([]string{"wandsynth", "inspect", "-i", "take.wav", "-chart"}, io.Discard)
  Ok(t, err)
  Equals(t, CommandInspect, parsedArgs.Command)
  Equals(t, true, parsedArgs.Chart)
  Assert(t, filepath.IsAbs(parsedArgs.InputPath), "input path should be absolute")
}
