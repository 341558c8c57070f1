package cli

import(
  "errors"
  "flag"
  "fmt"
  "io"
  "os"
  "path/filepath"
  "strings"
  "wandsynth/audioio"
  "wandsynth/export"
  "wandsynth/output"
  "wandsynth/synth"
  "wandsynth/transport"
)

const CommandLive = "live"
const CommandRender = "render"
const CommandInspect = "inspect"
const CommandPorts = "ports"
const CommandVersion = "version"

// artifact name used when -o names a directory
const DefaultBaseName = "recorded_audio"

type Arguments struct {
  Command string

  Port string
  BaudRate int
  Backend string
  FramesPerBuffer int

  InputPath string
  BlocksPerLine int

  OutputDir string
  OutputBase string
  Config synth.Config
  Gain float64
  Encoder string
  Container string
  Chart bool

  Quiet bool
  Verbose bool
}

// flags shared by the sub-commands that synthesize and export
type synthFlags struct {
  output *string
  preset *string
  seed *int64
  frames *int
  gain *float64
  encoder *string
  container *string
  chart *bool
}

func addSynthFlags(fs *flag.FlagSet) synthFlags {
  return synthFlags{
    output: fs.String("o", ".", "output: directory for exported takes, or a file path whose name (minus extension) prefixes them"),
    preset: fs.String("preset", "", "preset: JSON file overriding synthesis constants"),
    seed: fs.Int64("seed", 0, "seed: drift random seed, 0 seeds from the clock"),
    frames: fs.Int("frames", output.DefaultFramesPerBuffer, "frames: audio block size in frames"),
    gain: fs.Float64("gain", export.DefaultGain, "gain: scale applied to captured samples before 16-bit quantization"),
    encoder: fs.String("encoder", export.DefaultEncoder, "encoder: mp3 encoder executable, empty keeps the PCM container"),
    container: fs.String("container", "wav", "container: intermediate PCM container, wav or aif"),
    chart: fs.Bool("chart", false, "chart flag: write an HTML waveform plot next to each take"),
  }
}

func usage(fs *flag.FlagSet, summary string) {
  fs.Usage = func() {
    fmt.Fprintf(fs.Output(), "usage: wandsynth %s [options]\n\n%s\n\n", fs.Name(), summary)
    fs.PrintDefaults()
  }
}

func ParseFlags(args []string) (*Arguments, error) {
  return parseFlags(args, os.Stderr)
}

func parseFlags(args []string, stderr io.Writer) (*Arguments, error) {
  cmdError := fmt.Errorf("usage: wandsynth <command> <args>\n\nAvailable Commands:\n\n    live      play and record from a serial controller\n    render    render a file of control lines offline\n    inspect   summarize an exported PCM take\n    ports     list serial ports\n    version   print the version\n\nFor specific command options:\n\nwandsynth <command> -h\n\n")

  if len(args) < 2 {
    return nil, cmdError
  }

  // live flags
  liveCmd := flag.NewFlagSet(CommandLive, flag.ContinueOnError)
  usage(liveCmd, "Plays the synthesizer from a serial controller and exports every recorded session.")
  livePort := liveCmd.String("port", "", "port: serial device the controller is attached to")
  liveBaud := liveCmd.Int("baud", transport.DefaultBaudRate, "baud: serial baud rate")
  liveBackend := liveCmd.String("backend", output.Default(), "backend: audio output, one of: " + output.NamesString())
  liveSynth := addSynthFlags(liveCmd)
  liveQuiet := liveCmd.Bool("q", false, "quiet flag: suppress informational output")
  liveVerbose := liveCmd.Bool("v", false, "verbose flag: log every control line")

  // render flags
  renderCmd := flag.NewFlagSet(CommandRender, flag.ContinueOnError)
  usage(renderCmd, "Drives the engine from a file of control lines without an audio device.")
  renderInput := renderCmd.String("i", "", "input file: control lines, - reads stdin")
  renderBlocks := renderCmd.Int("blocks", 1, "blocks: audio blocks rendered after each line")
  renderSynth := addSynthFlags(renderCmd)
  renderQuiet := renderCmd.Bool("q", false, "quiet flag: suppress informational output")
  renderVerbose := renderCmd.Bool("v", false, "verbose flag: log every control line")

  // inspect flags
  inspectCmd := flag.NewFlagSet(CommandInspect, flag.ContinueOnError)
  usage(inspectCmd, "Prints level and pitch information for a WAVE or AIFF take.")
  inspectInput := inspectCmd.String("i", "", "input file: path to a WAVE or AIFF file")
  inspectChart := inspectCmd.Bool("chart", false, "chart flag: write an HTML waveform plot next to the input")

  // ports flags
  portsCmd := flag.NewFlagSet(CommandPorts, flag.ContinueOnError)
  usage(portsCmd, "Lists the serial ports found on this machine.")

  for _, fs := range []*flag.FlagSet{liveCmd, renderCmd, inspectCmd, portsCmd} {
    fs.SetOutput(stderr)
  }

  parsedArgs := &Arguments{Command: args[1]}

  switch args[1] {
  case CommandLive:
    if err := liveCmd.Parse(args[2:]); err != nil {
      return nil, err
    }

    if len(*livePort) == 0 {
      return nil, fmt.Errorf("Required argument missing:\n\n-port <serial device> is required, for help:\n\nwandsynth live -h\n\nAvailable ports: wandsynth ports\n\n")
    }

    if *liveBaud <= 0 {
      return nil, fmt.Errorf("Baud rate must be positive, got %d", *liveBaud)
    }

    parsedArgs.Port = *livePort
    parsedArgs.BaudRate = *liveBaud
    parsedArgs.Backend = *liveBackend
    parsedArgs.Quiet = *liveQuiet
    parsedArgs.Verbose = *liveVerbose

    if err := applySynthFlags(liveSynth, liveCmd, parsedArgs); err != nil {
      return nil, err
    }
  case CommandRender:
    if err := renderCmd.Parse(args[2:]); err != nil {
      return nil, err
    }

    if len(*renderInput) == 0 {
      return nil, fmt.Errorf("Required argument missing:\n\n-i <path to control lines> is required, for help:\n\nwandsynth render -h\n\n")
    }

    if *renderBlocks < 1 {
      return nil, fmt.Errorf("Blocks per line must be at least 1, got %d", *renderBlocks)
    }

    parsedArgs.InputPath = *renderInput
    if parsedArgs.InputPath != "-" {
      parsedArgs.InputPath, _ = filepath.Abs(*renderInput)
    }
    parsedArgs.BlocksPerLine = *renderBlocks
    parsedArgs.Backend = output.BackendNull
    parsedArgs.Quiet = *renderQuiet
    parsedArgs.Verbose = *renderVerbose

    if err := applySynthFlags(renderSynth, renderCmd, parsedArgs); err != nil {
      return nil, err
    }
  case CommandInspect:
    if err := inspectCmd.Parse(args[2:]); err != nil {
      return nil, err
    }

    if len(*inspectInput) == 0 {
      return nil, fmt.Errorf("Required argument missing:\n\n-i <path to input file> is required, for help:\n\nwandsynth inspect -h\n\n")
    }

    parsedArgs.InputPath, _ = filepath.Abs(*inspectInput)
    parsedArgs.Chart = *inspectChart
  case CommandPorts:
    if err := portsCmd.Parse(args[2:]); err != nil {
      return nil, err
    }
  case CommandVersion, "-version", "--version":
    parsedArgs.Command = CommandVersion
  default:
    return nil, cmdError
  }

  return parsedArgs, nil
}

func applySynthFlags(sf synthFlags, fs *flag.FlagSet, parsedArgs *Arguments) error {
  var err error

  parsedArgs.Config = synth.DefaultConfig()
  if len(*sf.preset) > 0 {
    if parsedArgs.Config, err = synth.LoadConfig(*sf.preset); err != nil {
      return err
    }
  }

  // an explicit -seed wins over the preset
  fs.Visit(func(f *flag.Flag) {
    if f.Name == "seed" {
      parsedArgs.Config.Seed = *sf.seed
    }
  })

  if err = parsedArgs.Config.Validate(); err != nil {
    return err
  }

  if *sf.frames < 1 {
    return fmt.Errorf("Frames per buffer must be at least 1, got %d", *sf.frames)
  }
  parsedArgs.FramesPerBuffer = *sf.frames

  if *sf.gain <= 0 {
    return fmt.Errorf("Gain must be positive, got %f", *sf.gain)
  }
  parsedArgs.Gain = *sf.gain

  fileType, err := audioio.FileTypeFromName(*sf.container)
  if err != nil {
    return fmt.Errorf("Container must be wav or aif, got %q", *sf.container)
  }
  parsedArgs.Container = audioio.Extensions[fileType]

  parsedArgs.Encoder = *sf.encoder
  parsedArgs.Chart = *sf.chart

  parsedArgs.OutputDir, parsedArgs.OutputBase, err = parseOutputPath(*sf.output, parsedArgs)

  return err
}

// parseOutputPath splits -o into the directory takes are written to and the
// name prefix they share. A directory gets a generated prefix.
func parseOutputPath(outputPath string, parsedArgs *Arguments) (dir, base string, err error) {
  absPath, err := filepath.Abs(outputPath)
  if err != nil {
    return "", "", err
  }

  info, err := os.Stat(absPath)
  if err == nil && info.IsDir() {
    return absPath, defaultBase(parsedArgs), nil
  }

  if err != nil && !errors.Is(err, os.ErrNotExist) {
    return "", "", err
  }

  dir = filepath.Dir(absPath)
  if info, err := os.Stat(dir); err != nil || !info.IsDir() {
    return "", "", fmt.Errorf("Output directory does not exist: %s", dir)
  }

  base = strings.TrimSuffix(filepath.Base(absPath), filepath.Ext(absPath))
  if len(base) == 0 {
    return "", "", fmt.Errorf("Output path has no file name: %s", outputPath)
  }

  return dir, base, nil
}

// rendered takes are named after their input
func defaultBase(parsedArgs *Arguments) string {
  if parsedArgs.Command != CommandRender || parsedArgs.InputPath == "-" || parsedArgs.InputPath == "" {
    return DefaultBaseName
  }

  name := filepath.Base(parsedArgs.InputPath)
  return strings.TrimSuffix(name, filepath.Ext(name))
}
