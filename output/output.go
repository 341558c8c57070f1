package output

import(
  "fmt"
  "log/slog"
  "sort"
  "strings"
)

const BackendOto = "oto"
const BackendPortAudio = "portaudio"
const BackendNull = "null"

// 10 ms at 44100 Hz
const DefaultFramesPerBuffer = 441

// Source fills an interleaved stereo float32 block. It is called from the
// audio thread and must not block.
type Source interface {
  Process(out []float32)
}

type Backend interface {
  Name() string
  Start() error
  // Close stops the stream. Source is never called once Close returns.
  Close() error
}

type Options struct {
  SampleRate int
  FramesPerBuffer int
  Logger *slog.Logger
}

type constructor func(src Source, opts Options) (Backend, error)

// device backends register themselves unless built with the headless tag
var constructors = map[string]constructor {
  BackendNull: newNull,
}

func Names() []string {
  names := make([]string, 0, len(constructors))
  for name := range constructors {
    names = append(names, name)
  }
  sort.Strings(names)
  return names
}

func NamesString() string {
  return strings.Join(Names(), ", ")
}

// Default is the first device backend available in this build
func Default() string {
  for _, name := range []string{BackendOto, BackendPortAudio} {
    if _, ok := constructors[name]; ok {
      return name
    }
  }
  return BackendNull
}

func New(name string, src Source, opts Options) (Backend, error) {
  create, ok := constructors[name]
  if !ok {
    return nil, fmt.Errorf("Unknown audio backend %q, expected one of %s", name, NamesString())
  }

  if opts.SampleRate <= 0 {
    return nil, fmt.Errorf("Invalid sample rate %d", opts.SampleRate)
  }

  if opts.FramesPerBuffer <= 0 {
    opts.FramesPerBuffer = DefaultFramesPerBuffer
  }

  if opts.Logger == nil {
    opts.Logger = slog.Default()
  }

  return create(src, opts)
}
