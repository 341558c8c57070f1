//go:build !headless

package output

import(
  "fmt"
  "log/slog"
  "sync"
  pa "github.com/gordonklaus/portaudio"
)

func init() {
  constructors[BackendPortAudio] = newPortAudio
}

type portAudioBackend struct {
  guard sourceGuard
  opts Options
  stream *pa.Stream
  logger *slog.Logger
  mutex sync.Mutex
}

func newPortAudio(src Source, opts Options) (Backend, error) {
  pb := &portAudioBackend{
    opts: opts,
    logger: opts.Logger,
  }
  pb.guard.attach(src)

  return pb, nil
}

func (pb *portAudioBackend) Name() string {
  return BackendPortAudio
}

func (pb *portAudioBackend) Start() error {
  pb.mutex.Lock()
  defer pb.mutex.Unlock()

  if pb.stream != nil {
    return nil
  }

  if err := pa.Initialize(); err != nil {
    return fmt.Errorf("initializing portaudio: %w", err)
  }

  if device, err := pa.DefaultOutputDevice(); err == nil {
    pb.logger.Debug("portaudio output", "device", device.Name, "version", pa.VersionText())
  }

  // the interleaved callback form hands us exactly what the engine renders
  stream, err := pa.OpenDefaultStream(
    0, 2,
    float64(pb.opts.SampleRate),
    pb.opts.FramesPerBuffer,
    pb.guard.process,
  )

  if err != nil {
    pa.Terminate()
    return fmt.Errorf("opening portaudio stream: %w", err)
  }

  if err = stream.Start(); err != nil {
    stream.Close()
    pa.Terminate()
    return fmt.Errorf("starting portaudio stream: %w", err)
  }

  pb.stream = stream

  return nil
}

func (pb *portAudioBackend) Close() error {
  pb.guard.detach()

  pb.mutex.Lock()
  defer pb.mutex.Unlock()

  if pb.stream == nil {
    return nil
  }

  err := pb.stream.Stop()
  if closeErr := pb.stream.Close(); err == nil {
    err = closeErr
  }
  pb.stream = nil

  if termErr := pa.Terminate(); err == nil {
    err = termErr
  }

  return err
}
