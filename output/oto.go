//go:build !headless

package output

import(
  "encoding/binary"
  "fmt"
  "math"
  "sync"
  "time"
  "github.com/ebitengine/oto/v3"
)

func init() {
  constructors[BackendOto] = newOto
}

type otoBackend struct {
  guard sourceGuard
  ctx *oto.Context
  player *oto.Player
  samples []float32
  mutex sync.Mutex
}

func newOto(src Source, opts Options) (Backend, error) {
  ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
    SampleRate: opts.SampleRate,
    ChannelCount: 2,
    Format: oto.FormatFloat32LE,
    BufferSize: time.Duration(opts.FramesPerBuffer) * time.Second / time.Duration(opts.SampleRate),
  })

  if err != nil {
    return nil, fmt.Errorf("opening oto context: %w", err)
  }
  <-ready

  ob := &otoBackend{
    ctx: ctx,
    samples: make([]float32, opts.FramesPerBuffer * 2),
  }
  ob.guard.attach(src)

  return ob, nil
}

func (ob *otoBackend) Name() string {
  return BackendOto
}

// Read is called by oto's mixer goroutine
func (ob *otoBackend) Read(p []byte) (int, error) {
  numSamples := len(p) / 4

  if len(ob.samples) < numSamples {
    ob.samples = make([]float32, numSamples)
  }
  samples := ob.samples[:numSamples]

  ob.guard.process(samples)
  encodeFloat32LE(p, samples)

  return len(p), nil
}

func encodeFloat32LE(p []byte, samples []float32) {
  for i, sample := range samples {
    binary.LittleEndian.PutUint32(p[i * 4:], math.Float32bits(sample))
  }

  for i := len(samples) * 4; i < len(p); i++ {
    p[i] = 0
  }
}

func (ob *otoBackend) Start() error {
  ob.mutex.Lock()
  defer ob.mutex.Unlock()

  if ob.player != nil {
    return nil
  }

  ob.player = ob.ctx.NewPlayer(ob)
  ob.player.Play()

  return nil
}

func (ob *otoBackend) Close() error {
  ob.guard.detach()

  ob.mutex.Lock()
  defer ob.mutex.Unlock()

  if ob.player == nil {
    return nil
  }

  err := ob.player.Close()
  ob.player = nil

  if suspendErr := ob.ctx.Suspend(); err == nil {
    err = suspendErr
  }

  return err
}
