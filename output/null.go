package output

import(
  "sync"
  "sync/atomic"
  "time"
)

// nullBackend pulls blocks on a ticker at the real-time rate and discards
// them, for machines without an audio device.
type nullBackend struct {
  guard sourceGuard
  period time.Duration
  buffer []float32
  blocks atomic.Uint64
  stop chan struct{}
  wg sync.WaitGroup
  once sync.Once
}

func newNull(src Source, opts Options) (Backend, error) {
  nb := &nullBackend{
    period: time.Duration(opts.FramesPerBuffer) * time.Second / time.Duration(opts.SampleRate),
    buffer: make([]float32, opts.FramesPerBuffer * 2),
    stop: make(chan struct{}),
  }
  nb.guard.attach(src)

  return nb, nil
}

func (nb *nullBackend) Name() string {
  return BackendNull
}

func (nb *nullBackend) Start() error {
  nb.wg.Add(1)

  go func() {
    defer nb.wg.Done()

    ticker := time.NewTicker(nb.period)
    defer ticker.Stop()

    for {
      select {
      case <-nb.stop:
        return
      case <-ticker.C:
        nb.guard.process(nb.buffer)
        nb.blocks.Add(1)
      }
    }
  }()

  return nil
}

func (nb *nullBackend) Blocks() uint64 {
  return nb.blocks.Load()
}

func (nb *nullBackend) Close() error {
  nb.once.Do(func() {
    close(nb.stop)
    nb.wg.Wait()
    nb.guard.detach()
  })

  return nil
}
