package output

import(
  "runtime"
  "sync/atomic"
)

type sourceRef struct {
  Source
}

// sourceGuard lets the audio thread reach the Source without locks and lets
// Close wait out a callback that is still running.
type sourceGuard struct {
  source atomic.Pointer[sourceRef]
  active atomic.Int32
}

func (g *sourceGuard) attach(src Source) {
  g.source.Store(&sourceRef{src})
}

func (g *sourceGuard) process(out []float32) {
  g.active.Add(1)
  defer g.active.Add(-1)

  ref := g.source.Load()
  if ref == nil {
    for i := range out {
      out[i] = 0
    }
    return
  }

  ref.Process(out)
}

// detach returns once no callback can reach the previous Source
func (g *sourceGuard) detach() {
  g.source.Store(nil)

  for g.active.Load() != 0 {
    runtime.Gosched()
  }
}
