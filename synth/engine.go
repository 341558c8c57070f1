package synth

import(
  "math"
  "math/rand"
  "sync"
  "sync/atomic"
  "time"
)

type State int

const (
  Idle State = iota
  Playing
)

var StateNames = map[State]string {
  Idle: "idle",
  Playing: "playing",
}

func (s State) String() string {
  return StateNames[s]
}

// Engine owns all oscillator and effect state. Process is the audio
// callback and never blocks. Its only allocations are a capture outgrowing
// its buffer and one small queue node per hand-off.
type Engine struct {
  cfg Config

  scale ScaleTable
  target *Target
  flags *SessionFlags

  smoother *Smoother
  bank *PartialBank
  ring *RingOscillator
  reverb *ReverbLine
  capture *CaptureBuffer
  captureSize int
  queue *captureQueue
  spare chan []float64

  mono []float64

  // last session state seen by the callback
  recording bool
  session uint64

  frames atomic.Uint64
  closeOnce sync.Once
}

func NewEngine(cfg Config, target *Target, flags *SessionFlags) (*Engine, error) {
  if err := cfg.Validate(); err != nil {
    return nil, err
  }

  seed := cfg.Seed
  if seed == 0 {
    seed = time.Now().UnixNano()
  }
  rng := rand.New(rand.NewSource(seed))

  scale := NewScaleTable(cfg.Scale)
  // five seconds before the first reallocation
  captureSize := cfg.SampleRate * 5

  engine := &Engine{
    cfg: cfg,
    scale: scale,
    target: target,
    flags: flags,
    smoother: NewSmoother(cfg.SmoothAlpha),
    bank: NewPartialBank(cfg, scale, rng),
    ring: NewRingOscillator(cfg.RingModFreq, cfg.SampleRate),
    reverb: NewReverbLine(cfg.ReverbCapacity(), cfg.DelaySamples(), cfg.ReverbFeedback, cfg.ReverbWet),
    capture: NewCaptureBuffer(captureSize),
    captureSize: captureSize,
    spare: make(chan []float64, cfg.SpareCaptures),
    mono: make([]float64, 4096, 4096),
  }
  engine.refillSpares()
  engine.queue = newCaptureQueue(engine.refillSpares)

  return engine, nil
}

func (e *Engine) Config() Config {
  return e.cfg
}

func (e *Engine) SampleRate() int {
  return e.cfg.SampleRate
}

// Captures delivers every finished recording session exactly once, in
// session order. However far export falls behind, nothing is dropped. The
// channel is closed after Close once the last capture was received.
func (e *Engine) Captures() <-chan Capture {
  return e.queue.Out()
}

// Recycle returns the samples of an exported capture so a later session can
// record into them. The caller must not touch samples afterwards.
func (e *Engine) Recycle(samples []float64) {
  if cap(samples) == 0 {
    return
  }

  select {
  case e.spare <- samples[:0]:
  default:
  }
}

// refillSpares tops up the spare buffers. It runs on the forwarder goroutine,
// never in Process.
func (e *Engine) refillSpares() {
  for len(e.spare) < cap(e.spare) {
    buffer := make([]float64, 0, e.captureSize)
    select {
    case e.spare <- buffer:
    default:
      // a recycled buffer got there first
      return
    }
  }
}

func (e *Engine) State() State {
  if e.flags.IsPlaying() {
    return Playing
  }
  return Idle
}

// Frames is the number of frames synthesized while playing.
func (e *Engine) Frames() uint64 {
  return e.frames.Load()
}

// Process fills out with interleaved stereo frames.
func (e *Engine) Process(out []float32) {
  e.observeSession()

  if !e.flags.IsPlaying() {
    for i := range out {
      out[i] = 0
    }
    return
  }

  frames := len(out) / 2
  if len(out) % 2 != 0 {
    out[len(out) - 1] = 0
  }

  if cap(e.mono) < frames {
    e.mono = make([]float64, frames, frames)
  }
  mono := e.mono[:frames]

  c := e.smoother.Step(e.target.Load())

  scaleIndex := e.scale.Index(c.Pitch)
  vibratoDepth := math.Abs(c.Roll) / AngleRange * e.cfg.VibratoMaxDepth
  ringDepth := clamp(c.Joystick / JoystickRange, -1, 1)
  master := clamp((c.Yaw + AngleRange) / (2 * AngleRange), 0, 1)

  e.bank.Drift()
  e.bank.Tune(scaleIndex)

  for i := range mono {
    sample := e.bank.Next(vibratoDepth)
    sample = e.ring.Modulate(sample, ringDepth)
    mono[i] = sample * master
  }

  for i := range mono {
    mono[i] = e.reverb.Process(mono[i])
  }

  for i, sample := range mono {
    out[i * 2] = float32(sample)
    out[i * 2 + 1] = float32(sample)
  }

  if e.recording {
    e.capture.Append(mono)
  }

  e.frames.Add(uint64(frames))
}

// Close hands off a recording that is still open and ends the captures
// channel. It must only be called once the audio backend has stopped
// calling Process.
func (e *Engine) Close() {
  e.closeOnce.Do(func() {
    if e.recording {
      e.handOff()
      e.recording = false
    }
    e.queue.Close()
  })
}

// observeSession applies recording edges: a falling edge, or a new session
// while recording, hands the buffer off; a rising edge starts a fresh one.
func (e *Engine) observeSession() {
  recording := e.flags.IsRecording()
  session := e.flags.Session()

  if e.recording && (!recording || session != e.session) {
    e.handOff()
  }

  if recording && (!e.recording || session != e.session) {
    e.capture.Reset()
    e.session = session
  }

  e.recording = recording
}

func (e *Engine) handOff() {
  var next []float64
  select {
  case next = <-e.spare:
  default:
    // export is recycling slower than sessions end, grow on append
  }

  e.queue.Push(Capture{
    Session: e.session,
    SampleRate: e.cfg.SampleRate,
    Samples: e.capture.Snapshot(next),
  })
}
