package synth

import(
  "math"
  "math/rand"
  "testing"
  . "wandsynth/testing_utilities"
)

func TestScaleIndexSaturates(t *testing.T) {
  scale := NewScaleTable(DefaultScale)
  last := scale.Len() - 1

  tests := map[string]struct{
    pitch float64
    expected int
  }{
    "bottom of range": {pitch: -90, expected: 0},
    "top of range": {pitch: 90, expected: last},
    "far below": {pitch: -9999, expected: 0},
    "far above": {pitch: 9999, expected: last},
    "centre": {pitch: 0, expected: 14},
  }

  for name, test := range tests {
    t.Run(name, func(t *testing.T){
      Equals(t, test.expected, scale.Index(test.pitch))
    })
  }
}

func TestScaleIndexMonotonic(t *testing.T) {
  scale := NewScaleTable(DefaultScale)

  previous := scale.Index(-90)
  for pitch := -90.0; pitch <= 90.0; pitch += 0.25 {
    index := scale.Index(pitch)
    Assert(t, index >= previous, "index decreased at pitch %f: %d < %d", pitch, index, previous)
    Assert(t, index >= 0 && index < scale.Len(), "index %d out of table at pitch %f", index, pitch)
    previous = index
  }
}

func TestScaleFreqClampsDegree(t *testing.T) {
  scale := NewScaleTable(DefaultScale)

  Equals(t, 65.41, scale.Freq(-3))
  Equals(t, 1046.50, scale.Freq(40))
  Equals(t, 440.00, scale.Freq(19))
}

func TestControlVectorClamp(t *testing.T) {
  clamped := ControlVector{9999, 9999, 9999, 9999}.Clamp()
  Equals(t, ControlVector{25, 90, 90, 90}, clamped)

  clamped = ControlVector{-9999, -9999, -9999, -9999}.Clamp()
  Equals(t, ControlVector{-25, -90, -90, -90}, clamped)

  clamped = ControlVector{math.NaN(), 1, 2, 3}.Clamp()
  Equals(t, ControlVector{0, 1, 2, 3}, clamped)
}

func TestTargetStoreLoad(t *testing.T) {
  target := NewTarget()
  Equals(t, ControlVector{}, target.Load())

  target.Store(ControlVector{30, -100, 45, 10})
  Equals(t, ControlVector{25, -90, 45, 10}, target.Load())
}

func TestSmootherConverges(t *testing.T) {
  smoother := NewSmoother(0.1)
  target := ControlVector{10, 20, -30, 40}

  first := smoother.Step(target)
  InDelta(t, 1.0, first.Joystick, 1e-12)
  InDelta(t, -3.0, first.Roll, 1e-12)

  for i := 0; i < 500; i++ {
    smoother.Step(target)
  }

  value := smoother.Value()
  InDelta(t, 10, value.Joystick, 1e-9)
  InDelta(t, 20, value.Pitch, 1e-9)
  InDelta(t, -30, value.Roll, 1e-9)
  InDelta(t, 40, value.Yaw, 1e-9)
}

func TestPartialDriftStaysInBounds(t *testing.T) {
  cfg := DefaultConfig()
  bank := NewPartialBank(cfg, NewScaleTable(cfg.Scale), rand.New(rand.NewSource(7)))

  for step := 0; step < 20000; step++ {
    bank.Drift()

    for i, p := range bank.Partials {
      Assert(t, p.Amp >= cfg.AmpMin && p.Amp <= cfg.AmpMax, "partial %d amplitude %f out of bounds after %d steps", i, p.Amp, step)
      Assert(t, p.Detune >= -cfg.DetuneRangeCents && p.Detune <= cfg.DetuneRangeCents, "partial %d detune %f out of bounds after %d steps", i, p.Detune, step)
    }
  }
}

func TestPartialPhaseWraps(t *testing.T) {
  cfg := DefaultConfig()
  bank := NewPartialBank(cfg, NewScaleTable(cfg.Scale), rand.New(rand.NewSource(7)))
  bank.Tune(bank.scale.Len() - 1)

  for i := 0; i < cfg.SampleRate; i++ {
    bank.Next(cfg.VibratoMaxDepth)
  }

  for i, p := range bank.Partials {
    Assert(t, p.Phase >= 0 && p.Phase < 1, "partial %d phase %f not wrapped", i, p.Phase)
  }
  Assert(t, bank.lfoPhase >= 0 && bank.lfoPhase < 1, "lfo phase %f not wrapped", bank.lfoPhase)
}

func TestPartialTuneUsesOffsets(t *testing.T) {
  cfg := DefaultConfig()
  scale := NewScaleTable(cfg.Scale)
  bank := NewPartialBank(cfg, scale, rand.New(rand.NewSource(1)))

  bank.Tune(scale.Len() - 1)
  for _, p := range bank.Partials {
    // every partial runs into the top of the table
    Equals(t, scale.Freq(scale.Len() - 1), p.freq)
  }

  bank.Partials[1].Detune = 1200
  bank.Tune(0)
  Equals(t, scale.Freq(0), bank.Partials[0].freq)
  InDelta(t, scale.Freq(2) * 2, bank.Partials[1].freq, 1e-9)
}

func TestRingModZeroDepthIsTransparent(t *testing.T) {
  ring := NewRingOscillator(5, 44100)

  for i := 0; i < 10000; i++ {
    sample := math.Sin(float64(i) * 0.01)
    Equals(t, sample, ring.Modulate(sample, 0))
  }

  Assert(t, ring.Phase > 0, "carrier should keep running at zero depth")
}

func TestRingModFullDepth(t *testing.T) {
  ring := NewRingOscillator(5, 44100)
  ring.Phase = 0.25

  InDelta(t, 1.0, ring.Modulate(0.5, 1), 1e-12)

  ring.Phase = 0.75
  InDelta(t, 0.0, ring.Modulate(0.5, 1), 1e-12)
}

func TestReverbIndexInvariant(t *testing.T) {
  reverb := NewReverbLine(100, 30, 0.5, 0.3)
  Equals(t, 70, reverb.ReadOffset())
  Equals(t, reverb.Capacity() - reverb.Delay(), reverb.ReadOffset())

  for i := 0; i < 1000; i++ {
    Equals(t, i % 100, reverb.Head())
    Equals(t, (reverb.Head() + reverb.ReadOffset()) % reverb.Capacity(), reverb.ReadIndex())
    reverb.Process(float64(i % 7))
  }
}

func TestReverbImpulseEchoes(t *testing.T) {
  tests := map[string]struct{
    feedback float64
    wet float64
  }{
    "full wet decays by feedback": {feedback: 0.5, wet: 1.0},
    "default mix decays by wet times feedback": {feedback: 0.5, wet: 0.3},
  }

  for name, test := range tests {
    t.Run(name, func(t *testing.T){
      delay := 10
      reverb := NewReverbLine(100, delay, test.feedback, test.wet)
      ratio := test.feedback * test.wet

      out := make([]float64, 60, 60)
      out[0] = reverb.Process(1)
      for i := 1; i < len(out); i++ {
        out[i] = reverb.Process(0)
      }

      for i, sample := range out {
        if i % delay == 0 {
          InDelta(t, math.Pow(ratio, float64(i / delay)), sample, 1e-12)
        } else {
          Equals(t, 0.0, sample)
        }
      }
    })
  }
}

func TestCaptureSnapshotDetaches(t *testing.T) {
  capture := NewCaptureBuffer(4)
  capture.Append([]float64{1, 2, 3})

  snapshot := capture.Snapshot(nil)
  Equals(t, []float64{1, 2, 3}, snapshot)
  Equals(t, 0, capture.Len())

  capture.Append([]float64{9, 9, 9})
  Equals(t, []float64{1, 2, 3}, snapshot)
}

func TestCaptureSnapshotContinuesInSpare(t *testing.T) {
  capture := NewCaptureBuffer(4)
  capture.Append([]float64{1, 2})

  spare := make([]float64, 3, 16)
  snapshot := capture.Snapshot(spare)
  Equals(t, []float64{1, 2}, snapshot)
  Equals(t, 0, capture.Len())

  capture.Append([]float64{7})
  Equals(t, 7.0, spare[0])
  Equals(t, []float64{1, 2}, snapshot)
}

func TestConfigValidate(t *testing.T) {
  tests := map[string]struct{
    change func(*Config)
    hasError bool
  }{
    "defaults": {change: func(c *Config){}, hasError: false},
    "feedback of one": {change: func(c *Config){ c.ReverbFeedback = 1 }, hasError: true},
    "delay longer than buffer": {change: func(c *Config){ c.ReverbDelaySeconds = 4 }, hasError: true},
    "descending scale": {change: func(c *Config){ c.Scale = []float64{440, 220} }, hasError: true},
    "empty offsets": {change: func(c *Config){ c.PartialOffsets = nil }, hasError: true},
    "inverted amplitude bounds": {change: func(c *Config){ c.AmpMin = 0.9 }, hasError: true},
    "alpha of zero": {change: func(c *Config){ c.SmoothAlpha = 0 }, hasError: true},
    "no sample rate": {change: func(c *Config){ c.SampleRate = 0 }, hasError: true},
  }

  for name, test := range tests {
    t.Run(name, func(t *testing.T){
      cfg := DefaultConfig()
      test.change(&cfg)
      err := cfg.Validate()
      Equals(t, test.hasError, err != nil)
    })
  }
}
