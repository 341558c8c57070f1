package synth

import(
  "math"
  "math/rand"
)

const twoPi float64 = math.Pi * 2

// Partial is one sine oscillator of the bank, sitting Offset scale degrees
// above the pitch-selected degree.
type Partial struct {
  Offset int
  Phase float64 // [0, 1)
  Amp float64
  Detune float64 // cents
  freq float64 // detuned base frequency for the current block
}

// PartialBank sums a fixed set of partials whose amplitude and detune drift
// in a bounded random walk, all sharing one vibrato LFO.
type PartialBank struct {
  Partials []Partial

  scale ScaleTable
  sampleRate float64

  ampMin float64
  ampMax float64
  ampStep float64
  detuneRange float64
  detuneStep float64

  vibratoRate float64
  lfoPhase float64

  rng *rand.Rand
}

func NewPartialBank(cfg Config, scale ScaleTable, rng *rand.Rand) *PartialBank {
  bank := &PartialBank{
    Partials: make([]Partial, len(cfg.PartialOffsets), len(cfg.PartialOffsets)),
    scale: scale,
    sampleRate: float64(cfg.SampleRate),
    ampMin: cfg.AmpMin,
    ampMax: cfg.AmpMax,
    ampStep: cfg.AmpDriftStep,
    detuneRange: cfg.DetuneRangeCents,
    detuneStep: cfg.DetuneStepCents,
    vibratoRate: cfg.VibratoRate,
    rng: rng,
  }

  for i, offset := range cfg.PartialOffsets {
    bank.Partials[i] = Partial{
      Offset: offset,
      Amp: clamp(cfg.AmpInitial, cfg.AmpMin, cfg.AmpMax),
    }
  }

  return bank
}

// Drift moves every partial's amplitude and detune by a uniform random step
// and clamps them back into their bounds. Called once per block.
func (b *PartialBank) Drift() {
  for i := range b.Partials {
    p := &b.Partials[i]
    p.Amp = clamp(p.Amp + b.uniform() * b.ampStep, b.ampMin, b.ampMax)
    p.Detune = clamp(p.Detune + b.uniform() * b.detuneStep, -b.detuneRange, b.detuneRange)
  }
}

// Tune computes each partial's detuned base frequency for the block.
func (b *PartialBank) Tune(scaleIndex int) {
  for i := range b.Partials {
    p := &b.Partials[i]
    p.freq = b.scale.Freq(scaleIndex + p.Offset) * centsToRatio(p.Detune)
  }
}

// Next renders one sample of the partial sum. vibratoDepth is in Hz.
func (b *PartialBank) Next(vibratoDepth float64) float64 {
  vib := vibratoDepth * math.Sin(twoPi * b.lfoPhase)
  b.lfoPhase = wrap(b.lfoPhase + b.vibratoRate / b.sampleRate)

  sum := 0.0
  for i := range b.Partials {
    p := &b.Partials[i]
    sum += math.Sin(twoPi * p.Phase) * p.Amp
    p.Phase = wrap(p.Phase + (p.freq + vib) / b.sampleRate)
  }

  return sum
}

func (b *PartialBank) uniform() float64 {
  return b.rng.Float64() * 2 - 1
}
