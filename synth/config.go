package synth

import(
  "encoding/json"
  "errors"
  "fmt"
  "os"
)

// Control ranges. Raw control values are clamped to these before they
// reach the engine.
const JoystickRange = 25.0
const AngleRange = 90.0

// Config holds every tunable constant of the engine. The zero value is not
// usable, start from DefaultConfig.
type Config struct {
  SampleRate int `json:"sampleRate"`
  SmoothAlpha float64 `json:"smoothAlpha"`

  Scale []float64 `json:"scale"`
  PartialOffsets []int `json:"partialOffsets"`

  AmpInitial float64 `json:"ampInitial"`
  AmpMin float64 `json:"ampMin"`
  AmpMax float64 `json:"ampMax"`
  AmpDriftStep float64 `json:"ampDriftStep"`
  DetuneRangeCents float64 `json:"detuneRangeCents"`
  DetuneStepCents float64 `json:"detuneStepCents"`

  VibratoRate float64 `json:"vibratoRate"` // Hz
  VibratoMaxDepth float64 `json:"vibratoMaxDepth"` // Hz at full roll
  RingModFreq float64 `json:"ringModFreq"` // Hz

  ReverbBufferSeconds float64 `json:"reverbBufferSeconds"`
  ReverbDelaySeconds float64 `json:"reverbDelaySeconds"`
  ReverbFeedback float64 `json:"reverbFeedback"`
  ReverbWet float64 `json:"reverbWet"`

  // Seed for the drift random source, 0 seeds from the clock.
  Seed int64 `json:"seed"`
  // empty capture buffers kept ready so a hand-off never allocates
  SpareCaptures int `json:"spareCaptures"`
}

// C major from C2 up to C6
var DefaultScale = []float64{
  65.41, 73.42, 82.41, 87.31, 98.00, 110.00, 123.47,
  130.81, 146.83, 164.81, 174.61, 196.00, 220.00, 246.94,
  261.63, 293.66, 329.63, 349.23, 392.00, 440.00, 493.88,
  523.25, 587.33, 659.25, 698.46, 783.99, 880.00, 987.77,
  1046.50,
}

var DefaultPartialOffsets = []int{0, 2, 4, 7, 12, 14, 16, 19}

func DefaultConfig() Config {
  return Config{
    SampleRate: 44100,
    SmoothAlpha: 0.1,
    Scale: append([]float64(nil), DefaultScale...),
    PartialOffsets: append([]int(nil), DefaultPartialOffsets...),
    AmpInitial: 0.5,
    AmpMin: 0.2,
    AmpMax: 0.8,
    AmpDriftStep: 0.01,
    DetuneRangeCents: 10,
    DetuneStepCents: 0.5,
    VibratoRate: 0.2,
    VibratoMaxDepth: 10,
    RingModFreq: 5,
    ReverbBufferSeconds: 3,
    ReverbDelaySeconds: 0.5,
    ReverbFeedback: 0.5,
    ReverbWet: 0.3,
    SpareCaptures: 2,
  }
}

// LoadConfig reads a JSON preset on top of DefaultConfig, so a preset only
// needs the fields it changes.
func LoadConfig(path string) (Config, error) {
  cfg := DefaultConfig()

  data, err := os.ReadFile(path)
  if err != nil {
    return cfg, err
  }

  if err = json.Unmarshal(data, &cfg); err != nil {
    return cfg, fmt.Errorf("could not decode preset %s: %w", path, err)
  }

  return cfg, cfg.Validate()
}

func (c Config) DelaySamples() int {
  return int(c.ReverbDelaySeconds * float64(c.SampleRate))
}

func (c Config) ReverbCapacity() int {
  return int(c.ReverbBufferSeconds * float64(c.SampleRate))
}

func (c Config) Validate() error {
  if c.SampleRate <= 0 {
    return fmt.Errorf("sample rate must be positive, got %d", c.SampleRate)
  }

  if c.SmoothAlpha <= 0 || c.SmoothAlpha > 1 {
    return fmt.Errorf("smoothing alpha must be in (0, 1], got %f", c.SmoothAlpha)
  }

  if len(c.Scale) == 0 {
    return errors.New("scale table is empty")
  }

  for i := 1; i < len(c.Scale); i++ {
    if c.Scale[i] <= c.Scale[i - 1] {
      return fmt.Errorf("scale table must be strictly increasing, degree %d (%.2f) <= degree %d (%.2f)", i, c.Scale[i], i - 1, c.Scale[i - 1])
    }
  }

  if c.Scale[0] <= 0 {
    return fmt.Errorf("scale frequencies must be positive, got %.2f", c.Scale[0])
  }

  if len(c.PartialOffsets) == 0 {
    return errors.New("partial offset table is empty")
  }

  if c.AmpMin > c.AmpMax || c.AmpMin < 0 {
    return fmt.Errorf("amplitude bounds invalid: [%f, %f]", c.AmpMin, c.AmpMax)
  }

  if c.AmpDriftStep < 0 || c.DetuneStepCents < 0 || c.DetuneRangeCents < 0 {
    return errors.New("drift steps and detune range cannot be negative")
  }

  if c.ReverbFeedback < 0 || c.ReverbFeedback >= 1 {
    return fmt.Errorf("reverb feedback must be in [0, 1), got %f", c.ReverbFeedback)
  }

  if c.ReverbWet < 0 || c.ReverbWet > 1 {
    return fmt.Errorf("reverb wet mix must be in [0, 1], got %f", c.ReverbWet)
  }

  capacity := c.ReverbCapacity()
  delay := c.DelaySamples()
  if capacity < 1 || delay < 1 || delay >= capacity {
    return fmt.Errorf("reverb delay (%d samples) must be between 1 and the buffer length (%d samples)", delay, capacity)
  }

  if c.SpareCaptures < 1 {
    return fmt.Errorf("at least one spare capture buffer is needed, got %d", c.SpareCaptures)
  }

  return nil
}

func (c Config) String() (output string) {
  output += fmt.Sprintf("%24s   %d Hz\n", "Sample Rate:", c.SampleRate)
  output += fmt.Sprintf("%24s   %d degrees (%.2f - %.2f Hz)\n", "Scale:", len(c.Scale), c.Scale[0], c.Scale[len(c.Scale) - 1])
  output += fmt.Sprintf("%24s   %v\n", "Partial Offsets:", c.PartialOffsets)
  output += fmt.Sprintf("%24s   %.2f - %.2f (step %.3f)\n", "Partial Amplitude:", c.AmpMin, c.AmpMax, c.AmpDriftStep)
  output += fmt.Sprintf("%24s   +/-%.1f cents (step %.2f)\n", "Detune:", c.DetuneRangeCents, c.DetuneStepCents)
  output += fmt.Sprintf("%24s   %.2f Hz, up to %.1f Hz deep\n", "Vibrato:", c.VibratoRate, c.VibratoMaxDepth)
  output += fmt.Sprintf("%24s   %.2f Hz\n", "Ring Mod Carrier:", c.RingModFreq)
  output += fmt.Sprintf("%24s   %.2f s, feedback %.2f, wet %.2f\n", "Delay:", c.ReverbDelaySeconds, c.ReverbFeedback, c.ReverbWet)
  output += fmt.Sprintf("%24s   %.2f\n", "Smoothing:", c.SmoothAlpha)
  return
}
