package synth

import(
  "time"
)

// CaptureBuffer collects the mono output of one recording session. It is
// owned by the audio callback until Snapshot hands its samples over.
type CaptureBuffer struct {
  samples []float64
}

func NewCaptureBuffer(capacity int) *CaptureBuffer {
  return &CaptureBuffer{
    samples: make([]float64, 0, capacity),
  }
}

func (c *CaptureBuffer) Append(block []float64) {
  c.samples = append(c.samples, block...)
}

func (c *CaptureBuffer) Reset() {
  c.samples = c.samples[:0]
}

func (c *CaptureBuffer) Len() int {
  return len(c.samples)
}

// Snapshot gives away the collected samples and continues in next, which
// may be nil. The returned slice is never written to again by the buffer.
func (c *CaptureBuffer) Snapshot(next []float64) []float64 {
  samples := c.samples
  c.samples = next[:0]
  return samples
}

// Capture is a finished recording session on its way to export.
type Capture struct {
  Session uint64
  SampleRate int
  Samples []float64
}

func (c Capture) Duration() time.Duration {
  if c.SampleRate <= 0 {
    return 0
  }
  return time.Duration(len(c.Samples)) * time.Second / time.Duration(c.SampleRate)
}
