package synth

// ReverbLine is a single-tap recirculating delay: one read, one feedback
// write per sample. It is not a full reverberator.
//
// The read cursor sits readOffset slots ahead of head, which is the slot
// written delay samples ago, so echoes repeat every delay samples.
type ReverbLine struct {
  Data []float64
  Feedback float64
  Wet float64
  head int
  delay int
  readOffset int
}

func NewReverbLine(capacity, delay int, feedback, wet float64) *ReverbLine {
  return &ReverbLine{
    Data: make([]float64, capacity, capacity),
    Feedback: feedback,
    Wet: wet,
    delay: delay,
    readOffset: capacity - delay,
  }
}

func (r *ReverbLine) Process(dry float64) float64 {
  delayed := r.Data[r.ReadIndex()]
  out := dry + delayed * r.Wet

  r.Data[r.head] = out * r.Feedback
  r.head = (r.head + 1) % len(r.Data)

  return out
}

// ReadIndex is head+capacity-delay, not head+delay: the slot written delay
// samples ago, so echoes come every delay samples instead of every
// capacity-delay samples.
func (r *ReverbLine) ReadIndex() int {
  return (r.head + r.readOffset) % len(r.Data)
}

func (r *ReverbLine) Head() int {
  return r.head
}

func (r *ReverbLine) ReadOffset() int {
  return r.readOffset
}

// Delay is the echo period in samples.
func (r *ReverbLine) Delay() int {
  return r.delay
}

func (r *ReverbLine) Capacity() int {
  return len(r.Data)
}
