package synth

import(
  "fmt"
  "sync/atomic"
)

type ControlVector struct {
  Joystick float64
  Pitch float64
  Roll float64
  Yaw float64
}

// Clamp returns v with every field inside its documented range. NaN becomes 0.
func (v ControlVector) Clamp() ControlVector {
  return ControlVector{
    Joystick: clampControl(v.Joystick, JoystickRange),
    Pitch: clampControl(v.Pitch, AngleRange),
    Roll: clampControl(v.Roll, AngleRange),
    Yaw: clampControl(v.Yaw, AngleRange),
  }
}

func (v ControlVector) String() string {
  return fmt.Sprintf("[%.2f %.2f %.2f %.2f]", v.Joystick, v.Pitch, v.Roll, v.Yaw)
}

func clampControl(v, limit float64) float64 {
  if v != v {
    return 0
  }
  return clamp(v, -limit, limit)
}

// Target is the control register shared between the interpreter and the
// audio callback. Store replaces the whole vector at once, Load never blocks.
type Target struct {
  current atomic.Pointer[ControlVector]
}

func NewTarget() *Target {
  t := &Target{}
  t.current.Store(&ControlVector{})
  return t
}

func (t *Target) Store(v ControlVector) {
  v = v.Clamp()
  t.current.Store(&v)
}

func (t *Target) Load() ControlVector {
  if v := t.current.Load(); v != nil {
    return *v
  }
  return ControlVector{}
}

// Smoother is an exponential low-pass over the four controls, stepped once
// per block. It is owned by the audio callback.
type Smoother struct {
  Alpha float64
  value ControlVector
}

func NewSmoother(alpha float64) *Smoother {
  return &Smoother{Alpha: alpha}
}

func (s *Smoother) Step(target ControlVector) ControlVector {
  a := s.Alpha
  b := 1.0 - a
  s.value.Joystick = s.value.Joystick * b + target.Joystick * a
  s.value.Pitch = s.value.Pitch * b + target.Pitch * a
  s.value.Roll = s.value.Roll * b + target.Roll * a
  s.value.Yaw = s.value.Yaw * b + target.Yaw * a
  return s.value
}

func (s *Smoother) Value() ControlVector {
  return s.value
}
