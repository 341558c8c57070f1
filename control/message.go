package control

import(
  "errors"
  "regexp"
  "strconv"
  "strings"
  "wandsynth/synth"
)

// Literal command lines sent by the device.
const StartToken = "started"
const StopToken = "stopped"

// Message is what a single transport line turns into: a Command or a
// ControlUpdate.
type Message interface {
  message()
}

type Command int

const (
  CommandStart Command = iota + 1
  CommandStop
)

var CommandNames = map[Command]string {
  CommandStart: StartToken,
  CommandStop: StopToken,
}

func (c Command) String() string {
  return CommandNames[c]
}

// ControlUpdate carries four already clamped control values.
type ControlUpdate synth.ControlVector

func (Command) message() {}
func (ControlUpdate) message() {}

var numberPattern = regexp.MustCompile(`[-+]?\d*\.?\d+`)

// ParseLine classifies one line. Empty lines and lines with fewer than four
// numbers report false.
//
// A device line looks like "Joystick X: 0 | Roll: 4.25 | Pitch: -1.94 | Yaw: -27.81";
// the numbers are taken in order as joystick, pitch, roll, yaw.
func ParseLine(line string) (Message, bool) {
  line = strings.TrimSpace(line)

  switch line {
  case "":
    return nil, false
  case StartToken:
    return CommandStart, true
  case StopToken:
    return CommandStop, true
  }

  tokens := numberPattern.FindAllString(line, 4)
  if len(tokens) < 4 {
    return nil, false
  }

  var values [4]float64
  for i, token := range tokens {
    // out of range values come back as +/-Inf and clamp like any other
    value, err := strconv.ParseFloat(token, 64)
    if err != nil && !errors.Is(err, strconv.ErrRange) {
      return nil, false
    }
    values[i] = value
  }

  vector := synth.ControlVector{
    Joystick: values[0],
    Pitch: values[1],
    Roll: values[2],
    Yaw: values[3],
  }

  return ControlUpdate(vector.Clamp()), true
}
