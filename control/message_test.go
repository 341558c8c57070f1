package control

import(
  "strings"
  "testing"
  "wandsynth/synth"
  . "wandsynth/testing_utilities"
)

func TestParseLine(t *testing.T) {
  tests := map[string]struct{
    line string
    expected Message
    ok bool
  }{
    "start command": {line: "started", expected: CommandStart, ok: true},
    "stop command": {line: "stopped", expected: CommandStop, ok: true},
    "command with line ending": {line: "started\r", expected: CommandStart, ok: true},
    "command is case sensitive": {line: "Started", expected: nil, ok: false},
    "empty": {line: "", expected: nil, ok: false},
    "blank": {line: "   ", expected: nil, ok: false},
    "words only": {line: "abc def", expected: nil, ok: false},
    "three numbers": {line: "1 2 3", expected: nil, ok: false},
    "device format": {
      line: "Joystick X: 0 | Roll: 4.25 | Pitch: -1.94 | Yaw: -27.81",
      expected: ControlUpdate{Joystick: 0, Pitch: 4.25, Roll: -1.94, Yaw: -27.81},
      ok: true,
    },
    "clamped high": {
      line: "9999 9999 9999 9999",
      expected: ControlUpdate{Joystick: 25, Pitch: 90, Roll: 90, Yaw: 90},
      ok: true,
    },
    "clamped low": {
      line: "-9999 -9999 -9999 -9999",
      expected: ControlUpdate{Joystick: -25, Pitch: -90, Roll: -90, Yaw: -90},
      ok: true,
    },
    "extra numbers ignored": {
      line: "1 2 3 4 5 6",
      expected: ControlUpdate{Joystick: 1, Pitch: 2, Roll: 3, Yaw: 4},
      ok: true,
    },
    "signs and fractions": {
      line: "+1.5 -.5 .25 -0",
      expected: ControlUpdate{Joystick: 1.5, Pitch: -0.5, Roll: 0.25, Yaw: 0},
      ok: true,
    },
    "huge magnitude": {
      line: strings.Repeat("9", 400) + " 0 0 0",
      expected: ControlUpdate{Joystick: 25, Pitch: 0, Roll: 0, Yaw: 0},
      ok: true,
    },
  }

  for name, test := range tests {
    t.Run(name, func(t *testing.T){
      msg, ok := ParseLine(test.line)
      Equals(t, test.ok, ok)
      Equals(t, test.expected, msg)
    })
  }
}

func TestParsedValuesAlwaysInRange(t *testing.T) {
  lines := []string{
    "25.0001 90.5 -90.5 1e9",
    "-100 0 0 0",
    "1 2 3 400.25 junk",
    "x=-33.3 y=181 z=-181 w=89.99",
  }

  for _, line := range lines {
    msg, ok := ParseLine(line)
    Assert(t, ok, "line %q should parse", line)

    update := msg.(ControlUpdate)
    Assert(t, update.Joystick >= -synth.JoystickRange && update.Joystick <= synth.JoystickRange, "joystick %f out of range", update.Joystick)
    for _, v := range []float64{update.Pitch, update.Roll, update.Yaw} {
      Assert(t, v >= -synth.AngleRange && v <= synth.AngleRange, "angle %f out of range for %q", v, line)
    }
  }
}
