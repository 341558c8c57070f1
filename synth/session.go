package synth

import(
  "sync/atomic"
)

// SessionFlags carries the play/record state from the interpreter to the
// audio callback. Only the interpreter writes it.
type SessionFlags struct {
  playing atomic.Bool
  recording atomic.Bool
  session atomic.Uint64
}

// Start begins playback and a new recording session.
func (f *SessionFlags) Start() uint64 {
  id := f.session.Add(1)
  f.recording.Store(true)
  f.playing.Store(true)
  return id
}

// Stop ends playback and recording.
func (f *SessionFlags) Stop() {
  f.recording.Store(false)
  f.playing.Store(false)
}

func (f *SessionFlags) IsPlaying() bool {
  return f.playing.Load()
}

func (f *SessionFlags) IsRecording() bool {
  return f.recording.Load()
}

func (f *SessionFlags) Session() uint64 {
  return f.session.Load()
}
