package control

import(
  "bufio"
  "errors"
  "fmt"
  "io"
  "log/slog"
  "os"
  "strings"
  "wandsynth/synth"
)

// device lines are short, anything longer than this is noise
const maxLineLength = 4096

// Interpreter applies transport lines to the shared target register and
// session flags.
type Interpreter struct {
  target *synth.Target
  flags *synth.SessionFlags
  logger *slog.Logger
  // OnCommand, when set, is called after a command has been applied.
  OnCommand func(Command)
  // AfterLine, when set, is called by Run after every line, understood or not.
  AfterLine func()
}

func NewInterpreter(target *synth.Target, flags *synth.SessionFlags, logger *slog.Logger) *Interpreter {
  if logger == nil {
    logger = slog.Default()
  }

  return &Interpreter{
    target: target,
    flags: flags,
    logger: logger,
  }
}

// HandleLine parses and applies one line, reporting whether it was
// understood.
func (in *Interpreter) HandleLine(line string) bool {
  msg, ok := ParseLine(line)
  if !ok {
    if line != "" {
      in.logger.Debug("ignoring line", "raw", line)
    }
    return false
  }

  in.Handle(msg)

  if _, isUpdate := msg.(ControlUpdate); isUpdate {
    in.logger.Debug("control update", "raw", line, "target", in.target.Load().String())
  }
  return true
}

func (in *Interpreter) Handle(msg Message) {
  switch m := msg.(type) {
  case Command:
    switch m {
    case CommandStart:
      session := in.flags.Start()
      in.logger.Info("started: playing and recording", "session", session)
    case CommandStop:
      in.flags.Stop()
      in.logger.Info("stopped: handing recording to export", "session", in.flags.Session())
    }
    if in.OnCommand != nil {
      in.OnCommand(m)
    }
  case ControlUpdate:
    in.target.Store(synth.ControlVector(m))
  }
}

// Run consumes r line by line until it is exhausted or closed. A clean end
// of input returns nil, anything else is a transport error.
func (in *Interpreter) Run(r io.Reader) error {
  reader := bufio.NewReaderSize(r, maxLineLength)

  for {
    line, err := in.readLine(reader)
    if err == nil || line != "" {
      in.HandleLine(line)
      if in.AfterLine != nil {
        in.AfterLine()
      }
    }

    if err == nil {
      continue
    }
    if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
      return nil
    }
    return fmt.Errorf("transport read failed: %w", err)
  }
}

// readLine returns the next line without its terminator. Only the first
// maxLineLength bytes of a longer line are kept, cut back to whole tokens,
// and the rest of it is skipped.
func (in *Interpreter) readLine(reader *bufio.Reader) (string, error) {
  chunk, err := reader.ReadSlice('\n')
  if !errors.Is(err, bufio.ErrBufferFull) {
    return strings.TrimRight(string(chunk), "\r\n"), err
  }

  line := string(chunk)
  if next, peekErr := reader.Peek(1); peekErr == nil && !isSpace(next[0]) {
    // the last token runs on past the kept bytes
    line = line[:strings.LastIndexAny(line, " \t\r") + 1]
  }

  skipped := 0
  for errors.Is(err, bufio.ErrBufferFull) {
    chunk, err = reader.ReadSlice('\n')
    skipped += len(chunk)
  }
  in.logger.Debug("truncating oversized line", "kept", len(line), "skipped", skipped)

  return strings.TrimRight(line, "\r\n"), err
}

func isSpace(b byte) bool {
  return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}
