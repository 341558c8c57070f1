package transport

import(
  "errors"
  "fmt"
  "io"
  "sync/atomic"
  "time"

  "go.bug.st/serial"
)

const DefaultBaudRate = 115200
const DefaultReadTimeout = time.Second

// SerialPort is a line source backed by a serial device. Reads wait out
// the device read timeout until data arrives or the port is closed, so a
// Close from another goroutine ends a blocked Read with io.EOF.
type SerialPort struct {
  Name string
  BaudRate int
  port io.ReadCloser
  closed atomic.Bool
}

func OpenSerial(name string, baudRate int, readTimeout time.Duration) (*SerialPort, error) {
  if baudRate <= 0 {
    baudRate = DefaultBaudRate
  }

  mode := &serial.Mode{
    BaudRate: baudRate,
    DataBits: 8,
    Parity: serial.NoParity,
    StopBits: serial.OneStopBit,
  }

  port, err := serial.Open(name, mode)
  if err != nil {
    return nil, fmt.Errorf("could not open serial port %s: %w", name, err)
  }

  if readTimeout > 0 {
    if err = port.SetReadTimeout(readTimeout); err != nil {
      port.Close()
      return nil, fmt.Errorf("could not set read timeout on %s: %w", name, err)
    }
  }

  return &SerialPort{
    Name: name,
    BaudRate: baudRate,
    port: port,
  }, nil
}

func (sp *SerialPort) Read(p []byte) (int, error) {
  for {
    if sp.closed.Load() {
      return 0, io.EOF
    }

    n, err := sp.port.Read(p)
    if n > 0 {
      return n, nil
    }

    if err != nil {
      if sp.closed.Load() {
        return 0, io.EOF
      }
      return 0, err
    }
    // read timeout with no data
  }
}

func (sp *SerialPort) Close() error {
  if sp.closed.Swap(true) {
    return nil
  }

  err := sp.port.Close()
  var portErr *serial.PortError
  if errors.As(err, &portErr) && portErr.Code() == serial.PortClosed {
    return nil
  }
  return err
}

func (sp *SerialPort) String() string {
  return fmt.Sprintf("%s @ %d baud", sp.Name, sp.BaudRate)
}

// ListPorts returns the serial devices present on this machine.
func ListPorts() ([]string, error) {
  return serial.GetPortsList()
}
