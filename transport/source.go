package transport

import(
  "io"
  "os"
)

// Open returns a line source by name: "-" is standard input, anything else
// is a file of lines recorded from the device.
func Open(path string) (io.ReadCloser, error) {
  if path == "-" {
    return io.NopCloser(os.Stdin), nil
  }

  return os.Open(path)
}
