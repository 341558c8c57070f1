package audioio

import(
  "errors"
  "fmt"
  "os"
  "github.com/go-audio/audio"
)

// both go-audio decoders fill an IntBuffer the same way
type pcmDecoder interface {
  PCMBuffer(buf *audio.IntBuffer) (int, error)
}

type pcmEncoder interface {
  Write(buf *audio.IntBuffer) error
  Close() error
}

// pcmReader holds the state shared by the wave and aiff readers
type pcmReader struct {
  AudioFile
  ReadBuffer *audio.IntBuffer
  NumSampleFrames int
  Duration float64
  decoder pcmDecoder
  fileIo *os.File
}

// pcmWriter holds the state shared by the wave and aiff writers
type pcmWriter struct {
  AudioFile
  WriteBuffer *audio.IntBuffer
  encoder pcmEncoder
  maxSampleValue int
  fileIo *os.File
}

// Getters
func (pr *pcmReader) GetBitDepth() int {
  return pr.BitDepth
}

func (pr *pcmReader) GetSampleRate() int {
  return pr.SampleRate
}

func (pr *pcmReader) GetNumChans() int {
  return pr.NumChans
}

func (pr *pcmReader) GetNumSampleFrames() int {
  return pr.NumSampleFrames
}

func (pr *pcmReader) GetDuration() float64 {
  return pr.Duration
}

func (pr *pcmReader) checkHeader(kind string, numChans, sampleRate, bitDepth int) error {
  if numChans == 0 {
    return fmt.Errorf("%s.decoder.NumChans is 0", kind)
  }

  if sampleRate == 0 {
    return fmt.Errorf("%s.decoder.SampleRate is 0", kind)
  }

  if bitDepth == 0 {
    return fmt.Errorf("%s.decoder.BitDepth is 0", kind)
  }

  pr.NumChans = numChans
  pr.SampleRate = sampleRate
  pr.BitDepth = bitDepth

  return nil
}

func (pr *pcmReader) allocate(bufferLength int) {
  format := &audio.Format{
    NumChannels: pr.NumChans,
    SampleRate: pr.SampleRate,
  }

  pr.ReadBuffer = &audio.IntBuffer{
    Format: format,
    Data: make([]int, bufferLength * pr.NumChans),
    SourceBitDepth: pr.BitDepth,
  }
}

// channel is zero indexed
func (pr *pcmReader) ExtractChannel(channel int) (*audio.IntBuffer, error) {
  if pr.NumChans == 0 {
    return nil, errors.New("Reader has no channels to extract")
  }

  if channel < 0 || channel > pr.NumChans - 1 {
    return nil, fmt.Errorf("Requested channel (%d) is out of bounds 0-%d", channel, pr.NumChans - 1)
  }

  buffer := &audio.IntBuffer{
    Format: pr.ReadBuffer.Format,
    Data: make([]int, pr.ReadBuffer.NumFrames()),
    SourceBitDepth: pr.ReadBuffer.SourceBitDepth,
  }

  x := 0
  for i := channel; i < len(pr.ReadBuffer.Data); i += pr.NumChans {
    buffer.Data[x] = pr.ReadBuffer.Data[i]
    x++
  }

  return buffer, nil
}

func (pr *pcmReader) Close() {
  if pr.fileIo != nil {
    pr.fileIo.Close()
  }
}

// numSamples is the number of samples read across all channels
// numFrames is the number of samples per channel
func (pr *pcmReader) ReadNext() (numSamples, numFrames int, err error) {
  numSamples, err = pr.decoder.PCMBuffer(pr.ReadBuffer)
  numFrames = numSamples / pr.NumChans
  return
}

func (pw *pcmWriter) allocate(bufferLength int) error {
  format := &audio.Format{
    NumChannels: pw.NumChans,
    SampleRate: pw.SampleRate,
  }

  pw.WriteBuffer = &audio.IntBuffer{
    Format: format,
    Data: make([]int, bufferLength * pw.NumChans),
    SourceBitDepth: pw.BitDepth,
  }

  pw.maxSampleValue = IntMaxSignedValue[pw.BitDepth]

  if pw.maxSampleValue == 0 {
    return fmt.Errorf("BitDepth %d returned invalid integer max signed value of 0", pw.BitDepth)
  }

  return nil
}

// Close finalizes the container header, then the file
func (pw *pcmWriter) Close() error {
  var encodeErr error
  if pw.encoder != nil {
    encodeErr = pw.encoder.Close()
  }

  if pw.fileIo == nil {
    return encodeErr
  }

  fileErr := pw.fileIo.Close()
  if encodeErr != nil {
    return encodeErr
  }

  return fileErr
}

func (pw *pcmWriter) Write(buffer *audio.IntBuffer) error {
  clipInts(buffer.Data, pw.maxSampleValue)
  return pw.encoder.Write(buffer)
}

func (pw *pcmWriter) ZeroWriteBuffer() {
  for i := 0; i < len(pw.WriteBuffer.Data); i++ {
    pw.WriteBuffer.Data[i] = 0
  }
}

func (pw *pcmWriter) WriteNext() error {
  return pw.Write(pw.WriteBuffer)
}

func (pw *pcmWriter) InterleaveChannel(channel int, data []int) error {
  if len(data) * pw.NumChans != len(pw.WriteBuffer.Data) {
    return errors.New("Data to interleave will not fit exactly into WriteBuffer")
  }

  if channel < 0 || channel >= pw.NumChans {
    return fmt.Errorf("Requested channel (%d) is out of bounds 0-%d", channel, pw.NumChans - 1)
  }

  for frameNumber := 0; frameNumber < len(data); frameNumber++ {
    i := frameNumber * pw.NumChans
    pw.WriteBuffer.Data[i + channel] = data[frameNumber]
  }

  return nil
}
