package audioio

import(
  "os"
  "fmt"
  "github.com/go-audio/audio"
  "bytes"
  "path/filepath"
  "strings"
)

var IntMaxSignedValue = map[int]int {
  8: 127,
  16: 32767,
  24: 8388607,
  32: 2147483647,
}

const TYPE_INVALID = -1
const TYPE_AIFF = 1
const TYPE_WAVE = 2

var Extensions = map[int]string {
  TYPE_AIFF: ".aif",
  TYPE_WAVE: ".wav",
}

type Reader interface {
  Open(bufferLength int) error
  Close()
  ReadNext() (int, int, error)
  ExtractChannel(channel int) (*audio.IntBuffer, error)
  GetBitDepth() int
  GetSampleRate() int
  GetNumChans() int
  GetNumSampleFrames() int
  GetDuration() float64
}

type Writer interface {
  Create(bufferLength int) error
  Close() error
  Write(buffer *audio.IntBuffer) error
  WriteNext() error
  InterleaveChannel(channel int, data []int) error
  ZeroWriteBuffer()
}

type AudioFile struct {
  Filepath string
  NumChans int
  BitDepth int
  SampleRate int
}

type AudioReader struct {
  Reader Reader
  fileType int
}

type AudioWriter struct {
  Writer Writer
  fileType int
}

// determines a filetype based on the given file extension, the file does not have to exist
func FileTypeFromExtension(filePath string) (int, error) {
  extension := strings.ToLower(filepath.Ext(filePath))

  switch extension {
  case ".aiff", ".aif":
    return TYPE_AIFF, nil
  case ".wave", ".wav":
    return TYPE_WAVE, nil
  }

  return TYPE_INVALID, fmt.Errorf("Invalid File Type")
}

// FileTypeFromName maps a container name given on the command line
func FileTypeFromName(name string) (int, error) {
  return FileTypeFromExtension("." + name)
}

// Reads the magic bytes of the given file and returns the file type const.
// File must exist on disk
func returnFileType(filePath string) (int, error) {
  file, err := os.Open(filePath)

  if err != nil {
    return TYPE_INVALID, err
  }

  defer file.Close()

  headerBytes := make([]byte, 12)
  if _, err := file.Read(headerBytes); err != nil {
    return TYPE_INVALID, err
  }
  headerBytes8 := []byte{}
  headerBytes8 = append(headerBytes8, headerBytes[:4]...)
  headerBytes8 = append(headerBytes8, headerBytes[8:]...)

  if bytes.Equal(headerBytes8, []byte("FORMAIFF")) {
    return TYPE_AIFF, nil
  } else if bytes.Equal(headerBytes8, []byte("RIFFWAVE")) {
    return TYPE_WAVE, nil
  }

  return TYPE_INVALID, fmt.Errorf("Invalid File Type")
}

// clip guard: the encoders silently wrap values outside the bit depth, so
// clamp them first
func clipInts(data []int, maxSampleValue int) {
  for i := 0; i < len(data); i++ {
    if data[i] > maxSampleValue {
      data[i] = maxSampleValue
    } else if data[i] < -maxSampleValue {
      data[i] = -maxSampleValue
    }
  }
}

// Quantize scales float samples by gain into signed integers of the given
// bit depth, clipping anything outside full scale.
func Quantize(samples []float64, gain float64, bitDepth int, dst []int) error {
  maxSampleValue := IntMaxSignedValue[bitDepth]

  if maxSampleValue == 0 {
    return fmt.Errorf("BitDepth %d returned invalid integer max signed value of 0", bitDepth)
  }

  if len(dst) < len(samples) {
    return fmt.Errorf("Quantize destination holds %d samples, need %d", len(dst), len(samples))
  }

  scale := gain * float64(maxSampleValue)
  for i, sample := range samples {
    value := sample * scale
    if value > float64(maxSampleValue) {
      value = float64(maxSampleValue)
    } else if value < -float64(maxSampleValue) {
      value = -float64(maxSampleValue)
    }
    // truncate toward zero like a plain int16 cast
    dst[i] = int(value)
  }

  return nil
}

func NewAudioReader(filePath string) (ar *AudioReader, err error) {
  ar = &AudioReader{}

  fileType, err := returnFileType(filePath)

  if err != nil {
    return nil, err
  }

  audioFile := AudioFile{Filepath: filePath}

  switch fileType {
  case TYPE_AIFF:
    ar.Reader = NewAiffReader(audioFile)
  case TYPE_WAVE:
    ar.Reader = NewWaveReader(audioFile)
  default:
    return nil, fmt.Errorf("AudioReader doesn't implement filetype %d", fileType)
  }
  ar.fileType = fileType

  return ar, nil
}

// delegate to the reader
func (ar *AudioReader) Open(bufferLength int) (err error) {
  return ar.Reader.Open(bufferLength)
}

func (ar *AudioReader) Close() {
  ar.Reader.Close()
}

func (ar *AudioReader) ReadNext() (int, int, error) {
  return ar.Reader.ReadNext()
}

func (ar *AudioReader) ExtractChannel(channel int) (*audio.IntBuffer, error) {
  return ar.Reader.ExtractChannel(channel)
}

func (ar *AudioReader) GetNumChans() int {
  return ar.Reader.GetNumChans()
}

func (ar *AudioReader) GetBitDepth() int {
  return ar.Reader.GetBitDepth()
}

func (ar *AudioReader) GetSampleRate() int {
  return ar.Reader.GetSampleRate()
}

func (ar *AudioReader) GetNumSampleFrames() int {
  return ar.Reader.GetNumSampleFrames()
}

func (ar *AudioReader) GetDuration() float64 {
  return ar.Reader.GetDuration()
}

// ReadChannel reads one whole channel of a PCM file normalized to [-1, 1].
func ReadChannel(filePath string, channel int) (samples []float64, sampleRate int, err error) {
  reader, err := NewAudioReader(filePath)

  if err != nil {
    return nil, 0, err
  }

  const bufferLength = 4096
  if err = reader.Open(bufferLength); err != nil {
    return nil, 0, err
  }

  defer reader.Close()

  maxSampleValue := float64(IntMaxSignedValue[reader.GetBitDepth()])
  if maxSampleValue == 0 {
    return nil, 0, fmt.Errorf("Unsupported bit depth %d", reader.GetBitDepth())
  }

  samples = make([]float64, 0, reader.GetNumSampleFrames())

  for {
    _, numFrames, err := reader.ReadNext()

    if err != nil {
      return nil, 0, err
    }

    if numFrames == 0 {
      break
    }

    channelBuffer, err := reader.ExtractChannel(channel)

    if err != nil {
      return nil, 0, err
    }

    for i := 0; i < numFrames; i++ {
      samples = append(samples, float64(channelBuffer.Data[i]) / maxSampleValue)
    }
  }

  return samples, reader.GetSampleRate(), nil
}

// Audio Writer
func NewAudioWriter(audioFile AudioFile) (aw *AudioWriter, err error) {
  aw = &AudioWriter{}

  fileType, err := FileTypeFromExtension(audioFile.Filepath)

  if err != nil {
    return nil, err
  }

  switch fileType {
  case TYPE_AIFF:
    aw.Writer = NewAiffWriter(audioFile)
  case TYPE_WAVE:
    aw.Writer = NewWaveWriter(audioFile)
  default:
    return nil, fmt.Errorf("AudioWriter doesn't implement filetype %d", fileType)
  }
  aw.fileType = fileType

  return aw, nil
}

// delegate to Writer
func (aw *AudioWriter) Create(bufferLength int) error {
  return aw.Writer.Create(bufferLength)
}

func (aw *AudioWriter) Close() error {
  return aw.Writer.Close()
}

func (aw *AudioWriter) Write(buffer *audio.IntBuffer) error {
  return aw.Writer.Write(buffer)
}

func (aw *AudioWriter) ZeroWriteBuffer() {
  aw.Writer.ZeroWriteBuffer()
}

func (aw *AudioWriter) InterleaveChannel(channel int, data []int) error {
  return aw.Writer.InterleaveChannel(channel, data)
}

func (aw *AudioWriter) WriteNext() error {
  return aw.Writer.WriteNext()
}
