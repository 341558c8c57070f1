package audioio

import(
  "os"
  "github.com/go-audio/wav"
)

type WaveReader struct {
  pcmReader
}

type WaveWriter struct {
  pcmWriter
}

func NewWaveReader(audioFile AudioFile) *WaveReader {
  return &WaveReader{pcmReader{AudioFile: audioFile}}
}

func NewWaveWriter(audioFile AudioFile) *WaveWriter {
  return &WaveWriter{pcmWriter{AudioFile: audioFile}}
}

// bufferLength: how many frames to read at one time
func (wr *WaveReader) Open(bufferLength int) error {
  var err error

  wr.fileIo, err = os.Open(wr.Filepath)

  if err != nil {
    return err
  }

  decoder := wav.NewDecoder(wr.fileIo)
  decoder.ReadInfo()

  err = wr.checkHeader("WaveReader", int(decoder.NumChans), int(decoder.SampleRate), int(decoder.BitDepth))

  if err != nil {
    wr.Close()
    return err
  }

  duration, err := decoder.Duration()

  if err != nil {
    wr.Close()
    return err
  }

  wr.decoder = decoder
  wr.Duration = duration.Seconds()
  wr.NumSampleFrames = int(wr.Duration * float64(wr.SampleRate))
  wr.allocate(bufferLength)

  return nil
}

// bufferLength: how many frames WriteNext flushes at one time
func (wr *WaveWriter) Create(bufferLength int) error {
  var err error

  wr.fileIo, err = os.Create(wr.Filepath)

  if err != nil {
    return err
  }

  wr.encoder = wav.NewEncoder(
    wr.fileIo,
    wr.SampleRate,
    wr.BitDepth,
    wr.NumChans,
    1, // Linear PCM
  )

  return wr.allocate(bufferLength)
}
