package audioio

import(
  "os"
  "github.com/go-audio/aiff"
)

type AiffReader struct {
  pcmReader
}

type AiffWriter struct {
  pcmWriter
}

func NewAiffReader(audioFile AudioFile) *AiffReader {
  return &AiffReader{pcmReader{AudioFile: audioFile}}
}

func NewAiffWriter(audioFile AudioFile) *AiffWriter {
  return &AiffWriter{pcmWriter{AudioFile: audioFile}}
}

// bufferLength: how many frames to read at one time
func (ar *AiffReader) Open(bufferLength int) error {
  var err error

  ar.fileIo, err = os.Open(ar.Filepath)

  if err != nil {
    return err
  }

  decoder := aiff.NewDecoder(ar.fileIo)
  decoder.ReadInfo()

  err = ar.checkHeader("AiffReader", int(decoder.NumChans), int(decoder.SampleRate), int(decoder.BitDepth))

  if err != nil {
    ar.Close()
    return err
  }

  duration, err := decoder.Duration()

  if err != nil {
    ar.Close()
    return err
  }

  ar.decoder = decoder
  ar.NumSampleFrames = int(decoder.NumSampleFrames)
  ar.Duration = duration.Seconds()
  ar.allocate(bufferLength)

  return nil
}

// bufferLength: how many frames WriteNext flushes at one time
func (ar *AiffWriter) Create(bufferLength int) error {
  var err error

  ar.fileIo, err = os.Create(ar.Filepath)

  if err != nil {
    return err
  }

  ar.encoder = aiff.NewEncoder(
    ar.fileIo,
    ar.SampleRate,
    ar.BitDepth,
    ar.NumChans,
  )

  return ar.allocate(bufferLength)
}
