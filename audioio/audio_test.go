package audioio

import(
  "os"
  "path/filepath"
  "testing"
  "github.com/go-audio/audio"
  . "wandsynth/testing_utilities"
)

func writeMono(t *testing.T, path string, data []int) {
  t.Helper()

  writer, err := NewAudioWriter(AudioFile{
    Filepath: path,
    NumChans: 1,
    BitDepth: 16,
    SampleRate: 44100,
  })
  Ok(t, err)
  Ok(t, writer.Create(len(data)))
  Ok(t, writer.InterleaveChannel(0, data))
  Ok(t, writer.WriteNext())
  Ok(t, writer.Close())
}

func TestReturnFileType(t *testing.T) {
  dir := t.TempDir()
  data := []int{0, 100, -100, 0}

  writeMono(t, filepath.Join(dir, "take.aif"), data)
  writeMono(t, filepath.Join(dir, "take.wav"), data)

  result, err := returnFileType(filepath.Join(dir, "take.aif"))
  Ok(t, err)
  Equals(t, TYPE_AIFF, result)

  result, err = returnFileType(filepath.Join(dir, "take.wav"))
  Ok(t, err)
  Equals(t, TYPE_WAVE, result)
}

func TestReturnFileType_INVALID(t *testing.T) {
  path := filepath.Join(t.TempDir(), "textfile.txt")
  Ok(t, os.WriteFile(path, []byte("joystick 0 0 0 0\n"), 0644))

  result, err := returnFileType(path)
  Equals(t, TYPE_INVALID, result)
  Assert(t, err != nil && err.Error() == "Invalid File Type", "Error was incorrect: %v", err)
}

func TestFileTypeFromExtension(t *testing.T) {
  tests := map[string]struct {
    path string
    want int
  }{
    "aif": {path: "take.aif", want: TYPE_AIFF},
    "aiff mixed case": {path: "take.aiFf", want: TYPE_AIFF},
    "wav": {path: "take.wav", want: TYPE_WAVE},
    "wave mixed case": {path: "take.Wave", want: TYPE_WAVE},
    "mp3": {path: "take.mp3", want: TYPE_INVALID},
    "none": {path: "take", want: TYPE_INVALID},
  }

  for name, tc := range tests {
    t.Run(name, func(t *testing.T) {
      got, _ := FileTypeFromExtension(tc.path)
      Equals(t, tc.want, got)
    })
  }

  got, err := FileTypeFromName("wav")
  Ok(t, err)
  Equals(t, TYPE_WAVE, got)
}

func TestQuantize(t *testing.T) {
  samples := []float64{0, 0.5, -0.5, 1, -1, 3, -3}
  dst := make([]int, len(samples))

  Ok(t, Quantize(samples, 0.5, 16, dst))
  Equals(t, []int{0, 8191, -8191, 16383, -16383, 32767, -32767}, dst)

  Assert(t, Quantize(samples, 1, 12, dst) != nil, "expected unsupported bit depth error")
  Assert(t, Quantize(samples, 1, 16, dst[:2]) != nil, "expected short destination error")
}

func TestWriterClipsOutOfRangeSamples(t *testing.T) {
  for _, name := range []string{"clip.wav", "clip.aif"} {
    t.Run(name, func(t *testing.T) {
      path := filepath.Join(t.TempDir(), name)
      writeMono(t, path, []int{40000, -40000, 1234})

      samples, sampleRate, err := ReadChannel(path, 0)
      Ok(t, err)
      Equals(t, 44100, sampleRate)
      Equals(t, 3, len(samples))
      InDelta(t, 1.0, samples[0], 1e-9)
      InDelta(t, -1.0, samples[1], 1e-9)
      InDelta(t, 1234.0/32767.0, samples[2], 1e-9)
    })
  }
}

func TestReadChannelAcrossBuffers(t *testing.T) {
  path := filepath.Join(t.TempDir(), "long.wav")

  data := make([]int, 10000)
  for i := range data {
    data[i] = (i % 200) - 100
  }
  writeMono(t, path, data)

  samples, _, err := ReadChannel(path, 0)
  Ok(t, err)
  Equals(t, len(data), len(samples))
  InDelta(t, float64(data[9999]) / 32767.0, samples[9999], 1e-9)

  _, _, err = ReadChannel(path, 1)
  Assert(t, err != nil, "expected out of bounds channel error")
}

func TestReaderMetadata(t *testing.T) {
  path := filepath.Join(t.TempDir(), "meta.aif")
  writeMono(t, path, make([]int, 4410))

  reader, err := NewAudioReader(path)
  Ok(t, err)
  Ok(t, reader.Open(512))
  defer reader.Close()

  Equals(t, 1, reader.GetNumChans())
  Equals(t, 16, reader.GetBitDepth())
  Equals(t, 44100, reader.GetSampleRate())
  Equals(t, 4410, reader.GetNumSampleFrames())
  InDelta(t, 0.1, reader.GetDuration(), 1e-6)
}

func TestInterleaveChannel(t *testing.T) {
  writer := NewWaveWriter(AudioFile{NumChans: 2, BitDepth: 16, SampleRate: 44100})
  Ok(t, writer.allocate(3))

  Ok(t, writer.InterleaveChannel(0, []int{1, 2, 3}))
  Ok(t, writer.InterleaveChannel(1, []int{4, 5, 6}))
  Equals(t, []int{1, 4, 2, 5, 3, 6}, writer.WriteBuffer.Data)

  Assert(t, writer.InterleaveChannel(0, []int{1}) != nil, "expected size mismatch error")
  Assert(t, writer.InterleaveChannel(2, []int{1, 2, 3}) != nil, "expected channel bounds error")

  writer.ZeroWriteBuffer()
  Equals(t, []int{0, 0, 0, 0, 0, 0}, writer.WriteBuffer.Data)
}

func TestClipInts(t *testing.T) {
  buffer := &audio.IntBuffer{Data: []int{200, -200, 5}}
  clipInts(buffer.Data, IntMaxSignedValue[8])
  Equals(t, []int{127, -127, 5}, buffer.Data)
}
