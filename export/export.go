package export

import(
  "errors"
  "fmt"
  "io"
  "log/slog"
  "os"
  "os/exec"
  "path/filepath"
  "strings"
  "github.com/go-audio/audio"
  "github.com/hajimehoshi/go-mp3"
  "github.com/schollz/progressbar/v3"
  "golang.org/x/term"
  "wandsynth/analysis"
  "wandsynth/audioio"
  "wandsynth/charter"
  "wandsynth/synth"
)

const DefaultGain = 0.5
const DefaultEncoder = "ffmpeg"
const DefaultContainer = ".wav"
const BitDepth = 16

// frames handed to the container writer per call
const writeFrames = 4096

var ErrEmptyCapture = errors.New("capture holds no samples")

type Exporter interface {
  Export(c synth.Capture) error
}

// FileExporter writes each capture as a mono 16-bit PCM container next to
// the final artifact and transcodes it with an external encoder. Nothing
// appears under the final name until it is complete.
type FileExporter struct {
  Dir string
  Base string
  Gain float64
  Container string
  // empty keeps the PCM container as the artifact
  Encoder string
  Chart bool
  Quiet bool
  Logger *slog.Logger
  // progress bar destination, only used when it is a terminal
  Progress *os.File
}

func NewFileExporter(dir, base string, logger *slog.Logger) *FileExporter {
  if logger == nil {
    logger = slog.Default()
  }

  return &FileExporter{
    Dir: dir,
    Base: base,
    Gain: DefaultGain,
    Container: DefaultContainer,
    Encoder: DefaultEncoder,
    Logger: logger,
    Progress: os.Stderr,
  }
}

// EncoderArgs are the fixed encoder arguments for one transcode
func EncoderArgs(input, output string) []string {
  return []string{"-y", "-i", input, "-codec:a", "libmp3lame", "-f", "mp3", output}
}

func (fe *FileExporter) ArtifactPath(session uint64) string {
  extension := ".mp3"
  if fe.Encoder == "" {
    extension = fe.Container
  }

  return filepath.Join(fe.Dir, fmt.Sprintf("%s-%03d%s", fe.Base, session, extension))
}

func (fe *FileExporter) Export(c synth.Capture) error {
  if len(c.Samples) == 0 {
    return ErrEmptyCapture
  }

  if c.SampleRate <= 0 {
    return fmt.Errorf("Invalid capture sample rate %d", c.SampleRate)
  }

  if _, err := audioio.FileTypeFromExtension(fe.Container); err != nil {
    return fmt.Errorf("unsupported container %q: %w", fe.Container, err)
  }

  artifact := fe.ArtifactPath(c.Session)

  pcmPath, err := reserveTemp(fe.Dir, fe.Base, fe.Container)
  if err != nil {
    return fmt.Errorf("reserving pcm file: %w", err)
  }
  defer os.Remove(pcmPath)

  if err = fe.writePCM(pcmPath, c); err != nil {
    return fmt.Errorf("writing pcm container: %w", err)
  }

  if fe.Encoder == "" {
    if err = os.Rename(pcmPath, artifact); err != nil {
      return fmt.Errorf("moving pcm container into place: %w", err)
    }
  } else {
    if err = fe.encode(pcmPath, artifact); err != nil {
      return err
    }

    if duration, err := ProbeMP3(artifact); err != nil {
      fe.Logger.Warn("could not verify encoded artifact", "path", artifact, "err", err)
    } else {
      fe.Logger.Debug("verified encoded artifact", "path", artifact, "seconds", duration)
    }
  }

  summary, err := analysis.Analyze(c.Samples, c.SampleRate)
  if err != nil {
    fe.Logger.Warn("capture analysis failed", "session", c.Session, "err", err)
  }

  fe.Logger.Info(
    "exported capture",
    "session", c.Session,
    "path", artifact,
    "duration", c.Duration(),
    "summary", summary.String(),
  )

  if fe.Chart {
    chartPath := strings.TrimSuffix(artifact, filepath.Ext(artifact)) + ".html"
    title := fmt.Sprintf("%s session %d", fe.Base, c.Session)
    subtitle := fmt.Sprintf("%.2f s", c.Duration().Seconds())

    if err := charter.WriteWaveform(chartPath, title, subtitle, c.Samples, c.SampleRate); err != nil {
      fe.Logger.Warn("could not write capture chart", "path", chartPath, "err", err)
    }
  }

  return nil
}

// reserveTemp picks an unused hidden file name in dir keeping extension
func reserveTemp(dir, base, extension string) (string, error) {
  f, err := os.CreateTemp(dir, "." + base + "-*" + extension)
  if err != nil {
    return "", err
  }

  name := f.Name()
  if err = f.Close(); err != nil {
    os.Remove(name)
    return "", err
  }

  return name, nil
}

func (fe *FileExporter) showProgress() bool {
  return !fe.Quiet && fe.Progress != nil && term.IsTerminal(int(fe.Progress.Fd()))
}

func (fe *FileExporter) writePCM(path string, c synth.Capture) (err error) {
  writer, err := audioio.NewAudioWriter(audioio.AudioFile{
    Filepath: path,
    NumChans: 1,
    BitDepth: BitDepth,
    SampleRate: c.SampleRate,
  })

  if err != nil {
    return err
  }

  if err = writer.Create(writeFrames); err != nil {
    writer.Close()
    return err
  }

  defer func() {
    if closeErr := writer.Close(); err == nil {
      err = closeErr
    }
  }()

  var bar *progressbar.ProgressBar
  if fe.showProgress() {
    bar = newBar(fe.Progress, len(c.Samples), fmt.Sprintf("exporting session %d...", c.Session))
  }

  quantized := make([]int, writeFrames)

  for start := 0; start < len(c.Samples); start += writeFrames {
    end := start + writeFrames
    if end > len(c.Samples) {
      end = len(c.Samples)
    }
    chunk := c.Samples[start:end]

    if err = audioio.Quantize(chunk, fe.Gain, BitDepth, quantized); err != nil {
      return err
    }

    if len(chunk) == writeFrames {
      err = writer.InterleaveChannel(0, quantized)
      if err == nil {
        err = writer.WriteNext()
      }
    } else {
      err = writer.Write(tailBuffer(quantized[:len(chunk)], c.SampleRate))
    }

    if err != nil {
      return err
    }

    if bar != nil {
      bar.Add(len(chunk))
    }
  }

  if bar != nil {
    bar.Finish()
    fmt.Fprintln(fe.Progress)
  }

  return nil
}

// final partial chunk, shorter than the writer's buffer
func tailBuffer(data []int, sampleRate int) *audio.IntBuffer {
  return &audio.IntBuffer{
    Format: &audio.Format{
      NumChannels: 1,
      SampleRate: sampleRate,
    },
    Data: data,
    SourceBitDepth: BitDepth,
  }
}

func newBar(w io.Writer, max int, description string) *progressbar.ProgressBar {
  return progressbar.NewOptions(
    max,
    progressbar.OptionSetWriter(w),
    progressbar.OptionEnableColorCodes(true),
    progressbar.OptionSetDescription(description),
    progressbar.OptionFullWidth(),
    progressbar.OptionSetTheme(progressbar.Theme{
      Saucer:        "[green]=[reset]",
      SaucerHead:    "[green]=[reset]",
      SaucerPadding: " ",
      BarStart:      "[",
      BarEnd:        "]",
    }),
  )
}

// encode transcodes pcmPath into a hidden temp file and renames it to artifact
func (fe *FileExporter) encode(pcmPath, artifact string) error {
  tmpPath, err := reserveTemp(fe.Dir, fe.Base, ".mp3")
  if err != nil {
    return fmt.Errorf("reserving encoder output: %w", err)
  }
  defer os.Remove(tmpPath)

  cmd := exec.Command(fe.Encoder, EncoderArgs(pcmPath, tmpPath)...)
  output, err := cmd.CombinedOutput()

  if err != nil {
    return fmt.Errorf("encoder %s failed: %w: %s", fe.Encoder, err, lastLine(output))
  }

  if err = os.Rename(tmpPath, artifact); err != nil {
    return fmt.Errorf("moving encoded artifact into place: %w", err)
  }

  return nil
}

func lastLine(output []byte) string {
  lines := strings.Split(strings.TrimSpace(string(output)), "\n")
  return lines[len(lines) - 1]
}

// ProbeMP3 decodes the stream header of an mp3 file and returns its length
// in seconds.
func ProbeMP3(path string) (float64, error) {
  f, err := os.Open(path)
  if err != nil {
    return 0, err
  }
  defer f.Close()

  decoder, err := mp3.NewDecoder(f)
  if err != nil {
    return 0, err
  }

  nbytes := decoder.Length()
  if nbytes <= 0 {
    return 0, fmt.Errorf("cannot determine length of MP3 file: %s", path)
  }

  // decoded stream is 16-bit stereo
  frames := nbytes / 4
  return float64(frames) / float64(decoder.SampleRate()), nil
}

// Drain exports every capture received until the channel closes. Failures
// are logged and the next capture is processed. When recycle is set, each
// capture's samples are passed to it once the exporter is done with them.
func Drain(captures <-chan synth.Capture, exporter Exporter, logger *slog.Logger, recycle func([]float64)) (exported, failed int) {
  if logger == nil {
    logger = slog.Default()
  }

  for capture := range captures {
    err := exporter.Export(capture)
    if recycle != nil {
      recycle(capture.Samples)
    }

    if err != nil {
      logger.Error("export failed", "session", capture.Session, "err", err)
      failed++
      continue
    }
    exported++
  }

  return exported, failed
}
