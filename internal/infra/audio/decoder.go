package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// Clip is a fully decoded sound: mono samples at the source file's
// native rate.
type Clip struct {
	Samples    []float32
	SampleRate int
}

// Decoder turns WAV, MP3 and OGG files into mono clips. The beep
// decoders deliver stereo frames (mono sources carry the same value in
// both channels), so downmixing is the average of the pair.
type Decoder struct{}

func NewDecoder() *Decoder {
	return &Decoder{}
}

func (d *Decoder) Decode(path string) (Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return Clip{}, fmt.Errorf("opening %s: %w", path, err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".ogg", ".oga":
		streamer, format, err = vorbis.Decode(f)
	default:
		f.Close()
		return Clip{}, fmt.Errorf("unsupported audio format %q", ext)
	}
	if err != nil {
		f.Close()
		return Clip{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer streamer.Close()

	samples := make([]float32, 0, streamer.Len())
	buf := make([][2]float64, 512)
	for {
		n, ok := streamer.Stream(buf)
		for _, frame := range buf[:n] {
			samples = append(samples, float32((frame[0]+frame[1])/2))
		}
		if !ok {
			break
		}
	}
	if err := streamer.Err(); err != nil {
		return Clip{}, fmt.Errorf("reading samples from %s: %w", path, err)
	}

	return Clip{Samples: samples, SampleRate: int(format.SampleRate)}, nil
}
