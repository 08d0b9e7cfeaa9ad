//go:build portaudio
// +build portaudio

package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

type paHost struct{}

func newHost() host {
	return &paHost{}
}

func (h *paHost) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initializing portaudio: %w", err)
	}
	return nil
}

func (h *paHost) Close() error {
	return portaudio.Terminate()
}

// OutputNames lists every host device by name. Indexes returned by the
// resolver refer to this list, re-enumerated per call.
func (h *paHost) OutputNames() ([]string, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}
	names := make([]string, len(devices))
	for i, dev := range devices {
		names[i] = dev.Name
	}
	return names, nil
}

func (h *paHost) Open(device, sampleRate int) (sink, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}
	if device < 0 || device >= len(devices) {
		return nil, fmt.Errorf("device index %d out of range", device)
	}

	buf := make([]float32, chunkFrames)
	params := portaudio.LowLatencyParameters(nil, devices[device])
	params.Output.Channels = 1
	params.SampleRate = float64(sampleRate)
	params.FramesPerBuffer = len(buf)

	stream, err := portaudio.OpenStream(params, &buf)
	if err != nil {
		return nil, fmt.Errorf("opening stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, fmt.Errorf("starting stream: %w", err)
	}
	return &paSink{stream: stream, buf: buf}, nil
}

type paSink struct {
	stream *portaudio.Stream
	buf    []float32
}

// Write pushes samples through the stream's fixed-size buffer, zero
// padding the final partial chunk.
func (s *paSink) Write(samples []float32) error {
	for len(samples) > 0 {
		n := copy(s.buf, samples)
		for i := n; i < len(s.buf); i++ {
			s.buf[i] = 0
		}
		if err := s.stream.Write(); err != nil {
			return err
		}
		samples = samples[n:]
	}
	return nil
}

func (s *paSink) Close() error {
	s.stream.Stop()
	return s.stream.Close()
}
