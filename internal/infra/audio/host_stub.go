//go:build !portaudio
// +build !portaudio

package audio

import "fmt"

// stubHost stands in when portaudio is not available. The registry and
// control surface still work; playback errors out.
type stubHost struct{}

func newHost() host {
	return stubHost{}
}

func (stubHost) Start() error {
	return fmt.Errorf("audio output not available: rebuild with -tags portaudio")
}

func (stubHost) Close() error {
	return nil
}

func (stubHost) OutputNames() ([]string, error) {
	return nil, fmt.Errorf("audio output not available: rebuild with -tags portaudio")
}

func (stubHost) Open(_, _ int) (sink, error) {
	return nil, fmt.Errorf("audio output not available: rebuild with -tags portaudio")
}
