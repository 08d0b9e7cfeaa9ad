package audio

import (
	"fmt"
	"log/slog"
	"sync"
)

// host abstracts the audio backend so the engine's stop-before-start
// sequencing is testable without a sound card. The portaudio
// implementation lives behind the portaudio build tag.
type host interface {
	Start() error
	Close() error
	OutputNames() ([]string, error)
	Open(device, sampleRate int) (sink, error)
}

// sink is a writable output stream on one device.
type sink interface {
	Write(samples []float32) error
	Close() error
}

// Engine owns the single active playback stream. Starting a new clip
// always preempts the previous one: the old stream is stopped and fully
// torn down before the new one opens, so at most one stream from this
// engine is ever audible.
type Engine struct {
	decoder  *Decoder
	resolver *Resolver
	host     host
	logger   *slog.Logger

	mu     sync.Mutex
	active *playback
}

type playback struct {
	cancel chan struct{}
	done   chan struct{}
	once   sync.Once
}

func (p *playback) stop() {
	p.once.Do(func() { close(p.cancel) })
}

func NewEngine(decoder *Decoder, resolver *Resolver, logger *slog.Logger) *Engine {
	return newEngine(decoder, resolver, newHost(), logger)
}

func newEngine(decoder *Decoder, resolver *Resolver, h host, logger *slog.Logger) *Engine {
	return &Engine{decoder: decoder, resolver: resolver, host: h, logger: logger}
}

// Start initializes the audio backend. Must be called once before Play.
func (e *Engine) Start() error {
	return e.host.Start()
}

// Play decodes the file, resolves the reserved sink and starts
// streaming on it. It returns once the stream is running; samples flow
// on a goroutine the engine owns. The previous stream, if any, is
// stopped first regardless of how far playback got.
func (e *Engine) Play(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopActiveLocked()

	clip, err := e.decoder.Decode(path)
	if err != nil {
		return fmt.Errorf("decoding clip: %w", err)
	}

	names, err := e.host.OutputNames()
	if err != nil {
		return fmt.Errorf("enumerating outputs: %w", err)
	}
	device, err := e.resolver.Resolve(names)
	if err != nil {
		return err
	}

	out, err := e.host.Open(device, clip.SampleRate)
	if err != nil {
		return fmt.Errorf("opening output stream: %w", err)
	}

	p := &playback{cancel: make(chan struct{}), done: make(chan struct{})}
	e.active = p
	e.logger.Debug("playback started", "path", path, "device", device, "rate", clip.SampleRate)
	go e.stream(out, clip, p)
	return nil
}

// Stop halts the active stream. Idempotent; a no-op when nothing is
// playing. Safe from any goroutine: it only signals, the stream
// goroutine does its own teardown.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active != nil {
		e.active.stop()
	}
}

// Close silences playback and shuts the backend down.
func (e *Engine) Close() error {
	e.mu.Lock()
	e.stopActiveLocked()
	e.mu.Unlock()
	return e.host.Close()
}

func (e *Engine) stopActiveLocked() {
	if e.active == nil {
		return
	}
	e.active.stop()
	<-e.active.done
	e.active = nil
}

const chunkFrames = 1024

func (e *Engine) stream(out sink, clip Clip, p *playback) {
	defer close(p.done)
	defer out.Close()

	for off := 0; off < len(clip.Samples); off += chunkFrames {
		select {
		case <-p.cancel:
			return
		default:
		}
		end := min(off+chunkFrames, len(clip.Samples))
		if err := out.Write(clip.Samples[off:end]); err != nil {
			e.logger.Error("writing samples", "error", err)
			return
		}
	}
}
