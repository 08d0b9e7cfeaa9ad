package application

// Player owns the single active playback stream. Play preempts whatever
// is currently audible and returns as soon as streaming has started;
// Stop is idempotent and safe to call from any goroutine.
type Player interface {
	Play(path string) error
	Stop()
}
