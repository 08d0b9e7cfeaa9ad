package audio

import (
	"fmt"
	"strings"

	"soundboard/internal/domain"
)

// Resolver locates the reserved virtual sink among the host's output
// devices by case-insensitive substring match; the first match wins.
// Resolution runs fresh on every play: the sink may not exist until the
// audio subsystem provisions it, and devices come and go.
type Resolver struct {
	match string
}

func NewResolver(match string) *Resolver {
	return &Resolver{match: match}
}

// Resolve returns the index of the first device name containing the
// sink identifier.
func (r *Resolver) Resolve(names []string) (int, error) {
	needle := strings.ToLower(r.match)
	for i, name := range names {
		if strings.Contains(strings.ToLower(name), needle) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("no device matching %q among %d outputs: %w", r.match, len(names), domain.ErrDeviceNotFound)
}
