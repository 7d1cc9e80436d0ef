package allocator

import (
	"fmt"
	"math/rand"
)

// ErrNotEnoughImages is returned when the media pool cannot supply a distinct
// image for every group.
type ErrNotEnoughImages struct {
	Available int
	Needed    int
}

func (e *ErrNotEnoughImages) Error() string {
	return fmt.Sprintf("not enough images (%d) for all groups (%d)", e.Available, e.Needed)
}

// DrawImages picks n distinct image names from the pool, excluding any that
// were already claimed during the current game run. The draw is shuffled so
// allocation is not deterministic by listing order.
func DrawImages(pool []string, claimed map[string]bool, n int) ([]string, error) {
	available := make([]string, 0, len(pool))
	for _, name := range pool {
		if !claimed[name] {
			available = append(available, name)
		}
	}

	if len(available) < n {
		return nil, &ErrNotEnoughImages{Available: len(available), Needed: n}
	}

	rand.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})

	return available[:n], nil
}
