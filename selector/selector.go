package selector

import (
	"errors"
	"slices"
)

// ErrNoCandidates is returned when there is nothing to select from.
var ErrNoCandidates = errors.New("no wallpaper candidates available")

// Next returns the candidate that follows current. When hasCurrent is
// false the smallest candidate is returned.
//
// candidates does not have to be sorted and is not modified.
func Next(candidates []string, current string, hasCurrent bool) (string, error) {
	if len(candidates) == 0 {
		return "", ErrNoCandidates
	}

	sorted := slices.Clone(candidates)
	slices.Sort(sorted)

	if !hasCurrent {
		return sorted[0], nil
	}

	// less is everything before the split point, greaterOrEqual the rest
	split, _ := slices.BinarySearch(sorted, current)
	greaterOrEqual := sorted[split:]

	for _, p := range greaterOrEqual {
		if p > current {
			return p, nil
		}
	}

	// wraparound goes to the global minimum, not the minimum of less
	return sorted[0], nil
}

// NextFrom is Next with the previous selection as an optional pointer.
func NextFrom(candidates []string, current *string) (string, error) {
	if current == nil {
		return Next(candidates, "", false)
	}
	return Next(candidates, *current, true)
}
