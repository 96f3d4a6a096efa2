// Package selector implements the wallpaper selection algorithm.
//
// Given the candidate images in the wallpaper directory and the path that
// was selected on the previous run, the selector computes the path to use
// next.
//
// # Ordering
//
// Candidates are ordered by plain byte comparison of their paths. There is
// no locale or case folding; "B.png" sorts before "a.png".
//
// # Selection
//
//   - No previous selection: the smallest candidate.
//   - Previous selection c: the smallest candidate strictly greater than c.
//   - Nothing greater than c: wrap around to the smallest candidate.
//
// The previous selection does not need to be a candidate itself. When the
// file was deleted or renamed the selector still advances by comparing
// values, so a stale selection continues the cycle from where it left off.
//
// # Usage
//
//	next, err := selector.Next(candidates, current, true)
//	if errors.Is(err, selector.ErrNoCandidates) {
//	    return err
//	}
package selector
