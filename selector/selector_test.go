package selector

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextScenarios(t *testing.T) {
	abc := []string{"a.png", "b.jpg", "c.bmp"}

	tests := []struct {
		name       string
		candidates []string
		current    string
		hasCurrent bool
		expected   string
	}{
		{
			name:       "first run picks minimum",
			candidates: abc,
			expected:   "a.png",
		},
		{
			name:       "advances to next",
			candidates: abc,
			current:    "b.jpg",
			hasCurrent: true,
			expected:   "c.bmp",
		},
		{
			name:       "wraps around after maximum",
			candidates: abc,
			current:    "c.bmp",
			hasCurrent: true,
			expected:   "a.png",
		},
		{
			name:       "stale current advances by value",
			candidates: []string{"a.png", "c.bmp"},
			current:    "b.jpg",
			hasCurrent: true,
			expected:   "c.bmp",
		},
		{
			name:       "stale current beyond maximum wraps",
			candidates: []string{"a.png", "c.bmp"},
			current:    "z.png",
			hasCurrent: true,
			expected:   "a.png",
		},
		{
			name:       "stale current below minimum",
			candidates: []string{"b.png", "c.bmp"},
			current:    "a.png",
			hasCurrent: true,
			expected:   "b.png",
		},
		{
			name:       "single candidate is its own successor",
			candidates: []string{"only.png"},
			current:    "only.png",
			hasCurrent: true,
			expected:   "only.png",
		},
		{
			name:       "single candidate with stale current",
			candidates: []string{"only.png"},
			current:    "gone.png",
			hasCurrent: true,
			expected:   "only.png",
		},
		{
			name:       "unsorted input",
			candidates: []string{"c.bmp", "a.png", "b.jpg"},
			current:    "a.png",
			hasCurrent: true,
			expected:   "b.jpg",
		},
		{
			name:       "byte order, not case folded",
			candidates: []string{"a.png", "B.png", "c.png"},
			expected:   "B.png",
		},
		{
			name:       "uppercase sorts before lowercase when advancing",
			candidates: []string{"a.png", "B.png", "c.png"},
			current:    "B.png",
			hasCurrent: true,
			expected:   "a.png",
		},
		{
			name:       "empty current string is still a value",
			candidates: abc,
			current:    "",
			hasCurrent: true,
			expected:   "a.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Next(tt.candidates, tt.current, tt.hasCurrent)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNextNoCandidates(t *testing.T) {
	for _, current := range []*string{nil, ptr(""), ptr("a.png")} {
		_, err := NextFrom(nil, current)
		assert.ErrorIs(t, err, ErrNoCandidates)

		_, err = NextFrom([]string{}, current)
		assert.ErrorIs(t, err, ErrNoCandidates)
	}
}

func TestNextDoesNotModifyInput(t *testing.T) {
	in := []string{"c.bmp", "a.png", "b.jpg"}
	orig := slices.Clone(in)

	_, err := Next(in, "a.png", true)
	require.NoError(t, err)
	assert.Equal(t, orig, in)
}

func TestNextFullCycle(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7, 25} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			candidates := make([]string, 0, n)
			for i := n - 1; i >= 0; i-- {
				candidates = append(candidates, fmt.Sprintf("/walls/%03d.png", i))
			}

			seen := map[string]bool{}
			var current *string
			for i := 0; i < n; i++ {
				next, err := NextFrom(candidates, current)
				require.NoError(t, err)
				assert.False(t, seen[next], "visited %s twice within one cycle", next)
				seen[next] = true
				current = &next
			}
			assert.Len(t, seen, n)

			// the cycle restarts at the minimum
			next, err := NextFrom(candidates, current)
			require.NoError(t, err)
			assert.Equal(t, "/walls/000.png", next)
		})
	}
}

func TestNextProperties(t *testing.T) {
	candidates := []string{"/w/b.png", "/w/d.jpg", "/w/f.jpeg", "/w/h.bmp"}
	probes := []string{"/w/a.png", "/w/b.png", "/w/c.png", "/w/d.jpg", "/w/e", "/w/f.jpeg", "/w/g", "/w/h.bmp", "/w/z"}

	for _, c := range probes {
		got, err := Next(candidates, c, true)
		require.NoError(t, err)

		want := candidates[0]
		for _, p := range candidates {
			if p > c {
				want = p
				break
			}
		}
		assert.Equal(t, want, got, "current %q", c)
	}
}

func ptr(s string) *string { return &s }
