/* bracket_test.go
 * Contains unit tests for bracket.go functions
 * Authors: Zachary Bower
 */

package logic

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"testing"

	"arena-bot/api/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func participantIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("u%d", i+1)
	}
	return ids
}

// region BracketSize tests

func TestBracketSize(t *testing.T) {
	testCases := []struct {
		count    int
		expected int
	}{
		{2, 2}, {3, 4}, {4, 4}, {5, 8}, {8, 8}, {9, 16}, {17, 32}, {64, 64},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%d entries", tc.count), func(t *testing.T) {
			assert.Equal(t, tc.expected, BracketSize(tc.count))
		})
	}
}

// endregion

// region BuildBracket tests

func TestBuildBracket_StructureForEverySize(t *testing.T) {
	for n := 2; n <= 40; n++ {
		t.Run(fmt.Sprintf("%d participants", n), func(t *testing.T) {
			round, size, err := BuildBracket(participantIDs(n), seeded())
			require.NoError(t, err)

			assert.Equal(t, BracketSize(n), size)
			assert.GreaterOrEqual(t, size, n)
			assert.Less(t, size/2, n, "bracket size must be the smallest power of two")
			require.Len(t, round.Matches, size/2)

			byes, contested := 0, 0
			var seen []string
			for _, m := range round.Matches {
				require.False(t, m.P1 == nil && m.P2 == nil, "match with two empty slots")
				if m.IsContested() {
					contested++
					assert.Nil(t, m.Winner)
					seen = append(seen, *m.P1, *m.P2)
					continue
				}
				byes++
				require.NotNil(t, m.Winner, "bye must have its winner pre-assigned")
				if m.P1 != nil {
					assert.Equal(t, *m.P1, *m.Winner)
					seen = append(seen, *m.P1)
				} else {
					assert.Equal(t, *m.P2, *m.Winner)
					seen = append(seen, *m.P2)
				}
				assert.Zero(t, m.P1Score)
				assert.Zero(t, m.P2Score)
			}

			assert.Equal(t, size-n, byes)
			assert.Equal(t, size/2-(size-n), contested)

			expected := participantIDs(n)
			sort.Strings(expected)
			sort.Strings(seen)
			assert.Equal(t, expected, seen, "every participant is seeded exactly once")
		})
	}
}

func TestBuildBracket_FiveParticipants(t *testing.T) {
	round, size, err := BuildBracket([]string{"A", "B", "C", "D", "E"}, seeded())
	require.NoError(t, err)

	assert.Equal(t, 8, size)
	require.Len(t, round.Matches, 4)

	preset, pending := 0, 0
	for _, m := range round.Matches {
		if m.IsContested() {
			assert.Nil(t, m.Winner)
			pending++
		} else {
			assert.NotNil(t, m.Winner)
			preset++
		}
	}
	assert.Equal(t, 3, preset)
	assert.Equal(t, 1, pending)
}

func TestBuildBracket_DeduplicatesInput(t *testing.T) {
	round, size, err := BuildBracket([]string{"A", "B", "A", "C", "B"}, seeded())
	require.NoError(t, err)
	assert.Equal(t, 4, size)
	assert.Len(t, round.Matches, 2)
}

func TestBuildBracket_TooFewParticipants(t *testing.T) {
	testCases := []struct {
		name  string
		input []string
	}{
		{"nil", nil},
		{"empty", []string{}},
		{"single", []string{"A"}},
		{"duplicates of one", []string{"A", "A", "A"}},
		{"blank ids", []string{"", "A", ""}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := BuildBracket(tc.input, seeded())
			assert.ErrorIs(t, err, shared.ErrInvalidParticipantCount)
			assert.ErrorIs(t, err, shared.ErrValidation)
		})
	}
}

func TestBuildBracket_SameSeedSameBracket(t *testing.T) {
	ids := participantIDs(11)

	first, _, err := BuildBracket(ids, rand.New(rand.NewPCG(42, 7)))
	require.NoError(t, err)
	second, _, err := BuildBracket(ids, rand.New(rand.NewPCG(42, 7)))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// endregion

// region Shuffle tests

func TestShuffle_DoesNotMutateInput(t *testing.T) {
	ids := participantIDs(8)
	original := append([]string(nil), ids...)

	shuffled := Shuffle(ids, seeded())

	assert.Equal(t, original, ids)
	assert.ElementsMatch(t, original, shuffled)
}

// Every permutation of three ids should come up roughly equally often
func TestShuffle_IsUniform(t *testing.T) {
	rng := seeded()
	counts := make(map[string]int)
	const draws = 60000

	for range draws {
		s := Shuffle([]string{"a", "b", "c"}, rng)
		counts[s[0]+s[1]+s[2]]++
	}

	require.Len(t, counts, 6)
	expected := draws / 6
	for perm, c := range counts {
		assert.InDelta(t, expected, c, float64(expected)*0.05, "permutation %s", perm)
	}
}

func TestProcessRand_InRange(t *testing.T) {
	for range 100 {
		v := ProcessRand.IntN(5)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 5)
	}
}

// endregion

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Dedupe([]string{"a", "", "b", "a", "c", "b"}))
	assert.Empty(t, Dedupe(nil))
}
