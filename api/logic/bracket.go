/* bracket.go
 * Contains the logic for building the initial round of a single-elimination bracket
 * Authors: Zachary Bower
 */

package logic

import (
	"math/rand/v2"

	"arena-bot/api/shared"
	"arena-bot/api/store"
)

// Rand is the source of randomness used for shuffling seeds. *rand.Rand satisfies it, so tests can pass a
// seeded generator
type Rand interface {
	IntN(n int) int
}

type processRand struct{}

func (processRand) IntN(n int) int {
	return rand.IntN(n)
}

// ProcessRand is backed by the process-wide math/rand/v2 source, which is safe for concurrent use
var ProcessRand Rand = processRand{}

// BracketSize gets the smallest power of 2 that can hold count entries, so with input 5 it returns 8 and so on
func BracketSize(count int) int {
	size := 1
	for size < count {
		size *= 2
	}
	return size
}

// Shuffle returns a shuffled copy of ids using Fisher-Yates. The input slice is left untouched
func Shuffle(ids []string, rng Rand) []string {
	shuffled := append([]string(nil), ids...)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// Dedupe removes repeated and empty ids while keeping first-seen order
func Dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// BuildBracket generates round 0 of a single-elimination bracket
// Preconditions: Receives participant ids (duplicates are dropped) and a Rand used to shuffle the seeds
// Postconditions: Returns the first round and the bracket size, or ErrInvalidParticipantCount when fewer than 2
// distinct participants remain. The byes fill the second slot of the last matches, one bye per match, so no
// match is ever empty. A participant facing a bye is already the winner of that match
func BuildBracket(participants []string, rng Rand) (store.Round, int, error) {
	ids := Dedupe(participants)
	if len(ids) < 2 {
		return store.Round{}, 0, shared.ErrInvalidParticipantCount
	}

	size := BracketSize(len(ids))
	byes := size - len(ids)
	contested := size/2 - byes

	shuffled := Shuffle(ids, rng)
	seeds := make([]*string, 0, size)
	for i, id := range shuffled {
		seeds = append(seeds, &id)
		// past the contested pairs every participant is followed by a bye
		if i >= 2*contested {
			seeds = append(seeds, nil)
		}
	}

	return store.Round{Matches: pairSeeds(seeds)}, size, nil
}

// pairSeeds pairs consecutive slots into matches and auto-advances anyone without an opponent
func pairSeeds(seeds []*string) []store.Match {
	matches := make([]store.Match, 0, (len(seeds)+1)/2)
	for i := 0; i < len(seeds); i += 2 {
		m := store.Match{P1: seeds[i]}
		if i+1 < len(seeds) {
			m.P2 = seeds[i+1]
		}

		switch {
		case m.P1 != nil && m.P2 == nil:
			m.Winner = copyID(m.P1)
		case m.P1 == nil && m.P2 != nil:
			m.Winner = copyID(m.P2)
		}
		matches = append(matches, m)
	}
	return matches
}

func copyID(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
