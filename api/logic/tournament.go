/* tournament.go
 * Contains the state transitions of an ad-hoc tournament. Every function validates before it mutates, so a
 * returned error always leaves the tournament unchanged
 * Authors: Zachary Bower
 */

package logic

import (
	"slices"
	"strings"

	"arena-bot/api/shared"
	"arena-bot/api/store"
)

// MatchReport is the input for reporting a match. Nil fields were not supplied by the caller
type MatchReport struct {
	Round    int
	Match    int
	WinnerID *string
	P1Score  *float64
	P2Score  *float64
}

// NewTournament builds an upcoming tournament with no participants or rounds
func NewTournament(name string, game store.Game, season string) (store.Tournament, error) {
	name = strings.TrimSpace(name)
	season = strings.TrimSpace(season)
	if name == "" || season == "" {
		return store.Tournament{}, shared.ErrMissingField
	}
	if !game.Valid() {
		return store.Tournament{}, shared.ErrInvalidGame
	}

	return store.Tournament{
		Name:         name,
		Game:         game,
		Season:       season,
		Status:       store.StatusUpcoming,
		Participants: []string{},
		Rounds:       []store.Round{},
	}, nil
}

// AddParticipants merges ids into the participant set. Re-adding someone is a no-op
// Preconditions: Receives an upcoming tournament and at least one non-empty id
// Postconditions: Returns true if the participant set changed, or an error and leaves t unchanged
func AddParticipants(t *store.Tournament, ids []string) (bool, error) {
	if t.Status != store.StatusUpcoming {
		return false, shared.ErrTournamentStarted
	}
	ids = Dedupe(ids)
	if len(ids) == 0 {
		return false, shared.ErrMissingField
	}

	changed := false
	for _, id := range ids {
		if slices.Contains(t.Participants, id) {
			continue
		}
		t.Participants = append(t.Participants, id)
		changed = true
	}
	return changed, nil
}

// StartTournament builds the first round and moves the tournament to running.
// When override is non-nil it replaces the participant list used for the bracket
func StartTournament(t *store.Tournament, override []string, rng Rand) error {
	if t.Status != store.StatusUpcoming {
		return shared.ErrTournamentStarted
	}

	participants := t.Participants
	if override != nil {
		participants = override
	}
	participants = Dedupe(participants)
	if len(participants) < 2 {
		return shared.ErrInsufficientParticipants
	}

	round, size, err := BuildBracket(participants, rng)
	if err != nil {
		return err
	}

	t.Participants = participants
	t.Rounds = []store.Round{round}
	t.BracketSize = size
	t.CurrentRound = 0
	t.Status = store.StatusRunning
	return nil
}

// ReportMatch records a result for one match
// Preconditions: Receives a running tournament and a MatchReport addressing a match by round and match index
// Postconditions: Scores that were supplied overwrite the stored ones. The winner is the supplied winner id, or the
// strictly higher score when both scores were supplied; equal scores leave the match pending. Returns an error
// and leaves t unchanged if the report is invalid
func ReportMatch(t *store.Tournament, report MatchReport) error {
	if t.Status != store.StatusRunning {
		return shared.ErrTournamentNotRunning
	}
	if report.Round < 0 || report.Round >= len(t.Rounds) {
		return shared.ErrMatchNotFound
	}
	matches := t.Rounds[report.Round].Matches
	if report.Match < 0 || report.Match >= len(matches) {
		return shared.ErrMatchNotFound
	}
	m := &matches[report.Match]

	if m.Winner != nil {
		return shared.ErrMatchAlreadyDecided
	}
	if report.WinnerID == nil && report.P1Score == nil && report.P2Score == nil {
		return shared.ErrEmptyReport
	}
	if report.WinnerID != nil && !m.Has(*report.WinnerID) {
		return shared.ErrInvalidWinner
	}

	if report.P1Score != nil {
		m.P1Score = *report.P1Score
	}
	if report.P2Score != nil {
		m.P2Score = *report.P2Score
	}

	switch {
	case report.WinnerID != nil:
		winner := *report.WinnerID
		m.Winner = &winner
	case report.P1Score != nil && report.P2Score != nil:
		if *report.P1Score > *report.P2Score {
			m.Winner = copyID(m.P1)
		} else if *report.P2Score > *report.P1Score {
			m.Winner = copyID(m.P2)
		}
	}
	return nil
}

// AdvanceRound closes a fully decided round. With one survivor the tournament completes and the survivor becomes
// champion, otherwise the survivors are paired in order into the next round
func AdvanceRound(t *store.Tournament, round int) error {
	if t.Status != store.StatusRunning {
		return shared.ErrTournamentNotRunning
	}
	if round < 0 || round >= len(t.Rounds) {
		return shared.ErrInvalidRound
	}
	if round != t.CurrentRound {
		return shared.ErrRoundAlreadyAdvanced
	}

	winners, err := RoundWinners(t.Rounds[round])
	if err != nil {
		return err
	}

	if len(winners) == 1 {
		t.Status = store.StatusCompleted
		t.Results.Champion = winners[0]
		return nil
	}

	seeds := make([]*string, len(winners))
	copy(seeds, winners)
	t.Rounds = append(t.Rounds[:round+1], store.Round{Matches: pairSeeds(seeds)})
	t.CurrentRound = round + 1
	return nil
}

// RoundWinners returns the survivors of a round in match order. A match without a recorded winner counts for its
// only participant, a contested match without a winner makes the round undecided
func RoundWinners(r store.Round) ([]*string, error) {
	winners := make([]*string, 0, len(r.Matches))
	for _, m := range r.Matches {
		switch {
		case m.Winner != nil:
			winners = append(winners, copyID(m.Winner))
		case m.IsContested():
			return nil, shared.ErrNotAllDecided
		case m.P1 != nil:
			winners = append(winners, copyID(m.P1))
		case m.P2 != nil:
			winners = append(winners, copyID(m.P2))
		}
	}
	return winners, nil
}
