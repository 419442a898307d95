/* test_mocks.go
 * Contains an in-memory implementation of store.Interface for testing the API package and its front ends. It
 * honours tournament versions and the (date, slug) uniqueness the mongo store gets from its indexes
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"slices"
	"sort"
	"sync"

	"arena-bot/api/logic"
	"arena-bot/api/shared"
	"arena-bot/api/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type dailyKey struct {
	date string
	slug string
}

// MockStore implements the Store interface for testing
type MockStore struct {
	mu sync.Mutex

	// Storage for mock data
	Tournaments map[primitive.ObjectID]store.Tournament
	Dailies     map[dailyKey]store.DailyTournament
	ScoreLog    []store.Score
	UserDocs    map[string]store.User

	// Error injection for testing error paths
	InsertTournamentError  error
	GetTournamentError     error
	ListTournamentsError   error
	UpdateTournamentError  error
	FindDailyError         error
	InsertDailyError       error
	ListDailyError         error
	AddDailyParticipantErr error
	LockDailyError         error
	FetchScoresError       error
	LookupUsersError       error
	UpsertUserError        error

	// ForcedConflicts makes the next n tournament updates fail with a version conflict
	ForcedConflicts int

	// Call counters
	UpdateCalls      int
	DailyInsertCalls int
}

// NewMockStore creates a new empty MockStore
func NewMockStore() *MockStore {
	return &MockStore{
		Tournaments: make(map[primitive.ObjectID]store.Tournament),
		Dailies:     make(map[dailyKey]store.DailyTournament),
		UserDocs:    make(map[string]store.User),
	}
}

// AddScore appends an entry to the score ledger
func (m *MockStore) AddScore(score store.Score) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ScoreLog = append(m.ScoreLog, score)
}

// AddUser puts a user into the directory
func (m *MockStore) AddUser(user store.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UserDocs[user.ID] = user
}

// PutDaily stores a daily tournament directly, replacing any existing one with the same date and slug
func (m *MockStore) PutDaily(daily store.DailyTournament) {
	m.mu.Lock()
	defer m.mu.Unlock()
	daily.Participants = slices.Clone(daily.Participants)
	m.Dailies[dailyKey{daily.Date, daily.Slug}] = daily
}

// Daily returns a copy of the stored daily tournament
func (m *MockStore) Daily(date string, slug string) (store.DailyTournament, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.Dailies[dailyKey{date, slug}]
	d.Participants = slices.Clone(d.Participants)
	return d, ok
}

// DailyCount returns how many daily tournaments are stored
func (m *MockStore) DailyCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Dailies)
}

func (m *MockStore) InsertTournament(ctx context.Context, tournament *store.Tournament) error {
	if m.InsertTournamentError != nil {
		return m.InsertTournamentError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if tournament.ID.IsZero() {
		tournament.ID = primitive.NewObjectID()
	}
	tournament.Version = 1
	m.Tournaments[tournament.ID] = tournament.Clone()
	return nil
}

func (m *MockStore) GetTournament(ctx context.Context, id primitive.ObjectID) (store.Tournament, error) {
	if m.GetTournamentError != nil {
		return store.Tournament{}, m.GetTournamentError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.Tournaments[id]
	if !ok {
		return store.Tournament{}, mongo.ErrNoDocuments
	}
	return t.Clone(), nil
}

func (m *MockStore) ListTournaments(ctx context.Context, statuses ...store.TournamentStatus) ([]store.Tournament, error) {
	if m.ListTournamentsError != nil {
		return nil, m.ListTournamentsError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	tournaments := []store.Tournament{}
	for _, t := range m.Tournaments {
		if len(statuses) > 0 && !slices.Contains(statuses, t.Status) {
			continue
		}
		tournaments = append(tournaments, t.Clone())
	}
	sort.Slice(tournaments, func(i, j int) bool {
		if tournaments[i].CreatedAt.Equal(tournaments[j].CreatedAt) {
			return tournaments[i].ID.Hex() > tournaments[j].ID.Hex()
		}
		return tournaments[i].CreatedAt.After(tournaments[j].CreatedAt)
	})
	return tournaments, nil
}

func (m *MockStore) UpdateTournament(ctx context.Context, tournament *store.Tournament) error {
	if m.UpdateTournamentError != nil {
		return m.UpdateTournamentError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls++

	if m.ForcedConflicts > 0 {
		m.ForcedConflicts--
		return store.ErrVersionConflict
	}

	stored, ok := m.Tournaments[tournament.ID]
	if !ok || stored.Version != tournament.Version {
		return store.ErrVersionConflict
	}
	tournament.Version++
	m.Tournaments[tournament.ID] = tournament.Clone()
	return nil
}

func (m *MockStore) FindDailyTournament(ctx context.Context, date string, slug string) (store.DailyTournament, error) {
	if m.FindDailyError != nil {
		return store.DailyTournament{}, m.FindDailyError
	}
	d, ok := m.Daily(date, slug)
	if !ok {
		return store.DailyTournament{}, mongo.ErrNoDocuments
	}
	return d, nil
}

func (m *MockStore) InsertDailyTournament(ctx context.Context, daily store.DailyTournament) error {
	if m.InsertDailyError != nil {
		return m.InsertDailyError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DailyInsertCalls++

	key := dailyKey{daily.Date, daily.Slug}
	if _, ok := m.Dailies[key]; ok {
		return store.ErrDuplicate
	}
	if daily.ID.IsZero() {
		daily.ID = primitive.NewObjectID()
	}
	daily.Participants = slices.Clone(daily.Participants)
	if daily.Participants == nil {
		daily.Participants = []string{}
	}
	m.Dailies[key] = daily
	return nil
}

func (m *MockStore) ListDailyTournaments(ctx context.Context, date string) ([]store.DailyTournament, error) {
	if m.ListDailyError != nil {
		return nil, m.ListDailyError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	dailies := []store.DailyTournament{}
	for key, d := range m.Dailies {
		if key.date == date {
			d.Participants = slices.Clone(d.Participants)
			dailies = append(dailies, d)
		}
	}
	sort.Slice(dailies, func(i, j int) bool { return dailies[i].Slug < dailies[j].Slug })
	return dailies, nil
}

func (m *MockStore) AddDailyParticipant(ctx context.Context, date string, slug string, userID string) error {
	if m.AddDailyParticipantErr != nil {
		return m.AddDailyParticipantErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := dailyKey{date, slug}
	d, ok := m.Dailies[key]
	if !ok || d.Locked {
		return store.ErrNoMatch
	}
	if !slices.Contains(d.Participants, userID) {
		d.Participants = append(slices.Clone(d.Participants), userID)
		m.Dailies[key] = d
	}
	return nil
}

func (m *MockStore) LockDailyTournamentsBefore(ctx context.Context, date string) (int64, error) {
	if m.LockDailyError != nil {
		return 0, m.LockDailyError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var locked int64
	for key, d := range m.Dailies {
		if key.date < date && !d.Locked {
			d.Locked = true
			m.Dailies[key] = d
			locked++
		}
	}
	return locked, nil
}

func (m *MockStore) FetchScores(ctx context.Context, query store.ScoreQuery) ([]store.Score, error) {
	if m.FetchScoresError != nil {
		return nil, m.FetchScoresError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	filtered := logic.FilterScores(m.ScoreLog, query.Game, query.From, query.To, query.Players)
	return logic.RankScores(filtered, int(query.Limit)), nil
}

func (m *MockStore) LookupUsers(ctx context.Context, ids []string) (map[string]shared.Identity, error) {
	if m.LookupUsersError != nil {
		return nil, m.LookupUsersError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	found := make(map[string]shared.Identity)
	for _, id := range ids {
		if u, ok := m.UserDocs[id]; ok {
			found[id] = shared.Identity{UserID: u.ID, Name: u.Name, Email: u.Email}
		}
	}
	return found, nil
}

func (m *MockStore) UpsertUser(ctx context.Context, user store.User) error {
	if m.UpsertUserError != nil {
		return m.UpsertUserError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	existing := m.UserDocs[user.ID]
	existing.ID = user.ID
	existing.Name = user.Name
	if user.Email != "" {
		existing.Email = user.Email
	}
	m.UserDocs[user.ID] = existing
	return nil
}

func (m *MockStore) Disconnect(ctx context.Context) error {
	return nil
}

// Ensure MockStore implements store.Interface
var _ store.Interface = (*MockStore)(nil)
