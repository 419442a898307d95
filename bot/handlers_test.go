/* handlers_test.go
 * Contains unit tests for bot command handlers using mock Discord session
 * Authors: Zachary Bower
 */

package bot

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"arena-bot/api/api"
	"arena-bot/api/logic"
	"arena-bot/api/store"

	"github.com/bwmarrin/discordgo"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestBot creates a Bot instance with an API over an in-memory store
func createTestBot(t *testing.T) (*Bot, *api.MockStore) {
	t.Helper()
	mockStore := api.NewMockStore()
	a := api.New(mockStore)
	a.Clock = clockwork.NewFakeClockAt(time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC))
	a.Rand = rand.New(rand.NewPCG(1, 2))

	return &Bot{BotToken: "test_token", APIPtr: a}, mockStore
}

// createMockMessage creates a mock Discord message for testing
func createMockMessage(content, userID, username, channelID string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{
		Message: &discordgo.Message{
			Content:   content,
			ChannelID: channelID,
			Author: &discordgo.User{
				ID:       userID,
				Username: username,
			},
		},
	}
}

func send(bot *Bot, session *MockDiscordSession, content string) MockMessage {
	bot.newMessageHandler(session, createMockMessage(content, "user123", "TestUser", "channel123"), "bot_id")
	return session.GetLastMessage()
}

// region routing tests

func TestNewMessageHandler_IgnoresOwnMessages(t *testing.T) {
	bot, _ := createTestBot(t)
	mockSession := NewMockDiscordSession()

	bot.newMessageHandler(mockSession, createMockMessage("$help", "bot_id", "Arena", "channel123"), "bot_id")
	assert.Empty(t, mockSession.SentMessages)
}

func TestNewMessageHandler_IgnoresUnknownCommands(t *testing.T) {
	bot, _ := createTestBot(t)
	mockSession := NewMockDiscordSession()

	send(bot, mockSession, "hello there")
	send(bot, mockSession, "$unknown")
	assert.Empty(t, mockSession.SentMessages)
}

func TestHelpMessage(t *testing.T) {
	bot, _ := createTestBot(t)
	mockSession := NewMockDiscordSession()

	msg := send(bot, mockSession, "$help")
	assert.Equal(t, "channel123", msg.ChannelID)
	for _, command := range []string{"$daily", "$join", "$results", "$tournaments", "$enter", "$bracket"} {
		assert.Contains(t, msg.Content, command)
	}
}

// endregion

// region daily tests

func TestDaily_ListsTodaysFixtures(t *testing.T) {
	bot, _ := createTestBot(t)
	mockSession := NewMockDiscordSession()

	msg := send(bot, mockSession, "$daily")
	assert.Contains(t, msg.Content, "2026-10-14")
	for _, def := range logic.DailyFixtures {
		assert.Contains(t, msg.Content, def.Title)
	}
}

func TestJoin_FuzzyFixtureAndRegistersUser(t *testing.T) {
	bot, mockStore := createTestBot(t)
	mockSession := NewMockDiscordSession()

	msg := send(bot, mockSession, "$join sprnt")
	assert.Equal(t, "TestUser joined today's Daily Sprint", msg.Content)

	d, ok := mockStore.Daily("2026-10-14", "sprint")
	require.True(t, ok)
	assert.Equal(t, []string{"user123"}, d.Participants)
	assert.Equal(t, "TestUser", mockStore.UserDocs["user123"].Name)
}

func TestJoin_Errors(t *testing.T) {
	bot, mockStore := createTestBot(t)
	mockSession := NewMockDiscordSession()

	msg := send(bot, mockSession, "$join")
	assert.Contains(t, msg.Content, "Usage")

	msg = send(bot, mockSession, "$join chess championship")
	assert.Contains(t, msg.Content, "There is no daily tournament called chess")

	mockStore.PutDaily(store.DailyTournament{Date: "2026-10-14", Slug: "duel", Title: "Daily Duel", Game: store.GamePong, Participants: []string{}, Locked: true})
	msg = send(bot, mockSession, "$join duel")
	assert.Contains(t, msg.Content, "Could not join Daily Duel")
	assert.Contains(t, msg.Content, "locked")
}

func TestJoin_RegisterFailureDoesNotBlock(t *testing.T) {
	bot, mockStore := createTestBot(t)
	mockStore.UpsertUserError = errors.New("directory down")
	mockSession := NewMockDiscordSession()

	msg := send(bot, mockSession, "$join marathon")
	assert.Equal(t, "TestUser joined today's Daily Marathon", msg.Content)
}

func TestResults(t *testing.T) {
	bot, mockStore := createTestBot(t)
	mockSession := NewMockDiscordSession()
	mockStore.PutDaily(store.DailyTournament{Date: "2026-10-13", Slug: "sprint", Title: "Daily Sprint", Game: store.GameSnake, Participants: []string{"U1", "U2"}})
	mockStore.PutDaily(store.DailyTournament{Date: "2026-10-13", Slug: "duel", Title: "Daily Duel", Game: store.GamePong, Participants: []string{}})
	mockStore.AddUser(store.User{ID: "U2", Name: "bo"})
	day := time.Date(2026, 10, 13, 12, 0, 0, 0, time.UTC)
	mockStore.AddScore(store.Score{Player: "U1", Game: store.GameSnake, Score: 50, CreatedAt: day})
	mockStore.AddScore(store.Score{Player: "U2", Game: store.GameSnake, Score: 80, CreatedAt: day})

	msg := send(bot, mockSession, "$results")
	assert.Equal(t, "Results for 2026-10-13:\n**Daily Sprint**\n1. bo - 80\n2. U1 - 50\n**Daily Duel**\nNo scores\n", msg.Content)
	assert.Equal(t, []string{"channel123"}, mockSession.TypingChannels)

	msg = send(bot, mockSession, "$results 2026-10-13")
	assert.Contains(t, msg.Content, "1. bo - 80")

	msg = send(bot, mockSession, "$results 2020-01-01")
	assert.Equal(t, "No daily tournaments were played on that day", msg.Content)

	msg = send(bot, mockSession, "$results 13/10/2026")
	assert.Contains(t, msg.Content, "Could not get results")
}

// endregion

// region tournament tests

func createOpenTournament(t *testing.T, bot *Bot, name string) store.Tournament {
	t.Helper()
	created, err := bot.APIPtr.CreateTournament(context.Background(), name, store.GameBreakout, "2026")
	require.NoError(t, err)
	return created
}

func TestTournaments(t *testing.T) {
	bot, _ := createTestBot(t)
	mockSession := NewMockDiscordSession()

	msg := send(bot, mockSession, "$tournaments")
	assert.Equal(t, "No tournaments are open right now", msg.Content)

	createOpenTournament(t, bot, "Spring Cup")
	msg = send(bot, mockSession, "$tournaments")
	assert.Contains(t, msg.Content, "- Spring Cup (breakout, upcoming)")
}

func TestEnter(t *testing.T) {
	bot, mockStore := createTestBot(t)
	mockSession := NewMockDiscordSession()
	created := createOpenTournament(t, bot, "Spring Cup")
	createOpenTournament(t, bot, "Autumn Open")

	msg := send(bot, mockSession, `$enter "spring cup"`)
	assert.Equal(t, "TestUser entered Spring Cup", msg.Content)
	assert.Equal(t, []string{"user123"}, mockStore.Tournaments[created.ID].Participants)

	msg = send(bot, mockSession, "$enter")
	assert.Contains(t, msg.Content, "Usage")

	msg = send(bot, mockSession, `$enter "Winter Classic"`)
	assert.Contains(t, msg.Content, "Could not find that tournament")
}

func TestEnter_StartedTournament(t *testing.T) {
	bot, _ := createTestBot(t)
	mockSession := NewMockDiscordSession()
	ctx := context.Background()

	created := createOpenTournament(t, bot, "Spring Cup")
	_, err := bot.APIPtr.AddParticipants(ctx, created.ID.Hex(), []string{"A", "B"})
	require.NoError(t, err)
	_, err = bot.APIPtr.StartTournament(ctx, created.ID.Hex(), nil)
	require.NoError(t, err)

	msg := send(bot, mockSession, `$enter "Spring Cup"`)
	assert.Contains(t, msg.Content, "Could not enter Spring Cup")
}

func TestBracket(t *testing.T) {
	bot, mockStore := createTestBot(t)
	mockSession := NewMockDiscordSession()
	ctx := context.Background()
	mockStore.AddUser(store.User{ID: "A", Name: "ada"})

	created := createOpenTournament(t, bot, "Spring Cup")
	msg := send(bot, mockSession, `$bracket "Spring Cup"`)
	assert.Contains(t, msg.Content, "Not started yet, 0 entered")

	_, err := bot.APIPtr.AddParticipants(ctx, created.ID.Hex(), []string{"A", "B", "C"})
	require.NoError(t, err)
	started, err := bot.APIPtr.StartTournament(ctx, created.ID.Hex(), nil)
	require.NoError(t, err)

	msg = send(bot, mockSession, `$bracket "Spring Cup"`)
	assert.Contains(t, msg.Content, "**Spring Cup** (breakout, running)")
	assert.Contains(t, msg.Content, "Round 1:")
	assert.Contains(t, msg.Content, "(bye)")
	assert.Contains(t, msg.Content, "ada")

	for i, m := range started.Rounds[0].Matches {
		if m.IsContested() {
			err := bot.APIPtr.ReportMatch(ctx, created.ID.Hex(), logic.MatchReport{Match: i, WinnerID: m.P1, P1Score: ptrTo(7.0), P2Score: ptrTo(2.0)})
			require.NoError(t, err)
		}
	}
	msg = send(bot, mockSession, `$bracket "Spring Cup"`)
	assert.Contains(t, msg.Content, "7:2, winner")
}

// endregion

func TestSendErrorsAreIgnored(t *testing.T) {
	bot, _ := createTestBot(t)
	mockSession := NewMockDiscordSession()
	mockSession.ErrorToReturn = errors.New("discord unavailable")

	assert.NotPanics(t, func() { send(bot, mockSession, "$help") })
}

func ptrTo[T any](v T) *T {
	return &v
}
