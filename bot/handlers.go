/* handlers.go
 * Contains testable handler methods that accept DiscordSession interface
 * Authors: Zachary Bower
 */

package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"arena-bot/api/api"
	"arena-bot/api/logic"
	"arena-bot/api/shared"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// commandTimeout bounds the API work of a single chat command
const commandTimeout = 10 * time.Second

// helpMessageHandler handles the $help command with a DiscordSession interface
func (b *Bot) helpMessageHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	var res strings.Builder
	res.WriteString("Arena Bot v1.0\n")
	res.WriteString("`$daily`: shows today's daily tournaments and how many players joined each\n")
	res.WriteString("`$join <fixture>`: joins one of today's daily tournaments, e.g. `$join sprint`. Fixture names are fuzzy matched\n")
	res.WriteString("`$results [YYYY-MM-DD]`: shows the top 10 scores of every daily tournament of that day. Defaults to yesterday (UTC)\n")
	res.WriteString("`$tournaments`: lists the tournaments that are open or running\n")
	res.WriteString("`$enter \"<tournament>\"`: enters an upcoming tournament. Names that contain two or more words need to be encased in \" (e.g. \"Spring Cup\")\n")
	res.WriteString("`$bracket \"<tournament>\"`: shows the bracket of a tournament\n")
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// dailyHandler handles the $daily command
func (b *Bot) dailyHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	fixtures, err := b.APIPtr.ListToday(ctx)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, errorReply("get today's tournaments", err))
		return
	}

	var res strings.Builder
	if len(fixtures) > 0 {
		res.WriteString(fmt.Sprintf("Daily tournaments for %s:\n", fixtures[0].Date))
	}
	for _, f := range fixtures {
		res.WriteString(fmt.Sprintf("- **%s** (`%s`, %s): %d joined\n", f.Title, f.Slug, f.Game, len(f.Participants)))
	}
	res.WriteString("Use `$join <fixture>` to take part")
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// joinHandler handles the $join command
func (b *Bot) joinHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	user := b.registerAuthor(ctx, message)

	args, err := commandArgs(message.Content)
	if err != nil || len(args) == 0 {
		session.ChannelMessageSend(message.ChannelID, "Usage: `$join <fixture>`, e.g. `$join sprint`")
		return
	}

	def, ok := logic.ResolveFixture(strings.Join(args, " "))
	if !ok {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("There is no daily tournament called %s. Use `$daily` to see today's tournaments", args[0]))
		return
	}

	if err := b.APIPtr.JoinDaily(ctx, def.Slug, user.UserID); err != nil {
		session.ChannelMessageSend(message.ChannelID, errorReply("join "+def.Title, err))
		return
	}
	session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("%s joined today's %s", user.Username, def.Title))
}

// resultsHandler handles the $results command
func (b *Bot) resultsHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	session.ChannelTyping(message.ChannelID)
	args, _ := commandArgs(message.Content)
	date := ""
	if len(args) > 0 {
		date = args[0]
	}

	results, err := b.APIPtr.GetResults(ctx, date)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, errorReply("get results", err))
		return
	}
	if len(results) == 0 {
		session.ChannelMessageSend(message.ChannelID, "No daily tournaments were played on that day")
		return
	}

	var res strings.Builder
	res.WriteString(fmt.Sprintf("Results for %s:\n", results[0].Date))
	for _, r := range results {
		res.WriteString(fmt.Sprintf("**%s**\n", r.Title))
		if len(r.Top) == 0 {
			res.WriteString("No scores\n")
			continue
		}
		for i, entry := range r.Top {
			res.WriteString(fmt.Sprintf("%d. %s - %g\n", i+1, displayName(entry.Name, entry.User), entry.Score))
		}
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// tournamentsHandler handles the $tournaments command
func (b *Bot) tournamentsHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	public, err := b.APIPtr.ListPublicTournaments(ctx)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, errorReply("list tournaments", err))
		return
	}
	if len(public) == 0 {
		session.ChannelMessageSend(message.ChannelID, "No tournaments are open right now")
		return
	}

	var res strings.Builder
	res.WriteString("Tournaments:\n")
	for _, t := range public {
		res.WriteString(fmt.Sprintf("- %s (%s, %s)\n", t.Name, t.Game, t.Status))
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// enterHandler handles the $enter command
func (b *Bot) enterHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	user := b.registerAuthor(ctx, message)

	t, ok := b.findTournament(ctx, session, message, "$enter")
	if !ok {
		return
	}

	if err := b.APIPtr.JoinTournament(ctx, t.ID, user.UserID); err != nil {
		session.ChannelMessageSend(message.ChannelID, errorReply("enter "+t.Name, err))
		return
	}
	session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("%s entered %s", user.Username, t.Name))
}

// bracketHandler handles the $bracket command
func (b *Bot) bracketHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	t, ok := b.findTournament(ctx, session, message, "$bracket")
	if !ok {
		return
	}

	session.ChannelTyping(message.ChannelID)
	view, err := b.APIPtr.GetTournament(ctx, t.ID)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, errorReply("get the bracket", err))
		return
	}
	session.ChannelMessageSend(message.ChannelID, formatBracket(view))
}

// findTournament resolves the quoted tournament name of a command, replying in the channel when it can't
func (b *Bot) findTournament(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate, command string) (api.PublicTournament, bool) {
	args, err := commandArgs(message.Content)
	if err != nil || len(args) == 0 {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Usage: `%s \"<tournament>\"`", command))
		return api.PublicTournament{}, false
	}

	t, err := b.APIPtr.FindPublicTournament(ctx, strings.Join(args, " "))
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, errorReply("find that tournament", err))
		return api.PublicTournament{}, false
	}
	return t, true
}

// registerAuthor records the author's display name in the user directory. Failing to do so does not stop the
// command
func (b *Bot) registerAuthor(ctx context.Context, message *discordgo.MessageCreate) shared.User {
	user := shared.User{UserID: message.Author.ID, Username: message.Author.Username, Role: shared.RoleUser}
	if err := b.APIPtr.RegisterUser(ctx, user); err != nil {
		log.Warn().Err(err).Str("user", user.UserID).Msg("failed to register discord user")
	}
	return user
}

func formatBracket(view api.TournamentView) string {
	var res strings.Builder
	res.WriteString(fmt.Sprintf("**%s** (%s, %s)\n", view.Name, view.Game, view.Status))
	if len(view.Rounds) == 0 {
		res.WriteString(fmt.Sprintf("Not started yet, %d entered\n", len(view.Participants)))
		return res.String()
	}

	for r, round := range view.Rounds {
		res.WriteString(fmt.Sprintf("Round %d:\n", r+1))
		for i, m := range round.Matches {
			line := fmt.Sprintf("%d. %s vs %s", i, slotName(m.P1), slotName(m.P2))
			switch {
			case m.P1 == nil || m.P2 == nil:
				line += " (bye)"
			case m.Winner != nil:
				line += fmt.Sprintf(" - %g:%g, winner %s", m.P1Score, m.P2Score, slotName(m.Winner))
			}
			res.WriteString(line + "\n")
		}
	}
	if view.Champion != nil {
		res.WriteString(fmt.Sprintf("Champion: %s\n", slotName(view.Champion)))
	}
	return res.String()
}

func slotName(identity *shared.Identity) string {
	if identity == nil {
		return "-"
	}
	return displayName(identity.Name, identity.UserID)
}

func displayName(name string, userID string) string {
	if name != "" {
		return name
	}
	return userID
}

// newMessageHandler routes messages to appropriate handlers with a DiscordSession interface
// botUserID is the bot's user ID to prevent self-responses
func (b *Bot) newMessageHandler(session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	// Prevent bot from responding to its own messages
	if message.Author.ID == botUserID {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	// Route to appropriate handler
	switch {
	case startsWith(message.Content, "$help"):
		b.helpMessageHandler(ctx, session, message)

	case startsWith(message.Content, "$daily"):
		b.dailyHandler(ctx, session, message)

	case startsWith(message.Content, "$join"):
		b.joinHandler(ctx, session, message)

	case startsWith(message.Content, "$results"):
		b.resultsHandler(ctx, session, message)

	case startsWith(message.Content, "$tournaments"):
		b.tournamentsHandler(ctx, session, message)

	case startsWith(message.Content, "$enter"):
		b.enterHandler(ctx, session, message)

	case startsWith(message.Content, "$bracket"):
		b.bracketHandler(ctx, session, message)
	}
}
