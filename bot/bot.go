/* bot.go
 * Contains the Bot struct and the helpers shared by the command handlers. Requires a discord bot token and APIPtr,
 * both of which are passed in from main.go
 * Authors: Zachary Bower
 */

package bot

import (
	"errors"
	"fmt"
	"strings"

	"arena-bot/api/api"
	"arena-bot/api/shared"

	"github.com/go-andiamo/splitter"
	"github.com/rs/zerolog/log"
)

type Bot struct {
	BotToken string
	APIPtr   *api.API
}

func NewBot(botToken string, apiPtr *api.API) (*Bot, error) {
	if botToken == "" {
		return nil, fmt.Errorf("botToken is required but none was provided")
	}

	return &Bot{
		BotToken: botToken,
		APIPtr:   apiPtr,
	}, nil
}

// Helper function to check if a string starts with a given substring
// Preconditions: Recieves an input string and a substring
// Postconditions: Returns true if the substring is at the start of the string, else returns false
func startsWith(inputString string, substring string) bool {
	return strings.HasPrefix(inputString, substring)
}

// commandArgs splits a message into its arguments after the command word. Arguments containing spaces must be
// wrapped in double quotes, e.g. $enter "Spring Cup"
func commandArgs(content string) ([]string, error) {
	spaceSplitter, err := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	if err != nil {
		return nil, err
	}
	parts, err := spaceSplitter.Split(strings.TrimSpace(content))
	if err != nil {
		return nil, err
	}
	if len(parts) < 2 {
		return nil, nil
	}

	var args []string
	for _, p := range parts[1:] {
		p = strings.TrimSpace(strings.ReplaceAll(p, "\"", ""))
		if p != "" {
			args = append(args, p)
		}
	}
	return args, nil
}

// errorReply turns an API error into the message shown in the channel. Unexpected errors are logged and replaced
// with a generic message
func errorReply(action string, err error) string {
	switch {
	case errors.Is(err, shared.ErrValidation),
		errors.Is(err, shared.ErrNotFound),
		errors.Is(err, shared.ErrInvalidState),
		errors.Is(err, shared.ErrAuthorization):
		return fmt.Sprintf("Could not %s: %s", action, err)
	default:
		log.Error().Err(err).Str("action", action).Msg("bot command failed")
		return fmt.Sprintf("An error occured trying to %s", action)
	}
}
