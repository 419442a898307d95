/* mock_session.go
 * Contains mock implementation of DiscordSession for testing
 * Authors: Zachary Bower
 */

package bot

import (
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// MockDiscordSession records what the handlers send instead of talking to discord
type MockDiscordSession struct {
	mu sync.Mutex

	SentMessages   []MockMessage
	TypingChannels []string
	// ErrorToReturn makes every send fail
	ErrorToReturn error
}

// MockMessage represents a message sent to a channel
type MockMessage struct {
	ChannelID string
	Content   string
}

func NewMockDiscordSession() *MockDiscordSession {
	return &MockDiscordSession{SentMessages: make([]MockMessage, 0)}
}

func (m *MockDiscordSession) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SentMessages = append(m.SentMessages, MockMessage{ChannelID: channelID, Content: content})
	return &discordgo.Message{ID: "mock_message_id", ChannelID: channelID, Content: content}, nil
}

func (m *MockDiscordSession) ChannelTyping(channelID string, options ...discordgo.RequestOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TypingChannels = append(m.TypingChannels, channelID)
	return nil
}

// GetLastMessage returns the last message sent, or empty MockMessage if none
func (m *MockDiscordSession) GetLastMessage() MockMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.SentMessages) == 0 {
		return MockMessage{}
	}
	return m.SentMessages[len(m.SentMessages)-1]
}

// Transcript joins the content of every sent message
func (m *MockDiscordSession) Transcript() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	parts := make([]string, len(m.SentMessages))
	for i, msg := range m.SentMessages {
		parts[i] = msg.Content
	}
	return strings.Join(parts, "\n")
}

// ClearMessages clears all stored messages
func (m *MockDiscordSession) ClearMessages() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SentMessages = nil
	m.TypingChannels = nil
}
