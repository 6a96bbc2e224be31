package model

import "encoding/json"

// Role identifies who wrote a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"

	// roleLegacyBot is how older transcripts tagged assistant replies.
	roleLegacyBot Role = "bot"
)

// ChatMessage is one entry of the assistant transcript.
type ChatMessage struct {
	Role Role   `json:"role"`
	Text string `json:"message"`
}

// UnmarshalJSON decodes a message, mapping the legacy "bot" role to
// RoleAssistant.
func (m *ChatMessage) UnmarshalJSON(data []byte) error {
	type raw ChatMessage
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	if r.Role == roleLegacyBot {
		r.Role = RoleAssistant
	}
	*m = ChatMessage(r)
	return nil
}

// Valid reports whether the role is known.
func (m ChatMessage) Valid() bool {
	return m.Role == RoleUser || m.Role == RoleAssistant
}
