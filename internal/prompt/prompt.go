// Package prompt builds the message sequence sent to the language model.
package prompt

import (
	"fmt"

	"github.com/policypulse/policypulse/internal/chat"
)

// Assemble produces the full prompt: one system message carrying the standing
// instructions and the retrieved context, the user's conversation history
// unmodified and in order, and the current question as the final user turn.
//
// History is trusted to be bounded already; truncation is the memory store's
// job, not this package's.
func Assemble(contextText string, history []chat.Message, question string) []chat.Message {
	messages := make([]chat.Message, 0, len(history)+2)
	messages = append(messages, chat.Message{
		Role:    chat.RoleSystem,
		Content: fmt.Sprintf(systemTemplate, contextText),
	})
	messages = append(messages, history...)
	messages = append(messages, chat.Message{
		Role:    chat.RoleUser,
		Content: question,
	})
	return messages
}
