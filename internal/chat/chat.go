package chat

// Roles of a conversation message, matching the chat-completions wire format.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single conversational turn. Immutable once created.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
