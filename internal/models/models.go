package models

import "time"

// ChatType tags a thread with the flow it was opened under.
type ChatType string

const (
	ChatTypeBusiness ChatType = "business"
	ChatTypeCouple   ChatType = "couple"
)

// Role of a stored chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Thread is a persisted conversation container owned by one user.
type Thread struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	ChatType  ChatType  `json:"chat_type"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageMeta records how a turn was routed.
type MessageMeta struct {
	Flow   string `json:"flow"`
	Intent string `json:"intent"`
	Stage  string `json:"stage"`
}

// Message is one append-only entry in a thread.
type Message struct {
	ID        string      `json:"id"`
	ThreadID  string      `json:"thread_id"`
	UserID    string      `json:"user_id"`
	Role      Role        `json:"role"`
	Content   string      `json:"content"`
	Meta      MessageMeta `json:"meta"`
	CreatedAt time.Time   `json:"created_at"`
}
