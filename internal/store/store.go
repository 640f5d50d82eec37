package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Feedback values.
const (
	FeedbackLike    = "like"
	FeedbackDislike = "dislike"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrMessageNotFound = errors.New("message not found")
)

// Table is a structured tabular payload attached to an assistant message.
// Every row has exactly len(Headers) cells.
type Table struct {
	Headers     []string   `json:"headers" yaml:"headers"`
	Rows        [][]string `json:"rows" yaml:"rows"`
	Description string     `json:"description" yaml:"description"`
}

// Message is one turn in a conversation. Table and Feedback are only ever
// set on assistant messages.
type Message struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Table     *Table    `json:"table,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Feedback  string    `json:"feedback,omitempty"`
}

// Session is one conversation thread. Messages are append-only; the only
// post-append mutation is setting Feedback on an assistant message.
type Session struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionSummary is the ListSessions projection.
type SessionSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"createdAt"`
	MessageCount int       `json:"messageCount"`
}

// Store is the durable home of all session state. Implementations serialize
// every operation behind a single mutual-exclusion boundary and persist
// mutations before returning; a failed persist leaves no trace in memory.
type Store interface {
	CreateSession(title string) (*Session, error)
	AppendMessage(sessionID string, msg Message) error
	GetSession(sessionID string) (*Session, error)
	ListSessions() ([]SessionSummary, error)
	SetFeedback(sessionID, messageID, feedback string) error
}

const (
	titleMaxWords = 5
	titleMaxChars = 30
)

// DeriveTitle builds a session title from a question: the first five
// whitespace-separated words, truncated to 30 characters with a "..."
// marker when longer.
func DeriveTitle(question string) string {
	words := strings.Fields(question)
	if len(words) > titleMaxWords {
		words = words[:titleMaxWords]
	}
	title := strings.Join(words, " ")
	if r := []rune(title); len(r) > titleMaxChars {
		return string(r[:titleMaxChars]) + "..."
	}
	return title
}

// NewMessageID returns a unique message id. It keeps the readable
// msg-<millis>-<role> shape but appends a random token so that two messages
// created in the same millisecond cannot collide.
func NewMessageID(role string, at time.Time) string {
	token := uuid.NewString()[:8]
	return fmt.Sprintf("msg-%d-%s-%s", at.UnixMilli(), role, token)
}

func sessionID(n int) string {
	return fmt.Sprintf("session-%d", n)
}

func cloneSession(s *Session) *Session {
	cp := *s
	cp.Messages = append([]Message(nil), s.Messages...)
	return &cp
}
