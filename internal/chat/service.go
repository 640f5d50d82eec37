package chat

import (
	"errors"
	"strings"
	"time"

	"github.com/rayulu7/chatbot/internal/catalog"
	"github.com/rayulu7/chatbot/internal/store"
)

var (
	ErrEmptyQuestion   = errors.New("question is required")
	ErrInvalidFeedback = errors.New("feedback must be 'like' or 'dislike'")
)

// defaultTitle names a session started without a question.
const defaultTitle = "New Chat"

// Service wires the response catalog and the session store into the
// request-level chat operations. It holds no state of its own.
type Service struct {
	catalog *catalog.Catalog
	store   store.Store
}

func NewService(cat *catalog.Catalog, st store.Store) *Service {
	return &Service{catalog: cat, store: st}
}

// StartChat creates a fresh session. The title comes from the question when
// one is given, otherwise the session starts as "New Chat" until the first
// exchange names it.
func (s *Service) StartChat(question string) (*store.Session, error) {
	title := defaultTitle
	if strings.TrimSpace(question) != "" {
		title = store.DeriveTitle(question)
	}
	return s.store.CreateSession(title)
}

// Ask resolves a response for the question and records the exchange: the
// user message first, then the assistant message, both stamped at call time.
// The returned message is the assistant's.
func (s *Service) Ask(sessionID, question string) (*store.Message, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuestion
	}

	res := s.catalog.Resolve(question)

	now := time.Now().UTC()
	userMsg := store.Message{
		ID:        store.NewMessageID(store.RoleUser, now),
		Type:      store.RoleUser,
		Content:   question,
		Timestamp: now,
	}
	if err := s.store.AppendMessage(sessionID, userMsg); err != nil {
		return nil, err
	}

	assistantMsg := store.Message{
		ID:        store.NewMessageID(store.RoleAssistant, res.Timestamp),
		Type:      store.RoleAssistant,
		Content:   res.Content,
		Table:     res.Table,
		Timestamp: res.Timestamp,
	}
	if err := s.store.AppendMessage(sessionID, assistantMsg); err != nil {
		return nil, err
	}
	return &assistantMsg, nil
}

func (s *Service) ListSessions() ([]store.SessionSummary, error) {
	return s.store.ListSessions()
}

func (s *Service) GetSession(sessionID string) (*store.Session, error) {
	return s.store.GetSession(sessionID)
}

// SetFeedback records a like/dislike on an assistant message. Setting the
// same value again is a no-op that still succeeds.
func (s *Service) SetFeedback(sessionID, messageID, feedback string) error {
	if feedback != store.FeedbackLike && feedback != store.FeedbackDislike {
		return ErrInvalidFeedback
	}
	return s.store.SetFeedback(sessionID, messageID, feedback)
}
