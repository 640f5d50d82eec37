package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// document is the persisted layout: the whole store as one JSON document.
// sessionCounter only ever grows, so session ids stay unique across restarts.
type document struct {
	Sessions       map[string]*Session `json:"sessions"`
	SessionCounter int                 `json:"sessionCounter"`
}

// FileStore keeps all sessions in memory and writes the full document to
// disk on every mutation. One mutex guards the whole store; a mutation that
// fails to persist is rolled back in memory before the error is returned.
type FileStore struct {
	mu   sync.Mutex
	path string
	doc  document
}

func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}
	s := &FileStore{
		path: path,
		doc:  document{Sessions: make(map[string]*Session)},
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read store file: %w", err)
		}
		if err := s.persistLocked(); err != nil {
			return nil, err
		}
		return s, nil
	}
	if err := json.Unmarshal(b, &s.doc); err != nil {
		return nil, fmt.Errorf("decode store file: %w", err)
	}
	if s.doc.Sessions == nil {
		s.doc.Sessions = make(map[string]*Session)
	}
	return s, nil
}

func (s *FileStore) CreateSession(title string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.doc.SessionCounter + 1
	sess := &Session{
		ID:        sessionID(next),
		Title:     title,
		Messages:  []Message{},
		CreatedAt: time.Now().UTC(),
	}
	s.doc.SessionCounter = next
	s.doc.Sessions[sess.ID] = sess
	if err := s.persistLocked(); err != nil {
		delete(s.doc.Sessions, sess.ID)
		s.doc.SessionCounter = next - 1
		return nil, err
	}
	return cloneSession(sess), nil
}

func (s *FileStore) AppendMessage(sessionID string, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.doc.Sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	prev := cloneSession(sess)
	sess.Messages = append(sess.Messages, msg)
	// The second message closes the first exchange; the title is locked in
	// from the originating question at that point and never changes again.
	if len(sess.Messages) == 2 {
		sess.Title = DeriveTitle(sess.Messages[0].Content)
	}
	if err := s.persistLocked(); err != nil {
		s.doc.Sessions[sessionID] = prev
		return err
	}
	return nil
}

func (s *FileStore) GetSession(sessionID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.doc.Sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return cloneSession(sess), nil
}

func (s *FileStore) ListSessions() ([]SessionSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SessionSummary, 0, len(s.doc.Sessions))
	for _, sess := range s.doc.Sessions {
		out = append(out, SessionSummary{
			ID:           sess.ID,
			Title:        sess.Title,
			CreatedAt:    sess.CreatedAt,
			MessageCount: len(sess.Messages),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return sessionSeq(out[i].ID) > sessionSeq(out[j].ID)
	})
	return out, nil
}

func (s *FileStore) SetFeedback(sessionID, messageID, feedback string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.doc.Sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	idx := -1
	for i := range sess.Messages {
		if sess.Messages[i].ID == messageID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrMessageNotFound
	}
	prev := sess.Messages[idx].Feedback
	sess.Messages[idx].Feedback = feedback
	if err := s.persistLocked(); err != nil {
		sess.Messages[idx].Feedback = prev
		return err
	}
	return nil
}

// persistLocked writes the whole document through a temp file and rename so
// a crash mid-write never leaves a torn file behind. Caller holds the mutex.
func (s *FileStore) persistLocked() error {
	b, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("commit store: %w", err)
	}
	return nil
}

// sessionSeq extracts the counter from a session-<n> id; ids that do not
// match sort last.
func sessionSeq(id string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(id, "session-"))
	if err != nil {
		return -1
	}
	return n
}
