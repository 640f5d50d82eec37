package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sessions.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return s, path
}

func userMessage(content string) Message {
	now := time.Now().UTC()
	return Message{
		ID:        NewMessageID(RoleUser, now),
		Type:      RoleUser,
		Content:   content,
		Timestamp: now,
	}
}

func assistantMessage(content string) Message {
	now := time.Now().UTC()
	return Message{
		ID:        NewMessageID(RoleAssistant, now),
		Type:      RoleAssistant,
		Content:   content,
		Timestamp: now,
	}
}

func TestCreateSessionSequentialIDs(t *testing.T) {
	s, _ := newTestStore(t)
	for i, want := range []string{"session-1", "session-2", "session-3"} {
		sess, err := s.CreateSession("New Chat")
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if sess.ID != want {
			t.Fatalf("session id = %q, want %q", sess.ID, want)
		}
		if sess.Messages == nil || len(sess.Messages) != 0 {
			t.Fatalf("new session should have an empty message list")
		}
	}
}

func TestCounterSurvivesRestart(t *testing.T) {
	s, path := newTestStore(t)
	if _, err := s.CreateSession("first"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.CreateSession("second"); err != nil {
		t.Fatalf("create: %v", err)
	}

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	sess, err := reopened.CreateSession("third")
	if err != nil {
		t.Fatalf("create after reopen: %v", err)
	}
	if sess.ID != "session-3" {
		t.Fatalf("counter reused after restart: got %q", sess.ID)
	}
	if _, err := reopened.GetSession("session-1"); err != nil {
		t.Fatalf("session-1 lost across restart: %v", err)
	}
}

func TestAppendRetitlesOnSecondMessage(t *testing.T) {
	s, _ := newTestStore(t)
	sess, err := s.CreateSession("New Chat")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.AppendMessage(sess.ID, userMessage("What are you")); err != nil {
		t.Fatalf("append user: %v", err)
	}
	got, _ := s.GetSession(sess.ID)
	if got.Title != "New Chat" {
		t.Fatalf("title changed before the exchange completed: %q", got.Title)
	}

	if err := s.AppendMessage(sess.ID, assistantMessage("answer")); err != nil {
		t.Fatalf("append assistant: %v", err)
	}
	got, _ = s.GetSession(sess.ID)
	if got.Title != "What are you" {
		t.Fatalf("title = %q, want %q", got.Title, "What are you")
	}

	// Later messages never change the title again.
	if err := s.AppendMessage(sess.ID, userMessage("completely different question")); err != nil {
		t.Fatalf("append third: %v", err)
	}
	if err := s.AppendMessage(sess.ID, assistantMessage("another answer")); err != nil {
		t.Fatalf("append fourth: %v", err)
	}
	got, _ = s.GetSession(sess.ID)
	if got.Title != "What are you" {
		t.Fatalf("title was re-derived after the first exchange: %q", got.Title)
	}
	if len(got.Messages) != 4 {
		t.Fatalf("message count = %d, want 4", len(got.Messages))
	}
}

func TestAppendUnknownSession(t *testing.T) {
	s, _ := newTestStore(t)
	err := s.AppendMessage("session-99", userMessage("hello"))
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestListSessionsNewestFirst(t *testing.T) {
	s, _ := newTestStore(t)
	var ids []string
	for _, title := range []string{"A", "B", "C"} {
		sess, err := s.CreateSession(title)
		if err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
		ids = append(ids, sess.ID)
	}

	list, err := s.ListSessions()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	// C then B then A: newest first, creation-time ties broken by counter.
	for i, want := range []string{ids[2], ids[1], ids[0]} {
		if list[i].ID != want {
			t.Fatalf("list[%d] = %q, want %q", i, list[i].ID, want)
		}
	}
}

func TestListSessionsMessageCount(t *testing.T) {
	s, _ := newTestStore(t)
	sess, _ := s.CreateSession("New Chat")
	_ = s.AppendMessage(sess.ID, userMessage("q"))
	_ = s.AppendMessage(sess.ID, assistantMessage("a"))

	list, err := s.ListSessions()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list[0].MessageCount != 2 {
		t.Fatalf("messageCount = %d, want 2", list[0].MessageCount)
	}
}

func TestSetFeedback(t *testing.T) {
	s, _ := newTestStore(t)
	sess, _ := s.CreateSession("New Chat")
	_ = s.AppendMessage(sess.ID, userMessage("q"))
	am := assistantMessage("a")
	_ = s.AppendMessage(sess.ID, am)

	if err := s.SetFeedback(sess.ID, am.ID, FeedbackLike); err != nil {
		t.Fatalf("set feedback: %v", err)
	}
	got, _ := s.GetSession(sess.ID)
	if got.Messages[1].Feedback != FeedbackLike {
		t.Fatalf("feedback = %q, want like", got.Messages[1].Feedback)
	}
	if got.Messages[0].Feedback != "" {
		t.Fatal("feedback leaked onto the user message")
	}

	// Idempotent, and the last value always wins.
	if err := s.SetFeedback(sess.ID, am.ID, FeedbackLike); err != nil {
		t.Fatalf("repeat feedback: %v", err)
	}
	if err := s.SetFeedback(sess.ID, am.ID, FeedbackDislike); err != nil {
		t.Fatalf("overwrite feedback: %v", err)
	}
	got, _ = s.GetSession(sess.ID)
	if got.Messages[1].Feedback != FeedbackDislike {
		t.Fatalf("feedback = %q, want dislike", got.Messages[1].Feedback)
	}
}

func TestSetFeedbackNotFound(t *testing.T) {
	s, _ := newTestStore(t)
	sess, _ := s.CreateSession("New Chat")

	if err := s.SetFeedback("session-99", "msg-1", FeedbackLike); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
	if err := s.SetFeedback(sess.ID, "msg-unknown", FeedbackLike); !errors.Is(err, ErrMessageNotFound) {
		t.Fatalf("err = %v, want ErrMessageNotFound", err)
	}
}

func TestPersistFailureRollsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store", "sessions.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	sess, err := s.CreateSession("New Chat")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_ = s.AppendMessage(sess.ID, userMessage("q"))

	// Destroy the data directory so the next persist cannot commit.
	if err := os.RemoveAll(filepath.Dir(path)); err != nil {
		t.Fatalf("remove data dir: %v", err)
	}

	if _, err := s.CreateSession("doomed"); err == nil {
		t.Fatal("CreateSession succeeded with no durable storage")
	}
	if _, err := s.GetSession("session-2"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("failed create left state behind: %v", err)
	}

	if err := s.AppendMessage(sess.ID, assistantMessage("a")); err == nil {
		t.Fatal("AppendMessage succeeded with no durable storage")
	}
	got, _ := s.GetSession(sess.ID)
	if len(got.Messages) != 1 {
		t.Fatalf("failed append left %d messages, want 1", len(got.Messages))
	}
	if got.Title != "New Chat" {
		t.Fatalf("failed append re-derived the title: %q", got.Title)
	}
}

func TestGetSessionReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t)
	sess, _ := s.CreateSession("New Chat")
	_ = s.AppendMessage(sess.ID, userMessage("q"))

	got, _ := s.GetSession(sess.ID)
	got.Title = "hacked"
	got.Messages[0].Content = "hacked"

	again, _ := s.GetSession(sess.ID)
	if again.Title == "hacked" || again.Messages[0].Content == "hacked" {
		t.Fatal("mutating a returned session leaked into the store")
	}
}
