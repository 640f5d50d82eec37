package chat

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/rayulu7/chatbot/internal/catalog"
	"github.com/rayulu7/chatbot/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := store.NewFileStore(filepath.Join(t.TempDir(), "sessions.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return NewService(catalog.Builtin(), st)
}

func TestStartChatTitles(t *testing.T) {
	svc := newTestService(t)

	sess, err := svc.StartChat("")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if sess.Title != "New Chat" {
		t.Fatalf("title = %q, want New Chat", sess.Title)
	}

	sess, err = svc.StartChat("How does machine learning work in practice today")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if sess.Title != "How does machine learning work" {
		t.Fatalf("title = %q, want derived five-word title", sess.Title)
	}
}

func TestStartChatIDsIncrease(t *testing.T) {
	svc := newTestService(t)
	a, err := svc.StartChat("")
	if err != nil {
		t.Fatalf("start a: %v", err)
	}
	b, err := svc.StartChat("")
	if err != nil {
		t.Fatalf("start b: %v", err)
	}
	if a.ID == b.ID {
		t.Fatalf("session ids collide: %q", a.ID)
	}
	if a.ID != "session-1" || b.ID != "session-2" {
		t.Fatalf("ids = %q, %q; want session-1, session-2", a.ID, b.ID)
	}
}

func TestAskRecordsExchange(t *testing.T) {
	svc := newTestService(t)
	sess, _ := svc.StartChat("")

	reply, err := svc.Ask(sess.ID, "What are you")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if reply.Type != store.RoleAssistant {
		t.Fatalf("reply type = %q, want assistant", reply.Type)
	}
	if reply.Table == nil {
		t.Fatal("assistant reply has no table")
	}

	got, err := svc.GetSession(sess.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Messages) != 2 {
		t.Fatalf("message count = %d, want 2", len(got.Messages))
	}
	if got.Messages[0].Type != store.RoleUser || got.Messages[0].Content != "What are you" {
		t.Fatalf("first message = %+v, want the user question", got.Messages[0])
	}
	if got.Messages[1].ID != reply.ID {
		t.Fatal("returned assistant message is not the stored one")
	}
	if got.Title != "What are you" {
		t.Fatalf("title = %q, want derived from the first question", got.Title)
	}
}

func TestAskValidation(t *testing.T) {
	svc := newTestService(t)
	sess, _ := svc.StartChat("")

	if _, err := svc.Ask(sess.ID, ""); !errors.Is(err, ErrEmptyQuestion) {
		t.Fatalf("err = %v, want ErrEmptyQuestion", err)
	}
	if _, err := svc.Ask(sess.ID, "   "); !errors.Is(err, ErrEmptyQuestion) {
		t.Fatalf("err = %v, want ErrEmptyQuestion", err)
	}
	if _, err := svc.Ask("session-99", "hello"); !errors.Is(err, store.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestTitleFixedAfterFirstExchange(t *testing.T) {
	svc := newTestService(t)
	sess, _ := svc.StartChat("")

	if _, err := svc.Ask(sess.ID, "show me products"); err != nil {
		t.Fatalf("first ask: %v", err)
	}
	if _, err := svc.Ask(sess.ID, "now the employees please"); err != nil {
		t.Fatalf("second ask: %v", err)
	}
	got, _ := svc.GetSession(sess.ID)
	if got.Title != "show me products" {
		t.Fatalf("title = %q, want the first question's title", got.Title)
	}
	if len(got.Messages) != 4 {
		t.Fatalf("message count = %d, want 4", len(got.Messages))
	}
}

func TestSetFeedback(t *testing.T) {
	svc := newTestService(t)
	sess, _ := svc.StartChat("")
	reply, _ := svc.Ask(sess.ID, "hello")

	if err := svc.SetFeedback(sess.ID, reply.ID, "like"); err != nil {
		t.Fatalf("set feedback: %v", err)
	}
	got, _ := svc.GetSession(sess.ID)
	if got.Messages[1].Feedback != "like" {
		t.Fatalf("feedback = %q, want like", got.Messages[1].Feedback)
	}

	if err := svc.SetFeedback(sess.ID, reply.ID, "meh"); !errors.Is(err, ErrInvalidFeedback) {
		t.Fatalf("err = %v, want ErrInvalidFeedback", err)
	}
	if err := svc.SetFeedback(sess.ID, "msg-unknown", "like"); !errors.Is(err, store.ErrMessageNotFound) {
		t.Fatalf("err = %v, want ErrMessageNotFound", err)
	}
}
