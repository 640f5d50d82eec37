package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rayulu7/chatbot/internal/db"
)

// DatabaseStore keeps session state in PostgreSQL. Each session is one row
// with its messages as a JSONB column, so a mutation is a single transaction
// and the atomic-persist contract holds without extra bookkeeping. The
// session counter lives in its own single-row table and is bumped inside the
// same transaction that inserts the session.
type DatabaseStore struct {
	db *db.DB
}

func NewDatabaseStore(database *db.DB) *DatabaseStore {
	return &DatabaseStore{db: database}
}

func (ds *DatabaseStore) CreateSession(title string) (*Session, error) {
	tx, err := ds.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin create session: %w", err)
	}
	defer tx.Rollback()

	var seq int
	if err := tx.QueryRow(
		`UPDATE session_counter SET value = value + 1 RETURNING value`,
	).Scan(&seq); err != nil {
		return nil, fmt.Errorf("advance session counter: %w", err)
	}

	sess := &Session{
		ID:        sessionID(seq),
		Title:     title,
		Messages:  []Message{},
		CreatedAt: time.Now().UTC(),
	}
	if _, err := tx.Exec(
		`INSERT INTO sessions (id, seq, title, created_at, messages) VALUES ($1, $2, $3, $4, '[]')`,
		sess.ID, seq, sess.Title, sess.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create session: %w", err)
	}
	return sess, nil
}

func (ds *DatabaseStore) AppendMessage(sessionID string, msg Message) error {
	tx, err := ds.db.Begin()
	if err != nil {
		return fmt.Errorf("begin append: %w", err)
	}
	defer tx.Rollback()

	msgs, err := lockedMessages(tx, sessionID)
	if err != nil {
		return err
	}
	msgs = append(msgs, msg)

	if len(msgs) == 2 {
		if _, err := tx.Exec(
			`UPDATE sessions SET title = $1 WHERE id = $2`,
			DeriveTitle(msgs[0].Content), sessionID,
		); err != nil {
			return fmt.Errorf("update title: %w", err)
		}
	}
	if err := writeMessages(tx, sessionID, msgs); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append: %w", err)
	}
	return nil
}

func (ds *DatabaseStore) GetSession(sessionID string) (*Session, error) {
	var (
		sess Session
		raw  []byte
	)
	err := ds.db.QueryRow(
		`SELECT id, title, created_at, messages FROM sessions WHERE id = $1`,
		sessionID,
	).Scan(&sess.ID, &sess.Title, &sess.CreatedAt, &raw)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if err := json.Unmarshal(raw, &sess.Messages); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	if sess.Messages == nil {
		sess.Messages = []Message{}
	}
	return &sess, nil
}

func (ds *DatabaseStore) ListSessions() ([]SessionSummary, error) {
	rows, err := ds.db.Query(
		`SELECT id, title, created_at, jsonb_array_length(messages)
		 FROM sessions ORDER BY created_at DESC, seq DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	out := []SessionSummary{}
	for rows.Next() {
		var s SessionSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.CreatedAt, &s.MessageCount); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}

func (ds *DatabaseStore) SetFeedback(sessionID, messageID, feedback string) error {
	tx, err := ds.db.Begin()
	if err != nil {
		return fmt.Errorf("begin feedback: %w", err)
	}
	defer tx.Rollback()

	msgs, err := lockedMessages(tx, sessionID)
	if err != nil {
		return err
	}
	idx := -1
	for i := range msgs {
		if msgs[i].ID == messageID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrMessageNotFound
	}
	msgs[idx].Feedback = feedback

	if err := writeMessages(tx, sessionID, msgs); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit feedback: %w", err)
	}
	return nil
}

// lockedMessages reads a session's message list under FOR UPDATE so two
// mutations on the same session cannot interleave.
func lockedMessages(tx *sql.Tx, sessionID string) ([]Message, error) {
	var raw []byte
	err := tx.QueryRow(
		`SELECT messages FROM sessions WHERE id = $1 FOR UPDATE`,
		sessionID,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock session: %w", err)
	}
	var msgs []Message
	if err := json.Unmarshal(raw, &msgs); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	return msgs, nil
}

func writeMessages(tx *sql.Tx, sessionID string, msgs []Message) error {
	raw, err := json.Marshal(msgs)
	if err != nil {
		return fmt.Errorf("encode messages: %w", err)
	}
	if _, err := tx.Exec(
		`UPDATE sessions SET messages = $1 WHERE id = $2`, raw, sessionID,
	); err != nil {
		return fmt.Errorf("update messages: %w", err)
	}
	return nil
}
