package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session is one player's visit to the arcade. Every score recorded through
// it carries the session id, so a scoreboard can tell players apart.
type Session struct {
	ID        string
	Player    string
	Source    string // Pose source the session played with
	StartedAt time.Time

	store *Store
}

// StartSession creates a session with a fresh random id.
func (s *Store) StartSession(player, source string) (*Session, error) {
	id := uuid.NewString()
	if _, err := s.db.Exec(
		"INSERT INTO sessions (id, player, source) VALUES (?, ?, ?)",
		id, player, source,
	); err != nil {
		return nil, fmt.Errorf("storage: cannot start session: %w", err)
	}
	return &Session{
		ID:        id,
		Player:    player,
		Source:    source,
		StartedAt: time.Now(),
		store:     s,
	}, nil
}

// LoadSession returns a stored session, or nil when the id is unknown.
func (s *Store) LoadSession(id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("storage: malformed session id %q: %w", id, err)
	}

	sess := &Session{store: s}
	var startedAt any
	err := s.db.QueryRow(
		"SELECT id, player, source, started_at FROM sessions WHERE id = ?",
		id,
	).Scan(&sess.ID, &sess.Player, &sess.Source, &startedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load session: %w", err)
	}
	sess.StartedAt = parseTime(startedAt)
	return sess, nil
}

// RecordScore stores a final game score under this session. Fractional
// scores are floored.
func (sess *Session) RecordScore(gameID string, score float64) error {
	v, err := scoreValue(score)
	if err != nil {
		return err
	}
	_, err = sess.store.saveScore(gameID, sess.ID, v)
	return err
}

// Scores returns everything recorded in this session.
func (sess *Session) Scores() ([]ScoreEntry, error) {
	return sess.store.SessionScores(sess.ID)
}
