// Package session provides a gorilla/sessions store persisted in the same
// SQLite database as the shop data, so deployments stay single-file.
package session

import (
	"bytes"
	"database/sql"
	"encoding/gob"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

const defaultMaxAge = 86400 * 30 // 30 days

// SQLiteStore implements sessions.Store on top of the sessions table.
// Cookies carry only the signed session id; values live in the database.
type SQLiteStore struct {
	db      *sql.DB
	Codecs  []securecookie.Codec
	Options *sessions.Options
}

var _ sessions.Store = (*SQLiteStore)(nil)

func NewSQLiteStore(db *sql.DB, keyPairs ...[]byte) *SQLiteStore {
	return &SQLiteStore{
		db:     db,
		Codecs: securecookie.CodecsFromPairs(keyPairs...),
		Options: &sessions.Options{
			Path:   "/",
			MaxAge: defaultMaxAge,
		},
	}
}

func (s *SQLiteStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New returns a session for the request, loading persisted values when the
// cookie references a live database row. A missing or expired row yields a
// fresh session rather than an error.
func (s *SQLiteStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.Options
	session.Options = &opts
	session.IsNew = true

	cookie, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}
	if err := securecookie.DecodeMulti(name, cookie.Value, &session.ID, s.Codecs...); err != nil {
		return session, nil
	}
	if err := s.load(session); err != nil {
		if err != sql.ErrNoRows {
			return session, fmt.Errorf("load session: %w", err)
		}
		return session, nil
	}
	session.IsNew = false
	return session, nil
}

// Save persists the session and writes the signed id cookie. MaxAge < 0
// deletes the row and expires the cookie.
func (s *SQLiteStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if _, err := s.db.Exec(`DELETE FROM sessions WHERE id = ?`, session.ID); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = uuid.New().String()
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(session.Values); err != nil {
		return fmt.Errorf("encode session values: %w", err)
	}
	expiresAt := time.Now().Add(time.Duration(session.Options.MaxAge) * time.Second)

	if _, err := s.db.Exec(`
		INSERT INTO sessions (id, data, expires_at) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET data = excluded.data, expires_at = excluded.expires_at`,
		session.ID, buf.Bytes(), expiresAt.UTC()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.Codecs...)
	if err != nil {
		return fmt.Errorf("encode session cookie: %w", err)
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

func (s *SQLiteStore) load(session *sessions.Session) error {
	var data []byte
	err := s.db.QueryRow(
		`SELECT data FROM sessions WHERE id = ? AND expires_at > ?`,
		session.ID, time.Now().UTC()).Scan(&data)
	if err != nil {
		return err
	}
	return gob.NewDecoder(bytes.NewReader(data)).Decode(&session.Values)
}

// DeleteExpired removes sessions past their expiry.
func (s *SQLiteStore) DeleteExpired() error {
	_, err := s.db.Exec(`DELETE FROM sessions WHERE expires_at <= ?`, time.Now().UTC())
	return err
}

// StartCleanup deletes expired sessions on the given interval until the
// returned stop function is called.
func (s *SQLiteStore) StartCleanup(interval time.Duration) (stop func()) {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := s.DeleteExpired(); err != nil {
					slog.Error("Session cleanup failed", "error", err)
				}
			case <-done:
				return
			}
		}
	}()
	return func() { close(done) }
}
