package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook/internal/constants"
)

// ErrNoSession is returned when no valid session token file exists.
var ErrNoSession = errors.New("not logged in")

// Session is the on-disk record a successful login leaves behind. Mutating
// commands require one; the token itself is opaque.
type Session struct {
	Username  string `json:"username"`
	Token     string `json:"token"`
	CreatedAt int64  `json:"created_at"` // epoch millis
}

func sessionPath(configDir string) string {
	return filepath.Join(configDir, constants.DefaultSessionFileName)
}

// WriteSession records a fresh session for username under configDir.
func WriteSession(configDir, username string) (Session, error) {
	session := Session{
		Username:  username,
		Token:     uuid.NewString(),
		CreatedAt: time.Now().UnixMilli(),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return Session{}, fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return Session{}, fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(sessionPath(configDir), data, 0600); err != nil {
		return Session{}, fmt.Errorf("failed to write session file: %w", err)
	}
	return session, nil
}

// ReadSession loads the current session, or ErrNoSession when none exists
// or the file is unreadable.
func ReadSession(configDir string) (Session, error) {
	data, err := os.ReadFile(sessionPath(configDir))
	if err != nil {
		return Session{}, ErrNoSession
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return Session{}, ErrNoSession
	}
	if session.Username == "" || session.Token == "" {
		return Session{}, ErrNoSession
	}
	return session, nil
}

// ClearSession removes the session file. Clearing an absent session is not
// an error.
func ClearSession(configDir string) error {
	err := os.Remove(sessionPath(configDir))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
