// Package storage provides the session-scoped key-value slots that hold each
// visitor's cart and contact phone.
package storage

import (
	"context"
	"errors"
	"strings"

	"github.com/nounthanith/localbrand-frontend/internal/domain/shared"
)

// ErrEmptySession is returned when a slot is addressed without a session id
var ErrEmptySession = errors.New("session id is required")

// Backend stores slot values keyed by session and slot key
type Backend interface {
	GetSlot(ctx context.Context, sessionID, key string) (value string, found bool, err error)
	SetSlot(ctx context.Context, sessionID, key, value string) error
	DeleteSlot(ctx context.Context, sessionID, key string) error
}

// SessionSlots adapts a Backend to shared.SessionSlots
type SessionSlots struct {
	backend Backend
}

// NewSessionSlots wraps a backend
func NewSessionSlots(backend Backend) *SessionSlots {
	return &SessionSlots{backend: backend}
}

// ForSession returns the slot store of one session
func (s *SessionSlots) ForSession(sessionID string) shared.SlotStore {
	return &sessionStore{backend: s.backend, sessionID: strings.TrimSpace(sessionID)}
}

type sessionStore struct {
	backend   Backend
	sessionID string
}

func (s *sessionStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.sessionID == "" {
		return "", false, ErrEmptySession
	}
	return s.backend.GetSlot(ctx, s.sessionID, key)
}

func (s *sessionStore) Set(ctx context.Context, key, value string) error {
	if s.sessionID == "" {
		return ErrEmptySession
	}
	return s.backend.SetSlot(ctx, s.sessionID, key, value)
}

func (s *sessionStore) Delete(ctx context.Context, key string) error {
	if s.sessionID == "" {
		return ErrEmptySession
	}
	return s.backend.DeleteSlot(ctx, s.sessionID, key)
}

var _ shared.SessionSlots = (*SessionSlots)(nil)
