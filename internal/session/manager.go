package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Session is the state of one visitor bound to its storage.
type Session struct {
	ID    string
	State *State
	store Store
}

func (s *Session) Save(ctx context.Context) error {
	return s.store.Save(ctx, s.ID, s.State)
}

// Clear drops all stored state. The session id stays valid.
func (s *Session) Clear(ctx context.Context) error {
	s.State.Reset()
	return s.store.Delete(ctx, s.ID)
}

type Manager struct {
	store  Store
	tokens *TokenIssuer
}

func NewManager(store Store, tokens *TokenIssuer) *Manager {
	return &Manager{store: store, tokens: tokens}
}

// Start resumes the session referenced by token or opens a new one. When a
// new session is opened its signed token is returned for the client.
func (m *Manager) Start(ctx context.Context, token string) (*Session, string, error) {
	if token != "" {
		if id, err := m.tokens.Parse(token); err == nil {
			state, err := m.store.Load(ctx, id)
			if err != nil {
				return nil, "", err
			}
			return &Session{ID: id, State: state, store: m.store}, "", nil
		}
	}

	id := uuid.NewString()
	signed, err := m.tokens.Issue(id)
	if err != nil {
		return nil, "", fmt.Errorf("start session: %w", err)
	}
	return &Session{ID: id, State: &State{}, store: m.store}, signed, nil
}
