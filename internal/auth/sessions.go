// Package auth mediates login, signup and logout and holds the persisted
// session identities. A session is a bearer token mapped to a user snapshot
// in the slot store; it survives restarts and is removed on logout.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/safar/shophub/internal/database"
	"github.com/safar/shophub/internal/models"
	"github.com/safar/shophub/internal/slot"
)

// Registry is the credential store behind login and signup. The Postgres
// implementation lives in the users package; tests inject a fake.
type Registry interface {
	Create(ctx context.Context, email, password, name string, role models.Role) (*models.User, error)
	Verify(ctx context.Context, email, password string) (*models.User, error)
}

type Session struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type Sessions struct {
	registry Registry
	slots    slot.Store
}

func NewSessions(registry Registry, slots slot.Store) *Sessions {
	return &Sessions{registry: registry, slots: slots}
}

// Login validates the credential pair against the registry. On failure the
// returned error carries a human-readable reason and nothing is persisted.
func (s *Sessions) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.registry.Verify(ctx, email, password)
	if err != nil {
		return nil, err
	}

	return s.establish(ctx, user)
}

// Signup rejects an already-registered email with database.ErrEmailTaken;
// otherwise it creates the identity and immediately establishes it as the
// current session.
func (s *Sessions) Signup(ctx context.Context, email, password, name string, role models.Role) (*Session, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}

	user, err := s.registry.Create(ctx, email, password, name, role)
	if err != nil {
		return nil, err
	}

	return s.establish(ctx, user)
}

// Authenticate resolves a bearer token to its user. A missing or malformed
// session slot means the caller is anonymous.
func (s *Sessions) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, database.ErrUserNotFound
	}

	data, err := s.slots.Read(ctx, sessionKey(token))
	if err != nil {
		if err != slot.ErrNotFound {
			log.Printf("Reading session slot: %v", err)
		}
		return nil, database.ErrUserNotFound
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		log.Printf("Discarding malformed session slot: %v", err)
		return nil, database.ErrUserNotFound
	}

	return &session.User, nil
}

// Logout clears the persisted session. Logging out an unknown token is a
// no-op.
func (s *Sessions) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := s.slots.Clear(ctx, sessionKey(token)); err != nil {
		log.Printf("Clearing session slot: %v", err)
	}
}

func (s *Sessions) establish(ctx context.Context, user *models.User) (*Session, error) {
	session := &Session{
		Token: uuid.NewString(),
		User:  *user,
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("serialize session: %w", err)
	}
	if err := s.slots.Write(ctx, sessionKey(session.Token), data); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	return session, nil
}

func sessionKey(token string) string {
	return "session:" + token
}
