package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/folio/folio-go/internal/model"
)

const (
	userKey  = "user"
	adminKey = "admin"
)

var (
	ErrNotSignedIn = errors.New("not signed in")
	ErrNotAdmin    = errors.New("admin sign-in required")
)

// State is the derived session state.
type State int

const (
	Anonymous State = iota
	SignedInUser
	SignedInAdmin
)

func (s State) String() string {
	switch s {
	case SignedInUser:
		return "signed in as user"
	case SignedInAdmin:
		return "signed in as admin"
	default:
		return "anonymous"
	}
}

// Authenticator performs the remote login calls.
type Authenticator interface {
	UserAuth(ctx context.Context, email, password string) (model.Identity, error)
	AdminAuth(ctx context.Context, email, password string) (model.Identity, error)
}

// Session caches the signed-in user and admin identities. The two slots are
// independent and may both be set.
type Session struct {
	mu    sync.Mutex
	store Store
	auth  Authenticator
	user  *model.Identity
	admin *model.Identity
}

// New creates an empty Session. Call Restore to load persisted identities.
func New(store Store, auth Authenticator) *Session {
	return &Session{store: store, auth: auth}
}

// Restore loads both slots from the store. Corrupt entries are deleted and
// leave their slot empty.
func (s *Session) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = s.restoreSlot(userKey, model.RoleUser)
	s.admin = s.restoreSlot(adminKey, model.RoleAdmin)
}

func (s *Session) restoreSlot(key, role string) *model.Identity {
	blob, ok, err := s.store.Get(key)
	if err != nil {
		slog.Warn("reading session slot failed", "slot", key, "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	id, err := DecodeIdentity(blob)
	if err == nil && id.Role != role {
		err = ErrInvalidBlob
	}
	if err != nil {
		slog.Warn("discarding corrupt session slot", "slot", key)
		if err := s.store.Delete(key); err != nil {
			slog.Warn("deleting session slot failed", "slot", key, "error", err)
		}
		return nil
	}
	return &id
}

// LoginUser signs in through the user endpoint and caches the identity.
func (s *Session) LoginUser(ctx context.Context, email, password string) (model.Identity, error) {
	id, err := s.auth.UserAuth(ctx, email, password)
	if err != nil {
		return model.Identity{}, err
	}
	id.Role = model.RoleUser

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(userKey, id); err != nil {
		return model.Identity{}, err
	}
	s.user = &id
	return id, nil
}

// LoginAdmin signs in through the admin endpoint and caches the identity.
func (s *Session) LoginAdmin(ctx context.Context, email, password string) (model.Identity, error) {
	id, err := s.auth.AdminAuth(ctx, email, password)
	if err != nil {
		return model.Identity{}, err
	}
	id.Role = model.RoleAdmin

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(adminKey, id); err != nil {
		return model.Identity{}, err
	}
	s.admin = &id
	return id, nil
}

func (s *Session) persist(key string, id model.Identity) error {
	blob, err := EncodeIdentity(id)
	if err != nil {
		return fmt.Errorf("encoding %s session: %w", key, err)
	}
	if err := s.store.Set(key, blob); err != nil {
		return fmt.Errorf("saving %s session: %w", key, err)
	}
	return nil
}

// LogoutUser clears the user slot.
func (s *Session) LogoutUser() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	return s.store.Delete(userKey)
}

// LogoutAdmin clears the admin slot.
func (s *Session) LogoutAdmin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admin = nil
	return s.store.Delete(adminKey)
}

// Logout clears both slots.
func (s *Session) Logout() error {
	return errors.Join(s.LogoutUser(), s.LogoutAdmin())
}

func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil || s.admin != nil
}

func (s *Session) IsUser() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

func (s *Session) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.admin != nil
}

// User returns the cached user identity, if any.
func (s *Session) User() (model.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return model.Identity{}, false
	}
	return *s.user, true
}

// Admin returns the cached admin identity, if any.
func (s *Session) Admin() (model.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.admin == nil {
		return model.Identity{}, false
	}
	return *s.admin, true
}

// Current returns the identity that takes precedence: admin, then user.
func (s *Session) Current() (model.Identity, bool) {
	if id, ok := s.Admin(); ok {
		return id, true
	}
	return s.User()
}

// State reports the session state. Admin wins when both slots are set.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.admin != nil:
		return SignedInAdmin
	case s.user != nil:
		return SignedInUser
	default:
		return Anonymous
	}
}

// RequireSignedIn fails with ErrNotSignedIn when both slots are empty.
func (s *Session) RequireSignedIn() error {
	if !s.IsAuthenticated() {
		return ErrNotSignedIn
	}
	return nil
}

// RequireAdmin fails with ErrNotAdmin unless the admin slot is set. This
// gates client affordances only; the API itself checks nothing.
func (s *Session) RequireAdmin() error {
	if !s.IsAdmin() {
		return ErrNotAdmin
	}
	return nil
}
