package apiclient

import (
	"context"
	"errors"
	"sync"
)

// SessionState is the closed set of states the session moves through.
type SessionState string

const (
	StateAnonymous      SessionState = "anonymous"
	StateAuthenticating SessionState = "authenticating"
	StateAuthenticated  SessionState = "authenticated"
	StateSessionExpired SessionState = "session_expired"
)

// Store persists the account projection between runs. Implementations decide
// where it lives; the session never touches globals.
type Store interface {
	Save(account *Account) error
	Load() (*Account, error)
	Clear() error
}

var ErrNotAuthenticated = errors.New("not authenticated")

// Session owns the authenticated lifecycle around a Client. All transitions
// are explicit: Login, Restore, SetPassword and SignOut are the only ways to
// change state.
type Session struct {
	mu      sync.RWMutex
	client  *Client
	store   Store
	state   SessionState
	account *Account
}

func NewSession(client *Client, store Store) *Session {
	return &Session{
		client: client,
		store:  store,
		state:  StateAnonymous,
	}
}

func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Account returns the current projection, or nil when not authenticated.
func (s *Session) Account() *Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account
}

// Client returns a client carrying the session token. Callers get an
// unauthenticated client when signed out.
func (s *Session) Client() *Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.account == nil {
		return s.client
	}
	return s.client.WithToken(s.account.Token)
}

func (s *Session) Login(ctx context.Context, email, password string) (*Account, error) {
	s.setState(StateAuthenticating)

	account, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.setState(StateAnonymous)
		return nil, err
	}

	s.adopt(account)
	return account, nil
}

// Restore hydrates from the store optimistically, then revalidates against
// the server. A rejected token clears the store and lands back in Anonymous
// via SessionExpired.
func (s *Session) Restore(ctx context.Context) (*Account, error) {
	stored, err := s.store.Load()
	if err != nil || stored == nil {
		s.setState(StateAnonymous)
		return nil, ErrNotAuthenticated
	}

	s.mu.Lock()
	s.account = stored
	s.state = StateAuthenticated
	s.mu.Unlock()

	fresh, err := s.client.WithToken(stored.Token).GetAccount(ctx)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Kind == KindUnauthorized {
			s.setState(StateSessionExpired)
			_ = s.store.Clear()
			s.mu.Lock()
			s.account = nil
			s.state = StateAnonymous
			s.mu.Unlock()
			return nil, ErrNotAuthenticated
		}
		// Network failures keep the optimistic session.
		return stored, nil
	}

	s.adopt(fresh)
	return fresh, nil
}

// SetPassword completes an invited account and signs in with the new
// credentials.
func (s *Session) SetPassword(ctx context.Context, token, password string) (*Account, error) {
	s.setState(StateAuthenticating)

	account, err := s.client.SetPassword(ctx, token, password)
	if err != nil {
		s.setState(StateAnonymous)
		return nil, err
	}

	s.adopt(account)
	return account, nil
}

// SignOut clears everything unconditionally.
func (s *Session) SignOut() {
	s.mu.Lock()
	s.account = nil
	s.state = StateAnonymous
	s.mu.Unlock()
	_ = s.store.Clear()
}

func (s *Session) adopt(account *Account) {
	s.mu.Lock()
	s.account = account
	s.state = StateAuthenticated
	s.mu.Unlock()

	// Persistence failures leave the in-memory session live.
	_ = s.store.Save(account)
}

func (s *Session) setState(state SessionState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// MemoryStore is an in-memory Store for tests and short-lived tools.
type MemoryStore struct {
	mu      sync.Mutex
	account *Account
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(account *Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.account = account
	return nil
}

func (m *MemoryStore) Load() (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.account == nil {
		return nil, ErrNotAuthenticated
	}
	return m.account, nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.account = nil
	return nil
}
