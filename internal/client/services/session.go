// Package services contains the client's session store and the services
// built on top of it.
package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/careerkit/internal/client/client"
	"github.com/dmitrijs2005/careerkit/internal/client/models"
	"github.com/dmitrijs2005/careerkit/internal/client/notify"
	"github.com/dmitrijs2005/careerkit/internal/logging"
	"github.com/google/uuid"
)

// ErrStaleResponse marks a result that arrived after the operation was
// superseded. The store discards such results and never reports them to
// callers.
var ErrStaleResponse = errors.New("stale response")

// SessionStore is the single owner of the client's AuthSession and of the
// persisted tokens. Consumers read value snapshots and subscribe to changes.
//
// Network calls are made without the lock held. Persisting new tokens and
// ending a session bump the generation; a result is applied
// only if the generation it started from is still current and the stored
// tokens still belong to the session it was fetched for.
type SessionStore struct {
	client client.Client
	tokens client.TokenStorage
	logger logging.Logger

	newSessionID func() string

	mu         sync.RWMutex
	session    models.AuthSession
	sessionID  string
	generation uint64
	changes    notify.Broadcaster
}

// NewSessionStore constructs a SessionStore in the loading state.
func NewSessionStore(c client.Client, tokens client.TokenStorage, logger logging.Logger) *SessionStore {
	return &SessionStore{
		client:       c,
		tokens:       tokens,
		logger:       logger,
		newSessionID: uuid.NewString,
		session:      models.NewLoadingSession(),
	}
}

// Snapshot returns a copy of the current session.
func (s *SessionStore) Snapshot() models.AuthSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Clone()
}

// Subscribe returns a channel signalled after every session change and a
// func that unsubscribes.
func (s *SessionStore) Subscribe() (<-chan struct{}, func()) {
	return s.changes.Subscribe()
}

// Close releases all subscribers.
func (s *SessionStore) Close() {
	s.changes.Close()
}

// Initialize resolves the persisted tokens into a session. Any failure
// clears the tokens and settles the session as unauthenticated without
// reporting an error. The session is never left loading once Initialize
// returns.
func (s *SessionStore) Initialize(ctx context.Context) {
	s.mu.RLock()
	gen := s.generation
	s.mu.RUnlock()

	tokens, err := s.tokens.Load(ctx)
	if err != nil {
		s.logger.Warn(ctx, "session: loading tokens failed", "error", err)
		s.settleUnauthenticated(ctx, gen, tokens.SessionID)
		return
	}
	if tokens.Empty() {
		s.settleUnauthenticated(ctx, gen, "")
		return
	}

	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		s.logger.Warn(ctx, "session: resolving user failed", "error", err)
		s.settleUnauthenticated(ctx, gen, tokens.SessionID)
		return
	}

	if err := s.apply(ctx, gen, tokens.SessionID, user); err != nil {
		s.logger.Debug(ctx, "session: initialize superseded")
		s.settleUnauthenticated(ctx, gen, "")
	}
}

// settleUnauthenticated ends Initialize. If gen is still current the
// session becomes unauthenticated and the tokens of sessionID are cleared;
// otherwise only a lingering loading flag is dropped.
func (s *SessionStore) settleUnauthenticated(ctx context.Context, gen uint64, sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		if s.session.AuthLoading {
			s.session.AuthLoading = false
			s.changes.Notify()
		}
		return
	}

	cur, err := s.tokens.Load(ctx)
	if err == nil && cur.SessionID == sessionID && !cur.Empty() {
		if err := s.tokens.Clear(ctx); err != nil {
			s.logger.Warn(ctx, "session: clearing tokens failed", "error", err)
		}
	}
	s.session = models.AuthSession{}
	s.sessionID = ""
	s.changes.Notify()
}

// Login exchanges credentials for tokens, persists them and resolves the
// user. On failure the error is returned and the session is unchanged.
func (s *SessionStore) Login(ctx context.Context, email, password string) error {
	gen := s.currentGeneration()
	tokens, err := s.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.establish(ctx, gen, tokens)
}

// Register creates the account and logs into it with the same credentials.
func (s *SessionStore) Register(ctx context.Context, email, password, name string) error {
	if _, err := s.client.Register(ctx, email, password, name); err != nil {
		return err
	}
	return s.Login(ctx, email, password)
}

// LoginWithOAuthToken exchanges a third-party identity token for the
// application's tokens. The server's configured provider verifies it.
func (s *SessionStore) LoginWithOAuthToken(ctx context.Context, providerToken string) error {
	if providerToken == "" {
		return client.ErrInvalidArgument
	}
	gen := s.currentGeneration()
	tokens, err := s.client.OAuthLogin(ctx, "", providerToken)
	if err != nil {
		return err
	}
	return s.establish(ctx, gen, tokens)
}

// Logout clears the tokens and resets the session, then revokes the refresh
// token on the server. Revocation failures are only logged.
func (s *SessionStore) Logout(ctx context.Context) {
	s.mu.Lock()
	s.generation++
	tokens, err := s.tokens.Load(ctx)
	if err != nil {
		s.logger.Warn(ctx, "session: loading tokens failed", "error", err)
	}
	if err := s.tokens.Clear(ctx); err != nil {
		s.logger.Warn(ctx, "session: clearing tokens failed", "error", err)
	}
	s.session = models.AuthSession{}
	s.sessionID = ""
	s.changes.Notify()
	s.mu.Unlock()

	if tokens.Refresh == "" {
		return
	}
	if err := s.client.Logout(ctx, tokens); err != nil {
		s.logger.Warn(ctx, "session: revoking refresh token failed", "error", err)
	}
}

// RefreshUser re-fetches the user of the current session. The tokens are not
// touched unless the server rejects them, in which case the session has
// expired and is reset to unauthenticated.
func (s *SessionStore) RefreshUser(ctx context.Context) error {
	s.mu.RLock()
	gen, sid, authed := s.generation, s.sessionID, s.session.IsAuthenticated
	s.mu.RUnlock()

	if !authed {
		return client.ErrUnauthorized
	}

	user, err := s.client.CurrentUser(ctx)
	if errors.Is(err, client.ErrUnauthorized) {
		s.expire(ctx, gen, sid)
		return err
	}
	if err != nil {
		return err
	}

	if err := s.apply(ctx, gen, sid, user); err != nil {
		s.logger.Debug(ctx, "session: refresh superseded")
	}
	return nil
}

func (s *SessionStore) currentGeneration() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// establish persists tokens under a fresh session id and resolves the user.
// gen is the generation observed before the credential exchange; a failed
// exchange never reaches establish and so supersedes nothing. A superseded
// attempt is dropped silently. If resolving the user fails, the tokens that
// were stored before the attempt are put back.
func (s *SessionStore) establish(ctx context.Context, gen uint64, tokens client.Tokens) error {
	tokens.SessionID = s.newSessionID()

	gen, prev, err := s.persist(ctx, gen, tokens)
	if errors.Is(err, ErrStaleResponse) {
		s.logger.Debug(ctx, "session: login superseded before persisting tokens")
		return nil
	}
	if err != nil {
		return err
	}

	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		s.rollback(ctx, tokens.SessionID, prev)
		return err
	}

	if err := s.apply(ctx, gen, tokens.SessionID, user); err != nil {
		s.logger.Debug(ctx, "session: login superseded before user was resolved")
	}
	return nil
}

// persist stores tokens if gen is still current and starts a new generation
// for them, which it returns together with the tokens it replaced.
func (s *SessionStore) persist(ctx context.Context, gen uint64, tokens client.Tokens) (uint64, client.Tokens, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return 0, client.Tokens{}, ErrStaleResponse
	}
	prev, err := s.tokens.Load(ctx)
	if err != nil {
		return 0, client.Tokens{}, err
	}
	if err := s.tokens.Save(ctx, tokens); err != nil {
		return 0, client.Tokens{}, err
	}
	s.generation++
	return s.generation, prev, nil
}

// rollback restores prev if the storage still holds the tokens of sessionID.
func (s *SessionStore) rollback(ctx context.Context, sessionID string, prev client.Tokens) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.tokens.Load(ctx)
	if err != nil || cur.SessionID != sessionID {
		return
	}
	if prev.Empty() {
		err = s.tokens.Clear(ctx)
	} else {
		err = s.tokens.Save(ctx, prev)
	}
	if err != nil {
		s.logger.Warn(ctx, "session: restoring tokens failed", "error", err)
	}
}

// apply installs user as the authenticated user of sessionID.
func (s *SessionStore) apply(ctx context.Context, gen uint64, sessionID string, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return ErrStaleResponse
	}
	cur, err := s.tokens.Load(ctx)
	if err != nil || cur.Empty() || cur.SessionID != sessionID {
		return ErrStaleResponse
	}

	s.session = models.AuthSession{IsAuthenticated: true, User: user.Clone()}
	s.sessionID = sessionID
	s.changes.Notify()
	return nil
}

func (s *SessionStore) expire(ctx context.Context, gen uint64, sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation || s.sessionID != sessionID {
		return
	}
	s.generation++
	if err := s.tokens.Clear(ctx); err != nil {
		s.logger.Warn(ctx, "session: clearing tokens failed", "error", err)
	}
	s.session = models.AuthSession{}
	s.sessionID = ""
	s.changes.Notify()
	s.logger.Info(ctx, "session: expired")
}
