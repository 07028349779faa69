package services

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/careerkit/internal/client/client"
	"github.com/dmitrijs2005/careerkit/internal/client/models"
	"github.com/dmitrijs2005/careerkit/internal/logging"
)

// fakeClient plays the identity server. It authorizes CurrentUser and
// AcceptTerms with the access token found in the shared storage, as the
// real transport does.
type fakeClient struct {
	mu     sync.Mutex
	tokens client.TokenStorage

	accounts map[string]string       // email -> password
	issued   map[string]client.Tokens // email or oauth token -> tokens
	users    map[string]*models.User  // access token -> user

	registerErr    error
	currentUserErr error
	acceptErr      error
	logoutErr      error

	// beforeUser runs inside CurrentUser after the token was read.
	beforeUser func()

	userCalls   int
	acceptCalls int
	logouts     []client.Tokens
}

func newFakeClient(tokens client.TokenStorage) *fakeClient {
	return &fakeClient{
		tokens:   tokens,
		accounts: map[string]string{},
		issued:   map[string]client.Tokens{},
		users:    map[string]*models.User{},
	}
}

// addAccount registers email with password; the login yields access token
// "A-<email>" and the given user.
func (f *fakeClient) addAccount(email, password string, u *models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[email] = password
	t := client.Tokens{Access: "A-" + email, Refresh: "R-" + email}
	f.issued[email] = t
	f.users[t.Access] = u
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) Register(_ context.Context, email, password, name string) (*models.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	f.mu.Lock()
	_, exists := f.accounts[email]
	f.mu.Unlock()
	if exists {
		return nil, client.ErrAlreadyExists
	}
	u := &models.User{ID: "id-" + email, Email: email, Name: name}
	f.addAccount(email, password, u)
	return u.Clone(), nil
}

func (f *fakeClient) Login(_ context.Context, email, password string) (client.Tokens, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if pw, ok := f.accounts[email]; !ok || pw != password {
		return client.Tokens{}, client.ErrUnauthorized
	}
	return f.issued[email], nil
}

func (f *fakeClient) OAuthLogin(_ context.Context, _ string, idToken string) (client.Tokens, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.issued[idToken]
	if !ok {
		return client.Tokens{}, client.ErrUnauthorized
	}
	return t, nil
}

func (f *fakeClient) CurrentUser(ctx context.Context) (*models.User, error) {
	t, err := f.tokens.Load(ctx)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.userCalls++
	hook := f.beforeUser
	f.mu.Unlock()

	if hook != nil {
		hook()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.currentUserErr != nil {
		return nil, f.currentUserErr
	}
	u, ok := f.users[t.Access]
	if !ok {
		return nil, client.ErrUnauthorized
	}
	return u.Clone(), nil
}

func (f *fakeClient) AcceptTerms(ctx context.Context, terms, privacy bool) (*models.User, error) {
	t, err := f.tokens.Load(ctx)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acceptCalls++
	if f.acceptErr != nil {
		return nil, f.acceptErr
	}
	u, ok := f.users[t.Access]
	if !ok {
		return nil, client.ErrUnauthorized
	}
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	if terms {
		u.TermsAcceptedAt = &now
	}
	if privacy {
		u.PrivacyPolicyAcceptedAt = &now
	}
	return u.Clone(), nil
}

func (f *fakeClient) Logout(_ context.Context, t client.Tokens) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logouts = append(f.logouts, t)
	return f.logoutErr
}

func (f *fakeClient) Ping(context.Context) error { return nil }

func (f *fakeClient) ResumeUploadURL(context.Context, string) (*models.PresignedURL, error) {
	return nil, errors.New("not used")
}

func (f *fakeClient) ResumeDownloadURL(context.Context, string) (*models.PresignedURL, error) {
	return nil, errors.New("not used")
}

// failingStorage fails every Load.
type failingStorage struct {
	*client.MemoryTokenStorage
}

func (failingStorage) Load(context.Context) (client.Tokens, error) {
	return client.Tokens{}, errors.New("disk gone")
}

func newStore(c client.Client, tokens client.TokenStorage) *SessionStore {
	s := NewSessionStore(c, tokens, logging.Nop{})
	n := 0
	var mu sync.Mutex
	s.newSessionID = func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return "session-" + strconv.Itoa(n)
	}
	return s
}

func accepted() *models.User {
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return &models.User{ID: "u-accepted", Email: "ok@example.com", TermsAcceptedAt: &at, PrivacyPolicyAcceptedAt: &at}
}

func pending() *models.User {
	return &models.User{ID: "u-pending", Email: "new@example.com"}
}
