package models

// AuthSession is the reconciled authentication state of the client.
//
// A fresh session is loading. IsAuthenticated is only ever true together
// with a non-nil User.
type AuthSession struct {
	AuthLoading     bool
	IsAuthenticated bool
	User            *User
}

// NewLoadingSession returns the session every client starts with.
func NewLoadingSession() AuthSession {
	return AuthSession{AuthLoading: true}
}

// NeedsTerms reports whether an authenticated user still has to accept the
// terms of service or the privacy policy.
func (s AuthSession) NeedsTerms() bool {
	return s.IsAuthenticated && !s.User.HasAcceptedTerms()
}

// Clone returns a copy of s that shares no memory with it.
func (s AuthSession) Clone() AuthSession {
	s.User = s.User.Clone()
	return s
}
