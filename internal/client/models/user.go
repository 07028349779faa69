// Package models defines the client-side view of the careerkit session.
package models

import "time"

// User is the profile returned by the identity server.
type User struct {
	ID                      string
	Email                   string
	Name                    string
	TermsAcceptedAt         *time.Time
	PrivacyPolicyAcceptedAt *time.Time
}

// HasAcceptedTerms reports whether both legal agreements carry an
// acceptance timestamp. A nil user has accepted nothing.
func (u *User) HasAcceptedTerms() bool {
	return u != nil && u.TermsAcceptedAt != nil && u.PrivacyPolicyAcceptedAt != nil
}

// Clone returns a deep copy of u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.TermsAcceptedAt = cloneTime(u.TermsAcceptedAt)
	c.PrivacyPolicyAcceptedAt = cloneTime(u.PrivacyPolicyAcceptedAt)
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
