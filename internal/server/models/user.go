package models

import "time"

// User is an account row. Password-based accounts carry a PasswordHash;
// accounts created through OAuthLogin carry OAuthProvider/OAuthSubject and
// may have an empty hash.
type User struct {
	ID                      string
	Email                   string
	Name                    string
	PasswordHash            string
	OAuthProvider           string
	OAuthSubject            string
	TermsAcceptedAt         *time.Time
	PrivacyPolicyAcceptedAt *time.Time
	CreatedAt               time.Time
}
