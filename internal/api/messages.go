package api

import "time"

// User is the profile returned by the identity endpoints.
type User struct {
	ID                      string     `json:"id"`
	Email                   string     `json:"email"`
	Name                    string     `json:"name,omitempty"`
	TermsAcceptedAt         *time.Time `json:"terms_accepted_at"`
	PrivacyPolicyAcceptedAt *time.Time `json:"privacy_policy_accepted_at"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type RegisterResponse struct {
	User *User `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// OAuthLoginRequest carries a third-party identity token to be exchanged for
// careerkit's own token pair.
type OAuthLoginRequest struct {
	Provider string `json:"provider"`
	IDToken  string `json:"id_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse is returned by Login, OAuthLogin and RefreshToken.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type GetCurrentUserRequest struct{}

type UserResponse struct {
	User *User `json:"user"`
}

type AcceptTermsRequest struct {
	TermsAccepted   bool `json:"terms_accepted"`
	PrivacyAccepted bool `json:"privacy_accepted"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutResponse struct{}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type GetResumeUploadURLRequest struct {
	ContentType string `json:"content_type"`
}

type GetResumeDownloadURLRequest struct {
	Key string `json:"key"`
}

type ResumeURLResponse struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
