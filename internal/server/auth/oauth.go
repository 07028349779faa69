package auth

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/careerkit/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

var ErrUnknownProvider = errors.New("unknown identity provider")

// Identity is the verified content of a third-party ID token.
type Identity struct {
	Provider string
	Subject  string
	Email    string
	Name     string
}

type idTokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// OAuthVerifier checks ID tokens issued by a single configured provider.
// Tokens are HS256 JWTs signed with a secret shared with the provider.
type OAuthVerifier struct {
	provider string
	secret   []byte
	issuer   string
	audience string
}

// NewOAuthVerifier constructs a verifier for ID tokens of a single provider.
func NewOAuthVerifier(provider string, secret []byte, issuer, audience string) *OAuthVerifier {
	return &OAuthVerifier{provider: provider, secret: secret, issuer: issuer, audience: audience}
}

// Verify validates idToken and returns the identity it asserts. An empty
// provider selects the configured one.
func (v *OAuthVerifier) Verify(provider, idToken string) (*Identity, error) {
	if provider != "" && provider != v.provider {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}

	claims := &idTokenClaims{}
	_, err := jwt.ParseWithClaims(idToken, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if claims.Subject == "" || claims.Email == "" {
		return nil, fmt.Errorf("%w: sub and email claims are required", common.ErrInvalidToken)
	}

	return &Identity{
		Provider: v.provider,
		Subject:  claims.Subject,
		Email:    claims.Email,
		Name:     claims.Name,
	}, nil
}
