package grpc

import (
	"context"

	"github.com/dmitrijs2005/careerkit/internal/api"
	"github.com/dmitrijs2005/careerkit/internal/server/models"
	"github.com/dmitrijs2005/careerkit/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:                      u.ID,
		Email:                   u.Email,
		Name:                    u.Name,
		TermsAcceptedAt:         u.TermsAcceptedAt,
		PrivacyPolicyAcceptedAt: u.PrivacyPolicyAcceptedAt,
	}
}

func toTokenResponse(p *services.TokenPair) *api.TokenResponse {
	return &api.TokenResponse{AccessToken: p.AccessToken, RefreshToken: p.RefreshToken}
}

func toResumeResponse(p *services.PresignedURL) *api.ResumeURLResponse {
	return &api.ResumeURLResponse{Key: p.Key, URL: p.URL, ExpiresAt: p.ExpiresAt}
}

func (s *GRPCServer) userID(ctx context.Context) (string, error) {
	id, ok := UserIDFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "unauthorized")
	}
	return id, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {
	u, err := s.users.Register(ctx, req.Email, req.Password, req.Name)
	s.metrics.AuthEvent("register", err)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Registered", "user_id", u.ID)
	return &api.RegisterResponse{User: toAPIUser(u)}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.TokenResponse, error) {
	tokens, err := s.users.Login(ctx, req.Email, req.Password)
	s.metrics.AuthEvent("login", err)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return toTokenResponse(tokens), nil
}

func (s *GRPCServer) OAuthLogin(ctx context.Context, req *api.OAuthLoginRequest) (*api.TokenResponse, error) {
	tokens, err := s.users.OAuthLogin(ctx, req.Provider, req.IDToken)
	s.metrics.AuthEvent("oauth_login", err)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return toTokenResponse(tokens), nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *api.RefreshTokenRequest) (*api.TokenResponse, error) {
	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)
	s.metrics.AuthEvent("refresh", err)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return toTokenResponse(tokens), nil
}

func (s *GRPCServer) GetCurrentUser(ctx context.Context, req *api.GetCurrentUserRequest) (*api.UserResponse, error) {
	id, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.users.CurrentUser(ctx, id)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.UserResponse{User: toAPIUser(u)}, nil
}

func (s *GRPCServer) AcceptTerms(ctx context.Context, req *api.AcceptTermsRequest) (*api.UserResponse, error) {
	id, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.users.AcceptTerms(ctx, id, req.TermsAccepted, req.PrivacyAccepted)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	s.logger.Info(ctx, "Terms accepted", "user_id", id, "terms", req.TermsAccepted, "privacy", req.PrivacyAccepted)
	return &api.UserResponse{User: toAPIUser(u)}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, req *api.LogoutRequest) (*api.LogoutResponse, error) {
	id, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	err = s.users.Logout(ctx, id, req.RefreshToken)
	s.metrics.AuthEvent("logout", err)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.LogoutResponse{}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) GetResumeUploadURL(ctx context.Context, req *api.GetResumeUploadURLRequest) (*api.ResumeURLResponse, error) {
	id, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.resumes.UploadURL(ctx, id, req.ContentType)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return toResumeResponse(p), nil
}

func (s *GRPCServer) GetResumeDownloadURL(ctx context.Context, req *api.GetResumeDownloadURLRequest) (*api.ResumeURLResponse, error) {
	id, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.resumes.DownloadURL(ctx, id, req.Key)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return toResumeResponse(p), nil
}
