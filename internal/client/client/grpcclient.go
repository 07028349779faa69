package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/careerkit/internal/api"
	"github.com/dmitrijs2005/careerkit/internal/client/models"
	"github.com/dmitrijs2005/careerkit/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// explicitTokensKey carries tokens that override the storage for one call.
type explicitTokensKey struct{}

// GRPCClient implements Client over the identity gRPC service.
type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      api.IdentityServiceClient
	tokens      TokenStorage
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func isTokenExpired(err error) bool {
	st, ok := status.FromError(err)
	if !ok {
		return false
	}
	return st.Code() == codes.Unauthenticated && st.Message() == common.ErrTokenExpired.Error()
}

func (s *GRPCClient) timeoutInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if s.timeout <= 0 {
		return invoker(ctx, method, req, reply, cc, opts...)
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return invoker(ctx, method, req, reply, cc, opts...)
}

// accessTokenInterceptor attaches the stored access token to every call. When
// the server reports the token as expired it rotates the pair once and
// retries. The rotated pair is written back only if the storage still holds
// the pair that was used, so a refresh racing a logout or a new login never
// resurrects the old session.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if t, ok := ctx.Value(explicitTokensKey{}).(Tokens); ok {
		return invoker(withAccessToken(ctx, t.Access), method, req, reply, cc, opts...)
	}

	tokens, err := s.tokens.Load(ctx)
	if err != nil {
		return err
	}

	err = invoker(withAccessToken(ctx, tokens.Access), method, req, reply, cc, opts...)
	if err == nil || !isTokenExpired(err) {
		return err
	}
	if tokens.Refresh == "" || method == api.FullMethod(api.MethodRefreshToken) {
		return err
	}

	resp, rerr := s.client.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: tokens.Refresh})
	if rerr != nil {
		return rerr
	}

	next := Tokens{Access: resp.AccessToken, Refresh: resp.RefreshToken, SessionID: tokens.SessionID}
	swapped, serr := s.tokens.CompareAndSwap(ctx, tokens, next)
	if serr != nil {
		return serr
	}
	if !swapped {
		return err
	}

	return invoker(withAccessToken(ctx, next.Access), method, req, reply, cc, opts...)
}

// NewGRPCClient connects to the identity server at endpointURL. Extra dial
// options are appended to the defaults.
func NewGRPCClient(endpointURL string, tokens TokenStorage, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, tokens: tokens, timeout: timeout}
	if err := c.initGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) initGRPCClient(extra ...grpc.DialOption) error {
	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(api.CodecName)),
		grpc.WithChainUnaryInterceptor(s.timeoutInterceptor, s.accessTokenInterceptor),
	}
	opts = append(opts, extra...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewIdentityServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	resp, err := s.client.Register(ctx, &api.RegisterRequest{Email: email, Password: password, Name: name})
	if err != nil {
		return nil, s.mapError(err)
	}
	return toModelUser(resp.User), nil
}

func (s *GRPCClient) Login(ctx context.Context, email, password string) (Tokens, error) {
	resp, err := s.client.Login(ctx, &api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return Tokens{}, s.mapError(err)
	}
	return Tokens{Access: resp.AccessToken, Refresh: resp.RefreshToken}, nil
}

func (s *GRPCClient) OAuthLogin(ctx context.Context, provider, idToken string) (Tokens, error) {
	resp, err := s.client.OAuthLogin(ctx, &api.OAuthLoginRequest{Provider: provider, IDToken: idToken})
	if err != nil {
		return Tokens{}, s.mapError(err)
	}
	return Tokens{Access: resp.AccessToken, Refresh: resp.RefreshToken}, nil
}

func (s *GRPCClient) CurrentUser(ctx context.Context) (*models.User, error) {
	resp, err := s.client.GetCurrentUser(ctx, &api.GetCurrentUserRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	if resp.User == nil {
		return nil, fmt.Errorf("rpc error: empty user in response")
	}
	return toModelUser(resp.User), nil
}

func (s *GRPCClient) AcceptTerms(ctx context.Context, terms, privacy bool) (*models.User, error) {
	resp, err := s.client.AcceptTerms(ctx, &api.AcceptTermsRequest{TermsAccepted: terms, PrivacyAccepted: privacy})
	if err != nil {
		return nil, s.mapError(err)
	}
	return toModelUser(resp.User), nil
}

func (s *GRPCClient) Logout(ctx context.Context, t Tokens) error {
	ctx = context.WithValue(ctx, explicitTokensKey{}, t)
	if _, err := s.client.Logout(ctx, &api.LogoutRequest{RefreshToken: t.Refresh}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) ResumeUploadURL(ctx context.Context, contentType string) (*models.PresignedURL, error) {
	resp, err := s.client.GetResumeUploadURL(ctx, &api.GetResumeUploadURLRequest{ContentType: contentType})
	if err != nil {
		return nil, s.mapError(err)
	}
	return toPresignedURL(resp), nil
}

func (s *GRPCClient) ResumeDownloadURL(ctx context.Context, key string) (*models.PresignedURL, error) {
	resp, err := s.client.GetResumeDownloadURL(ctx, &api.GetResumeDownloadURLRequest{Key: key})
	if err != nil {
		return nil, s.mapError(err)
	}
	return toPresignedURL(resp), nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
		return ErrUnavailable
	case codes.AlreadyExists:
		return ErrAlreadyExists
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidArgument, st.Message())
	case codes.NotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func toModelUser(u *api.User) *models.User {
	if u == nil {
		return nil
	}
	return &models.User{
		ID:                      u.ID,
		Email:                   u.Email,
		Name:                    u.Name,
		TermsAcceptedAt:         u.TermsAcceptedAt,
		PrivacyPolicyAcceptedAt: u.PrivacyPolicyAcceptedAt,
	}
}

func toPresignedURL(r *api.ResumeURLResponse) *models.PresignedURL {
	return &models.PresignedURL{Key: r.Key, URL: r.URL, ExpiresAt: r.ExpiresAt}
}
