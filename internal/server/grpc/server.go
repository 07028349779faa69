// Package grpc exposes the identity service over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/careerkit/internal/api"
	"github.com/dmitrijs2005/careerkit/internal/logging"
	"github.com/dmitrijs2005/careerkit/internal/server/metrics"
	"github.com/dmitrijs2005/careerkit/internal/server/models"
	"github.com/dmitrijs2005/careerkit/internal/server/services"
	"google.golang.org/grpc"
)

// UserService is the account logic the handlers depend on.
type UserService interface {
	Register(ctx context.Context, email, password, name string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.TokenPair, error)
	OAuthLogin(ctx context.Context, provider, idToken string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	CurrentUser(ctx context.Context, userID string) (*models.User, error)
	AcceptTerms(ctx context.Context, userID string, terms, privacy bool) (*models.User, error)
	Logout(ctx context.Context, userID, refreshToken string) error
}

// ResumeService hands out presigned resume URLs.
type ResumeService interface {
	UploadURL(ctx context.Context, userID, contentType string) (*services.PresignedURL, error)
	DownloadURL(ctx context.Context, userID, key string) (*services.PresignedURL, error)
}

// GRPCServer serves the identity service.
type GRPCServer struct {
	api.UnimplementedIdentityServiceServer
	address   string
	users     UserService
	resumes   ResumeService
	logger    logging.Logger
	metrics   *metrics.Metrics
	jwtSecret []byte
}

// NewGRPCServer constructs a GRPCServer listening on a.
func NewGRPCServer(a string, l logging.Logger, m *metrics.Metrics, us UserService, rs ResumeService, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		metrics:   m,
		users:     us,
		resumes:   rs,
		jwtSecret: []byte(secretKey),
	}
}

// NewServer builds a grpc.Server with the interceptor chain and the identity
// service registered.
func (s *GRPCServer) NewServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	api.RegisterIdentityServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
