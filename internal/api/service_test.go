package api

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type pingOnly struct {
	UnimplementedIdentityServiceServer
	gotUser *User
}

func (p *pingOnly) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return &PingResponse{Status: "OK"}, nil
}

func (p *pingOnly) GetCurrentUser(context.Context, *GetCurrentUserRequest) (*UserResponse, error) {
	return &UserResponse{User: p.gotUser}, nil
}

func dial(t *testing.T, srv IdentityServiceServer, opts ...grpc.ServerOption) IdentityServiceClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer(opts...)
	RegisterIdentityServiceServer(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(CodecName)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewIdentityServiceClient(conn)
}

func TestRoundTrip_JSONCodec(t *testing.T) {
	accepted := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c := dial(t, &pingOnly{gotUser: &User{ID: "u1", Email: "a@b.c", TermsAcceptedAt: &accepted}})

	resp, err := c.Ping(context.Background(), &PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", resp.Status)

	u, err := c.GetCurrentUser(context.Background(), &GetCurrentUserRequest{})
	require.NoError(t, err)
	require.NotNil(t, u.User)
	assert.Equal(t, "u1", u.User.ID)
	require.NotNil(t, u.User.TermsAcceptedAt)
	assert.True(t, accepted.Equal(*u.User.TermsAcceptedAt))
	assert.Nil(t, u.User.PrivacyPolicyAcceptedAt)
}

func TestUnimplemented(t *testing.T) {
	c := dial(t, &pingOnly{})

	_, err := c.Login(context.Background(), &LoginRequest{Email: "a@b.c", Password: "x"})
	require.Error(t, err)
	assert.Equal(t, codes.Unimplemented, status.Code(err))
}

func TestInterceptorSeesFullMethod(t *testing.T) {
	var seen string
	ic := func(ctx context.Context, req any, info *grpc.UnaryServerInfo, h grpc.UnaryHandler) (any, error) {
		seen = info.FullMethod
		return h(ctx, req)
	}
	c := dial(t, &pingOnly{}, grpc.ChainUnaryInterceptor(ic))

	_, err := c.Ping(context.Background(), &PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "/careerkit.identity.IdentityService/Ping", seen)
	assert.Equal(t, seen, FullMethod(MethodPing))
}
