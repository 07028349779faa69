package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "careerkit.identity.IdentityService"

const (
	MethodRegister             = "Register"
	MethodLogin                = "Login"
	MethodOAuthLogin           = "OAuthLogin"
	MethodRefreshToken         = "RefreshToken"
	MethodGetCurrentUser       = "GetCurrentUser"
	MethodAcceptTerms          = "AcceptTerms"
	MethodLogout               = "Logout"
	MethodPing                 = "Ping"
	MethodGetResumeUploadURL   = "GetResumeUploadURL"
	MethodGetResumeDownloadURL = "GetResumeDownloadURL"
)

// FullMethod returns "/<service>/<method>", the name seen by interceptors.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// IdentityServiceServer is implemented by the identity server.
type IdentityServiceServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*TokenResponse, error)
	OAuthLogin(context.Context, *OAuthLoginRequest) (*TokenResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*TokenResponse, error)
	GetCurrentUser(context.Context, *GetCurrentUserRequest) (*UserResponse, error)
	AcceptTerms(context.Context, *AcceptTermsRequest) (*UserResponse, error)
	Logout(context.Context, *LogoutRequest) (*LogoutResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	GetResumeUploadURL(context.Context, *GetResumeUploadURLRequest) (*ResumeURLResponse, error)
	GetResumeDownloadURL(context.Context, *GetResumeDownloadURLRequest) (*ResumeURLResponse, error)
}

// UnimplementedIdentityServiceServer answers every method with codes.Unimplemented.
// Embed it to stay source compatible when methods are added.
type UnimplementedIdentityServiceServer struct{}

func (UnimplementedIdentityServiceServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedIdentityServiceServer) Login(context.Context, *LoginRequest) (*TokenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedIdentityServiceServer) OAuthLogin(context.Context, *OAuthLoginRequest) (*TokenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method OAuthLogin not implemented")
}
func (UnimplementedIdentityServiceServer) RefreshToken(context.Context, *RefreshTokenRequest) (*TokenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RefreshToken not implemented")
}
func (UnimplementedIdentityServiceServer) GetCurrentUser(context.Context, *GetCurrentUserRequest) (*UserResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetCurrentUser not implemented")
}
func (UnimplementedIdentityServiceServer) AcceptTerms(context.Context, *AcceptTermsRequest) (*UserResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AcceptTerms not implemented")
}
func (UnimplementedIdentityServiceServer) Logout(context.Context, *LogoutRequest) (*LogoutResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Logout not implemented")
}
func (UnimplementedIdentityServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedIdentityServiceServer) GetResumeUploadURL(context.Context, *GetResumeUploadURLRequest) (*ResumeURLResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetResumeUploadURL not implemented")
}
func (UnimplementedIdentityServiceServer) GetResumeDownloadURL(context.Context, *GetResumeDownloadURLRequest) (*ResumeURLResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetResumeDownloadURL not implemented")
}

// unaryHandler adapts a typed server method to grpc.MethodHandler, running the
// server's interceptor chain when one is installed.
func unaryHandler[Req, Resp any](method string, call func(IdentityServiceServer, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(IdentityServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(IdentityServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// IdentityServiceDesc describes the service for grpc.Server.RegisterService.
var IdentityServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*IdentityServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: MethodRegister, Handler: unaryHandler(MethodRegister, IdentityServiceServer.Register)},
		{MethodName: MethodLogin, Handler: unaryHandler(MethodLogin, IdentityServiceServer.Login)},
		{MethodName: MethodOAuthLogin, Handler: unaryHandler(MethodOAuthLogin, IdentityServiceServer.OAuthLogin)},
		{MethodName: MethodRefreshToken, Handler: unaryHandler(MethodRefreshToken, IdentityServiceServer.RefreshToken)},
		{MethodName: MethodGetCurrentUser, Handler: unaryHandler(MethodGetCurrentUser, IdentityServiceServer.GetCurrentUser)},
		{MethodName: MethodAcceptTerms, Handler: unaryHandler(MethodAcceptTerms, IdentityServiceServer.AcceptTerms)},
		{MethodName: MethodLogout, Handler: unaryHandler(MethodLogout, IdentityServiceServer.Logout)},
		{MethodName: MethodPing, Handler: unaryHandler(MethodPing, IdentityServiceServer.Ping)},
		{MethodName: MethodGetResumeUploadURL, Handler: unaryHandler(MethodGetResumeUploadURL, IdentityServiceServer.GetResumeUploadURL)},
		{MethodName: MethodGetResumeDownloadURL, Handler: unaryHandler(MethodGetResumeDownloadURL, IdentityServiceServer.GetResumeDownloadURL)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "careerkit/identity",
}

// RegisterIdentityServiceServer registers srv on s.
func RegisterIdentityServiceServer(s grpc.ServiceRegistrar, srv IdentityServiceServer) {
	s.RegisterService(&IdentityServiceDesc, srv)
}

// IdentityServiceClient is the client API for the identity service.
type IdentityServiceClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*TokenResponse, error)
	OAuthLogin(ctx context.Context, in *OAuthLoginRequest, opts ...grpc.CallOption) (*TokenResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*TokenResponse, error)
	GetCurrentUser(ctx context.Context, in *GetCurrentUserRequest, opts ...grpc.CallOption) (*UserResponse, error)
	AcceptTerms(ctx context.Context, in *AcceptTermsRequest, opts ...grpc.CallOption) (*UserResponse, error)
	Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	GetResumeUploadURL(ctx context.Context, in *GetResumeUploadURLRequest, opts ...grpc.CallOption) (*ResumeURLResponse, error)
	GetResumeDownloadURL(ctx context.Context, in *GetResumeDownloadURLRequest, opts ...grpc.CallOption) (*ResumeURLResponse, error)
}

type identityServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewIdentityServiceClient(cc grpc.ClientConnInterface) IdentityServiceClient {
	return &identityServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *identityServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, MethodRegister, in, opts)
}

func (c *identityServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	return invoke[TokenResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *identityServiceClient) OAuthLogin(ctx context.Context, in *OAuthLoginRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	return invoke[TokenResponse](ctx, c.cc, MethodOAuthLogin, in, opts)
}

func (c *identityServiceClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	return invoke[TokenResponse](ctx, c.cc, MethodRefreshToken, in, opts)
}

func (c *identityServiceClient) GetCurrentUser(ctx context.Context, in *GetCurrentUserRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, MethodGetCurrentUser, in, opts)
}

func (c *identityServiceClient) AcceptTerms(ctx context.Context, in *AcceptTermsRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, MethodAcceptTerms, in, opts)
}

func (c *identityServiceClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error) {
	return invoke[LogoutResponse](ctx, c.cc, MethodLogout, in, opts)
}

func (c *identityServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *identityServiceClient) GetResumeUploadURL(ctx context.Context, in *GetResumeUploadURLRequest, opts ...grpc.CallOption) (*ResumeURLResponse, error) {
	return invoke[ResumeURLResponse](ctx, c.cc, MethodGetResumeUploadURL, in, opts)
}

func (c *identityServiceClient) GetResumeDownloadURL(ctx context.Context, in *GetResumeDownloadURLRequest, opts ...grpc.CallOption) (*ResumeURLResponse, error) {
	return invoke[ResumeURLResponse](ctx, c.cc, MethodGetResumeDownloadURL, in, opts)
}
