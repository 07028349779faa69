package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/careerkit/internal/api"
	"github.com/dmitrijs2005/careerkit/internal/common"
	"github.com/dmitrijs2005/careerkit/internal/server/auth"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// publicMethods are callable without an access token.
var publicMethods = map[string]bool{
	api.FullMethod(api.MethodRegister):     true,
	api.FullMethod(api.MethodLogin):        true,
	api.FullMethod(api.MethodOAuthLogin):   true,
	api.FullMethod(api.MethodRefreshToken): true,
	api.FullMethod(api.MethodPing):         true,
}

// UserIDFromContext returns the user id placed by accessTokenInterceptor.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

func firstMetadata(ctx context.Context, key string) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(key); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// loggingInterceptor tags each call with a request id (taken from the
// caller or generated), echoes it in the response header, logs the outcome
// and records metrics.
func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()

	requestID := firstMetadata(ctx, common.RequestIDHeaderName)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	_ = grpc.SetHeader(ctx, metadata.Pairs(common.RequestIDHeaderName, requestID))

	resp, err := handler(ctx, req)

	code := status.Code(err)
	elapsed := time.Since(start)
	s.metrics.ObserveRequest(info.FullMethod, code.String(), elapsed)

	args := []any{"method", info.FullMethod, "code", code.String(), "request_id", requestID, "duration", elapsed}
	switch code {
	case codes.OK:
		s.logger.Debug(ctx, "rpc", args...)
	case codes.Internal, codes.Unknown:
		s.logger.Error(ctx, "rpc", append(args, "error", err)...)
	default:
		s.logger.Info(ctx, "rpc", append(args, "error", err)...)
	}

	return resp, err
}

// accessTokenInterceptor authenticates every non-public method. Expired
// tokens are reported as Unauthenticated with the message "token expired",
// which clients use as the signal to refresh.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	accessToken := firstMetadata(ctx, common.AccessTokenHeaderName)
	if accessToken == "" {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	userID, err := auth.GetUserIDFromToken(accessToken, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
		}
		return nil, status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	}

	return handler(context.WithValue(ctx, userIDKey, userID), req)
}
