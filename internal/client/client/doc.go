// Package client contains the transport and local persistence used by the
// careerkit CLI.
//
// # Overview
//
//  1. Client is the identity API contract used by the client services.
//  2. GRPCClient implements it over gRPC with the JSON codec. An interceptor
//     reads the access token from a TokenStorage on every call, and on a
//     "token expired" answer rotates the token pair once and retries.
//  3. TokenStorage is the durable slot for the session's tokens.
//     SQLiteTokenStorage keeps them in the local database prepared by
//     InitDatabase; MemoryTokenStorage keeps them in memory.
//
// # Error Handling
//
// gRPC status codes are mapped to sentinel errors that callers match with
// errors.Is: ErrUnauthorized, ErrUnavailable, ErrAlreadyExists,
// ErrInvalidArgument and ErrNotFound.
package client
