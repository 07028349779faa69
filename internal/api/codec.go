// Package api is the wire contract between the careerkit CLI and the identity
// server: request/response messages, the gRPC service descriptor, a client
// stub and a JSON codec the messages travel in.
//
// Messages are plain Go structs, so both sides agree on the "json" content
// subtype instead of protobuf. Clients must dial with
//
//	grpc.WithDefaultCallOptions(grpc.CallContentSubtype(api.CodecName))
//
// and the server picks the codec up from the registry automatically.
package api

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content subtype the messages are encoded with.
const CodecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
