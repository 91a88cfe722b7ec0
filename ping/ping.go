// Package ping provides the rawrshield.Ping RPC used as a reachability probe
// target, together with a client-side [Prober] that calls it.
//
// The request and response are plain Go structs rather than generated
// protobuf messages, so the package registers a codec that JSON-encodes Ping
// messages and delegates everything else to the standard proto codec.
// Importing the package activates the codec.
package ping

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/grpc"
	grpcEncoding "google.golang.org/grpc/encoding"
	_ "google.golang.org/grpc/encoding/proto" // ensure default proto codec is registered first
	"google.golang.org/protobuf/proto"
)

// FullMethod is the fully qualified name of the Ping RPC.
const FullMethod = "/rawrshield.Ping/Ping"

// Request is the input for the Ping method.
type Request struct {
	Nonce string `json:"nonce"`
}

// Response is the output of the Ping method.
type Response struct {
	Nonce          string `json:"nonce"`
	ServerTimeUnix int64  `json:"server_time_unix"`
}

// pingMsg is a marker interface satisfied by Request and Response.
type pingMsg interface {
	isPingMsg()
}

func (*Request) isPingMsg()  {}
func (*Response) isPingMsg() {}

// Handler is the interface that a Ping service implementation must satisfy.
type Handler interface {
	Ping(ctx context.Context, req *Request) (*Response, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, req *Request) (*Response, error)

// Ping calls f(ctx, req).
func (f HandlerFunc) Ping(ctx context.Context, req *Request) (*Response, error) { return f(ctx, req) }

// DefaultHandler returns a Handler that echoes the nonce and attaches the
// current server time.
func DefaultHandler() Handler {
	return HandlerFunc(func(_ context.Context, req *Request) (*Response, error) {
		return &Response{Nonce: req.Nonce, ServerTimeUnix: time.Now().Unix()}, nil
	})
}

// ServiceDesc is the grpc.ServiceDesc for the rawrshield.Ping service.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: "rawrshield.Ping",
	HandlerType: (*Handler)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Ping",
			Handler:    pingHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rawrshield/ping.proto",
}

func pingHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	req := new(Request)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(Handler).Ping(ctx, req)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: FullMethod,
	}
	handler := func(ctx context.Context, r any) (any, error) {
		return srv.(Handler).Ping(ctx, r.(*Request))
	}
	return interceptor(ctx, req, info, handler)
}

// Register registers a Ping service implementation on the given gRPC server.
func Register(s *grpc.Server, h Handler) {
	s.RegisterService(&ServiceDesc, h)
}

func init() {
	grpcEncoding.RegisterCodec(pingCodec{})
}

// pingCodec JSON-encodes Ping messages and delegates all other types to
// proto.Marshal/Unmarshal.
type pingCodec struct{}

func (pingCodec) Name() string { return "proto" }

func (pingCodec) Marshal(v any) ([]byte, error) {
	if _, ok := v.(pingMsg); ok {
		return json.Marshal(v)
	}
	if m, ok := v.(proto.Message); ok {
		return proto.Marshal(m)
	}
	return nil, fmt.Errorf("ping codec: unsupported message type %T", v)
}

func (pingCodec) Unmarshal(data []byte, v any) error {
	if _, ok := v.(pingMsg); ok {
		return json.Unmarshal(data, v)
	}
	if m, ok := v.(proto.Message); ok {
		return proto.Unmarshal(data, m)
	}
	return fmt.Errorf("ping codec: unsupported message type %T", v)
}
