// Package rpc exposes test invocation over gRPC: one CallTest method that
// takes a path and answers with a report message.
//
// Messages are wrapperspb.StringValue. A StringValue is a single string in
// field 1, the same wire shape as the TestRequest{path} and TestReply{retMsg}
// messages older clients send, so no generated code is needed.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	// ServiceName is the fully qualified gRPC service name.
	ServiceName = "ci.Greeter"

	callTestMethod = "/" + ServiceName + "/CallTest"
)

// TestService is the server API for the ci.Greeter service.
type TestService interface {
	CallTest(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TestService)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CallTest",
			Handler:    callTestHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ci.proto",
}

// RegisterTestService registers svc on s.
func RegisterTestService(s grpc.ServiceRegistrar, svc TestService) {
	s.RegisterService(&serviceDesc, svc)
}

func callTestHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TestService).CallTest(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: callTestMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TestService).CallTest(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}
