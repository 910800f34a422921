package rpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"syci/internal/discovery"
)

// PathRunner runs one path and renders the outcome.
type PathRunner interface {
	RunPath(ctx context.Context, path string, env ...string) (string, error)
}

// Server implements TestService on top of a PathRunner.
type Server struct {
	runner PathRunner
	onCall func(req Request, err error)
}

// NewServer creates a new Server
func NewServer(runner PathRunner) *Server {
	return &Server{runner: runner}
}

// OnCall registers a callback invoked after every request.
func (s *Server) OnCall(fn func(req Request, err error)) {
	s.onCall = fn
}

// CallTest runs the requested path and returns its report.
func (s *Server) CallTest(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	req := ParseRequest(in.GetValue())
	if req.Path == "" {
		return nil, status.Error(codes.InvalidArgument, "empty test path")
	}

	msg, err := s.runner.RunPath(ctx, req.Path, req.Env()...)
	if s.onCall != nil {
		s.onCall(req, err)
	}
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.String(msg), nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, discovery.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, discovery.ErrPermissionDenied):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
