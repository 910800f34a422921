package rpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client calls CallTest on a remote test server
type Client struct {
	addr string
	conn *grpc.ClientConn
}

// NewClient creates a client for addr. Call Connect before use.
func NewClient(addr string) *Client {
	return &Client{addr: addr}
}

// Connect establishes the gRPC connection
func (c *Client) Connect(ctx context.Context) error {
	conn, err := grpc.DialContext(ctx, c.addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("failed to dial test server %s: %w", c.addr, err)
	}
	c.conn = conn
	return nil
}

// Close closes the connection
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// CallTest sends one request and returns the server's report.
func (c *Client) CallTest(ctx context.Context, req Request) (string, error) {
	if c.conn == nil {
		return "", fmt.Errorf("client not connected")
	}
	out := new(wrapperspb.StringValue)
	if err := c.conn.Invoke(ctx, callTestMethod, wrapperspb.String(req.Encode()), out); err != nil {
		return "", fmt.Errorf("call test %s: %w", req.Path, err)
	}
	return out.GetValue(), nil
}
