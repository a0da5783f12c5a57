package rpc

import (
	"context"

	"lacheck/checking"
	"lacheck/trace"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

type Client struct {
	conn grpc.ClientConnInterface
}

func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// Submit the traces of processes 1..numProcesses to the validation service
//
// Fatal load errors of the run are returned as grpc status errors.
func (c *Client) Validate(ctx context.Context, m *trace.Memory, numProcesses int, opts ...grpc.CallOption) (checking.Verdict, error) {
	req, err := EncodeRequest(m, numProcesses)
	if err != nil {
		return checking.Verdict{}, err
	}
	resp := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, validateMethod, req, resp, opts...); err != nil {
		return checking.Verdict{}, err
	}
	return DecodeVerdict(resp)
}
