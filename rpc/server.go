package rpc

import (
	"context"
	"errors"
	"log"
	"net"

	"lacheck"
	"lacheck/trace"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	serviceName    = "lacheck.Validator"
	validateMethod = "/lacheck.Validator/Validate"
)

// ValidatorServer checks recorded runs submitted by remote test harnesses
type ValidatorServer interface {
	Validate(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

var validatorServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ValidatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Validate",
			Handler:    validateHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "lacheck/rpc",
}

func validateHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ValidatorServer).Validate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: validateMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ValidatorServer).Validate(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// RegisterValidatorServer registers the validation service on the grpc server
func RegisterValidatorServer(s grpc.ServiceRegistrar, srv ValidatorServer) {
	s.RegisterService(&validatorServiceDesc, srv)
}

type Server struct {
	logger *log.Logger
	opts   []lacheck.ValidateOption
}

// NewServer returns a validation service that checks every submitted run with the options
func NewServer(logger *log.Logger, opts ...lacheck.ValidateOption) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		logger: logger,
		opts:   append([]lacheck.ValidateOption{lacheck.WithLogger(logger)}, opts...),
	}
}

func (s *Server) Validate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	m, numProcesses, err := DecodeRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	s.logger.Printf("Received run with %v processes", numProcesses)
	verdict, err := lacheck.Validate(m, m, numProcesses, s.opts...)
	if err != nil {
		return nil, status.Error(errorCode(err), err.Error())
	}
	resp, err := EncodeVerdict(verdict)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return resp, nil
}

func errorCode(err error) codes.Code {
	switch {
	case errors.Is(err, trace.ErrConfigMissing):
		return codes.NotFound
	case errors.Is(err, lacheck.ErrNoProposals):
		return codes.FailedPrecondition
	case errors.Is(err, lacheck.ErrNoProcesses):
		return codes.InvalidArgument
	}
	return codes.Internal
}

// Serve the validation service on the listener until it is closed
func (s *Server) Serve(lis net.Listener) error {
	srv := grpc.NewServer()
	RegisterValidatorServer(srv, s)
	s.logger.Printf("Serving validation requests on %v", lis.Addr())
	return srv.Serve(lis)
}
