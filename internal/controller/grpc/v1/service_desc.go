package grpcv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName = "camping.logs.v1.LogService"

	CreateLogMethod = "/" + ServiceName + "/CreateLog"
	ListLogsMethod  = "/" + ServiceName + "/ListLogs"
)

// LogServiceServer is served with well-known protobuf types so no generated
// stubs are needed. CreateLog takes a Struct with string fields
// "microservice" and "message" and echoes it; ListLogs returns a ListValue of
// such Structs.
type LogServiceServer interface {
	CreateLog(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListLogs(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
}

func RegisterLogServiceServer(s grpc.ServiceRegistrar, srv LogServiceServer) {
	s.RegisterService(&logServiceDesc, srv)
}

var logServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateLog",
			Handler:    createLogHandler,
		},
		{
			MethodName: "ListLogs",
			Handler:    listLogsHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "camping/logs/v1/log.proto",
}

func createLogHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LogServiceServer).CreateLog(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CreateLogMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LogServiceServer).CreateLog(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func listLogsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LogServiceServer).ListLogs(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ListLogsMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LogServiceServer).ListLogs(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}
