package distancepb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	DistanceService_GetCurrentDistance_FullMethodName = "/distance.v1.DistanceService/GetCurrentDistance"
	DistanceService_Measure_FullMethodName            = "/distance.v1.DistanceService/Measure"
	DistanceService_GetHistory_FullMethodName         = "/distance.v1.DistanceService/GetHistory"
	DistanceService_RecordReading_FullMethodName      = "/distance.v1.DistanceService/RecordReading"
)

// DistanceServiceClient is the client API for DistanceService.
type DistanceServiceClient interface {
	// GetCurrentDistance returns the latest stored reading.
	GetCurrentDistance(ctx context.Context, opts ...grpc.CallOption) (*Reading, error)
	// Measure triggers the sensor now and stores the result.
	Measure(ctx context.Context, opts ...grpc.CallOption) (*Reading, error)
	GetHistory(ctx context.Context, in *HistoryRequest, opts ...grpc.CallOption) (*History, error)
	RecordReading(ctx context.Context, in *RecordRequest, opts ...grpc.CallOption) (*Reading, error)
}

type distanceServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewDistanceServiceClient(cc grpc.ClientConnInterface) DistanceServiceClient {
	return &distanceServiceClient{cc}
}

func (c *distanceServiceClient) GetCurrentDistance(ctx context.Context, opts ...grpc.CallOption) (*Reading, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, DistanceService_GetCurrentDistance_FullMethodName, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return ReadingFromStruct(out)
}

func (c *distanceServiceClient) Measure(ctx context.Context, opts ...grpc.CallOption) (*Reading, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, DistanceService_Measure_FullMethodName, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return ReadingFromStruct(out)
}

func (c *distanceServiceClient) GetHistory(ctx context.Context, in *HistoryRequest, opts ...grpc.CallOption) (*History, error) {
	req, err := in.Struct()
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, DistanceService_GetHistory_FullMethodName, req, out, opts...); err != nil {
		return nil, err
	}
	return HistoryFromStruct(out)
}

func (c *distanceServiceClient) RecordReading(ctx context.Context, in *RecordRequest, opts ...grpc.CallOption) (*Reading, error) {
	req, err := in.Struct()
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, DistanceService_RecordReading_FullMethodName, req, out, opts...); err != nil {
		return nil, err
	}
	return ReadingFromStruct(out)
}

// DistanceServiceServer is the server API for DistanceService.
// Implementations should embed UnimplementedDistanceServiceServer.
type DistanceServiceServer interface {
	GetCurrentDistance(context.Context) (*Reading, error)
	Measure(context.Context) (*Reading, error)
	GetHistory(context.Context, *HistoryRequest) (*History, error)
	RecordReading(context.Context, *RecordRequest) (*Reading, error)
	mustEmbedUnimplementedDistanceServiceServer()
}

// UnimplementedDistanceServiceServer answers every method with
// codes.Unimplemented.
type UnimplementedDistanceServiceServer struct{}

func (UnimplementedDistanceServiceServer) GetCurrentDistance(context.Context) (*Reading, error) {
	return nil, status.Error(codes.Unimplemented, "method GetCurrentDistance not implemented")
}
func (UnimplementedDistanceServiceServer) Measure(context.Context) (*Reading, error) {
	return nil, status.Error(codes.Unimplemented, "method Measure not implemented")
}
func (UnimplementedDistanceServiceServer) GetHistory(context.Context, *HistoryRequest) (*History, error) {
	return nil, status.Error(codes.Unimplemented, "method GetHistory not implemented")
}
func (UnimplementedDistanceServiceServer) RecordReading(context.Context, *RecordRequest) (*Reading, error) {
	return nil, status.Error(codes.Unimplemented, "method RecordReading not implemented")
}
func (UnimplementedDistanceServiceServer) mustEmbedUnimplementedDistanceServiceServer() {}

func RegisterDistanceServiceServer(s grpc.ServiceRegistrar, srv DistanceServiceServer) {
	s.RegisterService(&DistanceService_ServiceDesc, srv)
}

// encoder is any typed response that can be put on the wire.
type encoder interface {
	Struct() (*structpb.Struct, error)
}

func encode(resp encoder, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	out, err := resp.Struct()
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

func unary(srv any, ctx context.Context, in any, method string, interceptor grpc.UnaryServerInterceptor, call grpc.UnaryHandler) (any, error) {
	if interceptor == nil {
		return call(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: method,
	}
	return interceptor(ctx, in, info, call)
}

func _DistanceService_GetCurrentDistance_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	return unary(srv, ctx, in, DistanceService_GetCurrentDistance_FullMethodName, interceptor, func(ctx context.Context, _ any) (any, error) {
		return encode(srv.(DistanceServiceServer).GetCurrentDistance(ctx))
	})
}

func _DistanceService_Measure_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	return unary(srv, ctx, in, DistanceService_Measure_FullMethodName, interceptor, func(ctx context.Context, _ any) (any, error) {
		return encode(srv.(DistanceServiceServer).Measure(ctx))
	})
}

func _DistanceService_GetHistory_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	return unary(srv, ctx, in, DistanceService_GetHistory_FullMethodName, interceptor, func(ctx context.Context, req any) (any, error) {
		r, err := HistoryRequestFromStruct(req.(*structpb.Struct))
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return encode(srv.(DistanceServiceServer).GetHistory(ctx, r))
	})
}

func _DistanceService_RecordReading_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	return unary(srv, ctx, in, DistanceService_RecordReading_FullMethodName, interceptor, func(ctx context.Context, req any) (any, error) {
		r, err := RecordRequestFromStruct(req.(*structpb.Struct))
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return encode(srv.(DistanceServiceServer).RecordReading(ctx, r))
	})
}

// DistanceService_ServiceDesc is the grpc.ServiceDesc for DistanceService.
var DistanceService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "distance.v1.DistanceService",
	HandlerType: (*DistanceServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetCurrentDistance",
			Handler:    _DistanceService_GetCurrentDistance_Handler,
		},
		{
			MethodName: "Measure",
			Handler:    _DistanceService_Measure_Handler,
		},
		{
			MethodName: "GetHistory",
			Handler:    _DistanceService_GetHistory_Handler,
		},
		{
			MethodName: "RecordReading",
			Handler:    _DistanceService_RecordReading_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "distance/v1/distance.proto",
}
