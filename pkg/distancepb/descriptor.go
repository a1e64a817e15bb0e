package distancepb

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	_ "google.golang.org/protobuf/types/known/emptypb"
	_ "google.golang.org/protobuf/types/known/structpb"
)

// File_distance_v1_distance_proto describes DistanceService so that gRPC
// reflection clients can resolve its methods and message types.
var File_distance_v1_distance_proto protoreflect.FileDescriptor

func method(name, in, out string) *descriptorpb.MethodDescriptorProto {
	return &descriptorpb.MethodDescriptorProto{
		Name:       proto.String(name),
		InputType:  proto.String(in),
		OutputType: proto.String(out),
	}
}

func fileDescriptorProto() *descriptorpb.FileDescriptorProto {
	const (
		empty  = ".google.protobuf.Empty"
		object = ".google.protobuf.Struct"
	)
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String(DistanceService_ServiceDesc.Metadata.(string)),
		Package: proto.String("distance.v1"),
		Dependency: []string{
			"google/protobuf/empty.proto",
			"google/protobuf/struct.proto",
		},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String("DistanceService"),
			Method: []*descriptorpb.MethodDescriptorProto{
				method("GetCurrentDistance", empty, object),
				method("Measure", empty, object),
				method("GetHistory", object, object),
				method("RecordReading", object, object),
			},
		}},
		Syntax: proto.String("proto3"),
	}
}

func init() {
	fd, err := protodesc.NewFile(fileDescriptorProto(), protoregistry.GlobalFiles)
	if err != nil {
		panic("distancepb: build file descriptor: " + err.Error())
	}
	if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
		panic("distancepb: register file descriptor: " + err.Error())
	}
	File_distance_v1_distance_proto = fd
}
