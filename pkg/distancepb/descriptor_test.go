package distancepb

import (
	"testing"

	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
)

func TestServiceDescriptorRegistered(t *testing.T) {
	d, err := protoregistry.GlobalFiles.FindDescriptorByName(protoreflect.FullName(DistanceService_ServiceDesc.ServiceName))
	if err != nil {
		t.Fatalf("service descriptor not registered: %v", err)
	}
	svc, ok := d.(protoreflect.ServiceDescriptor)
	if !ok {
		t.Fatalf("expected a service descriptor, got %T", d)
	}
	if got := svc.ParentFile().Path(); got != DistanceService_ServiceDesc.Metadata {
		t.Errorf("expected file %v, got %q", DistanceService_ServiceDesc.Metadata, got)
	}

	want := map[string][2]protoreflect.FullName{
		"GetCurrentDistance": {"google.protobuf.Empty", "google.protobuf.Struct"},
		"Measure":            {"google.protobuf.Empty", "google.protobuf.Struct"},
		"GetHistory":         {"google.protobuf.Struct", "google.protobuf.Struct"},
		"RecordReading":      {"google.protobuf.Struct", "google.protobuf.Struct"},
	}
	if svc.Methods().Len() != len(DistanceService_ServiceDesc.Methods) {
		t.Fatalf("expected %d methods, got %d", len(DistanceService_ServiceDesc.Methods), svc.Methods().Len())
	}
	for _, m := range DistanceService_ServiceDesc.Methods {
		md := svc.Methods().ByName(protoreflect.Name(m.MethodName))
		if md == nil {
			t.Errorf("method %s missing from descriptor", m.MethodName)
			continue
		}
		types := want[m.MethodName]
		if md.Input().FullName() != types[0] || md.Output().FullName() != types[1] {
			t.Errorf("%s: expected %s -> %s, got %s -> %s", m.MethodName,
				types[0], types[1], md.Input().FullName(), md.Output().FullName())
		}
	}
}
