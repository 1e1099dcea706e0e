package grpcv1

import (
	"github.com/Camping-RSO/camping-logs-ms/internal/domain"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	fieldMicroservice = "microservice"
	fieldMessage      = "message"
)

// stringField returns nil when the field is absent or not a string.
func stringField(s *structpb.Struct, name string) *string {
	v, ok := s.GetFields()[name]
	if !ok {
		return nil
	}
	sv, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return nil
	}
	return &sv.StringValue
}

func ToStruct(l domain.Log) *structpb.Struct {
	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			fieldMicroservice: structpb.NewStringValue(l.Microservice),
			fieldMessage:      structpb.NewStringValue(l.Message),
		},
	}
}

func ToListValue(logs []domain.Log) *structpb.ListValue {
	values := make([]*structpb.Value, 0, len(logs))
	for _, l := range logs {
		values = append(values, structpb.NewStructValue(ToStruct(l)))
	}
	return &structpb.ListValue{Values: values}
}
