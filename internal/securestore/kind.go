package securestore

import (
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

var kindNames = map[protoreflect.FullName]string{
	(&wrapperspb.StringValue{}).ProtoReflect().Descriptor().FullName(): "string",
	(&wrapperspb.Int32Value{}).ProtoReflect().Descriptor().FullName():  "int",
	(&wrapperspb.BoolValue{}).ProtoReflect().Descriptor().FullName():   "bool",
	(&wrapperspb.FloatValue{}).ProtoReflect().Descriptor().FullName():  "float",
	(&wrapperspb.Int64Value{}).ProtoReflect().Descriptor().FullName():  "long",
}

// kindOf names the native kind behind a wrapper message type.
func kindOf(n protoreflect.FullName) string {
	if k, ok := kindNames[n]; ok {
		return k
	}
	return string(n)
}
