package codec

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// Name は content-subtype として使うコーデック名です (application/grpc+json)。
const Name = "json"

var unmarshalOptions = protojson.UnmarshalOptions{DiscardUnknown: true}

// JSON は gRPC メッセージを JSON で符号化します。proto.Message は protojson、それ以外は encoding/json を使います。
type JSON struct{}

func init() {
	encoding.RegisterCodec(JSON{})
}

// Marshal はメッセージを JSON に変換します。
func (JSON) Marshal(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return protojson.Marshal(m)
	}
	return json.Marshal(v)
}

// Unmarshal は JSON をメッセージに変換します。
func (JSON) Unmarshal(data []byte, v any) error {
	if m, ok := v.(proto.Message); ok {
		if len(data) == 0 {
			proto.Reset(m)
			return nil
		}
		return unmarshalOptions.Unmarshal(data, m)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

// Name はコーデック名を返します。
func (JSON) Name() string {
	return Name
}
