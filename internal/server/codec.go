package server

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/joseph-ayodele/landdoc-verifier/internal/common"
)

// decode reads a Struct message into a typed request and applies its
// validate tags.
func decode(in *structpb.Struct, out any) error {
	if in == nil {
		in = &structpb.Struct{}
	}
	b, err := in.MarshalJSON()
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}
	return common.ValidateStruct(out)
}

// encode turns any JSON-serializable value into a Struct message.
func encode(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, common.WrapError(err, "encode response")
	}
	out := &structpb.Struct{}
	if err := out.UnmarshalJSON(b); err != nil {
		return nil, common.WrapError(err, "encode response")
	}
	return out, nil
}
