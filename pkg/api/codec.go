package api

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// Codec marshals messages with encoding/json. It replaces Connect's default
// protobuf JSON codec, which only accepts proto messages.
type Codec struct{}

var _ connect.Codec = Codec{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (Codec) Unmarshal(data []byte, msg any) error {
	return json.Unmarshal(data, msg)
}
