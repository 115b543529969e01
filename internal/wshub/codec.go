package wshub

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/coder/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// Format selects the frame encoding of a client.
type Format int

const (
	FormatJSON Format = iota
	FormatMsgpack
)

// ParseFormat maps the ?format= query value; anything unknown is JSON.
func ParseFormat(s string) Format {
	if s == "msgpack" {
		return FormatMsgpack
	}
	return FormatJSON
}

func (f Format) messageType() websocket.MessageType {
	if f == FormatMsgpack {
		return websocket.MessageBinary
	}
	return websocket.MessageText
}

// Encode renders msg in format f. Msgpack frames reuse the json field names.
func Encode(f Format, msg ServerMessage) ([]byte, error) {
	if f == FormatJSON {
		return json.Marshal(msg)
	}
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(msg); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", msg.Type, err)
	}
	return buf.Bytes(), nil
}

// DecodeClientMessage reads a command frame of either encoding.
func DecodeClientMessage(typ websocket.MessageType, data []byte) (ClientMessage, error) {
	var msg ClientMessage
	if typ == websocket.MessageText {
		err := json.Unmarshal(data, &msg)
		return msg, err
	}
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	err := dec.Decode(&msg)
	return msg, err
}
