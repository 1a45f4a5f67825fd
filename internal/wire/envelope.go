package wire

import "github.com/vmihailenco/msgpack/v5"

// Envelope is the on-wire unit: a type name plus a msgpack-encoded payload.
// The type name is the only piece of introspection this transport offers,
// but it is enough to detect a publisher/subscriber type mismatch without
// a full schema registry.
type Envelope struct {
	Type    string `msgpack:"type"`
	Payload []byte `msgpack:"payload"`
}

// Pack encodes v into an Envelope tagged with typeName.
func Pack(typeName string, v any) (Envelope, error) {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Type: typeName, Payload: data}, nil
}

// PackRaw wraps an already-serialized payload, for callers (like a
// topic publisher relaying a caller-supplied message) that do not want a
// second layer of msgpack struct encoding on top of their own.
func PackRaw(typeName string, payload []byte) Envelope {
	return Envelope{Type: typeName, Payload: payload}
}

// Unpack decodes the Envelope's payload into v. It does not check Type;
// callers that care about type safety should call Matches first.
func (e Envelope) Unpack(v any) error {
	return msgpack.Unmarshal(e.Payload, v)
}

// Matches reports whether the Envelope was tagged with typeName.
func (e Envelope) Matches(typeName string) bool {
	return e.Type == typeName
}

// Marshal serializes the Envelope itself for transport.
func (e Envelope) Marshal() ([]byte, error) {
	return msgpack.Marshal(e)
}

// Unmarshal decodes raw transport bytes into an Envelope.
func Unmarshal(data []byte) (Envelope, error) {
	var e Envelope
	if err := msgpack.Unmarshal(data, &e); err != nil {
		return Envelope{}, err
	}
	return e, nil
}
