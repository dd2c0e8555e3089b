package protocol

import "github.com/pkg/errors"

// Payload is implemented by every fixed-size message body.
//
// Size is constant per type. Encode writes exactly Size bytes at offset into a
// caller-owned buffer and never grows it. Decode reads exactly Size bytes and
// populates every declared field; out-of-range enum values are kept raw.
type Payload interface {
	MessageType() MessageType
	MessageVersion() MessageVersion
	Size() int
	Encode(buf []byte, offset int) (int, error)
	Decode(buf []byte, offset int) (int, error)
	String() string
}

// Marshal allocates a buffer of exactly p.Size() bytes and encodes p into it.
func Marshal(p Payload) ([]byte, error) {
	if p == nil {
		return nil, ErrNilPayload
	}
	buf := make([]byte, p.Size())
	if _, err := p.Encode(buf, 0); err != nil {
		return nil, errors.Wrapf(err, "marshal %s", p.MessageType())
	}
	return buf, nil
}

// Unmarshal decodes p from the start of buf.
func Unmarshal(p Payload, buf []byte) error {
	if p == nil {
		return ErrNilPayload
	}
	if _, err := p.Decode(buf, 0); err != nil {
		return errors.Wrapf(err, "unmarshal %s", p.MessageType())
	}
	return nil
}

var (
	_ Payload = (*CommandResponse)(nil)
	_ Payload = (*MessageRequest)(nil)
	_ Payload = (*ResetRequest)(nil)
)
