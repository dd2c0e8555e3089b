package protocol

import "fmt"

const (
	MessageRequestType                   = MessageMessageRequest
	MessageRequestVersion MessageVersion = 0
)

var messageRequestLayout = MustLayout(
	U16("message_type"),
	Pad(2),
)

// MessageRequest asks the device to transmit one message of RequestedType.
// The requested id is not checked against the catalog.
type MessageRequest struct {
	RequestedType MessageType
}

// NewMessageRequest builds a request for message type t.
func NewMessageRequest(t MessageType) *MessageRequest {
	return &MessageRequest{RequestedType: t}
}

// MessageType returns the identifier the transport stamps on a message request.
func (m *MessageRequest) MessageType() MessageType { return MessageRequestType }

// MessageVersion returns the payload layout revision.
func (m *MessageRequest) MessageVersion() MessageVersion { return MessageRequestVersion }

// Size returns the fixed on-wire size in bytes.
func (m *MessageRequest) Size() int { return messageRequestLayout.Size() }

// Encode writes the payload at offset and returns the bytes written.
func (m *MessageRequest) Encode(buf []byte, offset int) (int, error) {
	if m == nil {
		return 0, ErrNilPayload
	}
	return messageRequestLayout.Encode(buf, offset, uint64(m.RequestedType))
}

// Decode populates the payload from offset and returns the bytes read.
func (m *MessageRequest) Decode(buf []byte, offset int) (int, error) {
	if m == nil {
		return 0, ErrNilPayload
	}
	values, n, err := messageRequestLayout.Decode(buf, offset)
	if err != nil {
		return 0, err
	}
	m.RequestedType = MessageType(values[0])
	return n, nil
}

// String renders the payload for diagnostics.
func (m *MessageRequest) String() string {
	return fmt.Sprintf("Transmission request for message %s.", DisplayName(m.RequestedType))
}
