package main

import (
	"fmt"

	"github.com/danmuck/fusionctl/internal/protocol"
)

// newPayload selects the payload codec for a message type.
func newPayload(t protocol.MessageType) (protocol.Payload, error) {
	switch t {
	case protocol.CommandResponseType:
		return &protocol.CommandResponse{}, nil
	case protocol.MessageRequestType:
		return &protocol.MessageRequest{}, nil
	case protocol.ResetRequestType:
		return &protocol.ResetRequest{}, nil
	default:
		return nil, fmt.Errorf("no payload codec for %s (%d)", protocol.DisplayName(t), uint16(t))
	}
}
