package protocol

import "fmt"

const (
	CommandResponseType                   = MessageCommandResponse
	CommandResponseVersion MessageVersion = 0
)

// Response is the outcome code carried by a CommandResponse. Codes newer than
// this package are valid; IsKnown separates named codes from raw ones.
type Response uint8

const (
	// ResponseOK means the command succeeded.
	ResponseOK Response = iota
	// ResponseUnsupportedCmdVersion means the command or subcommand version
	// could not be handled, either too new or too old with no translation.
	ResponseUnsupportedCmdVersion
	// ResponseUnsupportedFeature means the command targets a feature the device
	// does not have.
	ResponseUnsupportedFeature
	// ResponseValueError means one or more values were out of range.
	ResponseValueError
	// ResponseInsufficientSpace means internal storage could not hold the result.
	ResponseInsufficientSpace
	// ResponseExecutionFailure means the command failed at runtime.
	ResponseExecutionFailure
)

var responseNames = [...]string{
	ResponseOK:                    "OK",
	ResponseUnsupportedCmdVersion: "Unsupported Command Version",
	ResponseUnsupportedFeature:    "Unsupported Feature",
	ResponseValueError:            "Value Error",
	ResponseInsufficientSpace:     "Insufficient Space",
	ResponseExecutionFailure:      "Execution Failure",
}

// IsKnown reports whether r is one of the named response codes.
func (r Response) IsKnown() bool {
	return int(r) < len(responseNames)
}

// String returns the response name, or UNKNOWN (n) for raw codes.
func (r Response) String() string {
	if r.IsKnown() {
		return responseNames[r]
	}
	return fmt.Sprintf("UNKNOWN (%d)", uint8(r))
}

var commandResponseLayout = MustLayout(
	U32("source_sequence_num"),
	U8("response"),
	Pad(3),
)

// CommandResponse reports whether the command with SourceSequenceNum was
// processed successfully.
type CommandResponse struct {
	SourceSequenceNum uint32
	Response          Response
}

// MessageType returns the identifier the transport stamps on a command response.
func (m *CommandResponse) MessageType() MessageType { return CommandResponseType }

// MessageVersion returns the payload layout revision.
func (m *CommandResponse) MessageVersion() MessageVersion { return CommandResponseVersion }

// Size returns the fixed on-wire size in bytes.
func (m *CommandResponse) Size() int { return commandResponseLayout.Size() }

// Encode writes the payload at offset and returns the bytes written.
func (m *CommandResponse) Encode(buf []byte, offset int) (int, error) {
	if m == nil {
		return 0, ErrNilPayload
	}
	return commandResponseLayout.Encode(buf, offset,
		uint64(m.SourceSequenceNum),
		uint64(m.Response),
	)
}

// Decode populates the payload from offset and returns the bytes read.
func (m *CommandResponse) Decode(buf []byte, offset int) (int, error) {
	if m == nil {
		return 0, ErrNilPayload
	}
	values, n, err := commandResponseLayout.Decode(buf, offset)
	if err != nil {
		return 0, err
	}
	m.SourceSequenceNum = uint32(values[0])
	m.Response = Response(values[1])
	return n, nil
}

// String renders the payload for diagnostics.
func (m *CommandResponse) String() string {
	response := m.Response.String()
	if m.Response.IsKnown() {
		response = fmt.Sprintf("%s (%d)", response, uint8(m.Response))
	}
	return fmt.Sprintf("Command Response\n  Sequence number: %d\n  Response: %s", m.SourceSequenceNum, response)
}
