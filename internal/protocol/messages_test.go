package protocol

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/danmuck/fusionctl/internal/testutil/testlog"
)

func TestCommandResponseScenarioBytes(t *testing.T) {
	testlog.Start(t)
	in := &CommandResponse{SourceSequenceNum: 42, Response: ResponseValueError}
	buf, err := Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := []byte{0x2A, 0x00, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00}
	if !bytes.Equal(buf, want) {
		t.Fatalf("unexpected bytes: got=% x want=% x", buf, want)
	}

	var out CommandResponse
	if err := Unmarshal(&out, buf); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out != *in {
		t.Fatalf("round-trip mismatch: got=%+v want=%+v", out, *in)
	}
}

func TestCommandResponseUnknownCodeRetained(t *testing.T) {
	testlog.Start(t)
	buf := []byte{0x01, 0x00, 0x00, 0x00, 200, 0x00, 0x00, 0x00}
	var m CommandResponse
	n, err := m.Decode(buf, 0)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if n != 8 {
		t.Fatalf("expected 8 bytes read, got %d", n)
	}
	if uint8(m.Response) != 200 || m.Response.IsKnown() {
		t.Fatalf("unexpected response: %d known=%v", m.Response, m.Response.IsKnown())
	}
	if got := m.Response.String(); got != "UNKNOWN (200)" {
		t.Fatalf("unexpected response string: %q", got)
	}

	out, err := Marshal(&m)
	if err != nil {
		t.Fatalf("re-encode: %v", err)
	}
	if out[4] != 200 {
		t.Fatalf("expected byte 200 at offset 4, got %d", out[4])
	}
}

func TestCommandResponseIgnoresPaddingOnRead(t *testing.T) {
	testlog.Start(t)
	buf := []byte{0x05, 0x00, 0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF}
	var m CommandResponse
	if _, err := m.Decode(buf, 0); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.SourceSequenceNum != 5 || m.Response != ResponseOK {
		t.Fatalf("unexpected decode: %+v", m)
	}
	out, err := Marshal(&m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(out[5:], []byte{0, 0, 0}) {
		t.Fatalf("padding not zeroed: % x", out)
	}
}

func TestResponseNames(t *testing.T) {
	testlog.Start(t)
	for r := ResponseOK; r <= ResponseExecutionFailure; r++ {
		if !r.IsKnown() {
			t.Fatalf("expected %d to be known", r)
		}
		if strings.HasPrefix(r.String(), "UNKNOWN") {
			t.Fatalf("named response rendered as unknown: %d", r)
		}
	}
	if Response(6).IsKnown() {
		t.Fatalf("expected 6 to be unknown")
	}
	m := &CommandResponse{SourceSequenceNum: 7, Response: ResponseInsufficientSpace}
	if !strings.Contains(m.String(), "Response: Insufficient Space (4)") {
		t.Fatalf("unexpected string: %q", m.String())
	}
	m.Response = Response(99)
	if !strings.Contains(m.String(), "Response: UNKNOWN (99)") {
		t.Fatalf("unexpected string: %q", m.String())
	}
}

func TestMessageRequestPaddingZeroed(t *testing.T) {
	testlog.Start(t)
	buf := bytes.Repeat([]byte{0xFF}, 4)
	m := NewMessageRequest(MessagePose)
	n, err := m.Encode(buf, 0)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if n != 4 {
		t.Fatalf("expected 4 bytes written, got %d", n)
	}
	want := []byte{0x10, 0x27, 0x00, 0x00}
	if !bytes.Equal(buf, want) {
		t.Fatalf("unexpected bytes: got=% x want=% x", buf, want)
	}
}

func TestMessageRequestAcceptsUnregisteredType(t *testing.T) {
	testlog.Start(t)
	var m MessageRequest
	if _, err := m.Decode([]byte{0xEF, 0xBE, 0x12, 0x34}, 0); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.RequestedType != MessageType(0xBEEF) {
		t.Fatalf("unexpected type: %#x", uint16(m.RequestedType))
	}
	if IsKnown(m.RequestedType) {
		t.Fatalf("expected unregistered type")
	}
	if got := m.String(); got != "Transmission request for message unknown type 0xBEEF." {
		t.Fatalf("unexpected string: %q", got)
	}
}

func TestResetRequestWarmStartScenario(t *testing.T) {
	testlog.Start(t)
	in := &ResetRequest{ResetMask: WarmStart}
	buf, err := Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(buf, []byte{0xFF, 0x01, 0x00, 0x00}) {
		t.Fatalf("unexpected bytes: % x", buf)
	}
	var out ResetRequest
	if err := Unmarshal(&out, buf); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.ResetMask != 0x000001FF {
		t.Fatalf("unexpected mask: %s", out.ResetMask)
	}
	if got := out.String(); got != "Reset request. [mask=0x000001ff]" {
		t.Fatalf("unexpected string: %q", got)
	}
}

func TestResetRequestShortBuffer(t *testing.T) {
	testlog.Start(t)
	var m ResetRequest
	_, err := m.Decode([]byte{1, 2, 3}, 0)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if err := Unmarshal(&m, []byte{1, 2, 3}); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected wrapped ErrOutOfBounds, got %v", err)
	}
}

func TestResetMaskBits(t *testing.T) {
	testlog.Start(t)
	if !WarmStart.Has(RestartNavigationEngine | ResetCorrections | ResetPositionData) {
		t.Fatalf("warm start should include runtime and position bits")
	}
	if WarmStart.Has(ResetEphemeris) {
		t.Fatalf("warm start should not include ephemeris")
	}
	if !FactoryReset.Has(ResetConfig) || ColdStart.Has(ResetNavigationEngineData) {
		t.Fatalf("unexpected preset composition")
	}
	got := (ResetEphemeris | ResetConfig | ResetMask(0x80000000)).Names()
	if !reflect.DeepEqual(got, []string{"ResetEphemeris", "ResetConfig"}) {
		t.Fatalf("unexpected names: %v", got)
	}
	if m, ok := ResetPreset(" Cold "); !ok || m != ColdStart {
		t.Fatalf("unexpected preset: %s ok=%v", m, ok)
	}
	if _, ok := ResetPreset("lukewarm"); ok {
		t.Fatalf("expected unknown preset")
	}
}

func TestPayloadRoundTripEdgeValues(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		name string
		in   Payload
		out  Payload
	}{
		{"command response zero", &CommandResponse{}, &CommandResponse{}},
		{"command response max", &CommandResponse{SourceSequenceNum: math.MaxUint32, Response: Response(math.MaxUint8)}, &CommandResponse{}},
		{"message request zero", &MessageRequest{}, &MessageRequest{}},
		{"message request max", NewMessageRequest(MessageType(math.MaxUint16)), &MessageRequest{}},
		{"reset request zero", &ResetRequest{}, &ResetRequest{}},
		{"reset request max", &ResetRequest{ResetMask: math.MaxUint32}, &ResetRequest{}},
		{"reset request factory", &ResetRequest{ResetMask: FactoryReset}, &ResetRequest{}},
	}
	for _, tc := range cases {
		buf, err := Marshal(tc.in)
		if err != nil {
			t.Fatalf("%s: marshal: %v", tc.name, err)
		}
		if len(buf) != tc.in.Size() {
			t.Fatalf("%s: expected %d bytes, got %d", tc.name, tc.in.Size(), len(buf))
		}
		n, err := tc.out.Decode(buf, 0)
		if err != nil {
			t.Fatalf("%s: decode: %v", tc.name, err)
		}
		if n != tc.in.Size() {
			t.Fatalf("%s: expected %d bytes read, got %d", tc.name, tc.in.Size(), n)
		}
		if !reflect.DeepEqual(tc.in, tc.out) {
			t.Fatalf("%s: round-trip mismatch: got=%+v want=%+v", tc.name, tc.out, tc.in)
		}
	}
}

func TestPayloadEncodeAtOffsetLeavesNeighbours(t *testing.T) {
	testlog.Start(t)
	buf := bytes.Repeat([]byte{0xAB}, 12)
	m := &CommandResponse{SourceSequenceNum: 1, Response: ResponseExecutionFailure}
	n, err := m.Encode(buf, 2)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if n != 8 || len(buf) != 12 {
		t.Fatalf("unexpected write: n=%d len=%d", n, len(buf))
	}
	if buf[1] != 0xAB || buf[10] != 0xAB {
		t.Fatalf("neighbouring bytes modified: % x", buf)
	}
	if _, err := m.Encode(buf, 5); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestMarshalNilPayload(t *testing.T) {
	testlog.Start(t)
	if _, err := Marshal(nil); !errors.Is(err, ErrNilPayload) {
		t.Fatalf("expected ErrNilPayload, got %v", err)
	}
	if err := Unmarshal(nil, []byte{0}); !errors.Is(err, ErrNilPayload) {
		t.Fatalf("expected ErrNilPayload, got %v", err)
	}
}

func TestTypedNilPayloadReturnsError(t *testing.T) {
	testlog.Start(t)
	buf := make([]byte, 8)
	var cr *CommandResponse
	var mr *MessageRequest
	var rr *ResetRequest
	for _, p := range []Payload{cr, mr, rr} {
		if _, err := Marshal(p); !errors.Is(err, ErrNilPayload) {
			t.Fatalf("%s: expected ErrNilPayload from Marshal, got %v", p.MessageType(), err)
		}
		if err := Unmarshal(p, buf); !errors.Is(err, ErrNilPayload) {
			t.Fatalf("%s: expected ErrNilPayload from Unmarshal, got %v", p.MessageType(), err)
		}
	}
}
