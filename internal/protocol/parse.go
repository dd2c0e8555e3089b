package protocol

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

func normalizeName(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}

// ParseMessageType accepts a catalog name in any case and with any of
// space/dash/underscore separators, or a decimal/0x-prefixed number. Numbers
// outside the catalog are accepted.
func ParseMessageType(s string) (MessageType, error) {
	if v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 16); err == nil {
		return MessageType(v), nil
	}
	want := normalizeName(s)
	for _, info := range catalog {
		if normalizeName(info.Name) == want {
			return info.Type, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownName, "message type %q", s)
}

// ParseResponse accepts a response name or a raw 0-255 code.
func ParseResponse(s string) (Response, error) {
	if v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 8); err == nil {
		return Response(v), nil
	}
	want := normalizeName(s)
	for i, name := range responseNames {
		if normalizeName(name) == want {
			return Response(i), nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownName, "response %q", s)
}
