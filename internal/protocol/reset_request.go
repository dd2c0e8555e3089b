package protocol

import (
	"fmt"
	"strings"
)

const (
	ResetRequestType                   = MessageResetRequest
	ResetRequestVersion MessageVersion = 0
)

// ResetMask selects what a ResetRequest clears. It is a free-form bit field:
// undefined bits are carried as-is.
type ResetMask uint32

// Runtime state.
const (
	// RestartNavigationEngine restarts the engine without clearing its position estimate.
	RestartNavigationEngine ResetMask = 0x00000001
	// ResetCorrections deletes all GNSS corrections information.
	ResetCorrections ResetMask = 0x00000002
)

// Short lived data.
const (
	// ResetPositionData clears the estimate of position, velocity and orientation.
	ResetPositionData ResetMask = 0x00000100
	// ResetEphemeris deletes all saved satellite ephemeris.
	ResetEphemeris ResetMask = 0x00000200
)

// Long lived data.
const (
	// ResetNavigationEngineData clears all stored engine state including training data.
	ResetNavigationEngineData ResetMask = 0x00001000
	// ResetCalibrationData clears device calibration only. Engine state is kept,
	// so it is normally combined with ResetNavigationEngineData.
	ResetCalibrationData ResetMask = 0x00002000
)

// Configuration.
const (
	ResetConfig ResetMask = 0x00100000
)

// Presets.
const (
	// HotStart reloads the engine and clears runtime data but keeps saved state.
	HotStart ResetMask = 0x000000FF
	// WarmStart additionally resets the saved position, velocity and orientation.
	WarmStart ResetMask = 0x000001FF
	// ColdStart resets all engine state except training, calibration and configuration.
	ColdStart ResetMask = 0x00000FFF
	// FactoryReset returns all persistent data to factory defaults. The upper
	// 8 bits are reserved.
	FactoryReset ResetMask = 0x00FFFFFF
)

var resetBitNames = []struct {
	bit  ResetMask
	name string
}{
	{RestartNavigationEngine, "RestartNavigationEngine"},
	{ResetCorrections, "ResetCorrections"},
	{ResetPositionData, "ResetPositionData"},
	{ResetEphemeris, "ResetEphemeris"},
	{ResetNavigationEngineData, "ResetNavigationEngineData"},
	{ResetCalibrationData, "ResetCalibrationData"},
	{ResetConfig, "ResetConfig"},
}

var resetPresets = map[string]ResetMask{
	"hot":     HotStart,
	"warm":    WarmStart,
	"cold":    ColdStart,
	"factory": FactoryReset,
}

// ResetPreset resolves a preset name (hot, warm, cold, factory).
func ResetPreset(name string) (ResetMask, bool) {
	m, ok := resetPresets[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}

// Has reports whether every bit in bits is set.
func (m ResetMask) Has(bits ResetMask) bool {
	return m&bits == bits
}

// Names lists the named bits set in m, in bit order.
func (m ResetMask) Names() []string {
	var names []string
	for _, b := range resetBitNames {
		if m.Has(b.bit) {
			names = append(names, b.name)
		}
	}
	return names
}

// String renders the mask as 0x%08x.
func (m ResetMask) String() string {
	return fmt.Sprintf("0x%08x", uint32(m))
}

var resetRequestLayout = MustLayout(
	U32("reset_mask"),
)

// ResetRequest asks the device to perform a software or hardware reset.
type ResetRequest struct {
	ResetMask ResetMask
}

// MessageType returns the identifier the transport stamps on a reset request.
func (m *ResetRequest) MessageType() MessageType { return ResetRequestType }

// MessageVersion returns the payload layout revision.
func (m *ResetRequest) MessageVersion() MessageVersion { return ResetRequestVersion }

// Size returns the fixed on-wire size in bytes.
func (m *ResetRequest) Size() int { return resetRequestLayout.Size() }

// Encode writes the payload at offset and returns the bytes written.
func (m *ResetRequest) Encode(buf []byte, offset int) (int, error) {
	if m == nil {
		return 0, ErrNilPayload
	}
	return resetRequestLayout.Encode(buf, offset, uint64(m.ResetMask))
}

// Decode populates the payload from offset and returns the bytes read.
func (m *ResetRequest) Decode(buf []byte, offset int) (int, error) {
	if m == nil {
		return 0, ErrNilPayload
	}
	values, n, err := resetRequestLayout.Decode(buf, offset)
	if err != nil {
		return 0, err
	}
	m.ResetMask = ResetMask(values[0])
	return n, nil
}

// String renders the payload for diagnostics.
func (m *ResetRequest) String() string {
	return fmt.Sprintf("Reset request. [mask=%s]", m.ResetMask)
}
