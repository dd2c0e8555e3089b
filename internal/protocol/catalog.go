package protocol

import (
	"fmt"
	"sort"
)

// MessageType identifies a message kind on the wire. Values outside the
// catalog are valid and must be carried through untouched.
type MessageType uint16

// MessageVersion identifies the payload layout revision of a message kind.
type MessageVersion uint8

const (
	MessageInvalid MessageType = 0

	// Navigation solution messages.
	MessagePose          MessageType = 10000
	MessageGNSSInfo      MessageType = 10001
	MessageGNSSSatellite MessageType = 10002
	MessagePoseAux       MessageType = 10003

	// Sensor measurement messages.
	MessageIMUMeasurement MessageType = 11000

	// ROS support messages.
	MessageROSPose   MessageType = 12000
	MessageROSGPSFix MessageType = 12010
	MessageROSIMU    MessageType = 12011

	// Command and control messages.
	MessageCommandResponse   MessageType = 13000
	MessageMessageRequest    MessageType = 13001
	MessageResetRequest      MessageType = 13002
	MessageVersionInfo       MessageType = 13003
	MessageEventNotification MessageType = 13004
)

// MessageInfo is the catalog entry for one message type.
type MessageInfo struct {
	Type          MessageType
	Name          string
	LatestVersion MessageVersion
}

var catalog = map[MessageType]MessageInfo{
	MessageInvalid:           {MessageInvalid, "Invalid", 0},
	MessagePose:              {MessagePose, "Pose", 0},
	MessageGNSSInfo:          {MessageGNSSInfo, "GNSS Info", 0},
	MessageGNSSSatellite:     {MessageGNSSSatellite, "GNSS Satellite", 0},
	MessagePoseAux:           {MessagePoseAux, "Pose Auxiliary", 0},
	MessageIMUMeasurement:    {MessageIMUMeasurement, "IMU Measurement", 0},
	MessageROSPose:           {MessageROSPose, "ROS Pose", 0},
	MessageROSGPSFix:         {MessageROSGPSFix, "ROS GPS Fix", 0},
	MessageROSIMU:            {MessageROSIMU, "ROS IMU", 0},
	MessageCommandResponse:   {MessageCommandResponse, "Command Response", CommandResponseVersion},
	MessageMessageRequest:    {MessageMessageRequest, "Message Request", MessageRequestVersion},
	MessageResetRequest:      {MessageResetRequest, "Reset Request", ResetRequestVersion},
	MessageVersionInfo:       {MessageVersionInfo, "Version Info", 0},
	MessageEventNotification: {MessageEventNotification, "Event Notification", 0},
}

// Lookup returns the catalog entry for t.
func Lookup(t MessageType) (MessageInfo, bool) {
	info, ok := catalog[t]
	return info, ok
}

// IsKnown reports whether t has a catalog entry.
func IsKnown(t MessageType) bool {
	_, ok := catalog[t]
	return ok
}

// DisplayName returns the registered name for t, or a synthesized
// "unknown type 0xXXXX" label. It never fails.
func DisplayName(t MessageType) string {
	if info, ok := catalog[t]; ok {
		return info.Name
	}
	return fmt.Sprintf("unknown type 0x%04X", uint16(t))
}

// LatestVersion returns the newest payload revision known for t.
func LatestVersion(t MessageType) (MessageVersion, bool) {
	info, ok := catalog[t]
	return info.LatestVersion, ok
}

// Catalog returns every registered entry ordered by type id.
func Catalog() []MessageInfo {
	out := make([]MessageInfo, 0, len(catalog))
	for _, info := range catalog {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

func (t MessageType) String() string {
	return DisplayName(t)
}
