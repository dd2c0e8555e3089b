// Package protocol owns the control-message wire contract.
//
// Ownership boundary:
// - fixed-width little-endian field primitives and layout tables
// - payload contract shared by every message variant
// - message type catalog (names and latest versions)
// - command response, message request and reset request payloads
//
// Framing, CRCs and transport delivery live outside this package; callers hand
// in a payload buffer together with the message type that selected it.
package protocol
