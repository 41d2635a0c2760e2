package protocol

import "errors"

var (
	// ErrPayloadTooLarge is the value New panics with when a payload
	// exceeds MaxPacketDataSize.
	ErrPayloadTooLarge = errors.New("framelink: payload exceeds max packet data size")

	// ErrUnknownPacketID names the case of a decoded header whose
	// identifier lies outside [0, LENGTH). No function in this module
	// returns it: the engine drops such frames without reporting an error.
	ErrUnknownPacketID = errors.New("framelink: unknown packet id")

	// ErrFrameTooLarge is returned by Send when a serialized packet would
	// exceed MaxPacketSize.
	ErrFrameTooLarge = errors.New("framelink: serialized packet exceeds max packet size")
)
