// Package framelink is a façade over the packet transport: construct an
// Engine bound to the right carrier for your role (HOST or COP) and use
// it to send typed packets, pop buffered ones and register listeners.
package framelink

import (
	"github.com/rs/zerolog"

	"github.com/ridgeline-robotics/framelink/buffer"
	"github.com/ridgeline-robotics/framelink/protocol"
	"github.com/ridgeline-robotics/framelink/transport"
)

// Re-exported types so callers only need to import this package for the
// common case. The generic helpers (transport.SendTyped, AddListener,
// RemoveListener, PopLatest) are not re-exportable as plain identifiers
// and are reached by importing transport alongside this package.
type (
	PacketId = protocol.PacketId
	Header   = protocol.Header
	Packet   = protocol.Packet
	Engine   = transport.Engine
	Backend  = transport.Backend
)

// Re-exported identifiers.
const (
	Optical                   = protocol.Optical
	Encoder                   = protocol.Encoder
	InitializeOptical         = protocol.InitializeOptical
	InitializeOpticalComplete = protocol.InitializeOpticalComplete
	Text                      = protocol.Text
)

// Unbounded disables the per-identifier buffer limit; it is the default.
const Unbounded = buffer.Unbounded

// Re-exported errors.
var (
	ErrPayloadTooLarge = protocol.ErrPayloadTooLarge
	ErrUnknownPacketID = protocol.ErrUnknownPacketID
	ErrFrameTooLarge   = protocol.ErrFrameTooLarge
)

// Re-exported schema types.
type (
	OpticalData                   = protocol.OpticalData
	EncoderData                   = protocol.EncoderData
	InitializeOpticalData         = protocol.InitializeOpticalData
	InitializeOpticalCompleteData = protocol.InitializeOpticalCompleteData
)

// NewEngine builds an Engine around backend.
func NewEngine(backend Backend, opts ...transport.Option) *Engine {
	return transport.New(backend, opts...)
}

// WithLogger is re-exported so callers configuring an Engine via
// NewEngine don't need to import transport directly just for this
// option.
func WithLogger(l zerolog.Logger) transport.Option {
	return transport.WithLogger(l)
}
