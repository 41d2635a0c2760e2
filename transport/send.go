package transport

import "github.com/ridgeline-robotics/framelink/protocol"

// Send serializes pkt, frames it with COBS and writes it to the backend.
// Mirrors original_source/src/SerialHandler.cpp's send(): header and data
// are concatenated, then encoded; if encoding fails (only possible on an
// empty frame, which never happens since the header is always present)
// the packet is silently dropped rather than returned as an error. A
// packet whose serialized form exceeds MaxPacketSize is not written and
// Send returns ErrFrameTooLarge.
//
// A short write that the backend does not report as an error is not
// retried — see SPEC_FULL.md's resolution of the original's TODO on this
// point.
func (e *Engine) Send(pkt *protocol.Packet) error {
	raw := pkt.Serialize()
	if len(raw) > protocol.MaxPacketSize {
		return protocol.ErrFrameTooLarge
	}
	encoded, ok := protocol.Encode(raw)
	if !ok {
		return nil
	}
	_, err := e.backend.Write(encoded)
	return err
}

// SendTyped builds a Packet from a schema value and sends it.
func SendTyped[T protocol.Typed](e *Engine, value T) error {
	return e.Send(protocol.NewTyped(value))
}
