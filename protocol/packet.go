package protocol

import "unsafe"

// Packet is a generic, lightweight container: a Header plus a byte payload.
// It mirrors original_source/packet/Packet.hpp — a header and a data vector,
// with typed construction and typed re-interpretation of the payload.
type Packet struct {
	Header Header
	Data   []byte
}

// New copies data[:length] into an owned payload buffer. It panics if
// length exceeds MaxPacketDataSize, matching the original's assertable
// precondition (original_source/packet/Packet.cpp).
func New(header Header, data []byte, length int) *Packet {
	if length > MaxPacketDataSize {
		panic(ErrPayloadTooLarge)
	}
	buf := make([]byte, length)
	copy(buf, data[:length])
	return &Packet{Header: header, Data: buf}
}

// NewFromTyped copies the raw in-memory representation of value into the
// payload. T must be a fixed-layout, pointer-free struct — the caller is
// responsible for T's layout being stable and appropriate for header's
// identifier. This is the Go analogue of the original's memcpy-from-struct
// constructor.
func NewFromTyped[T any](header Header, value T) *Packet {
	size := int(unsafe.Sizeof(value))
	buf := make([]byte, size)
	if size > 0 {
		copy(buf, unsafe.Slice((*byte)(unsafe.Pointer(&value)), size))
	}
	return &Packet{Header: header, Data: buf}
}

// Serialize returns header bytes followed by the payload, with total
// length HeaderSize + len(Data).
func (p *Packet) Serialize() []byte {
	out := make([]byte, HeaderSize+len(p.Data))
	copy(out, p.Header.Bytes())
	copy(out[HeaderSize:], p.Data)
	return out
}

// ID returns the packet's logical identifier.
func (p *Packet) ID() PacketId {
	return p.Header.PacketID
}

// GetData reinterprets the first sizeof(T) bytes of the payload as T. The
// caller must name the schema type corresponding to the packet's
// identifier; behavior is undefined (but will not panic or read out of
// bounds) if sizes mismatch — the result is simply truncated/zero-padded.
func GetData[T any](p *Packet) T {
	var out T
	size := int(unsafe.Sizeof(out))
	n := size
	if len(p.Data) < n {
		n = len(p.Data)
	}
	if n > 0 {
		copy(unsafe.Slice((*byte)(unsafe.Pointer(&out)), size)[:n], p.Data[:n])
	}
	return out
}

// Typed is implemented by payload schema Data records so that generic
// helpers (transport.AddListener, transport.PopLatest, ...) can recover a
// type parameter's PacketId without a separate lookup table — the Go
// analogue of the original's `T::id` compile-time constant.
type Typed interface {
	PacketID() PacketId
}

// NewTyped builds a Packet for a schema type that implements Typed,
// stamping the correct identifier automatically.
func NewTyped[T Typed](value T) *Packet {
	return NewFromTyped(Header{PacketID: value.PacketID()}, value)
}
