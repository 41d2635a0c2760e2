package protocol

// Generic framing & packet constants, platform independent. All higher layers
// depend on this file rather than redefining sizes locally.
const (
	// HeaderSize is the on-wire size of Header: a single packet_id byte.
	HeaderSize = 1

	// MaxPacketSize is the maximum decoded frame size: header + payload.
	MaxPacketSize = 1024

	// MaxPacketDataSize is the maximum payload a Packet may carry.
	MaxPacketDataSize = MaxPacketSize - HeaderSize

	// MaxEncodedPacketSize is the worst-case COBS-encoded size of a
	// MaxPacketSize frame: +1 overhead byte, +1 delimiter, plus one extra
	// block-marker byte for every 254 bytes of input.
	MaxEncodedPacketSize = MaxPacketSize + 2 + (MaxPacketSize+253)/254

	// CarrierMinRead is the minimum number of bytes requested per backend
	// read. It is hardware-imposed on the HOST's USB bulk transport; the
	// engine always keeps at least this many bytes free before reading.
	CarrierMinRead = 512
)
