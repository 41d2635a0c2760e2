package protocol

// Header is the fixed-layout packet header: a single identifier byte.
// Earlier drafts carried a 16-bit checksum alongside the id (see
// original_source/packet/Header.hpp); the current core relies on framing
// integrity and length checks alone and does not restore it.
type Header struct {
	PacketID PacketId
}

// Bytes serializes the header to its one-byte wire form.
func (h Header) Bytes() []byte {
	return []byte{byte(h.PacketID)}
}

// DecodeHeader parses a Header from the first HeaderSize bytes of data.
func DecodeHeader(data []byte) (Header, bool) {
	if len(data) < HeaderSize {
		return Header{}, false
	}
	return Header{PacketID: PacketId(data[0])}, true
}
