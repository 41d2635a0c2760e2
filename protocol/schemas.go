package protocol

// Known payload schemas. Each pairs a compile-time PacketId with a
// fixed-layout, pointer-free Data record, mirroring
// original_source/packet/types/{optical,Encoder}.hpp and the packets/
// drafts (InitializeOpticalPacket, InitializeOpticalCompletePacket,
// TextPacket). These are the named external contracts spec.md treats as
// out of scope for the core, supplemented here so the transport has
// concrete schemas to exercise in examples and tests.

// OpticalData carries a position snapshot from the optical sensor.
type OpticalData struct {
	X, Y, Heading int32
}

func (OpticalData) PacketID() PacketId { return Optical }

// EncoderData carries a single reading from a custom encoder.
type EncoderData struct {
	Value float64
}

func (EncoderData) PacketID() PacketId { return Encoder }

// InitializeOpticalData is a zero-length command requesting that the
// optical sensor be (re)initialized.
type InitializeOpticalData struct{}

func (InitializeOpticalData) PacketID() PacketId { return InitializeOptical }

// InitializeOpticalCompleteData acknowledges completion of optical sensor
// initialization.
type InitializeOpticalCompleteData struct {
	Success uint8
}

func (InitializeOpticalCompleteData) PacketID() PacketId { return InitializeOpticalComplete }

// NewTextPacket builds a TEXT packet directly from raw bytes rather than a
// fixed struct — text payloads are variable-length, unlike the other
// schemas, so they bypass NewTyped/GetData and go through New directly.
func NewTextPacket(text string) *Packet {
	data := []byte(text)
	if len(data) > MaxPacketDataSize {
		data = data[:MaxPacketDataSize]
	}
	return New(Header{PacketID: Text}, data, len(data))
}
