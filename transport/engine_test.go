package transport

import (
	"testing"
	"time"

	"github.com/ridgeline-robotics/framelink/driver/mock"
	"github.com/ridgeline-robotics/framelink/protocol"
)

func TestSendReceiveRoundTrip(t *testing.T) {
	a, b := mock.Pair()
	tx := New(a)
	rx := New(b)

	want := protocol.OpticalData{X: 10, Y: -20, Heading: 90}
	if err := SendTyped(tx, want); err != nil {
		t.Fatalf("SendTyped() error = %v", err)
	}

	rx.Receive()

	got, ok := PopLatest[protocol.OpticalData](rx)
	if !ok {
		t.Fatal("PopLatest() found nothing buffered")
	}
	if got != want {
		t.Errorf("PopLatest() = %+v, want %+v", got, want)
	}
}

func TestReceiveDispatchesToListener(t *testing.T) {
	a, b := mock.Pair()
	tx := New(a)
	rx := New(b)

	received := make(chan protocol.EncoderData, 1)
	ok := AddListener[protocol.EncoderData](rx, func(pkt *protocol.Packet) {
		received <- protocol.GetData[protocol.EncoderData](pkt)
	})
	if !ok {
		t.Fatal("AddListener() returned false on first registration")
	}

	if err := SendTyped(tx, protocol.EncoderData{Value: 3.5}); err != nil {
		t.Fatalf("SendTyped() error = %v", err)
	}
	rx.Receive()

	select {
	case got := <-received:
		if got.Value != 3.5 {
			t.Errorf("listener got Value = %v, want 3.5", got.Value)
		}
	case <-time.After(time.Second):
		t.Fatal("listener was not invoked")
	}
}

func TestAddListenerRejectsSecondRegistration(t *testing.T) {
	rx := New(mock.New())
	if !AddListener[protocol.InitializeOpticalData](rx, func(*protocol.Packet) {}) {
		t.Fatal("first AddListener() should succeed")
	}
	if AddListener[protocol.InitializeOpticalData](rx, func(*protocol.Packet) {}) {
		t.Fatal("second AddListener() for the same id should fail")
	}
	if !RemoveListener[protocol.InitializeOpticalData](rx) {
		t.Fatal("RemoveListener() should succeed after a registration")
	}
	if !AddListener[protocol.InitializeOpticalData](rx, func(*protocol.Packet) {}) {
		t.Fatal("AddListener() should succeed again after removal")
	}
}

func TestMultipleFramesInOneRead(t *testing.T) {
	a, b := mock.Pair()
	tx := New(a)
	rx := New(b)

	if err := SendTyped(tx, protocol.OpticalData{X: 1}); err != nil {
		t.Fatal(err)
	}
	if err := SendTyped(tx, protocol.OpticalData{X: 2}); err != nil {
		t.Fatal(err)
	}

	// The second Receive must find the already-buffered second frame
	// without performing any further backend I/O.
	rx.Receive()
	rx.Receive()

	first, _ := PopLatest[protocol.OpticalData](rx)
	if first.X != 2 {
		t.Errorf("PopLatest() after two receives = %+v, want X=2 (newest)", first)
	}
	if rx.BufferSize(protocol.Optical) != 1 {
		t.Errorf("BufferSize() = %d, want 1", rx.BufferSize(protocol.Optical))
	}
}

func TestUnknownPacketIDIsDropped(t *testing.T) {
	be := mock.New()
	rx := New(be)

	encoded, ok := protocol.Encode([]byte{250, 0x01}) // 250 is not a valid identifier
	if !ok {
		t.Fatal("Encode() failed")
	}
	be.Inject(encoded)

	rx.Receive()

	for id := protocol.PacketId(0); id < protocol.LENGTH; id++ {
		if rx.BufferSize(id) != 0 {
			t.Errorf("BufferSize(%v) = %d, want 0", id, rx.BufferSize(id))
		}
	}
}

func TestGarbageDoesNotCrashReceive(t *testing.T) {
	be := mock.New()
	rx := New(be)

	be.Inject([]byte("hello world!\x00"))

	rx.Receive()

	for id := protocol.PacketId(0); id < protocol.LENGTH; id++ {
		if rx.BufferSize(id) != 0 {
			t.Errorf("BufferSize(%v) = %d, want 0", id, rx.BufferSize(id))
		}
	}
}

func TestSplitFrameAcrossMultipleReads(t *testing.T) {
	pkt := protocol.NewTyped(protocol.EncoderData{Value: 7.25})
	raw := pkt.Serialize()
	encoded, ok := protocol.Encode(raw)
	if !ok {
		t.Fatal("Encode() failed")
	}

	be := mock.New()
	rx := New(be)

	go func() {
		for i := 0; i < len(encoded); i += 10 {
			end := i + 10
			if end > len(encoded) {
				end = len(encoded)
			}
			be.Inject(encoded[i:end])
			time.Sleep(time.Millisecond)
		}
	}()

	done := make(chan struct{})
	go func() {
		rx.Receive()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Receive() never completed on a split frame")
	}

	got, ok := PopLatest[protocol.EncoderData](rx)
	if !ok {
		t.Fatal("PopLatest() found nothing buffered")
	}
	if got.Value != 7.25 {
		t.Errorf("PopLatest() = %+v, want Value=7.25", got)
	}
}

func TestOverflowResetRecoversNextFrame(t *testing.T) {
	pkt := protocol.NewTyped(protocol.OpticalData{X: 42})
	encoded, ok := protocol.Encode(pkt.Serialize())
	if !ok {
		t.Fatal("Encode() failed")
	}

	be := mock.New()
	rx := New(be)

	// No 0x00 anywhere in this blob, so no delimiter is ever found; the
	// receive buffer must hit its overflow threshold and reset itself
	// one or more times before the valid frame below is ever reached.
	// The blob fills 195 whole carrier reads, a multiple of the three
	// reads that take the buffer past MaxEncodedPacketSize, so the last
	// reset falls right before the read that brings in the frame. (Garbage
	// that shared a read with the frame would sit in front of it with no
	// delimiter between them, and the two would decode as one frame.)
	garbage := make([]byte, 195*protocol.CarrierMinRead)
	for i := range garbage {
		garbage[i] = 0x01
	}
	be.Inject(garbage)
	be.Inject(encoded)

	done := make(chan struct{})
	go func() {
		rx.Receive()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Receive() never recovered from a buffer overflow")
	}

	got, ok := PopLatest[protocol.OpticalData](rx)
	if !ok {
		t.Fatal("PopLatest() found nothing buffered")
	}
	if got.X != 42 {
		t.Errorf("PopLatest() = %+v, want X=42", got)
	}
}

func TestMaxSizePayloadRoundTrips(t *testing.T) {
	a, b := mock.Pair()
	tx := New(a)
	rx := New(b)

	text := make([]byte, protocol.MaxPacketDataSize)
	for i := range text {
		text[i] = byte('a' + i%26)
	}
	pkt := protocol.NewTextPacket(string(text))
	if len(pkt.Data) != protocol.MaxPacketDataSize {
		t.Fatalf("NewTextPacket() payload = %d bytes, want %d", len(pkt.Data), protocol.MaxPacketDataSize)
	}

	encoded, ok := protocol.Encode(pkt.Serialize())
	if !ok {
		t.Fatal("Encode() failed")
	}
	if len(encoded) > protocol.MaxEncodedPacketSize {
		t.Fatalf("encoded frame = %d bytes, exceeds MaxEncodedPacketSize %d", len(encoded), protocol.MaxEncodedPacketSize)
	}

	if err := tx.Send(pkt); err != nil {
		t.Fatal(err)
	}
	rx.Receive()

	got, ok := rx.buffers[protocol.Text].PopLatest()
	if !ok {
		t.Fatal("PopLatest() found nothing buffered for Text")
	}
	if len(got.Data) != protocol.MaxPacketDataSize {
		t.Errorf("received payload = %d bytes, want %d", len(got.Data), protocol.MaxPacketDataSize)
	}
	if rx.nextWriteIdx > protocol.MaxEncodedPacketSize {
		t.Errorf("nextWriteIdx = %d, exceeds MaxEncodedPacketSize %d", rx.nextWriteIdx, protocol.MaxEncodedPacketSize)
	}
}

func TestTryReceiveFalseWithNoDelimiterBuffered(t *testing.T) {
	be := mock.New()
	rx := New(be)
	be.Inject([]byte{0x01, 0x02, 0x03}) // no delimiter yet

	if rx.TryReceive() {
		t.Error("TryReceive() should report false when no frame is complete")
	}
}

func TestTryReceiveTrueWhenSecondFrameAlreadyBuffered(t *testing.T) {
	a, b := mock.Pair()
	tx := New(a)
	rx := New(b)

	if err := SendTyped(tx, protocol.OpticalData{X: 1}); err != nil {
		t.Fatal(err)
	}
	if err := SendTyped(tx, protocol.OpticalData{X: 2}); err != nil {
		t.Fatal(err)
	}

	// Consumes the first frame and pulls both into rx's internal buffer
	// in one carrier read.
	rx.Receive()

	// The second frame is already sitting in the buffer; TryReceive must
	// find it without any further backend I/O.
	if !rx.TryReceive() {
		t.Error("TryReceive() should find the already-buffered second frame")
	}
	got, _ := PopLatest[protocol.OpticalData](rx)
	if got.X != 2 {
		t.Errorf("PopLatest() = %+v, want X=2", got)
	}
}
