package transport

import (
	"bytes"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ridgeline-robotics/framelink/buffer"
	"github.com/ridgeline-robotics/framelink/protocol"
)

// Engine drives the receive state machine and send path over a Backend.
// It mirrors original_source/src/SerialHandler.{hpp,cpp}: a fixed
// receive buffer plus write cursor, one bounded queue and at most one
// listener per packet identifier, all guarded by a single mutex.
type Engine struct {
	backend Backend
	log     zerolog.Logger

	mu           sync.Mutex
	buffers      [protocol.LENGTH]*buffer.Bounded
	listeners    registry
	buf          [protocol.MaxEncodedPacketSize + protocol.CarrierMinRead]byte
	nextWriteIdx int
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithLogger attaches a structured logger. If this option is omitted the
// Engine logs to zerolog.Nop(), which discards all output.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New builds an Engine around backend. Each packet identifier starts
// with an unbounded buffer and no listener.
func New(backend Backend, opts ...Option) *Engine {
	e := &Engine{backend: backend, log: zerolog.Nop()}
	for i := range e.buffers {
		e.buffers[i] = buffer.New()
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetBufferLimit bounds the buffer retained for id. Pass buffer.Unbounded
// to remove the limit.
func (e *Engine) SetBufferLimit(id protocol.PacketId, size int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.buffers[id].SetMaxSize(size)
}

// BufferSize reports how many packets are currently queued for id.
func (e *Engine) BufferSize(id protocol.PacketId) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buffers[id].Size()
}

// Close releases the underlying backend.
func (e *Engine) Close() error {
	return e.backend.Close()
}

// Receive returns once exactly one frame has been processed: decoded and
// dispatched, or dropped as malformed. It blocks on the backend as long
// as necessary to find a delimiter. If the backend reports a read error
// (0 bytes, EOF, or an error), the loop continues without advancing the
// cursor rather than returning — cancellation is achieved by closing the
// Engine, at which point a broken backend spins without making forward
// progress. This mirrors the original's unhandled-EOF gap in
// SerialHandler::receive() rather than inventing error propagation it
// never had.
func (e *Engine) Receive() {
	frame := e.awaitFrame()
	e.decodeAndDispatch(frame)
}

// TryReceive is the non-blocking-intent variant: it checks whether a
// frame is already buffered, and if not, issues exactly one backend read
// before giving up for this call. It reports whether a frame was
// dispatched. Because Backend.Read blocks for at least one byte by
// contract, true non-blocking behavior depends on the backend itself
// returning promptly with nothing (EOF-like) rather than stalling;
// carriers that can block indefinitely should drive Receive from a
// dedicated goroutine instead.
func (e *Engine) TryReceive() bool {
	e.mu.Lock()
	delim := bytes.IndexByte(e.buf[:e.nextWriteIdx], 0x00)
	e.mu.Unlock()

	if delim < 0 {
		e.readMore()
		e.mu.Lock()
		delim = bytes.IndexByte(e.buf[:e.nextWriteIdx], 0x00)
		e.mu.Unlock()
		if delim < 0 {
			return false
		}
	}

	frame := e.extractFrame(delim)
	return e.decodeAndDispatch(frame) != nil
}

// awaitFrame searches for a delimiter in the buffer, reading more from
// the backend until one is found, then extracts and returns the frame
// bytes (compacting the buffer before returning).
func (e *Engine) awaitFrame() []byte {
	e.mu.Lock()
	delim := bytes.IndexByte(e.buf[:e.nextWriteIdx], 0x00)
	e.mu.Unlock()

	for delim < 0 {
		e.readMore()
		e.mu.Lock()
		delim = bytes.IndexByte(e.buf[:e.nextWriteIdx], 0x00)
		e.mu.Unlock()
	}

	return e.extractFrame(delim)
}

// readMore resets the buffer once it holds MaxEncodedPacketSize bytes
// with no delimiter (a run longer than any valid frame), then issues one
// backend read and advances the cursor. The buffer has CarrierMinRead
// bytes of room beyond MaxEncodedPacketSize, so every read has at least
// CarrierMinRead bytes free. A read that returns no bytes (error or
// otherwise) leaves the cursor unchanged, per spec step 4.E.1.b.
func (e *Engine) readMore() {
	e.mu.Lock()
	if e.nextWriteIdx >= protocol.MaxEncodedPacketSize {
		e.log.Debug().Msg("receive buffer overflow, discarding contents")
		e.nextWriteIdx = 0
	}
	readAt := e.nextWriteIdx
	e.mu.Unlock()

	n, _ := e.backend.Read(e.buf[readAt : readAt+protocol.CarrierMinRead])
	if n <= 0 {
		return
	}

	e.mu.Lock()
	e.nextWriteIdx += n
	e.mu.Unlock()
}

// extractFrame copies out the frame ending at the delimiter found at
// index delim and compacts the buffer, sliding any trailing bytes (the
// start of a subsequent frame read in the same carrier chunk) down to
// the front. Compaction happens before the caller decodes/dispatches, so
// a reentrant call sees a clean prefix.
func (e *Engine) extractFrame(delim int) []byte {
	e.mu.Lock()
	defer e.mu.Unlock()

	frameLen := delim + 1 // inclusive of the delimiter
	frame := make([]byte, frameLen-1)
	copy(frame, e.buf[:frameLen-1])

	remaining := e.nextWriteIdx - frameLen
	copy(e.buf[:remaining], e.buf[frameLen:e.nextWriteIdx])
	e.nextWriteIdx = remaining

	return frame
}

// decodeAndDispatch decodes frame and, on success, dispatches the
// resulting packet. It returns the packet if one was dispatched, or nil
// if the frame was dropped at any validation step.
func (e *Engine) decodeAndDispatch(frame []byte) *protocol.Packet {
	decoded, ok := protocol.Decode(frame)
	if !ok {
		e.log.Debug().Msg("dropped packet: cobs decode failed")
		return nil
	}

	header, ok := protocol.DecodeHeader(decoded)
	if !ok || !header.PacketID.Valid() {
		e.log.Debug().Msg("dropped packet: invalid header")
		return nil
	}

	data := decoded[protocol.HeaderSize:]
	if len(data) > protocol.MaxPacketDataSize {
		e.log.Debug().Msg("dropped packet: payload exceeds max data size")
		return nil
	}

	pkt := protocol.New(header, data, len(data))
	e.dispatch(pkt)
	return pkt
}

// dispatch stores pkt in its identifier's buffer and, if a listener is
// registered, invokes it after releasing the lock.
func (e *Engine) dispatch(pkt *protocol.Packet) {
	e.mu.Lock()
	e.buffers[pkt.ID()].Add(pkt)
	l := e.listeners.get(pkt.ID())
	e.mu.Unlock()

	if l != nil {
		l(pkt)
	}
}
