// Package buffer implements the per-identifier bounded packet queue used
// by the transport engine to hold packets between receipt and the next
// blocking/non-blocking read. It mirrors original_source/src/Buffer.hpp
// and Buffer.cpp: a deque with newest-wins eviction once a maximum size is
// set.
package buffer

import "github.com/ridgeline-robotics/framelink/protocol"

// Unbounded is the default max size: no packets are ever evicted.
const Unbounded = -1

// Bounded is a double-ended queue of packets. The back holds the newest
// value. Add trims from the front once the queue is at capacity, so the
// buffer always keeps the most recently received packets and drops the
// oldest ones first.
type Bounded struct {
	data    []*protocol.Packet
	maxSize int
}

// New returns an empty buffer with no maximum size.
func New() *Bounded {
	return &Bounded{maxSize: Unbounded}
}

// SetMaxSize sets the maximum number of packets the buffer will retain.
// Pass Unbounded to remove the limit. Existing contents are not trimmed
// by this call, even if the buffer already holds more than size
// packets — trimming only happens on the next Add.
func (b *Bounded) SetMaxSize(size int) {
	b.maxSize = size
}

// Add appends a packet to the back of the buffer, evicting from the
// front first if the buffer is at its maximum size.
func (b *Bounded) Add(p *protocol.Packet) {
	b.data = append(b.data, p)
	b.trim()
}

func (b *Bounded) trim() {
	if b.maxSize < 0 {
		return
	}
	if excess := len(b.data) - b.maxSize; excess > 0 {
		b.data = b.data[excess:]
	}
}

// PopLatest removes and returns the most recently added packet. The
// second return value is false if the buffer is empty.
func (b *Bounded) PopLatest() (*protocol.Packet, bool) {
	if len(b.data) == 0 {
		return nil, false
	}
	last := len(b.data) - 1
	p := b.data[last]
	b.data[last] = nil
	b.data = b.data[:last]
	return p, true
}

// Size returns the number of packets currently held.
func (b *Bounded) Size() int {
	return len(b.data)
}
