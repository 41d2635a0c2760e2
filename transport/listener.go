package transport

import "github.com/ridgeline-robotics/framelink/protocol"

// Listener is invoked when a packet matching a registered identifier is
// received. It runs outside the engine's internal lock, so it may call
// back into the Engine (Send, PopLatest, add/remove another listener)
// without deadlocking.
type Listener func(pkt *protocol.Packet)

// registry holds at most one listener per packet identifier, mirroring
// original_source/src/SerialHandler.hpp's listeners array (indexed by
// PacketId rather than keyed by a map, since the identifier space is
// small and fixed).
type registry struct {
	slots [protocol.LENGTH]Listener
}

// add installs a listener for id. It returns false without installing
// anything if a listener is already registered for that id.
func (r *registry) add(id protocol.PacketId, l Listener) bool {
	if r.slots[id] != nil {
		return false
	}
	r.slots[id] = l
	return true
}

// remove clears the listener for id. It returns false if none was
// registered.
func (r *registry) remove(id protocol.PacketId) bool {
	if r.slots[id] == nil {
		return false
	}
	r.slots[id] = nil
	return true
}

func (r *registry) get(id protocol.PacketId) Listener {
	return r.slots[id]
}

// AddListener registers l for the identifier carried by T's PacketID().
// It returns false without installing l if a listener is already
// registered for that identifier.
func AddListener[T protocol.Typed](e *Engine, l func(pkt *protocol.Packet)) bool {
	var zero T
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.listeners.add(zero.PacketID(), l)
}

// RemoveListener clears the listener registered for T's identifier, if
// any.
func RemoveListener[T protocol.Typed](e *Engine) bool {
	var zero T
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.listeners.remove(zero.PacketID())
}

// PopLatest removes and returns the most recently buffered packet for T's
// identifier, decoded as T.
func PopLatest[T protocol.Typed](e *Engine) (T, bool) {
	var zero T
	e.mu.Lock()
	pkt, ok := e.buffers[zero.PacketID()].PopLatest()
	e.mu.Unlock()
	if !ok {
		var none T
		return none, false
	}
	return protocol.GetData[T](pkt), true
}
