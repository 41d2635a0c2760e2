package transport

import "io"

// Backend is the byte-stream carrier an Engine reads framed packets from
// and writes framed packets to. On the HOST side this wraps a USB bulk
// endpoint pair (driver/usbhost); on the COP side it wraps stdin/stdout
// (driver/stdio). Tests use driver/mock's loopback pair.
//
// Backend has the same method set as io.ReadWriteCloser (the assertion
// below checks this), declared out rather than embedded so each method
// can document its contract for the carrier.
type Backend interface {
	// Read blocks until at least one byte is available and returns up to
	// len(p) bytes, like io.Reader. Implementations should read as much
	// as the carrier offers in one call rather than a single byte.
	Read(p []byte) (n int, err error)

	// Write writes all of p to the carrier. A short write that does not
	// error is never retried by the engine — callers that need that
	// guarantee must provide it here.
	Write(p []byte) (n int, err error)

	Close() error
}

var _ io.ReadWriteCloser = Backend(nil)
