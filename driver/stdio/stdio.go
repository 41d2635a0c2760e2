// Package stdio implements the COP-side Backend: stdin/stdout treated as
// an unbuffered binary carrier, mirroring original_source/src/
// SerialHandler.cpp's BRAIN branch (read(STDIN_FILENO, ...) /
// write(STDOUT_FILENO, ...)).
package stdio

import "os"

// Backend wraps os.Stdin and os.Stdout as a transport.Backend.
type Backend struct {
	in  *os.File
	out *os.File
}

// New returns a Backend over the process's standard streams.
func New() *Backend {
	return &Backend{in: os.Stdin, out: os.Stdout}
}

func (b *Backend) Read(p []byte) (int, error) {
	return b.in.Read(p)
}

func (b *Backend) Write(p []byte) (int, error) {
	return b.out.Write(p)
}

// Close is a no-op: the process's standard streams are not ours to
// close.
func (b *Backend) Close() error {
	return nil
}
