package framelink

import (
	"github.com/ridgeline-robotics/framelink/driver/stdio"
	"github.com/ridgeline-robotics/framelink/driver/usbhost"
	"github.com/ridgeline-robotics/framelink/transport"
)

// NewHostEngine opens the USB bulk connection to the co-processor and
// returns an Engine driving it. Both sides of the transport (HOST and
// COP) run on general-purpose operating systems, so unlike the
// embedded-vs-host split this module started from, there is no
// build-tag branching here — the carrier choice is a runtime, not a
// platform, decision.
func NewHostEngine(opts ...transport.Option) (*transport.Engine, error) {
	backend, err := usbhost.Open()
	if err != nil {
		return nil, err
	}
	return transport.New(backend, opts...), nil
}

// NewCopEngine returns an Engine driving the co-processor's stdin/stdout
// carrier.
func NewCopEngine(opts ...transport.Option) *transport.Engine {
	return transport.New(stdio.New(), opts...)
}
