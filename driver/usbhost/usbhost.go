// Package usbhost implements the HOST-side Backend: a USB bulk endpoint
// pair against the co-processor's USB-CDC interface, using gousb for
// device discovery and transfers. There is no equivalent of this in the
// retrieval pack — gousb is the only USB library available in the
// broader ecosystem for this, so it is adopted directly rather than
// built on the standard library, which has no USB support at all.
//
// The endpoint numbers, control request and line-coding payload mirror
// original_source/src/SerialHandler.{hpp,cpp}.
package usbhost

import (
	"fmt"

	"github.com/google/gousb"
	"github.com/rs/zerolog"
)

const (
	vendorID = 0x2888 // VEX-class USB vendor id; every co-processor carrier uses it

	userInterfaceNumber     = 0x02
	userDataInterfaceNumber = 0x03
	userDataEndpointIn      = 0x05
	userDataEndpointOut     = 0x06

	communicationsInterfaceNumber = 0x00

	setLineCoding = 0x20

	bulkReadSize = 512
)

// lineCodingBytes requests 9600 baud, 1 stop bit, no parity, 8 data
// bits — required before the co-processor treats bulk transfers as
// standard input/output.
var lineCodingBytes = []byte{0x80, 0x25, 0x00, 0x00, 0x00, 0x00, 0x08}

// Backend is a transport.Backend backed by a USB bulk endpoint pair.
type Backend struct {
	ctx   *gousb.Context
	dev   *gousb.Device
	cfg   *gousb.Config
	iface *gousb.Interface
	in    *gousb.InEndpoint
	out   *gousb.OutEndpoint
	log   zerolog.Logger
}

// Option configures a Backend at construction time.
type Option func(*Backend)

// WithLogger attaches a structured logger.
func WithLogger(l zerolog.Logger) Option {
	return func(b *Backend) { b.log = l }
}

// Open finds the first attached device with the expected vendor id,
// claims its data interface, detaches any kernel driver holding it and
// issues the line-coding control transfers, returning a ready-to-use
// Backend.
func Open(opts ...Option) (*Backend, error) {
	b := &Backend{ctx: gousb.NewContext(), log: zerolog.Nop()}
	for _, opt := range opts {
		opt(b)
	}

	devs, err := b.ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		return desc.Vendor == gousb.ID(vendorID)
	})
	var dev *gousb.Device
	for _, d := range devs {
		if dev == nil {
			dev = d
		} else {
			d.Close()
		}
	}
	if dev == nil {
		b.ctx.Close()
		return nil, fmt.Errorf("usbhost: open device: %w", err)
	}
	b.dev = dev

	if err := dev.SetAutoDetach(true); err != nil {
		b.log.Warn().Err(err).Msg("failed to enable kernel driver auto-detach")
	}

	if _, err := dev.Control(
		gousb.ControlOut|gousb.ControlClass|gousb.ControlInterface,
		setLineCoding, 0, communicationsInterfaceNumber, lineCodingBytes,
	); err != nil {
		b.log.Warn().Err(err).Msg("set line coding (communications interface) failed")
	}
	if _, err := dev.Control(
		gousb.ControlOut|gousb.ControlClass|gousb.ControlInterface,
		setLineCoding, 0, userInterfaceNumber, lineCodingBytes,
	); err != nil {
		b.log.Warn().Err(err).Msg("set line coding (user interface) failed")
	}

	cfg, err := dev.Config(1)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("usbhost: claim config: %w", err)
	}
	b.cfg = cfg

	iface, err := cfg.Interface(userDataInterfaceNumber, 0)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("usbhost: claim interface: %w", err)
	}
	b.iface = iface

	in, err := iface.InEndpoint(userDataEndpointIn)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("usbhost: open in endpoint: %w", err)
	}
	b.in = in

	out, err := iface.OutEndpoint(userDataEndpointOut)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("usbhost: open out endpoint: %w", err)
	}
	b.out = out

	return b, nil
}

// Read reads up to len(p) bytes, preferring one bulk transfer of exactly
// bulkReadSize when p is at least that large — libusb returns an error
// if asked to read less than the bulk packet size can deliver.
func (b *Backend) Read(p []byte) (int, error) {
	if len(p) > bulkReadSize {
		p = p[:bulkReadSize]
	}
	return b.in.Read(p)
}

func (b *Backend) Write(p []byte) (int, error) {
	return b.out.Write(p)
}

func (b *Backend) Close() error {
	if b.iface != nil {
		b.iface.Close()
	}
	if b.cfg != nil {
		b.cfg.Close()
	}
	var err error
	if b.dev != nil {
		err = b.dev.Close()
	}
	if b.ctx != nil {
		b.ctx.Close()
	}
	return err
}
