// Command hostd runs the HOST side of the packet transport: it opens the
// USB bulk connection to the co-processor and relays received packets to
// registered listeners, replacing the tinygo example mains this module
// started from (examples/transmitter, examples/receiver) now that both
// sides of the link run on general-purpose operating systems.
package main

import (
	"os"

	"github.com/ridgeline-robotics/framelink"
	"github.com/ridgeline-robotics/framelink/internal/observability"
	"github.com/ridgeline-robotics/framelink/protocol"
	"github.com/ridgeline-robotics/framelink/transport"
)

func main() {
	log := observability.NewLogger("hostd")

	engine, err := framelink.NewHostEngine(framelink.WithLogger(log))
	if err != nil {
		log.Error().Err(err).Msg("failed to open USB connection to co-processor")
		os.Exit(1)
	}
	defer engine.Close()

	transport.AddListener[protocol.InitializeOpticalCompleteData](engine, func(pkt *protocol.Packet) {
		data := protocol.GetData[protocol.InitializeOpticalCompleteData](pkt)
		log.Info().Uint8("success", data.Success).Msg("optical sensor initialization complete")
	})

	log.Info().Msg("hostd started, reading packets")
	for {
		engine.Receive()
	}
}
