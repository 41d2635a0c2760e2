// Command copd runs the co-processor side of the packet transport over
// its stdin/stdout carrier, relaying sensor readings up to the HOST.
package main

import (
	"time"

	"github.com/ridgeline-robotics/framelink"
	"github.com/ridgeline-robotics/framelink/internal/observability"
	"github.com/ridgeline-robotics/framelink/protocol"
	"github.com/ridgeline-robotics/framelink/transport"
)

func main() {
	log := observability.NewLogger("copd")

	engine := framelink.NewCopEngine(framelink.WithLogger(log))
	defer engine.Close()

	transport.AddListener[protocol.InitializeOpticalData](engine, func(pkt *protocol.Packet) {
		log.Debug().Msg("received optical sensor initialize request")
		if err := transport.SendTyped(engine, protocol.InitializeOpticalCompleteData{Success: 1}); err != nil {
			log.Error().Err(err).Msg("failed to acknowledge optical sensor initialization")
		}
	})

	go func() {
		for {
			engine.Receive()
		}
	}()

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for range ticker.C {
		reading := protocol.OpticalData{} // populated from the real sensor in production
		if err := transport.SendTyped(engine, reading); err != nil {
			log.Error().Err(err).Msg("failed to send optical reading")
		}
	}
}
