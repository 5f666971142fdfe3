package signal

import (
	"github.com/rs/zerolog/log"
	"github.com/tanishqmanglor/nexmeet/internal/core"
)

var pongFrame = mustEncode(core.Outbound{Type: core.EventPong})

func mustEncode(msg core.Outbound) core.Frame {
	f, err := msg.Encode()
	if err != nil {
		panic(err)
	}
	return f
}

// handlePing answers a keepalive without touching the orchestrator.
func (ctl *SignalWSController) handlePing(sid core.SessionID, c *WsSignalConn) {
	if err := c.TrySend(pongFrame); err != nil {
		log.Debug().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("pong dropped")
	}
}
