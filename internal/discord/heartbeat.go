package discord

import (
	"github.com/bwmarrin/discordgo"

	"benny/internal/state"
)

// HeartbeatSource samples the gateway heartbeat round trip in milliseconds.
// Before the first heartbeat ack it reports 0.
func HeartbeatSource(b *Bot) state.Source {
	return state.SourceFunc(func() uint64 {
		return heartbeatMillis(b.dg)
	})
}

// heartbeatMillis reads the heartbeat timestamps under the session lock the
// gateway goroutine writes them with.
func heartbeatMillis(s *discordgo.Session) uint64 {
	s.RLock()
	ms := s.HeartbeatLatency().Milliseconds()
	s.RUnlock()
	if ms < 0 {
		return 0
	}
	return uint64(ms)
}
