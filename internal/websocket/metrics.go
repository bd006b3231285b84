package websocket

import "sync/atomic"

// Metrics counts core activity with atomics so the hot path never
// takes an extra lock. Unknown-match and not-a-participant drops are
// counted separately even though both are externally silent.
type Metrics struct {
	FramesRouted        atomic.Int64
	MalformedFrames     atomic.Int64
	UnknownMatchDrops   atomic.Int64
	NotParticipantDrops atomic.Int64
	EventsDelivered     atomic.Int64
	SendDrops           atomic.Int64
}

func (m *Metrics) Snapshot() map[string]int64 {
	return map[string]int64{
		"frames_routed":         m.FramesRouted.Load(),
		"malformed_frames":      m.MalformedFrames.Load(),
		"unknown_match_drops":   m.UnknownMatchDrops.Load(),
		"not_participant_drops": m.NotParticipantDrops.Load(),
		"events_delivered":      m.EventsDelivered.Load(),
		"send_drops":            m.SendDrops.Load(),
	}
}
