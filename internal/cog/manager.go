package cog

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

var (
	dispatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "benny_dispatch_passes_total",
		Help: "Dispatch passes by event kind.",
	}, []string{"event"})

	cogDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "benny_cog_duration_seconds",
		Help:    "Time spent in a single cog reaction.",
		Buckets: prometheus.DefBuckets,
	}, []string{"cog", "event"})

	cogPanics = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "benny_cog_panics_total",
		Help: "Recovered panics by cog.",
	}, []string{"cog"})
)

// Manager holds cogs in registration order. Register is meant for startup
// only; once dispatch begins the list is treated as read-only.
type Manager struct {
	prefix string
	cogs   []Cog
}

func NewManager(prefix string) *Manager {
	return &Manager{prefix: prefix}
}

// Register appends c to the dispatch order.
func (m *Manager) Register(c Cog) {
	m.cogs = append(m.cogs, c)
	log.Debug().Str("cog", c.Name()).Int("position", len(m.cogs)).Msg("cog registered")
}

// Prefix returns the default command prefix.
func (m *Manager) Prefix() string { return m.prefix }

// Cogs returns a copy of the registered cogs in dispatch order.
func (m *Manager) Cogs() []Cog {
	out := make([]Cog, len(m.cogs))
	copy(out, m.cogs)
	return out
}

// DispatchReady runs OnReady on every cog, one after another.
func (m *Manager) DispatchReady(ctx context.Context, s Sender, r *Ready) {
	dispatchTotal.WithLabelValues("ready").Inc()
	for _, c := range m.cogs {
		m.run(c, "ready", func() { c.OnReady(ctx, s, r) })
	}
}

// DispatchMessage runs OnMessage on every cog, one after another. There is no
// early exit: cogs are observers, not competing routes.
func (m *Manager) DispatchMessage(ctx context.Context, s Sender, msg *Message) {
	dispatchTotal.WithLabelValues("message").Inc()
	for _, c := range m.cogs {
		m.run(c, "message", func() { c.OnMessage(ctx, s, msg) })
	}
}

// run isolates one cog reaction so a panic cannot end the pass.
func (m *Manager) run(c Cog, event string, fn func()) {
	start := time.Now()
	defer func() {
		cogDuration.WithLabelValues(c.Name(), event).Observe(time.Since(start).Seconds())
		if r := recover(); r != nil {
			cogPanics.WithLabelValues(c.Name()).Inc()
			log.Error().Str("cog", c.Name()).Str("event", event).Interface("panic", r).Msg("cog panicked")
		}
	}()
	fn()
}
