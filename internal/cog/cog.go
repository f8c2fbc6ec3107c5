// Package cog is the dispatch core: an ordered registry of independent
// handler units that each observe every ready and message event.
package cog

import "context"

// User identifies a message author or the bot itself.
type User struct {
	ID   string
	Name string
	Bot  bool
}

// Ready is delivered once after the gateway connection is established.
type Ready struct {
	Self User
}

// Message is an inbound chat message. GuildID is empty for direct messages.
type Message struct {
	ID        string
	Author    User
	GuildID   string
	ChannelID string
	Content   string
}

// InGuild reports whether the message carries a guild context.
func (m *Message) InGuild() bool { return m.GuildID != "" }

// Sender is the reply primitive exposed by the transport.
type Sender interface {
	Send(ctx context.Context, channelID, content string) error
}

// Cog reacts to events. Implementations must return promptly and without side
// effects for events they are not interested in.
type Cog interface {
	Name() string
	OnReady(ctx context.Context, s Sender, r *Ready)
	OnMessage(ctx context.Context, s Sender, m *Message)
}

// Base provides no-op event methods; embed it and override what is needed.
type Base struct{}

func (Base) OnReady(context.Context, Sender, *Ready) {}
func (Base) OnMessage(context.Context, Sender, *Message) {}
