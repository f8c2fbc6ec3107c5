// Package prefixes implements the per-guild prefix management cog.
package prefixes

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"benny/internal/cog"
	"benny/internal/storage"
)

const usageReply = "Usage: prefix add <p> | prefix list"

// Store is the slice of the prefix repository this cog needs.
type Store interface {
	Add(ctx context.Context, guildID, prefix string) error
	Get(ctx context.Context, guildID string) (storage.GuildPrefixRecord, bool, error)
}

type Cog struct {
	cog.Base
	store  Store
	prefix string
}

func New(store Store, prefix string) *Cog {
	return &Cog{store: store, prefix: prefix}
}

func (c *Cog) Name() string { return "prefixes" }

func (c *Cog) OnMessage(ctx context.Context, s cog.Sender, m *cog.Message) {
	if m.Author.Bot {
		return
	}
	name, args, ok := c.parse(m.Content)
	if !ok || name != "prefix" {
		return
	}

	sub := ""
	if len(args) > 0 {
		sub = args[0]
	}

	switch {
	case sub == "add" && len(args) > 1:
		c.add(ctx, s, m, args[1])
	case sub == "list":
		c.list(ctx, s, m)
	default:
		c.reply(ctx, s, m, usageReply)
	}
}

func (c *Cog) add(ctx context.Context, s cog.Sender, m *cog.Message, value string) {
	if !m.InGuild() {
		return
	}
	if err := c.store.Add(ctx, m.GuildID, value); err != nil {
		log.Debug().Err(err).Str("guild", m.GuildID).Msg("prefix add failed")
		return
	}
	c.reply(ctx, s, m, fmt.Sprintf("Added prefix `%s`", value))
}

func (c *Cog) list(ctx context.Context, s cog.Sender, m *cog.Message) {
	if !m.InGuild() {
		return
	}
	rec, found, err := c.store.Get(ctx, m.GuildID)
	if err != nil {
		log.Debug().Err(err).Str("guild", m.GuildID).Msg("prefix lookup failed")
		return
	}
	text := c.prefix
	if found {
		text = rec.Prefixes
	}
	c.reply(ctx, s, m, "Prefixes: "+text)
}

func (c *Cog) reply(ctx context.Context, s cog.Sender, m *cog.Message, text string) {
	if err := s.Send(ctx, m.ChannelID, text); err != nil {
		log.Debug().Err(err).Str("cog", c.Name()).Msg("reply not delivered")
	}
}

func (c *Cog) parse(content string) (name string, args []string, ok bool) {
	rest, found := strings.CutPrefix(strings.TrimSpace(content), c.prefix)
	if !found {
		return "", nil, false
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", nil, false
	}
	return fields[0], fields[1:], true
}
