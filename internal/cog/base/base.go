// Package base implements the diagnostics cog: ping, about and files.
package base

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"benny/internal/cog"
)

const (
	pongReply  = "Pong!"
	aboutReply = "Benny bot (scaffold)"
)

// Cog answers diagnostic commands using its own copy of the default prefix;
// per-guild prefixes are not consulted.
type Cog struct {
	cog.Base
	prefix string
	root   string
}

func New(prefix string) *Cog {
	return &Cog{prefix: prefix, root: "."}
}

// WithRoot changes the directory inspected by the files command.
func (c *Cog) WithRoot(root string) *Cog {
	c.root = root
	return c
}

func (c *Cog) Name() string { return "base" }

func (c *Cog) OnMessage(ctx context.Context, s cog.Sender, m *cog.Message) {
	if m.Author.Bot {
		return
	}
	name, _, ok := c.parse(m.Content)
	if !ok {
		return
	}

	var reply string
	switch name {
	case "ping":
		reply = pongReply
	case "about":
		reply = aboutReply
	case "files":
		files, lines := countFilesAndLines(ctx, c.root)
		reply = fmt.Sprintf("Files: %d, Lines: %d", files, lines)
	default:
		return
	}

	if err := s.Send(ctx, m.ChannelID, reply); err != nil {
		log.Debug().Err(err).Str("cog", c.Name()).Str("command", name).Msg("reply not delivered")
	}
}

// parse strips the prefix and splits the rest into a command and arguments.
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
