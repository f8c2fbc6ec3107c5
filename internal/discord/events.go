package discord

import (
	"github.com/bwmarrin/discordgo"

	"benny/internal/cog"
)

func toUser(u *discordgo.User) cog.User {
	if u == nil {
		return cog.User{}
	}
	return cog.User{ID: u.ID, Name: u.Username, Bot: u.Bot}
}

func toReady(r *discordgo.Ready) *cog.Ready {
	return &cog.Ready{Self: toUser(r.User)}
}

// toMessage converts a gateway message. Messages without an author, from
// bots, or from the bot itself are dropped here before any cog sees them.
func toMessage(m *discordgo.MessageCreate, selfID string) (*cog.Message, bool) {
	if m == nil || m.Message == nil || m.Author == nil {
		return nil, false
	}
	if m.Author.Bot || (selfID != "" && m.Author.ID == selfID) {
		return nil, false
	}
	return &cog.Message{
		ID:        m.ID,
		Author:    toUser(m.Author),
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		Content:   m.Content,
	}, true
}
