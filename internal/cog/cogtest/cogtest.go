// Package cogtest provides fakes for exercising cogs without a gateway.
package cogtest

import (
	"context"
	"sync"

	"benny/internal/cog"
)

// Reply is one captured Send call.
type Reply struct {
	ChannelID string
	Content   string
}

// Sender records replies. When Err is set, Send records nothing and fails.
type Sender struct {
	Err error

	mu      sync.Mutex
	replies []Reply
}

var _ cog.Sender = (*Sender)(nil)

func (s *Sender) Send(_ context.Context, channelID, content string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = append(s.replies, Reply{ChannelID: channelID, Content: content})
	return nil
}

// Replies returns a copy of the recorded replies.
func (s *Sender) Replies() []Reply {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Reply, len(s.replies))
	copy(out, s.replies)
	return out
}

// Contents returns only the reply texts.
func (s *Sender) Contents() []string {
	var out []string
	for _, r := range s.Replies() {
		out = append(out, r.Content)
	}
	return out
}

// UserMessage builds a guild message from a human author.
func UserMessage(content string) *cog.Message {
	return &cog.Message{
		ID:        "m1",
		Author:    cog.User{ID: "u1", Name: "user"},
		GuildID:   "g1",
		ChannelID: "c1",
		Content:   content,
	}
}

// BotMessage builds a guild message authored by a bot.
func BotMessage(content string) *cog.Message {
	m := UserMessage(content)
	m.Author = cog.User{ID: "b1", Name: "bot", Bot: true}
	return m
}
