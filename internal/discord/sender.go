package discord

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/discordgo"

	"benny/internal/cog"
	"benny/pkg/retrylimit"
)

// SendFunc matches discordgo.Session.ChannelMessageSend.
type SendFunc func(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)

// Sender is the reply primitive handed to cogs. Sends are paced by an
// adaptive limiter and transient failures are retried a couple of times.
type Sender struct {
	send   SendFunc
	lim    *retrylimit.AdaptiveLimiter
	policy retrylimit.Policy
}

var _ cog.Sender = (*Sender)(nil)

func NewSender(send SendFunc, lim *retrylimit.AdaptiveLimiter) *Sender {
	return &Sender{
		send:   send,
		lim:    lim,
		policy: retrylimit.Policy{MaxAttempts: 3, InitialDelay: 500 * time.Millisecond, MaxDelay: 2 * time.Second},
	}
}

func (s *Sender) Send(ctx context.Context, channelID, content string) error {
	return retrylimit.Do(ctx, s.lim, s.policy, func() error {
		_, err := s.send(channelID, content, discordgo.WithContext(ctx))
		return withStatus(err)
	})
}

// withStatus exposes the HTTP status of a REST failure to the retry loop.
func withStatus(err error) error {
	var rest *discordgo.RESTError
	if errors.As(err, &rest) && rest.Response != nil {
		return &retrylimit.StatusError{Code: rest.Response.StatusCode, Err: err}
	}
	return err
}
