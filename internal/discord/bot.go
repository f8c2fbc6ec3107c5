package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"benny/internal/cog"
	"benny/internal/config"
	"benny/internal/state"
	"benny/pkg/retrylimit"
)

const intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent

// Bot adapts a discordgo session to the cog manager.
type Bot struct {
	dg      *discordgo.Session
	cogs    *cog.Manager
	sender  *Sender
	cache   CommandCache
	appCmds []*discordgo.ApplicationCommand
}

// NewBot creates the gateway session. The session reuses the shared outbound
// HTTP client from st when one is set.
func NewBot(cfg *config.Config, st *state.State, cogs *cog.Manager, cache CommandCache) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.Token())
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	if st.HTTP() != nil {
		dg.Client = st.HTTP()
	}
	dg.Identify.Intents = intents

	b := &Bot{
		dg:      dg,
		cogs:    cogs,
		sender:  NewSender(dg.ChannelMessageSend, retrylimit.NewAdaptiveLimiter(5, 1, 20, 1, 0.5)),
		cache:   cache,
		appCmds: []*discordgo.ApplicationCommand{pingCommand()},
	}

	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onInteractionCreate)
	return b, nil
}

// Session exposes the underlying session, e.g. for heartbeat latency.
func (b *Bot) Session() *discordgo.Session { return b.dg }

// Run connects and blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer b.dg.Close()

	<-ctx.Done()
	log.Info().Msg("Shutdown signal received. Closing gateway session...")
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	ready := toReady(r)
	log.Info().Str("user", ready.Self.Name).Int("guilds", len(r.Guilds)).Msg("Connected to gateway")

	ctx := context.Background()
	b.cogs.DispatchReady(ctx, b.sender, ready)

	if err := b.registerGlobalCommands(ctx, s, ready.Self.ID); err != nil {
		log.Error().Err(err).Msg("Failed to register slash commands")
	}
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	selfID := ""
	if s.State != nil && s.State.User != nil {
		selfID = s.State.User.ID
	}
	msg, ok := toMessage(m, selfID)
	if !ok {
		return
	}
	b.cogs.DispatchMessage(context.Background(), b.sender, msg)
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	reply, ok := interactionReply(i)
	if !ok {
		return
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: reply},
	})
	if err != nil {
		log.Debug().Err(err).Msg("interaction response not delivered")
	}
}
