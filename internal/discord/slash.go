package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

const pingReply = "Pong!"

func pingCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "ping",
		Description: "Latency check",
		Type:        discordgo.ChatApplicationCommand,
	}
}

// commandCreator matches discordgo.Session.ApplicationCommandCreate.
type commandCreator func(appID, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)

func (b *Bot) registerGlobalCommands(ctx context.Context, s *discordgo.Session, appID string) error {
	if appID == "" {
		user, err := s.User("@me")
		if err != nil {
			return fmt.Errorf("fetch self: %w", err)
		}
		appID = user.ID
	}
	return registerCommands(ctx, s.ApplicationCommandCreate, b.cache, appID, b.appCmds)
}

// registerCommands creates every global command whose definition hash differs
// from the cached one. Failures are collected; successful ones are cached and
// the cache is saved before returning.
func registerCommands(ctx context.Context, create commandCreator, cache CommandCache, appID string, cmds []*discordgo.ApplicationCommand) error {
	if cache == nil {
		cache = memoryCommandCache{}
	}

	var errs []error
	changed := false
	for _, cmd := range cmds {
		key := globalKey(cmd.Name)
		hash := hashCommand(cmd)
		if cache.Hash(key) == hash {
			log.Debug().Str("command", cmd.Name).Msg("slash command unchanged")
			continue
		}
		if _, err := create(appID, "", cmd, discordgo.WithContext(ctx)); err != nil {
			errs = append(errs, fmt.Errorf("create %s: %w", cmd.Name, err))
			continue
		}
		cache.SetHash(key, hash)
		changed = true
		log.Info().Str("command", cmd.Name).Msg("Slash command registered")
	}
	if changed {
		if err := cache.Save(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// interactionReply returns the fixed response for known slash commands.
func interactionReply(i *discordgo.InteractionCreate) (string, bool) {
	if i == nil || i.Interaction == nil || i.Type != discordgo.InteractionApplicationCommand {
		return "", false
	}
	if i.ApplicationCommandData().Name == pingCommand().Name {
		return pingReply, true
	}
	return "", false
}
