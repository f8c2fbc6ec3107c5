package discord

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benny/pkg/retrylimit"
)

func messageCreate(author *discordgo.User, guildID, content string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		ID:        "m1",
		ChannelID: "c1",
		GuildID:   guildID,
		Content:   content,
		Author:    author,
	}}
}

func TestToMessage(t *testing.T) {
	msg, ok := toMessage(messageCreate(&discordgo.User{ID: "u1", Username: "ann"}, "g1", "?ping"), "self")
	require.True(t, ok)
	assert.Equal(t, "u1", msg.Author.ID)
	assert.Equal(t, "ann", msg.Author.Name)
	assert.Equal(t, "g1", msg.GuildID)
	assert.Equal(t, "c1", msg.ChannelID)
	assert.Equal(t, "?ping", msg.Content)
	assert.True(t, msg.InGuild())

	dm, ok := toMessage(messageCreate(&discordgo.User{ID: "u1"}, "", "?ping"), "self")
	require.True(t, ok)
	assert.False(t, dm.InGuild())
}

func TestToMessageDropsBotsAndSelf(t *testing.T) {
	_, ok := toMessage(messageCreate(&discordgo.User{ID: "b1", Bot: true}, "g1", "?ping"), "self")
	assert.False(t, ok)

	_, ok = toMessage(messageCreate(&discordgo.User{ID: "self"}, "g1", "?ping"), "self")
	assert.False(t, ok)

	_, ok = toMessage(messageCreate(nil, "g1", "?ping"), "self")
	assert.False(t, ok)

	_, ok = toMessage(nil, "self")
	assert.False(t, ok)
}

func TestToReady(t *testing.T) {
	r := toReady(&discordgo.Ready{User: &discordgo.User{ID: "self", Username: "benny", Bot: true}})
	assert.Equal(t, "self", r.Self.ID)
	assert.Equal(t, "benny", r.Self.Name)
	assert.True(t, r.Self.Bot)

	assert.Equal(t, "", toReady(&discordgo.Ready{}).Self.ID)
}

func TestInteractionReply(t *testing.T) {
	ping := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{Name: "ping"},
	}}
	reply, ok := interactionReply(ping)
	assert.True(t, ok)
	assert.Equal(t, "Pong!", reply)

	other := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{Name: "pong"},
	}}
	_, ok = interactionReply(other)
	assert.False(t, ok)

	component := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionMessageComponent,
		Data: discordgo.MessageComponentInteractionData{CustomID: "ping"},
	}}
	_, ok = interactionReply(component)
	assert.False(t, ok)

	_, ok = interactionReply(nil)
	assert.False(t, ok)
}

type creatorCall struct {
	appID, guildID, name string
}

func TestRegisterCommandsSkipsUnchanged(t *testing.T) {
	var calls []creatorCall
	create := func(appID, guildID string, cmd *discordgo.ApplicationCommand, _ ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error) {
		calls = append(calls, creatorCall{appID, guildID, cmd.Name})
		return cmd, nil
	}
	cache := memoryCommandCache{}
	cmds := []*discordgo.ApplicationCommand{pingCommand()}

	require.NoError(t, registerCommands(context.Background(), create, cache, "app", cmds))
	require.NoError(t, registerCommands(context.Background(), create, cache, "app", cmds))

	assert.Equal(t, []creatorCall{{"app", "", "ping"}}, calls)

	changed := pingCommand()
	changed.Description = "Different"
	require.NoError(t, registerCommands(context.Background(), create, cache, "app", []*discordgo.ApplicationCommand{changed}))
	assert.Len(t, calls, 2)
}

func TestRegisterCommandsReportsFailures(t *testing.T) {
	create := func(string, string, *discordgo.ApplicationCommand, ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error) {
		return nil, errors.New("401 unauthorized")
	}
	cache := memoryCommandCache{}

	err := registerCommands(context.Background(), create, cache, "app", []*discordgo.ApplicationCommand{pingCommand()})
	assert.Error(t, err)
	assert.Empty(t, cache.Hash(globalKey("ping")))
}

// countingCache records how often registerCommands saves.
type countingCache struct {
	memoryCommandCache
	saves   int
	saveErr error
}

func (c *countingCache) Save() error {
	c.saves++
	return c.saveErr
}

func TestRegisterCommandsSavesOnlyAfterChange(t *testing.T) {
	create := func(_, _ string, cmd *discordgo.ApplicationCommand, _ ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error) {
		return cmd, nil
	}
	cache := &countingCache{memoryCommandCache: memoryCommandCache{}}
	cmds := []*discordgo.ApplicationCommand{pingCommand()}

	require.NoError(t, registerCommands(context.Background(), create, cache, "app", cmds))
	assert.Equal(t, 1, cache.saves)

	require.NoError(t, registerCommands(context.Background(), create, cache, "app", cmds))
	assert.Equal(t, 1, cache.saves)
}

func TestRegisterCommandsReportsSaveFailure(t *testing.T) {
	create := func(_, _ string, cmd *discordgo.ApplicationCommand, _ ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error) {
		return cmd, nil
	}
	cache := &countingCache{memoryCommandCache: memoryCommandCache{}, saveErr: errors.New("disk full")}

	err := registerCommands(context.Background(), create, cache, "app", []*discordgo.ApplicationCommand{pingCommand()})
	assert.ErrorContains(t, err, "disk full")
}

func TestHashCommandIgnoresAssignedIDs(t *testing.T) {
	a := pingCommand()
	b := pingCommand()
	b.ID, b.ApplicationID, b.Version = "1", "app", "7"
	assert.Equal(t, hashCommand(a), hashCommand(b))

	renamed := pingCommand()
	renamed.Name = "pong"
	assert.NotEqual(t, hashCommand(a), hashCommand(renamed))

	described := pingCommand()
	described.Description = "Other"
	assert.NotEqual(t, hashCommand(a), hashCommand(described))

	typed := pingCommand()
	typed.Type = discordgo.UserApplicationCommand
	assert.NotEqual(t, hashCommand(a), hashCommand(typed))
}

func TestFileCommandCachePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "commands.json")

	c, err := NewFileCommandCache(path)
	require.NoError(t, err)
	c.SetHash(globalKey("ping"), "abc")
	assert.Equal(t, "abc", c.Hash(globalKey("ping")))
	require.NoError(t, c.Close())

	reopened, err := NewFileCommandCache(path)
	require.NoError(t, err)
	defer reopened.Close()
	assert.Equal(t, "abc", reopened.Hash(globalKey("ping")))
	assert.Equal(t, "", reopened.Hash(globalKey("missing")))
}

func TestFileCommandCacheSaveWithoutClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "commands.json")

	c, err := NewFileCommandCache(path)
	require.NoError(t, err)
	defer c.Close()
	c.SetHash(globalKey("ping"), "abc")
	require.NoError(t, c.Save())

	reopened, err := NewFileCommandCache(path)
	require.NoError(t, err)
	defer reopened.Close()
	assert.Equal(t, "abc", reopened.Hash(globalKey("ping")))
}

func TestSenderDelivers(t *testing.T) {
	var gotChannel, gotContent string
	send := func(channelID, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
		gotChannel, gotContent = channelID, content
		return &discordgo.Message{}, nil
	}
	s := NewSender(send, nil)

	require.NoError(t, s.Send(context.Background(), "c1", "Pong!"))
	assert.Equal(t, "c1", gotChannel)
	assert.Equal(t, "Pong!", gotContent)
}

func TestSenderRetriesServerErrors(t *testing.T) {
	calls := 0
	send := func(string, string, ...discordgo.RequestOption) (*discordgo.Message, error) {
		calls++
		if calls == 1 {
			return nil, &discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusBadGateway}}
		}
		return &discordgo.Message{}, nil
	}
	s := NewSender(send, retrylimit.NewAdaptiveLimiter(100, 1, 100, 1, 0.5))
	s.policy.InitialDelay = time.Millisecond

	require.NoError(t, s.Send(context.Background(), "c1", "hi"))
	assert.Equal(t, 2, calls)
}

func TestSenderDoesNotRetryForbidden(t *testing.T) {
	calls := 0
	send := func(string, string, ...discordgo.RequestOption) (*discordgo.Message, error) {
		calls++
		return nil, &discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusForbidden}}
	}
	s := NewSender(send, nil)

	err := s.Send(context.Background(), "c1", "hi")
	require.Error(t, err)
	assert.Equal(t, 1, calls)

	var rest *discordgo.RESTError
	assert.ErrorAs(t, err, &rest)
}

func TestHeartbeatSource(t *testing.T) {
	sent := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &discordgo.Session{LastHeartbeatSent: sent, LastHeartbeatAck: sent.Add(42 * time.Millisecond)}

	src := HeartbeatSource(&Bot{dg: s})
	assert.Equal(t, uint64(42), src.Next())

	s.Lock()
	s.LastHeartbeatAck = sent.Add(-time.Second)
	s.Unlock()
	assert.Equal(t, uint64(0), src.Next())
}

func TestHeartbeatSourceConcurrentWrites(t *testing.T) {
	sent := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &discordgo.Session{LastHeartbeatSent: sent, LastHeartbeatAck: sent}
	src := HeartbeatSource(&Bot{dg: s})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			s.Lock()
			s.LastHeartbeatAck = sent.Add(time.Duration(i) * time.Millisecond)
			s.Unlock()
		}
	}()
	for i := 0; i < 100; i++ {
		assert.LessOrEqual(t, src.Next(), uint64(99))
	}
	<-done
	assert.Equal(t, uint64(99), src.Next())
}
