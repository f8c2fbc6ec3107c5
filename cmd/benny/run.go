package main

import (
	"context"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"benny/internal/cog"
	"benny/internal/cog/base"
	"benny/internal/cog/prefixes"
	"benny/internal/config"
	"benny/internal/discord"
	"benny/internal/state"
	"benny/internal/status"
	"benny/internal/storage"
	"benny/pkg/jobmgr"
)

func run(parent context.Context, cfg *config.Config) error {
	log.Info().Str("app", appName).Bool("dev", cfg.DevMode).Msg("Starting bot...")

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbs, err := storage.OpenAll(ctx, cfg.ServersDBPath, cfg.UsersDBPath)
	if err != nil {
		return err
	}
	defer dbs.Close()

	st := state.New(&http.Client{Timeout: 30 * time.Second}, dbs.Servers, dbs.Users, cfg.Prefix)

	manager := cog.NewManager(cfg.Prefix)
	manager.Register(base.New(cfg.Prefix))
	manager.Register(prefixes.New(storage.NewPrefixes(st.ServersDB()), cfg.Prefix))

	cache, err := discord.NewFileCommandCache(cfg.CommandCache)
	if err != nil {
		return err
	}
	defer cache.Close()

	bot, err := discord.NewBot(cfg, st, manager, cache)
	if err != nil {
		return err
	}

	jobs := jobmgr.NewManager(reportJob)
	defer jobs.Shutdown()

	var source state.Source = &state.Counter{}
	if cfg.LatencySource == config.LatencySourceHeartbeat {
		source = discord.HeartbeatSource(bot)
	}
	if err := jobs.StartAsync(ctx, "latency-sampler", func(ctx context.Context) error {
		return state.RunSampler(ctx, st, cfg.LatencyInterval, source)
	}); err != nil {
		return err
	}
	if err := jobs.StartAsync(ctx, "status-server", func(ctx context.Context) error {
		return status.Run(ctx, cfg.StatusAddr, st)
	}); err != nil {
		return err
	}
	log.Info().Msg(jobs.Status())

	if err := bot.Run(ctx); err != nil {
		return err
	}

	log.Info().Msg("Discord bot exited cleanly")
	return nil
}

// reportJob logs job lifecycle reports; failures surface at error level.
func reportJob(msg string) {
	if strings.HasPrefix(msg, "error:") {
		log.Error().Str("job", msg).Msg("job failed")
		return
	}
	log.Debug().Str("job", msg).Msg("job status")
}
