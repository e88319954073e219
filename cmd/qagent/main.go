package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shivamsuchak/q-revised/internal/agent"
	"github.com/shivamsuchak/q-revised/internal/calendar"
	"github.com/shivamsuchak/q-revised/internal/channel"
	"github.com/shivamsuchak/q-revised/internal/channel/discord"
	"github.com/shivamsuchak/q-revised/internal/channel/telegram"
	"github.com/shivamsuchak/q-revised/internal/channel/webchat"
	"github.com/shivamsuchak/q-revised/internal/completion"
	"github.com/shivamsuchak/q-revised/internal/config"
	"github.com/shivamsuchak/q-revised/internal/education"
	"github.com/shivamsuchak/q-revised/internal/logging"
	"github.com/shivamsuchak/q-revised/internal/memory"
	"github.com/shivamsuchak/q-revised/internal/scheduler"
	"github.com/shivamsuchak/q-revised/internal/server"
	"github.com/shivamsuchak/q-revised/internal/tui"
	"github.com/shivamsuchak/q-revised/internal/university"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	chatMode := flag.Bool("chat", false, "Launch the interactive terminal chat client")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Setup("info")
		logging.WithComponent("main").Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logging.Setup("info")
		logging.WithComponent("main").Error("Invalid config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level)
	logger := logging.WithComponent("main")
	logger.Info("Starting agent gateway", "version", version)

	client := completion.NewFromConfig(&cfg.Completion, logger)
	if client == nil {
		logger.Warn("No completion provider available, serving template responses")
	}

	store, cleanup, err := newStore(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize memory store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	creds, err := calendar.Discover(cfg.Calendar.CredentialsDir)
	if err != nil {
		logger.Warn("Calendar credentials unavailable, calendar runs in mock mode", "error", err)
		creds = nil
	}

	cal := agent.NewCalendarCapability(client, store, creds, logger)
	registry := agent.NewRegistry(
		agent.NewGeneralCapability(client, logger),
		agent.NewSearchCapability(client, logger),
		agent.NewChatCapability(client, logger),
		agent.NewResearchCapability(client, logger),
		agent.NewStudyPlanCapability(client, logger),
		agent.NewDocumentAnalysisCapability(client, logger),
		cal,
	)
	router := agent.NewRouter(client, registry, store, logger)

	if *chatMode {
		provider := ""
		if client != nil {
			provider = client.Provider()
		}
		if err := tui.Run(router, provider, store, registry.Names()); err != nil {
			logger.Error("Chat client error", "error", err)
			os.Exit(1)
		}
		return
	}

	team := education.NewTeam(client, logger)
	recommender := university.NewRecommender(client, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	adapters := []channel.Adapter{}
	if cfg.Channels.Telegram.Enabled {
		adapters = append(adapters, telegram.New(cfg.Channels.Telegram.Token))
	}
	if cfg.Channels.Discord.Enabled {
		adapters = append(adapters, discord.New(cfg.Channels.Discord.Token))
	}
	if cfg.Channels.WebChat.Enabled {
		adapters = append(adapters, webchat.New(cfg.Channels.WebChat.Port, logging.WithComponent("webchat")))
	}
	dispatcher := channel.NewDispatcher(router, adapters, logging.WithComponent("channel"))
	dispatcher.Start(ctx)

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched, err = scheduler.New(store, cfg.Scheduler.StatsSchedule, logging.WithComponent("scheduler"))
		if err != nil {
			logger.Error("Failed to create scheduler", "error", err)
			os.Exit(1)
		}
		sched.Start()
	}

	srv := server.New(cfg, router, cal, team, recommender, store, logging.WithComponent("server"))
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	dispatcher.Stop()
	if sched != nil {
		sched.Stop()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	logger.Info("Shutdown complete")
}

// newStore builds the configured conversation store. The returned cleanup
// closes backend connections.
func newStore(cfg *config.Config, logger *slog.Logger) (memory.Store, func(), error) {
	if cfg.Memory.Backend == "redis" {
		rs, err := memory.NewRedisStore(cfg.Memory.RedisAddr, cfg.Memory.RedisPassword, cfg.Memory.RedisDB, logging.WithComponent("memory"))
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using Redis conversation store", "addr", cfg.Memory.RedisAddr)
		return rs, func() { rs.Close() }, nil
	}

	fs := memory.NewFileStore(cfg.Memory.Dir, logging.WithComponent("memory"))
	logger.Info("Using file conversation store", "dir", cfg.Memory.Dir)
	return fs, func() {}, nil
}
