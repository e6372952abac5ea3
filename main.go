package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	contractx "github.com/charla-ai/charla/bot/contract"
	"github.com/charla-ai/charla/bot/fallback"
	"github.com/charla-ai/charla/bot/gemini"
	"github.com/charla-ai/charla/bot/orchestrator"
	"github.com/charla-ai/charla/bot/store"
	"github.com/charla-ai/charla/bot/tool"
	"github.com/charla-ai/charla/server"
	configx "github.com/charla-ai/charla/pkg/config"
	_ "github.com/charla-ai/charla/pkg/logger/autoload"
)

type AppConfig struct {
	// PersistEnabled switches the Postgres conversation log on. Without it
	// the bot runs stateless, replaying caller-supplied history only.
	PersistEnabled bool `envconfig:"PERSIST_ENABLED" split_words:"true" default:"false"`

	// HistoryLimit is how many persisted turns are replayed as context.
	HistoryLimit int `envconfig:"HISTORY_LIMIT" split_words:"true" default:"5"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appCfg := configx.MustNew[AppConfig]("APP")
	serverCfg := configx.MustNew[server.Config]("SERVER")
	toolCfg := configx.MustNew[tool.Config]("TOOLS")
	geminiCfg := configx.MustNew[gemini.Config]("GEMINI")
	openaiCfg := configx.MustNew[fallback.Config]("OPENAI")
	authCfg := configx.MustNew[server.AuthConfig]("AUTH")

	registry, err := tool.DefaultRegistry(*toolCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("build tool registry")
	}

	primary, err := gemini.New(ctx, *geminiCfg, registry.Declarations())
	if err != nil {
		log.Fatal().Err(err).Msg("build gemini client")
	}

	secondary, err := fallback.New(*openaiCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("build openai fallback client")
	}

	var conversations contractx.ConversationStore
	var pinger server.Pinger
	if appCfg.PersistEnabled {
		dbCfg := configx.MustNew[store.Config]("DB")
		pg, err := store.New(*dbCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("open conversation store")
		}
		defer pg.Close()
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("ensure conversation schema")
		}
		conversations = pg
		pinger = pg
	} else {
		log.Info().Msg("persistence disabled, running stateless")
	}

	orch, err := orchestrator.New(primary, secondary, registry, conversations,
		orchestrator.WithHistoryLimit(appCfg.HistoryLimit),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("build orchestrator")
	}

	var verifier contractx.TokenVerifier
	if len(authCfg.Tokens) > 0 {
		verifier = server.NewStaticTokenVerifier(authCfg.Tokens)
	} else {
		log.Info().Msg("no auth tokens configured, serving anonymously")
	}

	srv := server.NewServer(orch, verifier, pinger)
	if err := srv.Run(ctx, serverCfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
