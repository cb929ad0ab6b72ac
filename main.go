package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/tanpawarit/chative-retail-orchestrator/agent/agents/orchestrator"
	"github.com/tanpawarit/chative-retail-orchestrator/agent/intent"
	"github.com/tanpawarit/chative-retail-orchestrator/agent/llm"
	statex "github.com/tanpawarit/chative-retail-orchestrator/agent/state"
	"github.com/tanpawarit/chative-retail-orchestrator/agent/worker"
	configx "github.com/tanpawarit/chative-retail-orchestrator/pkg/config"
	logx "github.com/tanpawarit/chative-retail-orchestrator/pkg/logger"
	_ "github.com/tanpawarit/chative-retail-orchestrator/pkg/logger/autoload"
)

type AppConfig struct {
	SessionID string `envconfig:"SESSION_ID" split_words:"true"`
	UserID    string `envconfig:"USER_ID" split_words:"true" default:"user_01"`
	Channel   string `envconfig:"CHANNEL" default:"terminal"`
	MaxHops   int    `envconfig:"MAX_HOPS" split_words:"true" default:"4"`
	ShowTrace bool   `envconfig:"SHOW_TRACE" split_words:"true" default:"true"`
}

func main() {
	appCfg := configx.MustNew[AppConfig]("APP")
	// -env is known only now; pick up any LOG_* it sets.
	logx.Init(*configx.MustNew[logx.Config]("LOG"))
	workerCfg := configx.MustNew[worker.Config]("WORKER")
	intentCfg := configx.MustNew[llm.Config]("INTENT")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	detector, err := intent.New(ctx, *intentCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize intent detector")
	}

	orch, err := orchestrator.New(
		statex.NewMemoryStore(),
		detector,
		worker.DefaultCatalog(*workerCfg),
		orchestrator.Config{
			UserID:  appCfg.UserID,
			Channel: appCfg.Channel,
			MaxHops: appCfg.MaxHops,
		},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize orchestrator")
	}

	sessionID := strings.TrimSpace(appCfg.SessionID)
	if sessionID == "" {
		sessionID = "session_" + uuid.NewString()
	}

	opts := replOptions{
		Prompt:    term.IsTerminal(int(os.Stdin.Fd())),
		ShowTrace: appCfg.ShowTrace,
	}
	if err := runREPL(ctx, os.Stdin, os.Stdout, orch, sessionID, opts); err != nil {
		log.Fatal().Err(err).Msg("repl stopped")
	}
}
