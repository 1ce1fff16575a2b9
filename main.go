package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/dskvich/impulsyia-backend/pkg/agents"
	"github.com/dskvich/impulsyia-backend/pkg/agents/resources"
	"github.com/dskvich/impulsyia-backend/pkg/api"
	"github.com/dskvich/impulsyia-backend/pkg/auth"
	"github.com/dskvich/impulsyia-backend/pkg/logger"
	"github.com/dskvich/impulsyia-backend/pkg/qwen"
	"github.com/dskvich/impulsyia-backend/pkg/service"
)

type Config struct {
	Host               string        `env:"BACKEND_HOST" envDefault:"0.0.0.0"`
	Port               int           `env:"BACKEND_PORT" envDefault:"8000"`
	DashScopeAPIKey    string        `env:"DASHSCOPE_API_KEY"`
	QwenBaseURL        string        `env:"QWEN_BASE_URL" envDefault:"https://dashscope-intl.aliyuncs.com/compatible-mode/v1"`
	QwenModel          string        `env:"QWEN_MODEL_NAME" envDefault:"qwen-plus"`
	UpstreamTimeout    time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"60s"`
	BreakerMaxFailures uint32        `env:"UPSTREAM_BREAKER_MAX_FAILURES" envDefault:"5"`
	BreakerOpenTimeout time.Duration `env:"UPSTREAM_BREAKER_OPEN_TIMEOUT" envDefault:"30s"`
	JWTSecret          string        `env:"SUPABASE_JWT_SECRET"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:" " envDefault:"*"`
	AgentsResourceDir  string        `env:"AGENTS_RESOURCE_DIR"`
	LogNoColor         bool          `env:"LOG_NO_COLOR"`
}

func main() {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		slog.Error("parsing env config", logger.Err(err))
		os.Exit(1)
	}

	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.WithNoColor(cfg.LogNoColor))))

	if err := runMain(cfg); err != nil {
		slog.Error("shutting down due to error", logger.Err(err))
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}

func runMain(cfg Config) error {
	services, err := setupServices(cfg)
	if err != nil {
		return err
	}

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
		select {
		case s := <-sigCh:
			slog.Info("shutting down due to signal", "signal", s.String())
			cancelFn()
		case <-ctx.Done():
		}
	}()

	return services.Run(ctx)
}

func setupServices(cfg Config) (service.Group, error) {
	registry, err := loadRegistry(cfg.AgentsResourceDir)
	if err != nil {
		return nil, fmt.Errorf("loading agent catalog: %w", err)
	}

	if cfg.DashScopeAPIKey == "" {
		slog.Warn("DASHSCOPE_API_KEY is not set, chat will answer with the offline fallback")
	}

	orchestrator := agents.NewService(registry, newClientFactory(cfg))
	authenticator := auth.NewAuthenticator(cfg.JWTSecret)

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(registry, orchestrator, authenticator, cfg.CORSAllowedOrigins)

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	return service.Group{
		service.NewHTTPServer("http_api", addr, router.Handler()),
	}, nil
}

func loadRegistry(dir string) (*agents.Registry, error) {
	if dir != "" {
		return agents.Load(os.DirFS(dir))
	}
	return agents.Load(resources.FS)
}

// newClientFactory builds a Qwen client per chat call. A missing key surfaces there, not at startup.
func newClientFactory(cfg Config) agents.ClientFactory {
	httpClient := &http.Client{Timeout: cfg.UpstreamTimeout}
	breaker := qwen.NewBreaker(qwen.BreakerConfig{
		MaxFailures: cfg.BreakerMaxFailures,
		OpenTimeout: cfg.BreakerOpenTimeout,
	})

	return func(defaultModel string) (agents.ChatCompleter, error) {
		client, err := qwen.NewClient(qwen.Config{
			APIKey:       cfg.DashScopeAPIKey,
			BaseURL:      cfg.QwenBaseURL,
			DefaultModel: lo.Ternary(defaultModel != "", defaultModel, cfg.QwenModel),
		}, qwen.WithHTTPClient(httpClient))
		if err != nil {
			return nil, err
		}
		return breaker.Guard(client), nil
	}
}
