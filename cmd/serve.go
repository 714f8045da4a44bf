package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/fluently/internal/api"
	"github.com/abhisek/fluently/internal/checkin"
	"github.com/abhisek/fluently/internal/config"
	"github.com/abhisek/fluently/internal/evaluate"
	"github.com/abhisek/fluently/internal/llm"
	"github.com/abhisek/fluently/internal/picture"
	"github.com/abhisek/fluently/internal/plangen"
	"github.com/abhisek/fluently/internal/session"
	"github.com/abhisek/fluently/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

// serveDBPath prefers the --db flag over the configured path.
func serveDBPath(cmd *cobra.Command, cfg *config.Config) string {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p
	}
	return cfg.DBPath
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).
		With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	dbPath := serveDBPath(cmd, cfg)
	if err := store.EnsureDir(dbPath); err != nil {
		return fmt.Errorf("prepare database path: %w", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open event database: %w", err)
	}
	defer st.Close()
	events := st.EventRepo()

	ctx := cmd.Context()
	provider, err := llm.NewProvider(ctx, cfg.LLM, events)
	if err != nil {
		return fmt.Errorf("initialize LLM provider: %w", err)
	}
	logger.Info().Str("provider", cfg.LLM.Provider).Str("model", provider.ModelID()).Msg("LLM provider ready")

	orchestrator := checkin.New(checkin.Config{
		Provider:      provider,
		Sessions:      session.NewStore(),
		Planner:       plangen.New(provider, plangen.DefaultConfig()),
		Events:        events,
		Logger:        logger,
		QuestionCount: cfg.QuestionCount,
	})
	assembler := picture.NewAssembler(
		picture.NewOpenverseProvider(""),
		picture.NewWikimediaProvider(""),
	)
	evaluator := evaluate.New(provider, events)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	api.NewHandler(orchestrator, assembler, evaluator).RegisterRoutes(r)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-runCtx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
