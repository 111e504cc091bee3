package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/mindmate/internal/ai"
	"github.com/spigell/mindmate/internal/ai/gemini"
	"github.com/spigell/mindmate/internal/logger"
	"github.com/spigell/mindmate/internal/secrets"
	"github.com/spigell/mindmate/internal/server"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the chat completion endpoint backed by Gemini",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "address to listen on")
	serveCmd.Flags().Bool("allow-all-origins", false, "allow CORS requests from any origin")

	viper.BindPFlag("server.listen", serveCmd.Flags().Lookup("listen"))
	viper.BindPFlag("server.allow-all-origins", serveCmd.Flags().Lookup("allow-all-origins"))
}

func serve(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"), "stdout")
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the mindmate server", zap.String("version", version))

	completer, err := newCompleter(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("ai backend disabled, every reply will be a local fallback",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY or ai.gemini.api-key-file"),
		)
	}

	srv := server.New(server.Config{
		Listen:       config.Server.Listen,
		AllowAll:     config.Server.AllowAllOrigins,
		MaxLogLength: config.AI.Gemini.MaxLogLength,
	}, completer, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
		}
	}
}

// newCompleter returns nil with an error when no backend can be built, which
// the server treats as fallback-only mode.
func newCompleter(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Completer, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		File:  cfg.Gemini.APIKeyFile,
		Env:   "GEMINI_API_KEY",
		Value: cfg.Gemini.APIKey,
	})
	if err != nil {
		return nil, err
	}

	genLogger := logger.WithAIFields(log, "gemini", cfg.Gemini.Model).With(
		zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, gemini.Options{
		Model:        cfg.Gemini.Model,
		MaxRetries:   cfg.Gemini.MaxRetries,
		MaxLogLength: cfg.Gemini.MaxLogLength,
		Logger:       genLogger,
	})
	if err != nil {
		return nil, err
	}

	return generator, nil
}
