package cmd

import (
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	appwidget "github.com/spigell/mindmate/internal/app"
	"github.com/spigell/mindmate/internal/logger"
	"github.com/spigell/mindmate/internal/terminal"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive career quiz and mentor chat",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("chat-url", "u", "", "base url of the completion server")
	viper.BindPFlag("chat.url", runCmd.Flags().Lookup("chat-url"))
}

// run drives the widget in the terminal.
func run(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
	defer stop()

	// stdout belongs to the interactive UI.
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"), "stderr")
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Debug("starting the widget",
		zap.String("version", version),
		zap.String("chat_url", config.Chat.URL),
		zap.Int("custom_questions", len(config.Quiz.Questions)),
	)

	term := terminal.New(logger, config.Chat.Timeout)

	widget, err := appwidget.New(appwidget.Config{
		ChatURL:   config.Chat.URL,
		Questions: config.Quiz.Questions,
	}, term, logger)
	if err != nil {
		logger.Fatal("creating the widget", zap.Error(err))
	}

	term.Attach(widget)

	if err := term.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Fatal("exiting", zap.Error(err))
	}
}
