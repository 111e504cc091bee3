package cmd

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/mindmate/internal/quiz"
)

const (
	app       = "mindmate"
	envPrefix = "MINDMATE"
)

type Config struct {
	Chat   *ChatConfig   `mapstructure:"chat"`
	Server *ServerConfig `mapstructure:"server"`
	AI     *AIConfig     `mapstructure:"ai"`
	Quiz   *QuizConfig   `mapstructure:"quiz"`
}

type ChatConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type ServerConfig struct {
	Listen          string `mapstructure:"listen"`
	AllowAllOrigins bool   `mapstructure:"allow-all-origins"`
}

type QuizConfig struct {
	// Questions replaces the built-in question set when not empty.
	Questions []quiz.Question `mapstructure:"questions"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "mindmate is a career guidance quiz and AI mentor chat",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is mindmate.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("chat.url", "http://127.0.0.1:8080")
	v.SetDefault("chat.timeout", 30*time.Second)
	v.SetDefault("server.listen", ":8080")
	v.SetDefault("server.allow-all-origins", false)
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.gemini.model", "gemini-1.5-flash")
	v.SetDefault("ai.gemini.max-retries", 2)
	v.SetDefault("ai.gemini.max-log-length", 200)
}

func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional unless given explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Chat == nil {
		config.Chat = &ChatConfig{}
	}
	if config.Server == nil {
		config.Server = &ServerConfig{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}
	if config.Quiz == nil {
		config.Quiz = &QuizConfig{}
	}

	return config, nil
}
