package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Notifier NotifierConfig `mapstructure:"notifier"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DatabaseConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	DBName      string `mapstructure:"dbname"`
	SSLMode     string `mapstructure:"sslmode"`
	UseInMemory bool   `mapstructure:"use_in_memory"`
}

type OpenAIConfig struct {
	APIKey         string  `mapstructure:"api_key"`
	Model          string  `mapstructure:"model"`
	MaxTokens      int     `mapstructure:"max_tokens"`
	Temperature    float64 `mapstructure:"temperature"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
}

// NotifierConfig selects the hot-lead alert channel. Channel is one of
// "telegram", "webhook" or "none".
type NotifierConfig struct {
	Channel          string `mapstructure:"channel"`
	TelegramToken    string `mapstructure:"telegram_token"`
	TelegramChatID   int64  `mapstructure:"telegram_chat_id"`
	WebhookURL       string `mapstructure:"webhook_url"`
	DedupeTTLMinutes int    `mapstructure:"dedupe_ttl_minutes"`
}

// AuthConfig maps bearer tokens to owner ids.
type AuthConfig struct {
	Tokens map[string]string `mapstructure:"tokens"`
}

func parseDatabaseURL(dbURL string) (DatabaseConfig, error) {
	u, err := url.Parse(dbURL)
	if err != nil {
		return DatabaseConfig{}, err
	}

	password, _ := u.User.Password()
	port := 5432 // default PostgreSQL port
	if u.Port() != "" {
		fmt.Sscanf(u.Port(), "%d", &port)
	}

	dbName := strings.TrimPrefix(u.Path, "/")

	return DatabaseConfig{
		Host:     u.Hostname(),
		Port:     port,
		User:     u.User.Username(),
		Password: password,
		DBName:   dbName,
		SSLMode:  "disable",
	}, nil
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.use_in_memory", false)
	v.SetDefault("openai.model", "gpt-4o")
	v.SetDefault("openai.max_tokens", 600)
	v.SetDefault("openai.temperature", 0.7)
	v.SetDefault("openai.timeout_seconds", 45)
	v.SetDefault("notifier.channel", "none")
	v.SetDefault("notifier.dedupe_ttl_minutes", 60)

	// Enable environment variable support
	v.AutomaticEnv()

	// Read the config file
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Check for DATABASE_URL environment variable
	if dbURL := v.GetString("DATABASE_URL"); dbURL != "" {
		dbConfig, err := parseDatabaseURL(dbURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DATABASE_URL: %v", err)
		}
		config.Database = dbConfig
	}

	if apiKey := v.GetString("OPENAI_API_KEY"); apiKey != "" {
		config.OpenAI.APIKey = apiKey
	}

	if token := v.GetString("TELEGRAM_TOKEN"); token != "" {
		config.Notifier.TelegramToken = token
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// validate fails fast on missing required settings instead of degrading at
// the first provider call.
func (c *Config) validate() error {
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("openai.api_key is required (or set OPENAI_API_KEY)")
	}
	if !c.Database.UseInMemory {
		if c.Database.DBName == "" {
			return fmt.Errorf("database.dbname is required when not using in-memory storage")
		}
	}
	switch c.Notifier.Channel {
	case "telegram":
		if c.Notifier.TelegramToken == "" || c.Notifier.TelegramChatID == 0 {
			return fmt.Errorf("notifier.telegram_token and notifier.telegram_chat_id are required for the telegram channel")
		}
	case "webhook":
		if c.Notifier.WebhookURL == "" {
			return fmt.Errorf("notifier.webhook_url is required for the webhook channel")
		}
	case "none", "":
	default:
		return fmt.Errorf("unknown notifier.channel %q", c.Notifier.Channel)
	}
	return nil
}
