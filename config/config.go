package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the full application configuration, built once in main and
// passed down explicitly — no package reads ambient globals at runtime.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Agent    AgentConfig    `mapstructure:"agent"`
	Database DatabaseConfig `mapstructure:"database"`
	Trip     TripConfig     `mapstructure:"trip"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	TrustedProxies []string `mapstructure:"trusted_proxies"`
	ReleaseMode    bool     `mapstructure:"release_mode"`
}

// AgentConfig points at the AI planning agent. The timeout is generous
// because the agent runs a generation pipeline.
type AgentConfig struct {
	URL            string `mapstructure:"url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

func (a AgentConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN prefers a full connection URL (as provided by managed hosts) over the
// individual fields.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type TripConfig struct {
	DailyFoodBudget float64 `mapstructure:"daily_food_budget"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

// Load reads configs/config.yaml when present, then lets environment
// variables override everything (AGENT_URL, DATABASE_URL, SERVER_PORT...).
func Load() (*Config, error) {
	// .env is for local dev; production sets real env vars
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found — using environment variables")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	overrideFromEnv(&cfg)

	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173", "http://localhost:3000"})
	v.SetDefault("server.trusted_proxies", []string{"0.0.0.0/0"})
	v.SetDefault("agent.url", "http://localhost:5678/webhook/plan-trip")
	v.SetDefault("agent.timeout_seconds", 120)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "roamly")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("trip.daily_food_budget", 30)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// overrideFromEnv keeps compatibility with the flat env names used by
// deployment platforms (DATABASE_URL, PORT, FRONTEND_URL).
func overrideFromEnv(cfg *Config) {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Database.URL = url
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if agent := os.Getenv("AGENT_URL"); agent != "" {
		cfg.Agent.URL = agent
	}
	if urls := os.Getenv("FRONTEND_URL"); urls != "" {
		for _, u := range strings.Split(urls, ",") {
			if u = strings.TrimSpace(u); u != "" {
				cfg.Server.AllowedOrigins = append(cfg.Server.AllowedOrigins, u)
			}
		}
	}
	if os.Getenv("GIN_MODE") == "release" {
		cfg.Server.ReleaseMode = true
	}
}
