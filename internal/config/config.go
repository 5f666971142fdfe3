package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// HostedOrigin is the production frontend allowed by default.
const HostedOrigin = "https://nexmeet-tanishqmanglor-p3ha.onrender.com"

type Config struct {
	Mode           string   `mapstructure:"mode"`
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	MaxRoomSize    int      `mapstructure:"max_room_size"`

	ReadLimit  int64         `mapstructure:"read_limit"`
	PingPeriod time.Duration `mapstructure:"ping_period"`
	PongWait   time.Duration `mapstructure:"pong_wait"`
	WriteWait  time.Duration `mapstructure:"write_wait"`

	SendBuffer         int    `mapstructure:"send_buffer"`
	EventBuffer        int    `mapstructure:"event_buffer"`
	BackpressurePolicy string `mapstructure:"backpressure_policy"`

	ChatRateLimit    int           `mapstructure:"chat_rate_limit"`
	ChatRateInterval time.Duration `mapstructure:"chat_rate_interval"`
	ChatTimeFormat   string        `mapstructure:"chat_time_format"`

	ICEServers    []string `mapstructure:"ice_servers"`
	ICEUsername   string   `mapstructure:"ice_username"`
	ICECredential string   `mapstructure:"ice_credential"`

	Secret    string `mapstructure:"secret"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Load reads config/config.<CONFIG_ENV>.yaml, falling back to defaults when
// the file is missing.
func Load() (*Config, error) {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	return LoadFile(fmt.Sprintf("config/config.%s.yaml", env))
}

func LoadFile(fileName string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	if err := v.BindEnv("port", "PORT"); err != nil {
		return nil, fmt.Errorf("bind PORT: %w", err)
	}

	if _, err := os.Stat(fileName); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		v.SetConfigFile(fileName)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", fileName, err)
		}
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if front := os.Getenv("FRONTEND_URL"); front != "" && !slices.Contains(cfg.AllowedOrigins, front) {
		cfg.AllowedOrigins = append(cfg.AllowedOrigins, front)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Info().Str("module", "config").Str("mode", cfg.Mode).Int("port", cfg.Port).
		Strs("origins", cfg.AllowedOrigins).Int("max_room_size", cfg.MaxRoomSize).Msg("config ready")
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "release")
	v.SetDefault("port", 8000)
	v.SetDefault("allowed_origins", []string{HostedOrigin})
	v.SetDefault("max_room_size", 2)
	v.SetDefault("read_limit", 65536)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("pong_wait", "60s")
	v.SetDefault("write_wait", "10s")
	v.SetDefault("send_buffer", 32)
	v.SetDefault("event_buffer", 256)
	v.SetDefault("backpressure_policy", "drop")
	v.SetDefault("chat_rate_limit", 20)
	v.SetDefault("chat_rate_interval", "10s")
	v.SetDefault("chat_time_format", "3:04:05 PM")
	v.SetDefault("ice_servers", []string{
		"stun:stun.l.google.com:19302",
		"stun:stun1.l.google.com:19302",
		"stun:stun2.l.google.com:19302",
	})
	v.SetDefault("secret", "nexmeet-dev-secret")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
}

var (
	ErrRoomSize = errors.New("max_room_size must be at least 1")
	ErrPort     = errors.New("port must be in 1-65535")
	ErrPolicy   = errors.New("backpressure_policy must be drop or kick")
	ErrOrigin   = errors.New("allowed_origins entries must start with http:// or https://")
)

func (c *Config) Validate() error {
	if c.MaxRoomSize < 1 {
		return fmt.Errorf("%w: got %d", ErrRoomSize, c.MaxRoomSize)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: got %d", ErrPort, c.Port)
	}
	switch c.BackpressurePolicy {
	case "", "drop", "kick":
	default:
		return fmt.Errorf("%w: got %q", ErrPolicy, c.BackpressurePolicy)
	}
	for _, o := range c.AllowedOrigins {
		if !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return fmt.Errorf("%w: got %q", ErrOrigin, o)
		}
	}
	return nil
}
