package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

type Config struct {
	HTTP         HTTPConfig         `mapstructure:"http"`
	Telegram     TelegramConfig     `mapstructure:"telegram"`
	MercadoPago  MercadoPagoConfig  `mapstructure:"mercadopago"`
	Client       ClientConfig       `mapstructure:"client"`
	Poll         PollConfig         `mapstructure:"poll"`
	Dedup        DedupConfig        `mapstructure:"dedup"`
	Notification NotificationConfig `mapstructure:"notification"`
	Log          LogConfig          `mapstructure:"log"`
}

type HTTPConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
	BaseURL  string `mapstructure:"base_url"`
}

type MercadoPagoConfig struct {
	AccessToken string `mapstructure:"access_token"`
	// Secret signs webhook deliveries. Empty disables verification.
	Secret  string `mapstructure:"secret"`
	BaseURL string `mapstructure:"base_url"`
}

type ClientConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type PollConfig struct {
	Interval        time.Duration `mapstructure:"interval"`
	Limit           int           `mapstructure:"limit"`
	IsolateFailures bool          `mapstructure:"isolate_failures"`
}

type DedupConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type NotificationConfig struct {
	Timezone string `mapstructure:"timezone"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 30*time.Second)
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")
	v.SetDefault("telegram.base_url", "https://api.telegram.org")
	v.SetDefault("mercadopago.access_token", "")
	v.SetDefault("mercadopago.secret", "")
	v.SetDefault("mercadopago.base_url", "https://api.mercadopago.com")
	v.SetDefault("client.timeout", 10*time.Second)
	v.SetDefault("poll.interval", 2*time.Minute)
	v.SetDefault("poll.limit", 20)
	v.SetDefault("poll.isolate_failures", false)
	v.SetDefault("dedup.driver", DriverSQLite)
	v.SetDefault("dedup.dsn", "notifier.db")
	v.SetDefault("notification.timezone", "America/Mexico_City")
	v.SetDefault("log.level", "info")
}

// Load reads defaults, then the optional YAML file at path, then NOTIFIER_*
// environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("NOTIFIER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.Telegram.BotToken == "" {
		errs = append(errs, errors.New("telegram.bot_token is required"))
	}
	if c.Telegram.ChatID == "" {
		errs = append(errs, errors.New("telegram.chat_id is required"))
	}
	if c.MercadoPago.AccessToken == "" {
		errs = append(errs, errors.New("mercadopago.access_token is required"))
	}
	if c.Poll.Interval <= 0 {
		errs = append(errs, errors.New("poll.interval must be positive"))
	}
	if c.Poll.Limit <= 0 {
		errs = append(errs, errors.New("poll.limit must be positive"))
	}

	switch c.Dedup.Driver {
	case DriverMemory, DriverSQLite, DriverRedis, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("dedup.driver %q is not supported", c.Dedup.Driver))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
