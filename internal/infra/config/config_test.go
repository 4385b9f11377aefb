package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rcarvalho-pb/payment_notifier-go/internal/infra/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.HTTP.Addr)
	require.Equal(t, 2*time.Minute, cfg.Poll.Interval)
	require.Equal(t, 20, cfg.Poll.Limit)
	require.False(t, cfg.Poll.IsolateFailures)
	require.Equal(t, config.DriverSQLite, cfg.Dedup.Driver)
	require.Equal(t, "America/Mexico_City", cfg.Notification.Timezone)
	require.Equal(t, "https://api.mercadopago.com", cfg.MercadoPago.BaseURL)
	require.Empty(t, cfg.MercadoPago.Secret)
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notifier.yaml")
	body := []byte(`
telegram:
  bot_token: file-token
  chat_id: "-100200"
mercadopago:
  access_token: file-access
poll:
  interval: 30s
  limit: 50
dedup:
  driver: memory
`)
	require.NoError(t, os.WriteFile(path, body, 0o600))

	t.Setenv("NOTIFIER_TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("NOTIFIER_MERCADOPAGO_SECRET", "env-secret")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, "env-token", cfg.Telegram.BotToken)
	require.Equal(t, "-100200", cfg.Telegram.ChatID)
	require.Equal(t, "file-access", cfg.MercadoPago.AccessToken)
	require.Equal(t, "env-secret", cfg.MercadoPago.Secret)
	require.Equal(t, 30*time.Second, cfg.Poll.Interval)
	require.Equal(t, 50, cfg.Poll.Limit)
	require.Equal(t, config.DriverMemory, cfg.Dedup.Driver)
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	err = cfg.Validate()
	require.ErrorContains(t, err, "telegram.bot_token is required")
	require.ErrorContains(t, err, "telegram.chat_id is required")
	require.ErrorContains(t, err, "mercadopago.access_token is required")

	cfg.Telegram.BotToken = "t"
	cfg.Telegram.ChatID = "c"
	cfg.MercadoPago.AccessToken = "a"
	require.NoError(t, cfg.Validate(), "an empty signing secret is valid")

	cfg.Dedup.Driver = "etcd"
	require.ErrorContains(t, cfg.Validate(), `dedup.driver "etcd" is not supported`)
}
