package logging_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/rcarvalho-pb/payment_notifier-go/internal/infra/logging"
)

func TestJSONLogger_WritesFieldsAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewJSONLogger(&buf, "info")
	require.NoError(t, err)

	logger.Error("send failed", map[string]any{
		"payment-id": "123",
		"error":      errors.New("boom"),
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "ERROR", entry["level"])
	require.Equal(t, "send failed", entry["msg"])
	require.Equal(t, "123", entry["payment-id"])
	require.Equal(t, "boom", entry["error"])
	require.Contains(t, entry, "time")
}

func TestJSONLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewJSONLogger(&buf, "warn")
	require.NoError(t, err)

	logger.Info("hidden", nil)
	require.Zero(t, buf.Len())

	logger.Warn("shown", nil)
	require.NotZero(t, buf.Len())
}

func TestParseLevel_RejectsUnknown(t *testing.T) {
	_, err := logging.ParseLevel("verbose")
	require.Error(t, err)
}
