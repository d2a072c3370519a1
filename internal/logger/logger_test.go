package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestContextLoggerIsPreferred(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)
	ctx := WithLogger(l.WithContext(context.Background()), map[string]interface{}{"task": 3})

	InfoLog(ctx, "ran %s", "max salary")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "ran max salary", entry["message"])
	require.Equal(t, float64(3), entry["task"])
}

func TestErrorLogAttachesError(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)
	ctx := l.WithContext(context.Background())

	ErrorLog(ctx, "load failed", errors.New("boom"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "error", entry["level"])
	require.Equal(t, "boom", entry["error"])
	require.Equal(t, "load failed", entry["message"])
}
