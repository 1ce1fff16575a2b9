package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer, level slog.Level) *slog.Logger {
	opts := WithNoColor(true)
	opts.Level = level
	opts.SrcFileMode = Nop
	return slog.New(NewHandler(buf, opts))
}

func TestHandler_WritesRequestIDAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, slog.LevelInfo)

	ctx := ContextWithRequestID(context.Background(), "0f8fad5b-d9cb-469f-a165-70867728950e")
	log.InfoContext(ctx, "chat completed", "agent_id", "tutor_socratico", Err(errors.New("boom")))

	line := buf.String()
	assert.Contains(t, line, "0f8fad5b ")
	assert.NotContains(t, line, "d9cb-469f")
	assert.Contains(t, line, "INFO")
	assert.Contains(t, line, "chat completed")
	assert.Contains(t, line, "agent_id=tutor_socratico")
	assert.Contains(t, line, "err=boom")
	assert.NotContains(t, line, "\u001b[")
}

func TestHandler_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, slog.LevelWarn)

	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestHandler_WithAttrsIsCopied(t *testing.T) {
	var buf bytes.Buffer
	base := newTestLogger(&buf, slog.LevelInfo)

	base.With("component", "qwen").Info("first")
	base.Info("second")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), "component=qwen")
	assert.NotContains(t, string(lines[1]), "component=qwen")
}

func TestRequestIDFromContext(t *testing.T) {
	_, ok := RequestIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = RequestIDFromContext(ContextWithRequestID(context.Background(), ""))
	assert.False(t, ok)

	id, ok := RequestIDFromContext(ContextWithRequestID(context.Background(), "abc"))
	assert.True(t, ok)
	assert.Equal(t, "abc", id)
}

func TestErr_Nil(t *testing.T) {
	assert.Equal(t, "<nil>", Err(nil).Value.String())
}

func TestNewHandler_NilMsgColor(t *testing.T) {
	var buf bytes.Buffer
	opts := WithNoColor(true)
	opts.MsgColor = nil
	opts.SrcFileMode = Nop

	log := slog.New(NewHandler(&buf, opts))
	require.NotPanics(t, func() { log.Info("agent catalog loaded", "agents", 7) })
	assert.Contains(t, buf.String(), "agent catalog loaded")
	assert.Nil(t, opts.MsgColor, "caller options must not be mutated")
}
