package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBufferLogger(level LogLevel) (*WeftLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLogger(&LoggerConfig{Level: level, Format: "text", Output: &buf}), &buf
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel("warn"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("info"))
	assert.Equal(t, LevelInfo, ParseLevel("bogus"))
}

func TestLevelFiltersMessages(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn)
	ctx := context.Background()

	logger.Debug(ctx, "debug msg")
	logger.Info(ctx, "info msg")
	assert.Empty(t, buf.String())

	logger.Error(ctx, errors.New("boom"), "error msg")
	assert.Contains(t, buf.String(), "error msg")
	assert.Contains(t, buf.String(), "boom")
}

func TestWithComponentTagsRecords(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo)

	logger.WithComponent("render").Info(context.Background(), "pass complete")
	assert.Contains(t, buf.String(), "component=render")
}

func TestWithFieldsPropagate(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo)

	logger.With("source", "page.json").Info(context.Background(), "loaded")
	assert.Contains(t, buf.String(), "source=page.json")
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LevelInfo, Format: "json", Output: &buf})

	logger.Info(context.Background(), "hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"k":"v"`)
}
