package logging

import (
	"errors"
	"sync"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedCall struct {
	level  string
	msg    string
	err    error
	fields watermill.LogFields
}

type captureAdapter struct {
	mu    sync.Mutex
	calls []capturedCall
}

func (c *captureAdapter) record(level, msg string, err error, fields watermill.LogFields) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, capturedCall{level: level, msg: msg, err: err, fields: fields})
}

func (c *captureAdapter) Error(msg string, err error, fields watermill.LogFields) {
	c.record("error", msg, err, fields)
}
func (c *captureAdapter) Info(msg string, fields watermill.LogFields)  { c.record("info", msg, nil, fields) }
func (c *captureAdapter) Debug(msg string, fields watermill.LogFields) { c.record("debug", msg, nil, fields) }
func (c *captureAdapter) Trace(msg string, fields watermill.LogFields) { c.record("trace", msg, nil, fields) }
func (c *captureAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return c
}

func TestWatermillServiceLoggerForwardsCalls(t *testing.T) {
	adapter := &captureAdapter{}
	logger := NewWatermillServiceLogger(adapter)

	failure := errors.New("boom")
	logger.Info("started", LogFields{"topic": "/cam0/image_raw"})
	logger.Error("failed", failure, nil)
	logger.Debug("detail", LogFields{})
	logger.Trace("trace", nil)

	require.Len(t, adapter.calls, 4)
	assert.Equal(t, "info", adapter.calls[0].level)
	assert.Equal(t, "started", adapter.calls[0].msg)
	assert.Equal(t, "/cam0/image_raw", adapter.calls[0].fields["topic"])
	assert.Equal(t, failure, adapter.calls[1].err)
	assert.Nil(t, adapter.calls[2].fields)
}

func TestWatermillAdapterRoundTrip(t *testing.T) {
	inner := &captureAdapter{}
	adapter := NewWatermillAdapter(NewWatermillServiceLogger(inner))

	adapter.Info("ping", watermill.LogFields{"n": 1})
	adapter.With(watermill.LogFields{"scope": "test"}).Debug("pong", nil)

	require.Len(t, inner.calls, 2)
	assert.Equal(t, "ping", inner.calls[0].msg)
	assert.Equal(t, 1, inner.calls[0].fields["n"])
	assert.Equal(t, "pong", inner.calls[1].msg)
}

func TestNilLoggersPanic(t *testing.T) {
	assert.Panics(t, func() { NewSlogServiceLogger(nil) })
	assert.Panics(t, func() { NewWatermillServiceLogger(nil) })
	assert.Panics(t, func() { NewWatermillAdapter(nil) })
}
