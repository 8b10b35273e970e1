package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaborage/logbricks/record"
)

var fixedTime = time.UnixMilli(1700000000000)

func newTestEngine(buf *bytes.Buffer, opts ...EngineOption) *ZeroEngine {
	base := []EngineOption{
		WithHostname("h"),
		WithClock(func() time.Time { return fixedTime }),
	}
	return NewZeroEngine(buf, append(base, opts...)...)
}

// decodeLines parses every JSON line written to buf.
func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		out = append(out, m)
	}
	return out
}

func TestZeroEngineWireFormat(t *testing.T) {
	var buf bytes.Buffer
	engine := newTestEngine(&buf)

	engine.Log(record.InfoLevel, nil, false, "started")

	var rec record.Record
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
	assert.Equal(t, record.InfoLevel, rec.Level)
	assert.Equal(t, int64(1700000000000), rec.Time)
	assert.Equal(t, os.Getpid(), rec.PID)
	assert.Equal(t, "h", rec.Hostname)
	assert.Equal(t, "started", rec.Msg)
	assert.Nil(t, rec.Src)
	assert.Nil(t, rec.Ctx)
	assert.Nil(t, rec.Data)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.NotContains(t, lines[0], record.DataField)
	assert.NotContains(t, lines[0], "message")
}

func TestZeroEngineFormatting(t *testing.T) {
	var buf bytes.Buffer
	engine := newTestEngine(&buf)

	engine.Log(record.InfoLevel, nil, false, "hello %s", "world")
	engine.Log(record.InfoLevel, nil, false, "kept %s", []any{}...)
	engine.Log(record.InfoLevel, nil, false, "hello", "surplus")
	engine.Log(record.InfoLevel, nil, false, "payload %j", map[string]any{"a": 1})

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 4)
	assert.Equal(t, "hello world", lines[0][record.MessageField])
	assert.Equal(t, "kept %s", lines[1][record.MessageField])
	assert.Equal(t, "hello", lines[2][record.MessageField])
	assert.Equal(t, `payload {"a":1}`, lines[3][record.MessageField])
}

func TestZeroEngineData(t *testing.T) {
	var buf bytes.Buffer
	engine := newTestEngine(&buf)

	engine.Log(record.ErrorLevel, map[string]any{"x": 1}, true, "boom")
	engine.Log(record.ErrorLevel, nil, true, "explicit null")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, map[string]any{"x": float64(1)}, lines[0][record.DataField])
	assert.Contains(t, lines[1], record.DataField)
	assert.Nil(t, lines[1][record.DataField])
}

func TestZeroEngineWithBindings(t *testing.T) {
	var buf bytes.Buffer
	root := newTestEngine(&buf)

	src := record.Fields{"mod": "billing"}
	child := root.With(record.Fields{
		record.SourceField:  src,
		record.ContextField: record.Fields(nil),
	})
	src["mod"] = "changed"

	child.Log(record.WarnLevel, nil, false, "bound")
	root.Log(record.WarnLevel, nil, false, "unbound")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, map[string]any{"mod": "billing"}, lines[0][record.SourceField])
	assert.NotContains(t, lines[0], record.ContextField)
	assert.NotContains(t, lines[1], record.SourceField)
}

func TestZeroEngineMinLevel(t *testing.T) {
	var buf bytes.Buffer
	engine := newTestEngine(&buf, WithMinLevel(record.WarnLevel))

	engine.Log(record.InfoLevel, nil, false, "dropped")
	engine.Log(record.WarnLevel, nil, false, "kept")
	engine.With(record.Fields{"src": record.Fields{"mod": "m"}}).Log(record.DebugLevel, nil, false, "dropped too")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "kept", lines[0][record.MessageField])
}

func TestZeroEngineFatalDoesNotExit(t *testing.T) {
	var buf bytes.Buffer
	engine := newTestEngine(&buf)

	engine.Log(record.FatalLevel, nil, false, "still running")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, float64(record.FatalLevel), lines[0][record.LevelField])
}

func TestLogThroughZeroEngine(t *testing.T) {
	var buf bytes.Buffer
	log := New(WithEngine(newTestEngine(&buf)), WithSource(record.Fields{"mod": "api"}))

	child := log.Child().ApplyContext(record.Fields{"reqId": "r1"})
	child.Error("boom")
	require.NoError(t, log.Infof(map[string]any{"x": 1}, "hello %d", 2))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)

	assert.Equal(t, float64(record.ErrorLevel), lines[0][record.LevelField])
	assert.Equal(t, "boom", lines[0][record.MessageField])
	assert.Equal(t, map[string]any{"mod": "api"}, lines[0][record.SourceField])
	assert.Equal(t, map[string]any{"reqId": "r1"}, lines[0][record.ContextField])

	assert.Equal(t, "hello 2", lines[1][record.MessageField])
	assert.Equal(t, map[string]any{"x": float64(1)}, lines[1][record.DataField])
	assert.NotContains(t, lines[1], record.ContextField)
}
