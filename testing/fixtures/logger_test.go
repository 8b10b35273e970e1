package fixtures

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaborage/logbricks/logger"
	"github.com/gaborage/logbricks/record"
)

func TestNewCapturingLog(t *testing.T) {
	log, buf := NewCapturingLog(logger.WithSource(record.Fields{"mod": "billing"}))

	log.Child().ApplyContext(record.Fields{"reqId": "r1"}).Warn("late", map[string]any{"ms": 1200})
	log.Info("plain")

	records, err := DecodeRecords(buf)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, record.WarnLevel, first.Level)
	assert.Equal(t, FixedMillis, first.Time)
	assert.Equal(t, FixedHostname, first.Hostname)
	assert.Equal(t, os.Getpid(), first.PID)
	assert.Equal(t, "late", first.Msg)
	assert.Equal(t, record.Fields{"mod": "billing"}, first.Src)
	assert.Equal(t, record.Fields{"reqId": "r1"}, first.Ctx)
	assert.Equal(t, map[string]any{"ms": float64(1200)}, first.Data)

	assert.Equal(t, "plain", records[1].Msg)
	assert.Nil(t, records[1].Ctx)
}

func TestDecodeRecordsInvalidLine(t *testing.T) {
	buf := bytes.NewBufferString("{\"level\":30}\nnot json\n")

	_, err := DecodeRecords(buf)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestNewSilentEngine(t *testing.T) {
	engine := NewSilentEngine()
	log := logger.New(logger.WithEngine(engine))

	log.Error("anything")
	require.NoError(t, log.Debugf("n=%d", 1))

	engine.AssertNumberOfCalls(t, "Log", 2)
}
