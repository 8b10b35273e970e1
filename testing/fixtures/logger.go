package fixtures

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gaborage/logbricks/logger"
	"github.com/gaborage/logbricks/record"
	"github.com/gaborage/logbricks/testing/mocks"
)

// Fixed values stamped on every record written by a capturing log
const (
	FixedHostname = "test-host"
	FixedMillis   = int64(1700000000000)
)

// FixedTime is the clock reading of a capturing log
var FixedTime = time.UnixMilli(FixedMillis)

// NewSilentEngine creates a mock engine that accepts every call.
// This is useful when a test needs a Log but does not inspect its output.
func NewSilentEngine() *mocks.MockEngine {
	engine := mocks.NewMockEngine()
	engine.ExpectAnyLog()
	return engine
}

// NewCapturingLog creates a Log writing real records into a buffer, with a fixed
// hostname and clock so the output is deterministic.
func NewCapturingLog(opts ...logger.Option) (*logger.Log, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	engine := logger.NewZeroEngine(buf,
		logger.WithHostname(FixedHostname),
		logger.WithClock(func() time.Time { return FixedTime }),
	)
	return logger.New(append([]logger.Option{logger.WithEngine(engine)}, opts...)...), buf
}

// DecodeRecords parses every line of buf as a record
func DecodeRecords(buf *bytes.Buffer) ([]record.Record, error) {
	var records []record.Record
	scanner := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	for line := 1; scanner.Scan(); line++ {
		if len(bytes.TrimSpace(scanner.Bytes())) == 0 {
			continue
		}
		var rec record.Record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, scanner.Err()
}
