package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/gaborage/logbricks/logger"
	"github.com/gaborage/logbricks/record"
)

// MockEngine provides a testify-based mock implementation of the logger.Engine interface.
// With returns the engine configured via Return, or the mock itself when none was given,
// so every record a façade emits arrives at the same mock.
//
// Example usage:
//
//	engine := mocks.NewMockEngine()
//	engine.ExpectWith(mock.Anything)
//	engine.On("Log", record.ErrorLevel, mock.Anything, false, "boom", mock.Anything).Return()
//
//	log := logger.New(logger.WithEngine(engine))
//	log.Error("boom")
//	engine.AssertExpectations(t)
type MockEngine struct {
	mock.Mock
}

// NewMockEngine creates a new mock engine
func NewMockEngine() *MockEngine {
	return &MockEngine{}
}

var _ logger.Engine = (*MockEngine)(nil)

// With implements logger.Engine
func (m *MockEngine) With(bindings record.Fields) logger.Engine {
	arguments := m.Called(bindings)
	if engine, ok := arguments.Get(0).(logger.Engine); ok && engine != nil {
		return engine
	}
	return m
}

// Log implements logger.Engine. args is passed to the mock as a single slice argument.
func (m *MockEngine) Log(level record.Level, data any, hasData bool, format string, args ...any) {
	m.Called(level, data, hasData, format, args)
}

// ExpectWith sets up a With expectation that returns the mock itself
func (m *MockEngine) ExpectWith(bindings any) *mock.Call {
	return m.On("With", bindings).Return(nil)
}

// ExpectLog sets up a Log expectation at level with format, accepting any data and args
func (m *MockEngine) ExpectLog(level record.Level, format string) *mock.Call {
	return m.On("Log", level, mock.Anything, mock.Anything, format, mock.Anything).Return()
}

// ExpectAnyLog accepts every With and Log call
func (m *MockEngine) ExpectAnyLog() {
	m.ExpectWith(mock.Anything).Maybe()
	m.On("Log", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return().Maybe()
}
