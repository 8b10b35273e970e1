package logger

import "github.com/gaborage/logbricks/record"

// write emits message verbatim. One data value is attached as-is; several are
// attached as a slice; a nil value counts as absent.
func (l *Log) write(level record.Level, message string, data []any) {
	switch len(data) {
	case 0:
		l.emit(level, nil, false, message)
	case 1:
		l.emit(level, data[0], data[0] != nil, message)
	default:
		l.emit(level, data, true, message)
	}
}

// writef accepts (message, args...) or (data, message, args...). The first argument
// is the message when it is a string; otherwise the second must be.
func (l *Log) writef(level record.Level, args []any) error {
	if len(args) > 0 {
		if message, ok := args[0].(string); ok {
			l.emit(level, nil, false, message, args[1:]...)
			return nil
		}
	}
	if len(args) > 1 {
		if message, ok := args[1].(string); ok {
			data := args[0]
			l.emit(level, data, data != nil, message, args[2:]...)
			return nil
		}
	}
	return &ArgumentShapeError{Args: args}
}

func (l *Log) emit(level record.Level, data any, hasData bool, format string, args ...any) {
	if hasData && l.filter != nil {
		data = l.filter.FilterValue(record.DataField, data)
	}
	l.instance.Log(level, data, hasData, format, args...)
}

// Trace writes message at trace level with optional data.
func (l *Log) Trace(message string, data ...any) {
	l.write(record.TraceLevel, message, data)
}

// Tracef writes a formatted trace record; see Infof for the accepted shapes.
func (l *Log) Tracef(args ...any) error {
	return l.writef(record.TraceLevel, args)
}

// Debug writes message at debug level with optional data.
func (l *Log) Debug(message string, data ...any) {
	l.write(record.DebugLevel, message, data)
}

// Debugf writes a formatted debug record.
func (l *Log) Debugf(args ...any) error {
	return l.writef(record.DebugLevel, args)
}

// Info writes message at info level. The message is not interpolated.
//
//	log.Info("user created", map[string]any{"id": id})
func (l *Log) Info(message string, data ...any) {
	l.write(record.InfoLevel, message, data)
}

// Infof writes a formatted info record. Both shapes are accepted:
//
//	log.Infof("hello %s", name)
//	log.Infof(payload, "hello %s", name)
//
// An *ArgumentShapeError is returned when neither of the first two arguments is a string.
func (l *Log) Infof(args ...any) error {
	return l.writef(record.InfoLevel, args)
}

// Warn writes message at warn level with optional data.
func (l *Log) Warn(message string, data ...any) {
	l.write(record.WarnLevel, message, data)
}

// Warnf writes a formatted warn record.
func (l *Log) Warnf(args ...any) error {
	return l.writef(record.WarnLevel, args)
}

// Error writes message at error level with optional data.
func (l *Log) Error(message string, data ...any) {
	l.write(record.ErrorLevel, message, data)
}

// Errorf writes a formatted error record.
func (l *Log) Errorf(args ...any) error {
	return l.writef(record.ErrorLevel, args)
}

// Fatal writes message at fatal level with optional data. It does not exit.
func (l *Log) Fatal(message string, data ...any) {
	l.write(record.FatalLevel, message, data)
}

// Fatalf writes a formatted fatal record. It does not exit.
func (l *Log) Fatalf(args ...any) error {
	return l.writef(record.FatalLevel, args)
}
