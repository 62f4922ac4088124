package logging

import (
	"context"
	"io"
	"log"
	"os"
	"strings"
)

// StdLogger 基于标准库 log 的文本日志，低于最小级别的记录被丢弃
type StdLogger struct {
	prefix string
	level  Level
	fields []Field
	out    *log.Logger
}

// NewStdLogger 创建输出到 stderr 的 Logger
func NewStdLogger(prefix string, level Level) *StdLogger {
	return NewStdLoggerTo(os.Stderr, prefix, level)
}

// NewStdLoggerTo 创建输出到 w 的 Logger
func NewStdLoggerTo(w io.Writer, prefix string, level Level) *StdLogger {
	return &StdLogger{
		prefix: prefix,
		level:  level,
		out:    log.New(w, "", log.LstdFlags),
	}
}

func (l *StdLogger) Level() Level { return l.level }

func (l *StdLogger) write(level Level, msg string, fields []Field) {
	if level < l.level {
		return
	}
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(level.String())
	b.WriteString("]")
	if l.prefix != "" {
		b.WriteString(" ")
		b.WriteString(l.prefix)
	}
	b.WriteString(" ")
	b.WriteString(msg)
	for _, f := range appendFields(l.fields, fields) {
		b.WriteString(" ")
		b.WriteString(f.Key)
		b.WriteString("=")
		b.WriteString(formatValue(f.Value))
	}
	l.out.Println(b.String())
}

func (l *StdLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.write(DebugLevel, msg, fields)
}

func (l *StdLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.write(InfoLevel, msg, fields)
}

func (l *StdLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.write(WarnLevel, msg, fields)
}

func (l *StdLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.write(ErrorLevel, msg, fields)
}

func (l *StdLogger) WithFields(fields ...Field) Logger {
	return &StdLogger{
		prefix: l.prefix,
		level:  l.level,
		fields: appendFields(l.fields, fields),
		out:    l.out,
	}
}
