package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

var levelNames = map[string]level{
	"debug": levelDebug,
	"info":  levelInfo,
	"warn":  levelWarn,
	"error": levelError,
}

var levelTags = map[level]string{
	levelDebug: "DEBUG",
	levelInfo:  "INFO",
	levelWarn:  "WARN",
	levelError: "ERROR",
}

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

type implLogger struct {
	logger    *log.Logger
	level     level
	json      bool
	prefix    string
	component string
	now       func() time.Time
}

type jsonEntry struct {
	Time      string `json:"time"`
	Level     string `json:"level"`
	Component string `json:"component,omitempty"`
	Msg       string `json:"msg"`
}

// New creates a Logger writing to stdout.
func New(lvl string) Logger {
	return NewWithWriter(lvl, os.Stdout)
}

// NewWithWriter creates a text Logger writing to w. Unknown levels fall back to info.
func NewWithWriter(lvl string, w io.Writer) Logger {
	return NewWithFormat(lvl, FormatText, w)
}

// NewWithFormat creates a Logger writing to w in the given format ("text" or
// "json"). Unknown formats fall back to text.
func NewWithFormat(lvl, format string, w io.Writer) Logger {
	l := &implLogger{
		level: parseLevel(lvl),
		now:   time.Now,
	}
	if strings.EqualFold(strings.TrimSpace(format), FormatJSON) {
		l.json = true
		l.logger = log.New(w, "", 0)
	} else {
		l.logger = log.New(w, "", log.LstdFlags)
	}
	return l
}

// Named returns a copy of l whose lines carry a "[name]" component tag.
// Loggers that are not produced by this package are returned unchanged, and a
// nil Logger becomes Discard().
func Named(l Logger, name string) Logger {
	if l == nil {
		return Discard()
	}
	impl, ok := l.(*implLogger)
	if !ok {
		return l
	}
	cp := *impl
	cp.prefix = cp.prefix + "[" + name + "] "
	if cp.component == "" {
		cp.component = name
	} else {
		cp.component = cp.component + "." + name
	}
	return &cp
}

func parseLevel(s string) level {
	if lv, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return lv
	}
	return levelInfo
}

func (l *implLogger) shouldLog(target level) bool {
	return target >= l.level
}

func (l *implLogger) printf(target level, msg string, args ...interface{}) {
	if !l.shouldLog(target) {
		return
	}
	if !l.json {
		l.logger.Printf("["+levelTags[target]+"] "+l.prefix+msg, args...)
		return
	}

	b, err := json.Marshal(jsonEntry{
		Time:      l.now().UTC().Format(time.RFC3339Nano),
		Level:     levelTags[target],
		Component: l.component,
		Msg:       fmt.Sprintf(msg, args...),
	})
	if err != nil {
		return
	}
	l.logger.Print(string(b))
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.printf(levelDebug, msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.printf(levelInfo, msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.printf(levelWarn, msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.printf(levelError, msg, args...)
}

// Discard returns a Logger that drops everything. Useful in tests.
func Discard() Logger {
	return NewWithWriter("error", io.Discard)
}
