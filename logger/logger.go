package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger handles application logging
type Logger struct {
	file  *os.File
	log   *logrus.Logger
	tee   io.Writer
	runID string
	mu    sync.Mutex
}

// NewLogger creates a new Logger instance. Until Init or SetConsole is called
// messages are discarded.
func NewLogger() *Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetFormatter(&lineFormatter{})
	l.SetLevel(logrus.InfoLevel)
	return &Logger{log: l}
}

// Init initializes the logging to a file in the specified directory
func (l *Logger) Init(logDir string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		l.file.Close()
		l.file = nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log dir: %v", err)
	}

	dateStr := time.Now().Format("2006-01-02")
	pattern := filepath.Join(logDir, fmt.Sprintf("birthdayppt_%s_*.log", dateStr))
	matches, _ := filepath.Glob(pattern)
	runCount := len(matches) + 1
	filename := filepath.Join(logDir, fmt.Sprintf("birthdayppt_%s_%d.log", dateStr, runCount))

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %v", err)
	}

	l.file = f
	l.applyOutput()
	l.log.Info("App Started")
	return nil
}

// Path returns the current log file path, or "" when logging to file is off.
func (l *Logger) Path() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return ""
	}
	return l.file.Name()
}

// SetConsole mirrors every message to w (typically os.Stderr). nil disables it.
func (l *Logger) SetConsole(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tee = w
	l.applyOutput()
}

// SetDebug enables Debugf output.
func (l *Logger) SetDebug(on bool) {
	if on {
		l.log.SetLevel(logrus.DebugLevel)
	} else {
		l.log.SetLevel(logrus.InfoLevel)
	}
}

// SetRunID tags every following message with id; "" removes the tag.
func (l *Logger) SetRunID(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.runID = id
}

// must hold l.mu
func (l *Logger) applyOutput() {
	var writers []io.Writer
	if l.file != nil {
		writers = append(writers, l.file)
	}
	if l.tee != nil {
		writers = append(writers, l.tee)
	}
	switch len(writers) {
	case 0:
		l.log.SetOutput(io.Discard)
	case 1:
		l.log.SetOutput(writers[0])
	default:
		l.log.SetOutput(io.MultiWriter(writers...))
	}
}

func (l *Logger) entry() *logrus.Entry {
	l.mu.Lock()
	id := l.runID
	l.mu.Unlock()
	if id == "" {
		return logrus.NewEntry(l.log)
	}
	return l.log.WithField("run", id)
}

// Log writes a message to the log file
func (l *Logger) Log(message string) {
	if l == nil {
		return
	}
	l.entry().Info(message)
}

// Logf writes a formatted message to the log file
func (l *Logger) Logf(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.entry().Infof(format, args...)
}

// Warnf writes a formatted warning.
func (l *Logger) Warnf(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.entry().Warnf(format, args...)
}

// Errorf writes a formatted error.
func (l *Logger) Errorf(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.entry().Errorf(format, args...)
}

// Debugf writes a formatted message only when debug output is enabled.
func (l *Logger) Debugf(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.entry().Debugf(format, args...)
}

// Close closes the log file
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		logrus.NewEntry(l.log).Info("Logging disabled or App stopped.")
		l.file.Close()
		l.file = nil
		l.applyOutput()
	}
}

// lineFormatter keeps the "[15:04:05.000] message" line layout. Non-info
// levels get an upper-case tag and fields are appended as key=value.
type lineFormatter struct{}

func (f *lineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "[%s] ", e.Time.Format("15:04:05.000"))
	if e.Level != logrus.InfoLevel {
		b.WriteString(strings.ToUpper(e.Level.String()))
		b.WriteString(" ")
	}
	b.WriteString(e.Message)
	for k, v := range e.Data {
		fmt.Fprintf(&b, " %s=%v", k, v)
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}
