// Package notify shows user-facing messages for fatal errors and missing
// assets.
package notify

import (
	"fmt"
	"sync"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/mirror-room/internal/logger"
)

// Notifier reports problems to the user.
type Notifier interface {
	// Warn reports a recoverable problem; rendering continues.
	Warn(title, format string, args ...any)
	// Error reports a failure the application cannot recover from.
	Error(title, format string, args ...any)
}

// Dialog shows native message boxes and logs every message.
type Dialog struct {
	log *zap.Logger
	// Headless disables the message boxes, leaving only the log.
	Headless bool
}

// NewDialog creates a Dialog notifier.
func NewDialog(headless bool) *Dialog {
	return &Dialog{log: logger.Named("notify"), Headless: headless}
}

// Warn logs a warning and shows an info box.
func (d *Dialog) Warn(title, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	d.log.Warn(msg, zap.String("title", title))
	if !d.Headless {
		dialog.Message("%s", msg).Title(title).Info()
	}
}

// Error logs an error and shows an error box.
func (d *Dialog) Error(title, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	d.log.Error(msg, zap.String("title", title))
	if !d.Headless {
		dialog.Message("%s", msg).Title(title).Error()
	}
}

// Message is a notification captured by Recorder.
type Message struct {
	Level string
	Title string
	Text  string
}

// Recorder collects notifications in memory.
type Recorder struct {
	mu       sync.Mutex
	Messages []Message
}

// Warn records a warning.
func (r *Recorder) Warn(title, format string, args ...any) {
	r.record("warn", title, fmt.Sprintf(format, args...))
}

// Error records an error.
func (r *Recorder) Error(title, format string, args ...any) {
	r.record("error", title, fmt.Sprintf(format, args...))
}

func (r *Recorder) record(level, title, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Messages = append(r.Messages, Message{Level: level, Title: title, Text: text})
}

// Count returns how many notifications were recorded at level.
func (r *Recorder) Count(level string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.Messages {
		if m.Level == level {
			n++
		}
	}
	return n
}
