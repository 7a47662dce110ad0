// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notify carries user-visible notifications from the search form and
// the request controller to whatever surface renders them. Components receive
// a Notifier explicitly; there is no process-wide notification channel.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// Category distinguishes the four notification kinds.
type Category string

const (
	// Validation is emitted when a submission has no search parameters.
	Validation Category = "validation"
	// Found is emitted when a search succeeds with at least one record.
	Found Category = "found"
	// Empty is emitted when a search succeeds with zero records.
	Empty Category = "empty"
	// Failed is emitted when the query service rejects a search.
	Failed Category = "failed"
)

// Severity is the presentation weight of a notification.
type Severity string

const (
	SeverityInfo        Severity = "info"
	SeverityDestructive Severity = "destructive"
)

// Severity returns the presentation weight for c. Only Found is informational.
func (c Category) Severity() Severity {
	if c == Found {
		return SeverityInfo
	}
	return SeverityDestructive
}

// Notification is one user-visible message.
type Notification struct {
	Category Category `json:"category"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
}

// String renders the notification as "Title: Message".
func (n Notification) String() string {
	return n.Title + ": " + n.Message
}

// Notifier receives notifications.
type Notifier interface {
	Notify(n Notification)
}

// Func adapts a plain function to the Notifier interface.
type Func func(n Notification)

// Notify calls f(n).
func (f Func) Notify(n Notification) { f(n) }

// Nop discards every notification.
var Nop Notifier = Func(func(Notification) {})

// Multi fans a notification out to every non-nil notifier in order.
func Multi(notifiers ...Notifier) Notifier {
	return Func(func(n Notification) {
		for _, nt := range notifiers {
			if nt != nil {
				nt.Notify(n)
			}
		}
	})
}

// WriterNotifier prints each notification as a styled line.
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer

	info        lipgloss.Style
	destructive lipgloss.Style
}

// NewWriterNotifier returns a notifier that writes to w.
func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{
		w:           w,
		info:        lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A")).Bold(true),
		destructive: lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")).Bold(true),
	}
}

// Notify writes n to the underlying writer.
func (wn *WriterNotifier) Notify(n Notification) {
	wn.mu.Lock()
	defer wn.mu.Unlock()

	style := wn.destructive
	if n.Category.Severity() == SeverityInfo {
		style = wn.info
	}
	fmt.Fprintf(wn.w, "%s %s\n", style.Render(n.Title+":"), n.Message)
}

// LogNotifier records notifications in the structured log.
type LogNotifier struct {
	Logger *zap.Logger
}

// Notify logs n at info level for Found and warn level otherwise.
func (ln LogNotifier) Notify(n Notification) {
	if ln.Logger == nil {
		return
	}
	fields := []zap.Field{
		zap.String("category", string(n.Category)),
		zap.String("title", n.Title),
		zap.String("message", n.Message),
	}
	if n.Category.Severity() == SeverityInfo {
		ln.Logger.Info("notification", fields...)
		return
	}
	ln.Logger.Warn("notification", fields...)
}

// Recorder keeps every notification it receives. It is safe for concurrent use.
type Recorder struct {
	mu   sync.Mutex
	seen []Notification
}

// Notify appends n.
func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	r.seen = append(r.seen, n)
	r.mu.Unlock()
}

// All returns a copy of the recorded notifications.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.seen))
	copy(out, r.seen)
	return out
}

// Last returns the most recent notification, if any.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.seen) == 0 {
		return Notification{}, false
	}
	return r.seen[len(r.seen)-1], true
}

// Categories returns the recorded categories in order.
func (r *Recorder) Categories() []Category {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Category, len(r.seen))
	for i, n := range r.seen {
		out[i] = n.Category
	}
	return out
}
