// Package notify reports saves and clipboard copies through desktop
// notifications.
package notify

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/celltagger/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventSave emits a notification when the labels file is written.
	EventSave Event = "save"
	// EventCopy emits a notification when the labels are copied to the clipboard.
	EventCopy Event = "copy"
)

// Preferences describes notification behaviour loaded from configuration.
type Preferences struct {
	Title     string
	Templates map[Event]string
	Timeout   time.Duration
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "celltagger",
		Templates: map[Event]string{
			EventSave: "Saved %s",
			EventCopy: "Copied %s to clipboard",
		},
		Timeout: 5 * time.Second,
	}
}

// LoadPreferences applies CELLTAGGER_NOTIFY_* environment overrides to the
// defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("CELLTAGGER_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	if v := strings.TrimSpace(os.Getenv("CELLTAGGER_NOTIFY_SAVE_TEXT")); v != "" {
		prefs.Templates[EventSave] = v
	}
	if v := strings.TrimSpace(os.Getenv("CELLTAGGER_NOTIFY_COPY_TEXT")); v != "" {
		prefs.Templates[EventCopy] = v
	}
	return prefs
}

// Sender delivers one notification.
type Sender func(title, body string, opts platform.Options) error

// Notifier sends OS-level notifications for enabled events.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	send    Sender
	log     *slog.Logger
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithSender replaces the platform notification service.
func WithSender(s Sender) Option { return func(n *Notifier) { n.send = s } }

// WithLogger sets the logger used to report delivery failures.
func WithLogger(l *slog.Logger) Option { return func(n *Notifier) { n.log = l } }

// New creates a Notifier with every event disabled.
func New(prefs Preferences, opts ...Option) *Notifier {
	prefs.Templates = maps.Clone(prefs.Templates)
	n := &Notifier{
		prefs:   prefs,
		enabled: make(map[Event]bool),
		send:    platform.Notify,
		log:     slog.Default(),
	}
	for _, o := range opts {
		o(n)
	}
	return n
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Save reports that the labels file at path was written with the given
// number of cells.
func (n *Notifier) Save(path string, cells int) {
	detail := strings.TrimSpace(path)
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
	}
	n.dispatch(EventSave, fmt.Sprintf("%s (%d cells)", detail, cells))
}

// Copy reports a clipboard copy.
func (n *Notifier) Copy(detail string) {
	if strings.TrimSpace(detail) == "" {
		detail = "labels"
	}
	n.dispatch(EventCopy, detail)
}

func (n *Notifier) dispatch(event Event, detail string) {
	if n == nil || !n.enabled[event] {
		return
	}
	template := strings.TrimSpace(n.prefs.Templates[event])
	if template == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(template, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	opts := platform.Options{AppName: "celltagger", Timeout: n.prefs.Timeout}
	if err := n.send(n.prefs.Title, body, opts); err != nil {
		n.log.Warn("notification failed", "event", string(event), "err", err)
	}
}
