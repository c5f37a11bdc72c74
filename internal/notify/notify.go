// Package notify provides cross-platform desktop notification support.
// It uses native notification mechanisms on macOS (osascript) and Linux (notify-send).
package notify

// Notifier defines the interface for sending desktop notifications.
type Notifier interface {
	// Send sends a notification with the given title and message.
	Send(title, message string) error

	// SendWithSound sends a notification with sound.
	SendWithSound(title, message string) error

	// IsSupported returns true if notifications are supported on this platform.
	IsSupported() bool
}

type noopNotifier struct{}

func (n *noopNotifier) Send(title, message string) error {
	return nil
}

func (n *noopNotifier) SendWithSound(title, message string) error {
	return nil
}

func (n *noopNotifier) IsSupported() bool {
	return false
}

// New creates a platform-specific notifier.
// Returns a no-op notifier if the platform doesn't support notifications.
func New() Notifier {
	n := newPlatformNotifier()
	if n == nil || !n.IsSupported() {
		return &noopNotifier{}
	}
	return n
}

// Noop returns a notifier that drops everything. Useful when notifications
// are disabled in config.
func Noop() Notifier {
	return &noopNotifier{}
}

// Config holds notification configuration.
type Config struct {
	// Enabled enables/disables notifications
	Enabled bool `yaml:"enabled"`

	// TimerProgress shows a notification when a countdown starts
	TimerProgress bool `yaml:"timer_progress"`

	// Sound enables notification sounds
	Sound bool `yaml:"sound"`
}

// DefaultConfig returns the default notification configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:       false,
		TimerProgress: false,
		Sound:         false,
	}
}
