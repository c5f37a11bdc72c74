package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"daybook/internal/config"
	"daybook/internal/storage"
	"daybook/internal/timer"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// TimerPane handles the countdown display and duration steppers.
type TimerPane struct {
	engine  *timer.Engine
	focused bool
	width   int
	height  int

	// Configured duration. Mirrored to the persisted preset after a
	// debounce window so stepping through values does not thrash disk.
	hourVal   int
	minVal    int
	presetSeq int

	// todoSource reports the note a new countdown should bind to.
	todoSource func() *storage.Todo
	// lookupTitle resolves a bound note id to its title for display.
	lookupTitle func(int64) string

	storage *storage.Storage
	styles  *Styles

	// Key bindings
	keys      TimerKeyMap
	inputKeys InputKeyMap
}

// NewTimerPane creates a new timer pane.
func NewTimerPane(store *storage.Storage, eng *timer.Engine, styles *Styles) *TimerPane {
	return NewTimerPaneWithKeys(store, eng, styles, &config.KeysConfig{})
}

// NewTimerPaneWithKeys creates a new timer pane with custom key bindings.
func NewTimerPaneWithKeys(store *storage.Storage, eng *timer.Engine, styles *Styles, keyCfg *config.KeysConfig) *TimerPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	return &TimerPane{
		engine:    eng,
		minVal:    25,
		storage:   store,
		styles:    styles,
		keys:      NewTimerKeyMap(keyCfg),
		inputKeys: NewInputKeyMap(keyCfg),
	}
}

// SetTodoSource wires the provider for the note a countdown binds to.
func (p *TimerPane) SetTodoSource(fn func() *storage.Todo) {
	p.todoSource = fn
}

// SetTitleLookup wires the resolver used to show the bound note's title.
func (p *TimerPane) SetTitleLookup(fn func(int64) string) {
	p.lookupTitle = fn
}

// InitCmd returns the startup commands: load the duration preset and
// resume any countdown that survived a restart.
func (p *TimerPane) InitCmd() tea.Cmd {
	return tea.Batch(loadPresetCmd(p.storage), restoreTimerCmd(p.engine))
}

// PollCmd returns the per-tick completion check, or nil when idle.
func (p *TimerPane) PollCmd() tea.Cmd {
	if !p.engine.Running() {
		return nil
	}
	return pollTimerCmd(p.engine)
}

// SetSize sets the pane dimensions.
func (p *TimerPane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused sets whether this pane is focused.
func (p *TimerPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused returns whether this pane is focused.
func (p *TimerPane) IsFocused() bool {
	return p.focused
}

// IsRunning returns whether a countdown is active.
func (p *TimerPane) IsRunning() bool {
	return p.engine.Running()
}

// Remaining returns the time left on the running countdown.
func (p *TimerPane) Remaining() time.Duration {
	return p.engine.Remaining()
}

// Update handles messages for the timer pane.
func (p *TimerPane) Update(msg tea.Msg) tea.Cmd {
	// Handle async messages first
	switch msg := msg.(type) {
	case presetLoadedMsg:
		if msg.err == nil && msg.preset != nil {
			p.hourVal = clampAtoi(msg.preset.Hours, 0, 23)
			p.minVal = clampAtoi(msg.preset.Minutes, 0, 59)
		}
		return nil

	case presetSaveTickMsg:
		// Only the newest debounce tick wins.
		if msg.seq != p.presetSeq {
			return nil
		}
		return savePresetCmd(p.storage, p.hoursStr(), p.minutesStr())
	}

	// Normal mode
	if !p.focused {
		return nil
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return p.handleMouse(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Toggle):
			return p.toggle()

		case key.Matches(msg, p.keys.MinuteUp):
			return p.step(0, 1)

		case key.Matches(msg, p.keys.MinuteDown):
			return p.step(0, -1)

		case key.Matches(msg, p.keys.HourUp):
			return p.step(1, 0)

		case key.Matches(msg, p.keys.HourDown):
			return p.step(-1, 0)
		}
	}

	return nil
}

// toggle starts or stops the countdown.
func (p *TimerPane) toggle() tea.Cmd {
	if p.engine.Running() {
		return stopTimerCmd(p.engine)
	}
	if timer.ParseDuration(p.hoursStr(), p.minutesStr()) <= 0 {
		return nil
	}
	var todo *storage.Todo
	if p.todoSource != nil {
		todo = p.todoSource()
	}
	return startTimerCmd(p.engine, todo, p.hoursStr(), p.minutesStr())
}

// step adjusts the configured duration. Steppers are frozen while a
// countdown runs; values wrap at their bounds.
func (p *TimerPane) step(hours, minutes int) tea.Cmd {
	if p.engine.Running() {
		return nil
	}
	p.hourVal = wrap(p.hourVal+hours, 24)
	p.minVal = wrap(p.minVal+minutes, 60)
	p.presetSeq++
	return debouncePresetCmd(p.presetSeq)
}

// handleMouse processes mouse events for the timer pane.
func (p *TimerPane) handleMouse(msg tea.MouseMsg) tea.Cmd {
	// Content starts after title (1) + separator (1) + blank (1) = row 3
	const headerRows = 3

	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress {
		// Click anywhere in the display area toggles the countdown
		if msg.Y >= headerRows && msg.Y < headerRows+4 {
			return p.toggle()
		}
	}

	return nil
}

// View renders the timer pane.
func (p *TimerPane) View() string {
	var b strings.Builder

	b.WriteString(p.styles.PaneTitleStyle.Render("TIMER"))
	b.WriteString("\n")

	// Separator
	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(p.styles.StatLabelStyle.Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n\n")

	if p.engine.Running() {
		indicator := p.styles.TimerRunningStyle.Render("▶")
		b.WriteString(fmt.Sprintf("  %s %s\n", indicator, p.styles.TimerRunningStyle.Render("Counting down")))
		b.WriteString("    " + p.styles.TimerDigitStyle.Render(formatCountdown(p.engine.Remaining())))
		b.WriteString("\n")

		if title := p.boundTitle(); title != "" {
			b.WriteString("\n")
			b.WriteString("  " + p.styles.StatLabelStyle.Render("Note: ") + p.styles.StatValueStyle.Render(title))
			b.WriteString("\n")
		}

		b.WriteString("\n")
		b.WriteString("  " + p.styles.StatLabelStyle.Render("Press space to stop"))
		b.WriteString("\n")
	} else {
		b.WriteString("  " + p.styles.TimerStoppedStyle.Render("■ Not running"))
		b.WriteString("\n\n")

		// Duration steppers
		hh := p.styles.TimerDigitStyle.Render(fmt.Sprintf("%02d", p.hourVal))
		mm := p.styles.TimerDigitStyle.Render(fmt.Sprintf("%02d", p.minVal))
		b.WriteString("    " + hh + p.styles.StatLabelStyle.Render("h ") + mm + p.styles.StatLabelStyle.Render("m"))
		b.WriteString("\n\n")
		b.WriteString("  " + p.styles.StatLabelStyle.Render("j/k minutes  J/K hours"))
		b.WriteString("\n")
		b.WriteString("  " + p.styles.StatLabelStyle.Render("Press space to start"))
		b.WriteString("\n")
	}

	// Apply pane style
	content := b.String()
	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}

	return style.Width(p.width).Height(p.height).Render(content)
}

// boundTitle resolves the title of the note the countdown is bound to.
func (p *TimerPane) boundTitle() string {
	id := p.engine.BoundTodoID()
	if id == 0 || p.lookupTitle == nil {
		return ""
	}
	return p.lookupTitle(id)
}

func (p *TimerPane) hoursStr() string {
	return strconv.Itoa(p.hourVal)
}

func (p *TimerPane) minutesStr() string {
	return strconv.Itoa(p.minVal)
}

// formatCountdown formats remaining time as HH:MM:SS.
func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// wrap keeps v inside [0, mod) with wraparound in both directions.
func wrap(v, mod int) int {
	return ((v % mod) + mod) % mod
}

// clampAtoi parses s as an int and clamps it to [lo, hi]. Garbage is lo.
func clampAtoi(s string, lo, hi int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return lo
	}
	return clamp(n, lo, hi)
}
