// Package ui provides terminal user interface components for the daybook app.
// This file defines key bindings using the Bubble Tea key package for
// type-safe key matching, help text generation, and future customization.
package ui

import (
	"strings"

	"daybook/internal/config"

	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// Helpers
// =============================================================================

// parseKeys splits a comma-separated string into individual keys.
// If the input is empty, returns the default keys.
func parseKeys(customKeys string, defaultKeys ...string) []string {
	if customKeys == "" {
		return defaultKeys
	}
	keys := strings.Split(customKeys, ",")
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		trimmed := strings.TrimSpace(k)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// =============================================================================
// Global Keys (available in all contexts)
// =============================================================================

// GlobalKeyMap defines keys available throughout the application.
type GlobalKeyMap struct {
	Quit     key.Binding
	Help     key.Binding
	NextPane key.Binding
	Pane1    key.Binding
	Pane2    key.Binding
	Pane3    key.Binding
}

// DefaultGlobalKeyMap returns the default global key bindings.
func DefaultGlobalKeyMap() GlobalKeyMap {
	return NewGlobalKeyMap(&config.KeysConfig{})
}

// NewGlobalKeyMap creates global key bindings from config.
func NewGlobalKeyMap(cfg *config.KeysConfig) GlobalKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return GlobalKeyMap{
		Quit: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Quit, "q", "ctrl+c")...),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Help, "?")...),
			key.WithHelp("?", "help"),
		),
		NextPane: key.NewBinding(
			key.WithKeys(parseKeys(cfg.NextPane, "tab")...),
			key.WithHelp("tab", "next pane"),
		),
		Pane1: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Pane1, "1")...),
			key.WithHelp("1", "notes"),
		),
		Pane2: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Pane2, "2")...),
			key.WithHelp("2", "timer"),
		),
		Pane3: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Pane3, "3")...),
			key.WithHelp("3", "calendar"),
		),
	}
}

// =============================================================================
// Navigation Keys (shared by list-based panes)
// =============================================================================

// NavigationKeyMap defines keys for list navigation.
type NavigationKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
}

// DefaultNavigationKeyMap returns the default navigation key bindings.
func DefaultNavigationKeyMap() NavigationKeyMap {
	return NewNavigationKeyMap(&config.KeysConfig{})
}

// NewNavigationKeyMap creates navigation key bindings from config.
func NewNavigationKeyMap(cfg *config.KeysConfig) NavigationKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return NavigationKeyMap{
		Up: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Up, "k", "up")...),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Down, "j", "down")...),
			key.WithHelp("j/↓", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Top, "g")...),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Bottom, "G")...),
			key.WithHelp("G", "bottom"),
		),
	}
}

// =============================================================================
// Input Keys (shared by text input fields)
// =============================================================================

// InputKeyMap defines keys for text input mode.
type InputKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultInputKeyMap returns the default input key bindings.
func DefaultInputKeyMap() InputKeyMap {
	return NewInputKeyMap(&config.KeysConfig{})
}

// NewInputKeyMap creates input key bindings from config.
func NewInputKeyMap(cfg *config.KeysConfig) InputKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return InputKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Confirm, "enter")...),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Cancel, "esc")...),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// =============================================================================
// Notes Pane Keys
// =============================================================================

// NoteKeyMap defines keys for the notes pane.
type NoteKeyMap struct {
	Add            key.Binding
	EditNote       key.Binding
	Delete         key.Binding
	Archive        key.Binding
	ShowArchive    key.Binding
	Print          key.Binding
	CycleColor     key.Binding
	CycleNoteType  key.Binding
	ToggleCheckbox key.Binding
	Grab           key.Binding
	NavigationKeyMap
}

// DefaultNoteKeyMap returns the default notes pane key bindings.
func DefaultNoteKeyMap() NoteKeyMap {
	return NewNoteKeyMap(&config.KeysConfig{})
}

// NewNoteKeyMap creates notes key bindings from config.
func NewNoteKeyMap(cfg *config.KeysConfig) NoteKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return NoteKeyMap{
		Add: key.NewBinding(
			key.WithKeys(parseKeys(cfg.AddNote, "a")...),
			key.WithHelp("a", "add note"),
		),
		EditNote: key.NewBinding(
			key.WithKeys(parseKeys(cfg.EditNote, "e")...),
			key.WithHelp("e", "edit body"),
		),
		Delete: key.NewBinding(
			key.WithKeys(parseKeys(cfg.DeleteNote, "x")...),
			key.WithHelp("x", "delete"),
		),
		Archive: key.NewBinding(
			key.WithKeys(parseKeys(cfg.ArchiveNote, "v")...),
			key.WithHelp("v", "archive"),
		),
		ShowArchive: key.NewBinding(
			key.WithKeys(parseKeys(cfg.ShowArchive, "V")...),
			key.WithHelp("V", "archive view"),
		),
		Print: key.NewBinding(
			key.WithKeys(parseKeys(cfg.PrintNote, "p")...),
			key.WithHelp("p", "print to calendar"),
		),
		CycleColor: key.NewBinding(
			key.WithKeys(parseKeys(cfg.CycleColor, "c")...),
			key.WithHelp("c", "color"),
		),
		CycleNoteType: key.NewBinding(
			key.WithKeys(parseKeys(cfg.CycleNoteType, "n")...),
			key.WithHelp("n", "note type"),
		),
		ToggleCheckbox: key.NewBinding(
			key.WithKeys(parseKeys(cfg.ToggleCheckbox, "t")...),
			key.WithHelp("t", "tick box"),
		),
		Grab: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Grab, "r")...),
			key.WithHelp("r", "grab/reorder"),
		),
		NavigationKeyMap: NewNavigationKeyMap(cfg),
	}
}

// ShortHelp returns the short help for the notes pane (implements help.KeyMap).
func (k NoteKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.EditNote, k.Print, k.Delete, k.Down}
}

// FullHelp returns the full help for the notes pane (implements help.KeyMap).
func (k NoteKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.EditNote, k.Delete, k.Archive, k.ShowArchive},
		{k.Print, k.CycleColor, k.CycleNoteType, k.ToggleCheckbox, k.Grab},
		{k.Up, k.Down, k.Top, k.Bottom},
	}
}

// =============================================================================
// Timer Pane Keys
// =============================================================================

// TimerKeyMap defines keys for the timer pane.
type TimerKeyMap struct {
	Toggle     key.Binding
	MinuteUp   key.Binding
	MinuteDown key.Binding
	HourUp     key.Binding
	HourDown   key.Binding
}

// DefaultTimerKeyMap returns the default timer pane key bindings.
func DefaultTimerKeyMap() TimerKeyMap {
	return NewTimerKeyMap(&config.KeysConfig{})
}

// NewTimerKeyMap creates timer key bindings from config.
func NewTimerKeyMap(cfg *config.KeysConfig) TimerKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return TimerKeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(parseKeys(cfg.ToggleTimer, " ", "enter")...),
			key.WithHelp("space", "start/stop"),
		),
		MinuteUp: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Up, "k", "up")...),
			key.WithHelp("k/↑", "minutes +"),
		),
		MinuteDown: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Down, "j", "down")...),
			key.WithHelp("j/↓", "minutes -"),
		),
		HourUp: key.NewBinding(
			key.WithKeys(parseKeys(cfg.HourUp, "K")...),
			key.WithHelp("K", "hours +"),
		),
		HourDown: key.NewBinding(
			key.WithKeys(parseKeys(cfg.HourDown, "J")...),
			key.WithHelp("J", "hours -"),
		),
	}
}

// ShortHelp returns the short help for the timer pane (implements help.KeyMap).
func (k TimerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.MinuteUp, k.HourUp}
}

// FullHelp returns the full help for the timer pane (implements help.KeyMap).
func (k TimerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.MinuteUp, k.MinuteDown, k.HourUp, k.HourDown},
	}
}

// =============================================================================
// Calendar Pane Keys
// =============================================================================

// CalendarKeyMap defines keys for the calendar pane.
type CalendarKeyMap struct {
	PrevDay      key.Binding
	NextDay      key.Binding
	Today        key.Binding
	Delete       key.Binding
	RestoreEntry key.Binding
	Search       key.Binding
	NavigationKeyMap
}

// DefaultCalendarKeyMap returns the default calendar pane key bindings.
func DefaultCalendarKeyMap() CalendarKeyMap {
	return NewCalendarKeyMap(&config.KeysConfig{})
}

// NewCalendarKeyMap creates calendar key bindings from config.
func NewCalendarKeyMap(cfg *config.KeysConfig) CalendarKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return CalendarKeyMap{
		PrevDay: key.NewBinding(
			key.WithKeys(parseKeys(cfg.PrevDay, "h", "left")...),
			key.WithHelp("h/←", "prev day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys(parseKeys(cfg.NextDay, "l", "right")...),
			key.WithHelp("l/→", "next day"),
		),
		Today: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Today, "t")...),
			key.WithHelp("t", "today"),
		),
		Delete: key.NewBinding(
			key.WithKeys(parseKeys(cfg.DeleteNote, "x")...),
			key.WithHelp("x", "delete entry"),
		),
		RestoreEntry: key.NewBinding(
			key.WithKeys(parseKeys(cfg.RestoreEntry, "u")...),
			key.WithHelp("u", "restore"),
		),
		Search: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Search, "/")...),
			key.WithHelp("/", "search"),
		),
		NavigationKeyMap: NewNavigationKeyMap(cfg),
	}
}

// ShortHelp returns the short help for the calendar pane (implements help.KeyMap).
func (k CalendarKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevDay, k.NextDay, k.RestoreEntry, k.Search}
}

// FullHelp returns the full help for the calendar pane (implements help.KeyMap).
func (k CalendarKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevDay, k.NextDay, k.Today},
		{k.Delete, k.RestoreEntry, k.Search},
		{k.Up, k.Down},
	}
}

// =============================================================================
// Help Overlay Keys
// =============================================================================

// HelpKeyMap defines keys for the help overlay.
type HelpKeyMap struct {
	Close key.Binding
}

// DefaultHelpKeyMap returns the default help overlay key bindings.
func DefaultHelpKeyMap() HelpKeyMap {
	return HelpKeyMap{
		Close: key.NewBinding(
			key.WithKeys("?", "esc", "q", "enter", " "),
			key.WithHelp("any key", "close"),
		),
	}
}
