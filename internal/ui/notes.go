// Package ui provides terminal user interface components for the daybook app.
package ui

import (
	"fmt"
	"strings"

	"daybook/internal/config"
	"daybook/internal/draglist"
	"daybook/internal/storage"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// checkedPrefix marks a ticked line inside a checkbox note. The note body
// stays a single string, so the tick state lives in the text itself.
const checkedPrefix = "[x] "

// NotesPane handles the note list display and interactions, including the
// archive view and both reorder input paths (keyboard grab and mouse drag).
type NotesPane struct {
	todos       []storage.Todo
	archived    []storage.Todo
	cursor      int
	showArchive bool
	focused     bool
	width       int
	height      int

	// Inline editing
	editingTitle bool
	editingNote  bool
	editID       int64
	titleInput   textinput.Model
	noteInput    textarea.Model

	// Keyboard grab-mode reorder
	grabbed   bool
	grabSteps int

	// Mouse drag reorder
	drag       *draglist.Engine
	mouseDrag  bool
	dragStartY int

	// Select this id after the next reload (delete's next-selection policy).
	pendingSelect *int64

	scroll  int
	storage *storage.Storage
	styles  *Styles

	// Key bindings
	keys      NoteKeyMap
	inputKeys InputKeyMap
}

// NewNotesPane creates a new notes pane.
func NewNotesPane(store *storage.Storage, styles *Styles) *NotesPane {
	return NewNotesPaneWithKeys(store, styles, &config.KeysConfig{})
}

// NewNotesPaneWithKeys creates a new notes pane with custom key bindings.
func NewNotesPaneWithKeys(store *storage.Storage, styles *Styles, keyCfg *config.KeysConfig) *NotesPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	ti := textinput.New()
	ti.Placeholder = "Note title"
	ti.CharLimit = 100
	ti.Width = 40

	ta := textarea.New()
	ta.Placeholder = "Write something..."
	ta.SetHeight(5)
	ta.SetWidth(40)

	return &NotesPane{
		todos:      []storage.Todo{},
		archived:   []storage.Todo{},
		titleInput: ti,
		noteInput:  ta,
		drag:       draglist.New(1), // items render with one blank row between them
		storage:    store,
		styles:     styles,
		keys:       NewNoteKeyMap(keyCfg),
		inputKeys:  NewInputKeyMap(keyCfg),
	}
}

// LoadTodosCmd returns a command that loads both lists asynchronously.
func (p *NotesPane) LoadTodosCmd() tea.Cmd {
	return loadTodosCmd(p.storage)
}

// setBundle replaces the note lists and keeps cursor and drag state sane.
func (p *NotesPane) setBundle(bundle *storage.TodoBundle) {
	p.todos = bundle.Todos
	p.archived = bundle.Archived

	if p.pendingSelect != nil {
		if idx := p.indexOfTodo(*p.pendingSelect); idx >= 0 {
			p.cursor = idx
		}
		p.pendingSelect = nil
	}

	list := p.visibleList()
	if p.cursor >= len(list) {
		p.cursor = max(0, len(list)-1)
	}

	p.syncDragOrder()
}

// syncDragOrder mirrors the active list into the drag engine.
func (p *NotesPane) syncDragOrder() {
	order := make([]int64, len(p.todos))
	for i, t := range p.todos {
		order[i] = t.ID
		p.drag.SetItemHeight(t.ID, p.itemHeight(t))
	}
	p.drag.SetOrder(order)
}

// visibleList returns the list currently shown.
func (p *NotesPane) visibleList() []storage.Todo {
	if p.showArchive {
		return p.archived
	}
	return p.todos
}

// selected returns the note under the cursor, or nil.
func (p *NotesPane) selected() *storage.Todo {
	list := p.visibleList()
	if p.cursor < 0 || p.cursor >= len(list) {
		return nil
	}
	return &list[p.cursor]
}

// SelectedTodo returns a copy of the note under the cursor for callers
// outside the pane (the timer binds countdowns to it).
func (p *NotesPane) SelectedTodo() *storage.Todo {
	if p.showArchive {
		return nil
	}
	sel := p.selected()
	if sel == nil {
		return nil
	}
	c := sel.Clone()
	return &c
}

func (p *NotesPane) indexOfTodo(id int64) int {
	for i, t := range p.visibleList() {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// SetSize sets the pane dimensions.
func (p *NotesPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.titleInput.Width = max(10, width-6)
	p.noteInput.SetWidth(max(10, width-6))
	p.noteInput.SetHeight(min(8, max(3, height-8)))
}

// SetFocused sets whether this pane is focused.
func (p *NotesPane) SetFocused(focused bool) {
	p.focused = focused
	if !focused {
		p.cancelGrab()
	}
}

// IsFocused returns whether this pane is focused.
func (p *NotesPane) IsFocused() bool {
	return p.focused
}

// IsEditing returns whether an inline editor is open.
func (p *NotesPane) IsEditing() bool {
	return p.editingTitle || p.editingNote
}

// IsGrabbed returns whether grab-mode reorder is active.
func (p *NotesPane) IsGrabbed() bool {
	return p.grabbed
}

// ShowingArchive reports whether the archive view is active.
func (p *NotesPane) ShowingArchive() bool {
	return p.showArchive
}

// Counts returns the number of active and archived notes.
func (p *NotesPane) Counts() (active, archived int) {
	return len(p.todos), len(p.archived)
}

// Update handles messages for the notes pane.
func (p *NotesPane) Update(msg tea.Msg) tea.Cmd {
	// Handle async messages first
	switch msg := msg.(type) {
	case todosLoadedMsg:
		if msg.bundle != nil {
			p.setBundle(msg.bundle)
		}
		return nil

	case todoAddedMsg:
		if msg.err != nil || msg.todo == nil {
			return nil
		}
		// The new note was persisted already; append locally and open the
		// title editor instead of waiting for a reload.
		p.showArchive = false
		p.todos = append(p.todos, *msg.todo)
		p.cursor = len(p.todos) - 1
		p.syncDragOrder()
		return p.startTitleEdit(msg.todo.ID, "")

	case todoSavedMsg, todoArchivedMsg, todosReorderedMsg:
		return p.LoadTodosCmd()

	case todoRemovedMsg:
		if msg.err == nil && msg.hasNext {
			next := msg.next
			p.pendingSelect = &next
		}
		return p.LoadTodosCmd()
	}

	// Inline editors capture all keys while open.
	if p.editingTitle {
		return p.updateTitleEdit(msg)
	}
	if p.editingNote {
		return p.updateNoteEdit(msg)
	}

	// Normal mode
	if !p.focused {
		return nil
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return p.handleMouse(msg)

	case tea.KeyMsg:
		if p.grabbed {
			return p.updateGrab(msg)
		}
		return p.handleKey(msg)
	}

	return nil
}

// handleKey processes normal-mode key presses.
func (p *NotesPane) handleKey(msg tea.KeyMsg) tea.Cmd {
	list := p.visibleList()

	switch {
	case key.Matches(msg, p.keys.Down):
		if len(list) > 0 {
			p.cursor = min(p.cursor+1, len(list)-1)
		}

	case key.Matches(msg, p.keys.Up):
		if len(list) > 0 {
			p.cursor = max(p.cursor-1, 0)
		}

	case key.Matches(msg, p.keys.Top):
		p.cursor = 0

	case key.Matches(msg, p.keys.Bottom):
		if len(list) > 0 {
			p.cursor = len(list) - 1
		}

	case key.Matches(msg, p.keys.ShowArchive):
		p.showArchive = !p.showArchive
		p.cursor = 0
		p.cancelGrab()

	case key.Matches(msg, p.keys.Add):
		if p.showArchive {
			return nil
		}
		return addTodoCmd(p.storage)

	case key.Matches(msg, p.keys.Archive):
		sel := p.selected()
		if sel == nil {
			return nil
		}
		if p.showArchive {
			return unarchiveTodoCmd(p.storage, sel.ID)
		}
		return archiveTodoCmd(p.storage, sel.ID)
	}

	// Everything below acts on the active list only.
	if p.showArchive {
		return nil
	}
	sel := p.selected()

	switch {
	case key.Matches(msg, p.keys.EditNote):
		if sel == nil {
			return nil
		}
		return p.startNoteEdit(sel.ID, sel.Note)

	case key.Matches(msg, p.inputKeys.Confirm):
		if sel == nil {
			return nil
		}
		return p.startTitleEdit(sel.ID, sel.Text)

	case key.Matches(msg, p.keys.Delete):
		if sel == nil {
			return nil
		}
		return removeTodoCmd(p.storage, sel.ID)

	case key.Matches(msg, p.keys.Print):
		if sel == nil {
			return nil
		}
		return printTodoCmd(p.storage, sel.ID)

	case key.Matches(msg, p.keys.CycleColor):
		if sel == nil {
			return nil
		}
		next := nextColor(sel.Color)
		return updateTodoCmd(p.storage, sel.ID, storage.TodoPatch{Color: &next})

	case key.Matches(msg, p.keys.CycleNoteType):
		if sel == nil {
			return nil
		}
		next := nextNoteType(sel.NoteType)
		return updateTodoCmd(p.storage, sel.ID, storage.TodoPatch{NoteType: &next})

	case key.Matches(msg, p.keys.ToggleCheckbox):
		if sel == nil || sel.NoteType != storage.NoteCheckbox || sel.Note == "" {
			return nil
		}
		toggled := toggleNextCheckbox(sel.Note)
		return updateTodoCmd(p.storage, sel.ID, storage.TodoPatch{Note: &toggled})

	case key.Matches(msg, p.keys.Grab):
		if sel == nil || len(p.todos) < 2 {
			return nil
		}
		p.grabbed = true
		p.grabSteps = 0
		p.syncDragOrder()
		p.drag.Begin(sel.ID)
	}

	return nil
}

// updateGrab processes keys while grab-mode reorder is active.
func (p *NotesPane) updateGrab(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, p.keys.Down):
		if p.cursor+p.grabSteps < len(p.todos)-1 {
			p.grabSteps++
			p.drag.Move(p.drag.StepDY(p.grabSteps))
		}

	case key.Matches(msg, p.keys.Up):
		if p.cursor+p.grabSteps > 0 {
			p.grabSteps--
			p.drag.Move(p.drag.StepDY(p.grabSteps))
		}

	case key.Matches(msg, p.inputKeys.Confirm), key.Matches(msg, p.keys.Grab):
		dy := p.drag.StepDY(p.grabSteps)
		order := p.drag.Release(dy)
		p.cursor = clamp(p.cursor+p.grabSteps, 0, len(p.todos)-1)
		p.grabbed = false
		p.grabSteps = 0
		return reorderTodosCmd(p.storage, order)

	case key.Matches(msg, p.inputKeys.Cancel):
		p.cancelGrab()
	}

	return nil
}

func (p *NotesPane) cancelGrab() {
	if p.grabbed || p.mouseDrag {
		p.drag.Cancel()
	}
	p.grabbed = false
	p.grabSteps = 0
	p.mouseDrag = false
}

// startTitleEdit opens the inline title editor for a note.
func (p *NotesPane) startTitleEdit(id int64, current string) tea.Cmd {
	p.editingTitle = true
	p.editID = id
	p.titleInput.SetValue(current)
	p.titleInput.CursorEnd()
	p.titleInput.Focus()
	return textinput.Blink
}

// startNoteEdit opens the body editor for a note.
func (p *NotesPane) startNoteEdit(id int64, current string) tea.Cmd {
	p.editingNote = true
	p.editID = id
	p.noteInput.SetValue(current)
	p.noteInput.Focus()
	return textarea.Blink
}

// updateTitleEdit handles keys while the title editor is open.
func (p *NotesPane) updateTitleEdit(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.inputKeys.Confirm):
			text := strings.TrimSpace(p.titleInput.Value())
			id := p.editID
			p.closeEditors()
			editing := false
			return updateTodoCmd(p.storage, id, storage.TodoPatch{Text: &text, IsEditing: &editing})

		case key.Matches(msg, p.inputKeys.Cancel):
			id := p.editID
			p.closeEditors()
			// Leaving the editor still clears the persisted editing flag.
			editing := false
			return updateTodoCmd(p.storage, id, storage.TodoPatch{IsEditing: &editing})
		}
	}

	p.titleInput, cmd = p.titleInput.Update(msg)
	return cmd
}

// updateNoteEdit handles keys while the body editor is open. Enter inserts
// newlines, so esc is the way out and it saves.
func (p *NotesPane) updateNoteEdit(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, p.inputKeys.Cancel) {
			note := p.noteInput.Value()
			id := p.editID
			p.closeEditors()
			return updateTodoCmd(p.storage, id, storage.TodoPatch{Note: &note})
		}
	}

	p.noteInput, cmd = p.noteInput.Update(msg)
	return cmd
}

func (p *NotesPane) closeEditors() {
	p.editingTitle = false
	p.editingNote = false
	p.editID = 0
	p.titleInput.Reset()
	p.titleInput.Blur()
	p.noteInput.Reset()
	p.noteInput.Blur()
}

// handleMouse processes mouse events, including drag reorder.
func (p *NotesPane) handleMouse(msg tea.MouseMsg) tea.Cmd {
	list := p.visibleList()

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if len(list) > 0 {
			p.cursor = max(p.cursor-1, 0)
		}
		return nil

	case tea.MouseButtonWheelDown:
		if len(list) > 0 {
			p.cursor = min(p.cursor+1, len(list)-1)
		}
		return nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		idx := p.itemAtRow(msg.Y)
		if idx < 0 {
			return nil
		}
		p.cursor = idx
		if !p.showArchive && len(p.todos) > 1 {
			p.syncDragOrder()
			p.drag.Begin(p.todos[idx].ID)
			p.mouseDrag = true
			p.dragStartY = msg.Y
		}

	case tea.MouseActionMotion:
		if p.mouseDrag {
			p.drag.Move(msg.Y - p.dragStartY)
		}

	case tea.MouseActionRelease:
		if !p.mouseDrag {
			return nil
		}
		dy := msg.Y - p.dragStartY
		p.mouseDrag = false
		if dy == 0 {
			p.drag.Cancel()
			return nil
		}
		draggedID, _ := p.drag.Dragging()
		order := p.drag.Release(dy)
		if idx := indexOfID(order, draggedID); idx >= 0 {
			p.cursor = idx
		}
		return reorderTodosCmd(p.storage, order)
	}

	return nil
}

// itemAtRow maps a pane-local row to a visible item index, or -1.
func (p *NotesPane) itemAtRow(y int) int {
	// Content starts after title (1) + separator (1) = row 2
	const headerRows = 2
	row := headerRows
	list := p.visibleList()

	for i := p.scroll; i < len(list); i++ {
		h := p.itemHeight(list[i])
		if y >= row && y < row+h {
			return i
		}
		row += h + 1 // gap
	}
	return -1
}

// itemHeight is the rendered height of a note: one row for the title plus
// one per body line.
func (p *NotesPane) itemHeight(t storage.Todo) int {
	if t.Note == "" {
		return 1
	}
	return 1 + len(strings.Split(t.Note, "\n"))
}

// View renders the notes pane.
func (p *NotesPane) View() string {
	var b strings.Builder

	// Title
	title := "NOTES"
	if p.showArchive {
		title = fmt.Sprintf("ARCHIVE (%d)", len(p.archived))
	}
	b.WriteString(p.styles.PaneTitleStyle.Render(title))
	b.WriteString("\n")

	// Separator
	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorMuted).Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")

	list := p.visibleList()
	if len(list) == 0 && !p.IsEditing() {
		hint := "  No notes yet. Press 'a' to add one."
		if p.showArchive {
			hint = "  Archive is empty."
		}
		b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorTextMuted).Italic(true).Render(hint))
		b.WriteString("\n")
	} else {
		p.renderList(&b, list)
	}

	// Inline editors
	if p.editingTitle {
		b.WriteString("\n")
		b.WriteString(p.styles.InputPromptStyle.Render("Title: ") + p.titleInput.View())
		b.WriteString("\n")
	}
	if p.editingNote {
		b.WriteString("\n")
		b.WriteString(p.styles.InputPromptStyle.Render("Body (esc saves):"))
		b.WriteString("\n")
		b.WriteString(p.noteInput.View())
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

// renderList renders the visible window of the note list.
func (p *NotesPane) renderList(b *strings.Builder, list []storage.Todo) {
	available := p.height - 6
	if available < 4 {
		available = 8
	}

	p.adjustScroll(list, available)

	used := 0
	for i := p.scroll; i < len(list); i++ {
		t := list[i]
		h := p.itemHeight(t)
		if used+h > available && i > p.cursor {
			break
		}

		if i > p.scroll {
			b.WriteString("\n")
		}
		p.renderItem(b, t, i)
		used += h + 1
	}

	b.WriteString("\n")
	if !p.showArchive {
		stats := p.styles.StatLabelStyle.Render(fmt.Sprintf("%d notes", len(list)))
		b.WriteString("  " + stats)
		b.WriteString("\n")
	}
}

// adjustScroll keeps the cursor inside the rendered window.
func (p *NotesPane) adjustScroll(list []storage.Todo, available int) {
	if p.cursor < p.scroll {
		p.scroll = p.cursor
	}
	if p.scroll < 0 {
		p.scroll = 0
	}
	for p.scroll < p.cursor {
		used := 0
		for i := p.scroll; i <= p.cursor && i < len(list); i++ {
			used += p.itemHeight(list[i]) + 1
		}
		if used <= available+1 {
			break
		}
		p.scroll++
	}
}

// renderItem renders one note: marker + title row, then body rows.
func (p *NotesPane) renderItem(b *strings.Builder, t storage.Todo, idx int) {
	marker := p.styles.NoteMarker(t.Color)
	title := t.Text
	if title == "" {
		title = "Untitled Note"
	}

	maxTitle := p.width - 8
	if maxTitle < 5 {
		maxTitle = 5
	}
	title = runewidth.Truncate(title, maxTitle, "..")

	selected := idx == p.cursor && p.focused && !p.IsEditing()
	grabbedHere := p.grabbed && idx == p.cursor

	var titleLine string
	switch {
	case grabbedHere:
		titleLine = " " + marker + p.styles.NoteGrabbedStyle.Render(" ⇅ "+title)
	case selected:
		titleLine = " " + marker + p.styles.NoteSelectedStyle.Render(" "+title+" ")
	default:
		titleLine = " " + marker + " " + p.styles.NoteTitleStyle.Render(title)
	}

	if t.Timer != nil && t.Timer.IsActive {
		titleLine += " " + p.styles.TimerRunningStyle.Render("▶")
	}

	b.WriteString(titleLine)
	b.WriteString("\n")

	if t.Note == "" {
		return
	}
	for _, line := range strings.Split(t.Note, "\n") {
		b.WriteString("   " + p.renderBodyLine(t.NoteType, line))
		b.WriteString("\n")
	}
}

// renderBodyLine renders one body row with the prefix its note type calls for.
func (p *NotesPane) renderBodyLine(nt storage.NoteType, line string) string {
	maxLine := p.width - 10
	if maxLine < 5 {
		maxLine = 5
	}

	switch nt {
	case storage.NoteBullet:
		return p.styles.NoteBodyStyle.Render("• " + runewidth.Truncate(line, maxLine, ".."))
	case storage.NoteCheckbox:
		if strings.HasPrefix(line, checkedPrefix) {
			rest := strings.TrimPrefix(line, checkedPrefix)
			return p.styles.NoteBodyStyle.Strikethrough(true).Render("[x] " + runewidth.Truncate(rest, maxLine, ".."))
		}
		return p.styles.NoteBodyStyle.Render("[ ] " + runewidth.Truncate(line, maxLine, ".."))
	default:
		return p.styles.NoteBodyStyle.Render(runewidth.Truncate(line, maxLine, ".."))
	}
}

// nextColor cycles through the palette.
func nextColor(c storage.Color) storage.Color {
	for i, pc := range storage.Palette {
		if pc == c {
			return storage.Palette[(i+1)%len(storage.Palette)]
		}
	}
	return storage.Palette[0]
}

// nextNoteType cycles text → bullet → checkbox.
func nextNoteType(nt storage.NoteType) storage.NoteType {
	switch nt {
	case storage.NoteText:
		return storage.NoteBullet
	case storage.NoteBullet:
		return storage.NoteCheckbox
	default:
		return storage.NoteText
	}
}

// toggleNextCheckbox ticks the first unticked line; when everything is
// ticked it clears all marks instead.
func toggleNextCheckbox(note string) string {
	lines := strings.Split(note, "\n")

	for i, line := range lines {
		if line == "" || strings.HasPrefix(line, checkedPrefix) {
			continue
		}
		lines[i] = checkedPrefix + line
		return strings.Join(lines, "\n")
	}

	// All ticked: reset.
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, checkedPrefix)
	}
	return strings.Join(lines, "\n")
}

func indexOfID(order []int64, id int64) int {
	for i, v := range order {
		if v == id {
			return i
		}
	}
	return -1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
