package storage

import (
	"encoding/json"
	"time"
)

// LoadTodos reads the active and archived lists from disk. A legacy file
// holding a bare JSON array (pre-versioning) is migrated in place to the
// versioned bundle; a bundle with an unrecognized version is treated as
// absent data.
func (s *Storage) LoadTodos() (*TodoBundle, error) {
	var raw json.RawMessage
	loadErr := s.loadJSONWithRecovery(todosFile, &raw)
	if len(raw) == 0 {
		return emptyBundle(), loadErr
	}

	bundle, migrated, decErr := decodeTodoBundle(raw)
	if decErr != nil {
		if loadErr != nil {
			return emptyBundle(), loadErr
		}
		// Valid JSON with an unusable shape counts as corruption too.
		return emptyBundle(), s.recoverCorruptJSON(todosFile, emptyBundle(), decErr)
	}
	if migrated {
		if err := s.SaveTodos(bundle); err != nil {
			return bundle, err
		}
	}
	return bundle, loadErr
}

func emptyBundle() *TodoBundle {
	return &TodoBundle{Version: SchemaVersion, Todos: []Todo{}, Archived: []Todo{}}
}

// decodeTodoBundle shape-sniffs the raw todos document. Returns the bundle
// and whether it needs to be rewritten to disk (legacy migration).
func decodeTodoBundle(raw json.RawMessage) (*TodoBundle, bool, error) {
	// Legacy format: a bare array of todos.
	var legacy []Todo
	if err := json.Unmarshal(raw, &legacy); err == nil {
		if legacy == nil {
			legacy = []Todo{}
		}
		return &TodoBundle{Version: SchemaVersion, Todos: legacy, Archived: []Todo{}}, true, nil
	}

	bundle := TodoBundle{}
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return nil, false, err
	}
	if bundle.Version != SchemaVersion {
		// Unknown schema: start over rather than guess at field meanings.
		return &TodoBundle{Version: SchemaVersion, Todos: []Todo{}, Archived: []Todo{}}, true, nil
	}
	if bundle.Todos == nil {
		bundle.Todos = []Todo{}
	}
	if bundle.Archived == nil {
		bundle.Archived = []Todo{}
	}
	return &bundle, false, nil
}

// SaveTodos writes the active and archived lists to disk.
func (s *Storage) SaveTodos(bundle *TodoBundle) error {
	bundle.Version = SchemaVersion
	return s.writeJSONAtomic(todosFile, bundle)
}

// AddTodo appends a fresh blank todo in editing mode and returns it so the
// caller can move selection and focus onto it.
func (s *Storage) AddTodo() (*Todo, error) {
	bundle, err := s.LoadTodos()
	if err != nil {
		return nil, err
	}

	now := s.Now()
	todo := Todo{
		ID:        s.uniqueTodoID(bundle),
		Text:      "",
		Note:      "",
		Color:     ColorBlue,
		IsEditing: true,
		NoteType:  NoteText,
		CreatedAt: &now,
	}

	bundle.Todos = append(bundle.Todos, todo)

	if err := s.SaveTodos(bundle); err != nil {
		return nil, err
	}
	return &todo, nil
}

// uniqueTodoID retries newTodoID until it collides with nothing in either list.
func (s *Storage) uniqueTodoID(bundle *TodoBundle) int64 {
	for {
		id := s.newTodoID()
		if findTodo(bundle.Todos, id) == -1 && findTodo(bundle.Archived, id) == -1 {
			return id
		}
	}
}

func findTodo(todos []Todo, id int64) int {
	for i := range todos {
		if todos[i].ID == id {
			return i
		}
	}
	return -1
}

// UpdateTodo patches an active todo in place. A missing id is a no-op so
// stale UI references never surface as errors.
func (s *Storage) UpdateTodo(id int64, patch TodoPatch) error {
	bundle, err := s.LoadTodos()
	if err != nil {
		return err
	}

	i := findTodo(bundle.Todos, id)
	if i == -1 {
		return nil
	}
	patch.apply(&bundle.Todos[i])
	return s.SaveTodos(bundle)
}

// UpdateArchivedTodo patches an archived todo in place.
func (s *Storage) UpdateArchivedTodo(id int64, patch TodoPatch) error {
	bundle, err := s.LoadTodos()
	if err != nil {
		return err
	}

	i := findTodo(bundle.Archived, id)
	if i == -1 {
		return nil
	}
	patch.apply(&bundle.Archived[i])
	return s.SaveTodos(bundle)
}

// RemoveTodo deletes an active todo and reports which todo the UI should
// select next: the item that slid into the removed slot, else the new last
// item, else nothing (hasNext=false).
func (s *Storage) RemoveTodo(id int64) (nextSelected int64, hasNext bool, err error) {
	bundle, err := s.LoadTodos()
	if err != nil {
		return 0, false, err
	}

	i := findTodo(bundle.Todos, id)
	if i == -1 {
		return 0, false, nil
	}
	bundle.Todos = append(bundle.Todos[:i], bundle.Todos[i+1:]...)

	if err := s.SaveTodos(bundle); err != nil {
		return 0, false, err
	}

	if len(bundle.Todos) == 0 {
		return 0, false, nil
	}
	if i < len(bundle.Todos) {
		return bundle.Todos[i].ID, true, nil
	}
	return bundle.Todos[len(bundle.Todos)-1].ID, true, nil
}

// ArchiveTodo moves an active todo to the archive. Editing state never
// survives the move.
func (s *Storage) ArchiveTodo(id int64) error {
	bundle, err := s.LoadTodos()
	if err != nil {
		return err
	}

	i := findTodo(bundle.Todos, id)
	if i == -1 {
		return nil
	}
	todo := bundle.Todos[i]
	todo.IsEditing = false
	bundle.Todos = append(bundle.Todos[:i], bundle.Todos[i+1:]...)
	bundle.Archived = append(bundle.Archived, todo)
	return s.SaveTodos(bundle)
}

// UnarchiveTodo moves an archived todo back to the end of the active list.
func (s *Storage) UnarchiveTodo(id int64) error {
	bundle, err := s.LoadTodos()
	if err != nil {
		return err
	}

	i := findTodo(bundle.Archived, id)
	if i == -1 {
		return nil
	}
	todo := bundle.Archived[i]
	todo.IsEditing = false
	bundle.Archived = append(bundle.Archived[:i], bundle.Archived[i+1:]...)
	bundle.Todos = append(bundle.Todos, todo)
	return s.SaveTodos(bundle)
}

// ReorderTodos commits a drag result. The order slice must be a permutation
// of the current active ids; anything else leaves the list untouched.
func (s *Storage) ReorderTodos(order []int64) error {
	bundle, err := s.LoadTodos()
	if err != nil {
		return err
	}

	if len(order) != len(bundle.Todos) {
		return nil
	}
	byID := make(map[int64]Todo, len(bundle.Todos))
	for _, t := range bundle.Todos {
		byID[t.ID] = t
	}

	reordered := make([]Todo, 0, len(order))
	for _, id := range order {
		t, ok := byID[id]
		if !ok {
			return nil
		}
		delete(byID, id)
		reordered = append(reordered, t)
	}

	bundle.Todos = reordered
	return s.SaveTodos(bundle)
}

// FindActiveTodo returns a copy of the active todo with the given id.
func (s *Storage) FindActiveTodo(id int64) (*Todo, error) {
	bundle, err := s.LoadTodos()
	if err != nil {
		return nil, err
	}
	if i := findTodo(bundle.Todos, id); i != -1 {
		t := bundle.Todos[i].Clone()
		return &t, nil
	}
	return nil, nil
}

func sameSecond(a, b time.Time) bool {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d <= time.Second
}
