// Package draglist implements the reorder math for a vertically stacked list
// whose items have varying heights. It is pure state: the caller feeds it the
// current order, measured item heights, and drag translations, and reads back
// per-item displacements and the final order. No I/O, no rendering.
package draglist

// DefaultGap is the vertical space between adjacent items, in the same units
// as the item heights (terminal rows here).
const DefaultGap = 3

// Engine tracks one in-progress drag over a list of items.
type Engine struct {
	gap     int
	order   []int64
	heights map[int64]int

	dragged      int64
	dragging     bool
	displacement map[int64]int
}

// New returns an engine with the given inter-item gap.
func New(gap int) *Engine {
	return &Engine{
		gap:          gap,
		heights:      make(map[int64]int),
		displacement: make(map[int64]int),
	}
}

// SetOrder replaces the list the engine reasons about. Heights for ids no
// longer present are dropped. An active drag whose item vanished is cancelled.
func (e *Engine) SetOrder(order []int64) {
	e.order = append(e.order[:0], order...)

	present := make(map[int64]bool, len(order))
	for _, id := range order {
		present[id] = true
	}
	for id := range e.heights {
		if !present[id] {
			delete(e.heights, id)
		}
	}

	if e.dragging && !present[e.dragged] {
		e.reset()
	}
}

// SetItemHeight records the measured height of an item. Unmeasured items
// count as zero high, which self-corrects once the caller measures them.
func (e *Engine) SetItemHeight(id int64, height int) {
	if height < 0 {
		height = 0
	}
	e.heights[id] = height
}

// Begin starts dragging the given item. Unknown ids are ignored.
func (e *Engine) Begin(id int64) {
	if e.indexOf(id) == -1 {
		return
	}
	e.dragged = id
	e.dragging = true
	e.clearDisplacements()
}

// Dragging reports the id being dragged, if any.
func (e *Engine) Dragging() (int64, bool) {
	return e.dragged, e.dragging
}

// Displacement returns the vertical shift a sibling should render with while
// a drag is in progress. The dragged item itself renders at the raw
// translation, not through this.
func (e *Engine) Displacement(id int64) int {
	return e.displacement[id]
}

// Move recomputes sibling displacements for a drag translation of dy rows.
// A sibling above the dragged item is pushed down by one slot once the
// dragged top rises past its center; one below is pushed up once the dragged
// bottom sinks past its center.
func (e *Engine) Move(dy int) {
	if !e.dragging {
		return
	}

	draggedIdx := e.indexOf(e.dragged)
	if draggedIdx == -1 {
		return
	}
	draggedHeight := e.heights[e.dragged]
	draggedTop := e.offset(draggedIdx) + dy
	draggedBottom := draggedTop + draggedHeight
	slot := draggedHeight + e.gap

	for i, id := range e.order {
		if i == draggedIdx {
			continue
		}
		top := e.offset(i)
		center := top + e.heights[id]/2

		switch {
		case i < draggedIdx && draggedTop < center:
			e.displacement[id] = slot
		case i > draggedIdx && draggedBottom > center:
			e.displacement[id] = -slot
		default:
			e.displacement[id] = 0
		}
	}
}

// Release ends the drag at translation dy and returns the resulting order.
// When no midpoint was crossed past the end of the list the item lands last.
// The returned slice aliases nothing the engine keeps; callers commit it to
// storage as-is.
func (e *Engine) Release(dy int) []int64 {
	defer e.reset()

	out := make([]int64, len(e.order))
	copy(out, e.order)
	if !e.dragging {
		return out
	}

	draggedIdx := e.indexOf(e.dragged)
	if draggedIdx == -1 {
		return out
	}
	draggedHeight := e.heights[e.dragged]
	draggedTop := e.offset(draggedIdx) + dy
	draggedBottom := draggedTop + draggedHeight

	newIdx := -1
	for i, id := range e.order {
		if i == draggedIdx {
			continue
		}
		top := e.offset(i)
		center := top + e.heights[id]/2

		crossed := false
		if i < draggedIdx {
			crossed = draggedTop < center
		} else {
			crossed = draggedBottom < center
		}
		if crossed {
			newIdx = i
			break
		}
	}

	if newIdx == -1 {
		newIdx = len(e.order)
	} else if newIdx > draggedIdx {
		newIdx--
	}

	if newIdx == draggedIdx {
		return out
	}

	out = append(out[:draggedIdx], out[draggedIdx+1:]...)
	if newIdx > len(out) {
		newIdx = len(out)
	}
	out = append(out, 0)
	copy(out[newIdx+1:], out[newIdx:])
	out[newIdx] = e.dragged
	return out
}

// StepDY returns the drag translation that carries the dragged item past the
// midpoints of the given number of siblings (positive = down, negative = up).
// Keyboard reordering feeds the result to Move and Release so both input
// paths share the same geometry.
func (e *Engine) StepDY(steps int) int {
	if !e.dragging || steps == 0 {
		return 0
	}
	draggedIdx := e.indexOf(e.dragged)
	if draggedIdx == -1 {
		return 0
	}

	target := draggedIdx + steps
	if target < 0 {
		target = 0
	}
	if target >= len(e.order) {
		target = len(e.order) - 1
	}
	if target == draggedIdx {
		return 0
	}

	center := e.offset(target) + e.heights[e.order[target]]/2
	if target > draggedIdx {
		// Dragged bottom must sink one row past the target's center.
		return center + 1 - (e.offset(draggedIdx) + e.heights[e.dragged])
	}
	// Dragged top must rise one row past the target's center.
	return center - 1 - e.offset(draggedIdx)
}

// Cancel abandons the drag without reordering.
func (e *Engine) Cancel() {
	e.reset()
}

func (e *Engine) reset() {
	e.dragged = 0
	e.dragging = false
	e.clearDisplacements()
}

func (e *Engine) clearDisplacements() {
	for id := range e.displacement {
		delete(e.displacement, id)
	}
}

func (e *Engine) indexOf(id int64) int {
	for i, v := range e.order {
		if v == id {
			return i
		}
	}
	return -1
}

// offset is the resting top of the item at index: the heights of everything
// above it plus a gap per adjacent pair among those items.
func (e *Engine) offset(index int) int {
	sum := 0
	for i := 0; i < index && i < len(e.order); i++ {
		sum += e.heights[e.order[i]]
		if i > 0 {
			sum += e.gap
		}
	}
	return sum
}
