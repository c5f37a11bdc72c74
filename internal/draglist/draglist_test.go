package draglist

import (
	"reflect"
	"testing"
)

// newTestEngine builds an engine with three items A=1, B=2, C=3 of heights
// 2, 4 and 2 rows, separated by a 3-row gap. Resting tops are 0, 2 and 9
// with centers 1, 4 and 10.
func newTestEngine() *Engine {
	e := New(3)
	e.SetOrder([]int64{1, 2, 3})
	e.SetItemHeight(1, 2)
	e.SetItemHeight(2, 4)
	e.SetItemHeight(3, 2)
	return e
}

func TestMoveDisplacesSiblings(t *testing.T) {
	tests := []struct {
		name string
		drag int64
		dy   int
		want map[int64]int
	}{
		{
			name: "drag first down past second center",
			drag: 1,
			dy:   3, // bottom at 5, past B's center 4
			want: map[int64]int{2: -5, 3: 0},
		},
		{
			name: "drag first down past both centers",
			drag: 1,
			dy:   9, // bottom at 11, past C's center 10
			want: map[int64]int{2: -5, 3: -5},
		},
		{
			name: "small move displaces nothing",
			drag: 1,
			dy:   1,
			want: map[int64]int{2: 0, 3: 0},
		},
		{
			name: "drag last up past second center",
			drag: 3,
			dy:   -6, // top at 3, above B's center 4
			want: map[int64]int{1: 0, 2: 5},
		},
		{
			name: "drag last up past both centers",
			drag: 3,
			dy:   -9, // top at 0, above A's center 1
			want: map[int64]int{1: 5, 2: 5},
		},
		{
			name: "moving back down undoes displacement",
			drag: 1,
			dy:   0,
			want: map[int64]int{2: 0, 3: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()
			e.Begin(tt.drag)
			// An intermediate move first, so the final displacements are
			// recomputed rather than just accumulated.
			e.Move(tt.dy + 2)
			e.Move(tt.dy)

			for id, want := range tt.want {
				if got := e.Displacement(id); got != want {
					t.Errorf("Displacement(%d) = %d, want %d", id, got, want)
				}
			}
		})
	}
}

func TestRelease(t *testing.T) {
	tests := []struct {
		name string
		drag int64
		dy   int
		want []int64
	}{
		{name: "no crossing keeps order", drag: 1, dy: 1, want: []int64{1, 2, 3}},
		{name: "first past second", drag: 1, dy: 3, want: []int64{2, 1, 3}},
		{name: "first past end of list", drag: 1, dy: 20, want: []int64{2, 3, 1}},
		{name: "last above second", drag: 3, dy: -8, want: []int64{1, 3, 2}},
		{name: "last above first", drag: 3, dy: -12, want: []int64{3, 1, 2}},
		{name: "middle down to end", drag: 2, dy: 20, want: []int64{1, 3, 2}},
		{name: "middle up to front", drag: 2, dy: -4, want: []int64{2, 1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()
			e.Begin(tt.drag)
			e.Move(tt.dy)

			got := e.Release(tt.dy)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Release(%d) = %v, want %v", tt.dy, got, tt.want)
			}

			// Release always clears drag state and displacements.
			if _, dragging := e.Dragging(); dragging {
				t.Error("still dragging after Release")
			}
			for _, id := range []int64{1, 2, 3} {
				if d := e.Displacement(id); d != 0 {
					t.Errorf("Displacement(%d) = %d after Release, want 0", id, d)
				}
			}
		})
	}
}

func TestStepDY(t *testing.T) {
	tests := []struct {
		name  string
		drag  int64
		steps int
		want  []int64
	}{
		{name: "one step down", drag: 1, steps: 1, want: []int64{2, 1, 3}},
		{name: "two steps down", drag: 1, steps: 2, want: []int64{2, 3, 1}},
		{name: "one step up", drag: 3, steps: -1, want: []int64{1, 3, 2}},
		{name: "two steps up", drag: 3, steps: -2, want: []int64{3, 1, 2}},
		{name: "middle one down", drag: 2, steps: 1, want: []int64{1, 3, 2}},
		{name: "middle one up", drag: 2, steps: -1, want: []int64{2, 1, 3}},
		{name: "steps clamp at list end", drag: 1, steps: 5, want: []int64{2, 3, 1}},
		{name: "zero steps keep order", drag: 2, steps: 0, want: []int64{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()
			e.Begin(tt.drag)

			dy := e.StepDY(tt.steps)
			e.Move(dy)
			got := e.Release(dy)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Release(StepDY(%d)) = %v, want %v", tt.steps, got, tt.want)
			}
		})
	}
}

func TestStepDY_WithoutBegin(t *testing.T) {
	e := newTestEngine()
	if dy := e.StepDY(1); dy != 0 {
		t.Errorf("StepDY(1) without Begin = %d, want 0", dy)
	}
}

func TestReleaseWithoutBegin(t *testing.T) {
	e := newTestEngine()

	got := e.Release(5)
	if !reflect.DeepEqual(got, []int64{1, 2, 3}) {
		t.Errorf("Release() without Begin = %v", got)
	}
}

func TestBeginUnknownID(t *testing.T) {
	e := newTestEngine()

	e.Begin(42)
	if _, dragging := e.Dragging(); dragging {
		t.Error("Begin with unknown id started a drag")
	}
}

func TestCancel(t *testing.T) {
	e := newTestEngine()
	e.Begin(1)
	e.Move(5)

	e.Cancel()
	if _, dragging := e.Dragging(); dragging {
		t.Error("still dragging after Cancel")
	}
	if d := e.Displacement(2); d != 0 {
		t.Errorf("Displacement(2) = %d after Cancel, want 0", d)
	}
}

func TestSetOrderDropsVanishedDrag(t *testing.T) {
	e := newTestEngine()
	e.Begin(2)
	e.Move(5)

	// The dragged item was deleted elsewhere.
	e.SetOrder([]int64{1, 3})
	if _, dragging := e.Dragging(); dragging {
		t.Error("drag survived removal of its item")
	}
}

func TestUnmeasuredHeightsCountAsZero(t *testing.T) {
	e := New(3)
	e.SetOrder([]int64{1, 2})
	// Only item 1 is measured.
	e.SetItemHeight(1, 4)

	e.Begin(1)
	e.Move(1) // bottom at 5, item 2's center is 4 (top) + 0/2
	if d := e.Displacement(2); d != -7 {
		t.Errorf("Displacement(2) = %d, want -7", d)
	}

	got := e.Release(1)
	if !reflect.DeepEqual(got, []int64{2, 1}) {
		t.Errorf("Release(1) = %v, want [2 1]", got)
	}
}

func TestSingleItemListNeverReorders(t *testing.T) {
	e := New(DefaultGap)
	e.SetOrder([]int64{7})
	e.SetItemHeight(7, 3)

	e.Begin(7)
	e.Move(100)
	got := e.Release(100)
	if !reflect.DeepEqual(got, []int64{7}) {
		t.Errorf("Release() = %v, want [7]", got)
	}
}
