package blocklist

import (
	"context"
	"math"

	"github.com/google/uuid"
)

// DefaultActivationDistance is how far the pointer travels, in pixels,
// before a press becomes a drag
const DefaultActivationDistance = 8

// Point is a pointer position
type Point struct {
	X, Y float64
}

// PointerSensor recognizes a drag once the pointer has moved at least
// ActivationDistance from where it was pressed. Shorter movements are clicks.
type PointerSensor struct {
	ActivationDistance float64
}

// NewPointerSensor returns a sensor with the default distance
func NewPointerSensor() PointerSensor {
	return PointerSensor{ActivationDistance: DefaultActivationDistance}
}

// Activated reports whether moving from start to current starts a drag
func (s PointerSensor) Activated(start, current Point) bool {
	return math.Hypot(current.X-start.X, current.Y-start.Y) >= s.ActivationDistance
}

// Gesture tracks one pointer press on the board
type Gesture struct {
	board     *Board
	sensor    PointerSensor
	active    uuid.UUID
	start     Point
	over      uuid.UUID
	activated bool
}

// Press begins a gesture on the item activeID
func (b *Board) Press(sensor PointerSensor, activeID uuid.UUID, at Point) *Gesture {
	return &Gesture{board: b, sensor: sensor, active: activeID, start: at, over: activeID}
}

// MoveTo records the pointer position and the item currently under it
func (g *Gesture) MoveTo(at Point, over uuid.UUID) {
	if !g.activated && g.sensor.Activated(g.start, at) {
		g.activated = true
	}
	if over != uuid.Nil {
		g.over = over
	}
}

// Activated reports whether the gesture became a drag
func (g *Gesture) Activated() bool {
	return g.activated
}

// Release ends the gesture. A gesture that never activated is a click and
// returns false without touching the board.
func (g *Gesture) Release(ctx context.Context) (bool, error) {
	if !g.activated {
		return false, nil
	}
	return true, g.board.DragEnd(ctx, g.active, g.over)
}

// Key is a keyboard key relevant to reordering
type Key string

const (
	KeyUp    Key = "ArrowUp"
	KeyDown  Key = "ArrowDown"
	KeyLeft  Key = "ArrowLeft"
	KeyRight Key = "ArrowRight"
)

// KeyboardSensor maps arrow keys to one step moves in the list
type KeyboardSensor struct{}

// Target returns the index an item at index moves to, and false when the key
// does not move it
func (KeyboardSensor) Target(index, length int, key Key) (int, bool) {
	var to int
	switch key {
	case KeyUp, KeyLeft:
		to = index - 1
	case KeyDown, KeyRight:
		to = index + 1
	default:
		return index, false
	}
	if to < 0 || to >= length {
		return index, false
	}
	return to, true
}

// KeyMove moves id one step in the direction of key
func (b *Board) KeyMove(ctx context.Context, sensor KeyboardSensor, id uuid.UUID, key Key) error {
	b.mu.Lock()
	from := b.indexOf(id)
	if from < 0 {
		b.mu.Unlock()
		return ErrUnknownItem
	}
	to, ok := sensor.Target(from, len(b.items), key)
	if !ok {
		b.mu.Unlock()
		return nil
	}
	over := b.items[to].ID
	b.mu.Unlock()

	return b.DragEnd(ctx, id, over)
}
